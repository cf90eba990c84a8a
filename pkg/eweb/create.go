// File: pkg/eweb/create.go
package eweb

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"bdetool/pkg/bacnet"
)

// bdeKeyMarker identifies BDE objects among a controller's object keys.
const bdeKeyMarker = "bde"

// BDE describes a BDE object created on a controller.
type BDE struct {
	Site       string
	Controller string
	ID         bacnet.ObjectID
	Name       string
}

// CreateBDE creates a BDE on the target controller, named after the root controller.
// The instance is one past the highest BDE instance already on the target (1 when there
// are none). The call is not idempotent: repeating it creates another BDE.
func (c *Client) CreateBDE(ctx context.Context, site, target, rootName string) (*BDE, error) {
	log := c.log.WithFields(logrus.Fields{"site": site, "controller": target})

	keys, err := c.LoadObjects(ctx, site, target)
	if err != nil {
		return nil, errors.Wrapf(err, "listing objects on controller %s", target)
	}

	existing := existingBDEInstances(keys, log)
	instance, err := bacnet.NextInstance(existing)
	if err != nil {
		return nil, errors.Wrapf(err, "choosing BDE instance on controller %s", target)
	}

	bde := &BDE{
		Site:       site,
		Controller: target,
		ID:         bacnet.ObjectID{Type: bacnet.TypeBDE, Instance: instance},
		Name:       bdeName(rootName),
	}
	log.WithFields(logrus.Fields{"existing": len(existing), "object": bde.ID.String()}).Debug("creating BDE")

	params := map[string]string{"site": site, "controller": target}
	body, err := c.post(ctx, controllerPath, params, buildObjectRequest(bde.ID, bde.Name))
	if err != nil {
		return nil, errors.Wrapf(err, "creating %s on controller %s", bde.ID, target)
	}
	// enteliWEB can answer 200 with an errorText when the write is refused.
	if text := errorText(body); text != "" {
		apiErr := &APIError{StatusCode: http.StatusOK, Text: text, Body: string(body)}
		return nil, errors.Wrapf(apiErr, "creating %s on controller %s", bde.ID, target)
	}
	return bde, nil
}

// existingBDEInstances collects the instance numbers of the BDE keys among keys.
// Keys whose instance field does not parse are skipped.
func existingBDEInstances(keys []string, log *logrus.Entry) []bacnet.ObjectInstance {
	bdeKeys := lo.Filter(keys, func(key string, _ int) bool {
		return strings.Contains(key, bdeKeyMarker)
	})
	instances := make([]bacnet.ObjectInstance, 0, len(bdeKeys))
	for _, key := range bdeKeys {
		id, err := bacnet.ParseObjectID(key)
		if err != nil {
			log.WithError(err).Debugf("ignoring object %q", key)
			continue
		}
		instances = append(instances, id.Instance)
	}
	return instances
}
