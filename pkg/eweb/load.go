// File: pkg/eweb/load.go
package eweb

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Controllers maps a controller's BACnet address to its display name.
type Controllers map[string]string

// Addresses returns the controller addresses in ascending numeric order.
func (cs Controllers) Addresses() []string {
	addrs := lo.Keys(cs)
	sort.Slice(addrs, func(i, j int) bool {
		a, _ := strconv.ParseUint(addrs[i], 10, 64)
		b, _ := strconv.ParseUint(addrs[j], 10, 64)
		if a != b {
			return a < b
		}
		return addrs[i] < addrs[j]
	})
	return addrs
}

// Lookup resolves an address typed by the operator. The input must parse as an integer
// and name a listed controller; the listed address and its display name are returned.
func (cs Controllers) Lookup(input string) (string, string, bool) {
	input = strings.TrimSpace(input)
	want, err := strconv.ParseUint(input, 10, 64)
	if err != nil {
		return "", "", false
	}
	if name, ok := cs[input]; ok {
		return input, name, true
	}
	addr, ok := lo.FindKeyBy(cs, func(addr, _ string) bool {
		n, err := strconv.ParseUint(addr, 10, 64)
		return err == nil && n == want
	})
	if !ok {
		return "", "", false
	}
	return addr, cs[addr], true
}

// isControllerAddress reports whether a key under a site names a controller.
func isControllerAddress(key string) bool {
	_, err := strconv.ParseUint(key, 10, 64)
	return err == nil
}

// LoadSites lists the sites on the server in the order the server returns them.
func (c *Client) LoadSites(ctx context.Context) ([]string, error) {
	c.log.Debug("loading sites")
	body, err := c.get(ctx, bacnetPath, nil)
	if err != nil {
		return nil, err
	}
	return parseSites(body)
}

// parseSites keeps the top-level keys whose value is an object; scalars such as
// "version" are gateway metadata.
func parseSites(body []byte) ([]string, error) {
	sites := []string{}
	err := jsonparser.ObjectEach(body, func(key, _ []byte, dataType jsonparser.ValueType, _ int) error {
		if dataType == jsonparser.Object {
			sites = append(sites, string(key))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "decoding site list")
	}
	return sites, nil
}

// LoadControllers lists the controllers of a site.
func (c *Client) LoadControllers(ctx context.Context, site string) (Controllers, error) {
	c.log.WithField("site", site).Debug("loading controllers")
	body, err := c.get(ctx, sitePath, map[string]string{"site": site})
	if err != nil {
		return nil, err
	}
	return parseControllers(body)
}

func parseControllers(body []byte) (Controllers, error) {
	controllers := Controllers{}
	err := jsonparser.ObjectEach(body, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		addr := string(key)
		if !isControllerAddress(addr) {
			return nil
		}
		name := ""
		if dataType == jsonparser.Object {
			name, _ = jsonparser.GetString(value, "displayName")
		}
		controllers[addr] = name
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "decoding controller list")
	}
	return controllers, nil
}

// LoadObjects lists the object keys (e.g. "bde,3") on a controller, in server order.
func (c *Client) LoadObjects(ctx context.Context, site, controller string) ([]string, error) {
	c.log.WithFields(logrus.Fields{"site": site, "controller": controller}).Debug("loading objects")
	body, err := c.get(ctx, controllerPath, map[string]string{"site": site, "controller": controller})
	if err != nil {
		return nil, err
	}
	return parseObjectKeys(body)
}

func parseObjectKeys(body []byte) ([]string, error) {
	var keys []string
	err := jsonparser.ObjectEach(body, func(key, _ []byte, _ jsonparser.ValueType, _ int) error {
		keys = append(keys, string(key))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "decoding object list")
	}
	return keys, nil
}
