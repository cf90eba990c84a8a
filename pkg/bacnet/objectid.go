// File: pkg/bacnet/objectid.go
package bacnet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

const (
	// MaxInstance is the largest instance number a 22-bit BACnet object identifier can carry.
	MaxInstance ObjectInstance = 0x3FFFFF

	// FirstInstance is proposed when a controller has no object of the requested type yet.
	FirstInstance ObjectInstance = 1
)

// Object types as they appear in enteliWEB object identifiers.
const (
	TypeBDE = "BDE"
)

// ObjectInstance is the instance half of an object identifier.
type ObjectInstance uint32

// ObjectID is a BACnet (type, instance) pair, unique within one controller.
type ObjectID struct {
	Type     string
	Instance ObjectInstance
}

// String renders the identifier the way enteliWEB expects it in a request body, e.g. "BDE,8".
func (o ObjectID) String() string {
	return fmt.Sprintf("%s,%d", o.Type, o.Instance)
}

// ParseObjectID splits an identifier such as "bde,3" into its type and instance.
// Fields past the second are ignored.
func ParseObjectID(s string) (ObjectID, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 {
		return ObjectID{}, errors.Errorf("invalid object identifier %q: missing instance", s)
	}
	instance, err := ParseInstance(parts[1])
	if err != nil {
		return ObjectID{}, errors.Wrapf(err, "invalid object identifier %q", s)
	}
	return ObjectID{Type: strings.TrimSpace(parts[0]), Instance: instance}, nil
}

// ParseInstance parses a decimal instance number and checks it fits in an identifier.
func ParseInstance(s string) (ObjectInstance, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, errors.Errorf("instance %q is not a non-negative integer", s)
	}
	if ObjectInstance(v) > MaxInstance {
		return 0, errors.Errorf("instance %d exceeds maximum %d", v, MaxInstance)
	}
	return ObjectInstance(v), nil
}

// NextInstance proposes the instance for a new object: one past the highest existing
// instance, or FirstInstance when there are none.
func NextInstance(existing []ObjectInstance) (ObjectInstance, error) {
	if len(existing) == 0 {
		return FirstInstance, nil
	}
	highest := lo.Max(existing)
	if highest >= MaxInstance {
		return 0, errors.Errorf("no instance left: highest existing instance is %d (max %d)", highest, MaxInstance)
	}
	return highest + 1, nil
}
