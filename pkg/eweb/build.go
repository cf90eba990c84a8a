// File: pkg/eweb/build.go
package eweb

import "bdetool/pkg/bacnet"

// enteliWEB tags every JSON value with its type in a "$base" member.
const (
	baseObject           = "Object"
	baseObjectIdentifier = "ObjectIdentifier"
	baseString           = "String"
)

type typedValue struct {
	Base  string `json:"$base"`
	Value string `json:"value"`
}

// objectRequest is the body that creates an object on a controller.
type objectRequest struct {
	Base             string     `json:"$base"`
	ObjectIdentifier typedValue `json:"object-identifier"`
	ObjectName       typedValue `json:"object-name"`
}

// buildObjectRequest builds the create body for an object with the given identifier and name.
func buildObjectRequest(id bacnet.ObjectID, name string) *objectRequest {
	return &objectRequest{
		Base: baseObject,
		ObjectIdentifier: typedValue{
			Base:  baseObjectIdentifier,
			Value: id.String(),
		},
		ObjectName: typedValue{
			Base:  baseString,
			Value: name,
		},
	}
}

// bdeName names a BDE after its root controller. The root name is used as-is.
func bdeName(rootName string) string {
	return rootName + " BDE"
}
