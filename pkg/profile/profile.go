// File: pkg/profile/profile.go
package profile

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const profileExt = ".yaml"

// Profile holds the non-secret defaults for one enteliWEB server.
// Values only pre-fill prompts; the password is always asked for.
type Profile struct {
	Address            string        `yaml:"address"`
	Username           string        `yaml:"username"`
	Scheme             string        `yaml:"scheme"`
	Timeout            time.Duration `yaml:"timeout"`
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify"`
	Debug              bool          `yaml:"debug"`
}

// Default returns the profile used when none is given.
func Default() *Profile {
	return &Profile{Scheme: "http"}
}

// Resolve maps a profile argument to a file path. A bare name such as "site-a"
// resolves to "site-a.yaml" when no file of that exact name exists.
func Resolve(name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}
	if filepath.Ext(name) == "" {
		return name + profileExt
	}
	return name
}

// Load reads and validates the profile named by name.
func Load(name string) (*Profile, error) {
	path := Resolve(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading profile %s", path)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "profile %s", path)
	}
	return p, nil
}

// Parse decodes a profile document on top of Default. Unknown keys are rejected.
func Parse(data []byte) (*Profile, error) {
	var secret struct {
		Password *string `yaml:"password"`
	}
	if err := yaml.Unmarshal(data, &secret); err == nil && secret.Password != nil {
		return nil, errors.New("passwords are not stored in profiles")
	}

	p := Default()
	if err := yaml.UnmarshalStrict(data, p); err != nil {
		return nil, errors.Wrap(err, "decoding")
	}
	p.Address = strings.TrimSpace(p.Address)
	p.Username = strings.TrimSpace(p.Username)
	p.Scheme = strings.ToLower(strings.TrimSpace(p.Scheme))

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the profile's fields.
func (p *Profile) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Scheme, validation.Required, validation.In("http", "https")),
		validation.Field(&p.Timeout, validation.Min(time.Duration(0))),
		validation.Field(&p.Address, validation.By(hostOnly)),
	)
}

// hostOnly rejects addresses that carry a scheme or path; those belong in scheme.
func hostOnly(value interface{}) error {
	addr, _ := value.(string)
	if strings.Contains(addr, "://") || strings.Contains(addr, "/") {
		return errors.New("must be a host or host:port")
	}
	return nil
}
