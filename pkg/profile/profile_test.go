package profile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p := Default()
	assert.Equal(t, "http", p.Scheme)
	assert.Empty(t, p.Address)
	assert.Zero(t, p.Timeout)
	require.NoError(t, p.Validate())
}

func TestParse(t *testing.T) {
	doc := `
address: 10.20.0.5:8080
username: ops
scheme: HTTPS
timeout: 30s
insecure_skip_verify: true
debug: true
`
	p, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, &Profile{
		Address:            "10.20.0.5:8080",
		Username:           "ops",
		Scheme:             "https",
		Timeout:            30 * time.Second,
		InsecureSkipVerify: true,
		Debug:              true,
	}, p)
}

func TestParseKeepsDefaults(t *testing.T) {
	p, err := Parse([]byte("username: ops\n"))
	require.NoError(t, err)
	assert.Equal(t, "http", p.Scheme)
	assert.Equal(t, "ops", p.Username)
}

func TestParseRejects(t *testing.T) {
	ttc := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{name: "password", doc: "username: ops\npassword: hunter2\n", wantErr: "passwords are not stored"},
		{name: "unknown key", doc: "hostname: plant-1\n", wantErr: "field hostname not found"},
		{name: "bad scheme", doc: "scheme: ftp\n", wantErr: "must be a valid value"},
		{name: "empty scheme", doc: "scheme: \"\"\n", wantErr: "cannot be blank"},
		{name: "negative timeout", doc: "timeout: -5s\n", wantErr: "no less than"},
		{name: "address with scheme", doc: "address: http://plant-1\n", wantErr: "must be a host or host:port"},
		{name: "bad duration", doc: "timeout: soon\n", wantErr: "decoding"},
	}
	for _, tc := range ttc {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadResolvesBareName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plant-1.yaml")
	require.NoError(t, os.WriteFile(path, []byte("address: plant-1\n"), 0o600))

	bare := filepath.Join(dir, "plant-1")
	assert.Equal(t, path, Resolve(bare))
	assert.Equal(t, path, Resolve(path))

	p, err := Load(bare)
	require.NoError(t, err)
	assert.Equal(t, "plant-1", p.Address)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml")
}
