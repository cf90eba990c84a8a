package eweb

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
)

const (
	testUser     = "ops"
	testPassword = "s3cret"
)

// fakeGateway is an in-memory enteliWEB server covering the calls the client makes.
type fakeGateway struct {
	mu sync.Mutex

	username string
	password string

	loginBody string
	root      string
	sites     map[string]string   // site -> controller listing body
	objects   map[string][]string // "site/controller" -> object keys

	postStatus int
	postBody   string

	posted    []map[string]interface{}
	lastAuth  string
	lastQuery url.Values
	lastPath  string
	requests  int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		username:  testUser,
		password:  testPassword,
		loginBody: `{"value":"OK"}`,
		root: `{"$base":"Collection","version":"1.0",` +
			`"Main Campus":{"$base":"Collection","displayName":"Main Campus"},` +
			`"nodeType":"NETWORK",` +
			`"Annex":{"$base":"Collection","displayName":"Annex"}}`,
		sites: map[string]string{
			"Main Campus": `{"$base":"Collection","displayName":"Main Campus",` +
				`"2002":{"$base":"Collection","displayName":"AHU-2"},` +
				`"1001":{"$base":"Collection","displayName":"Boiler Plant"},` +
				`"nodeType":"NETWORK","truncated":"false"}`,
			"Annex": `{"$base":"Collection","displayName":"Annex"}`,
		},
		objects: map[string][]string{
			"Main Campus/1001": {"device,1001", "bde,3", "analog-value,1", "bde,7"},
			"Main Campus/2002": {"device,2002"},
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// objectListing renders object keys as a JSON object, keeping their order.
func objectListing(keys []string) string {
	parts := []string{`"$base":"Collection"`}
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf(`%q:{"$base":"Object","displayName":%q}`, k, k))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func (g *fakeGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.requests++
	g.lastAuth = r.Header.Get("Authorization")
	g.lastQuery = r.URL.Query()
	g.lastPath = r.URL.Path

	user, pass, ok := r.BasicAuth()
	if !ok || user != g.username || pass != g.password {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"errorText": "Invalid username or password"})
		return
	}

	path := r.URL.Path
	switch {
	case path == loginPath && r.Method == http.MethodGet:
		writeRaw(w, http.StatusOK, g.loginBody)

	case path == bacnetPath && r.Method == http.MethodGet:
		writeRaw(w, http.StatusOK, g.root)

	case strings.HasPrefix(path, bacnetPath+"/"):
		parts := strings.Split(strings.TrimPrefix(path, bacnetPath+"/"), "/")
		switch len(parts) {
		case 1:
			body, ok := g.sites[parts[0]]
			if !ok {
				writeJSON(w, http.StatusNotFound, map[string]interface{}{"errorText": "Site not found"})
				return
			}
			writeRaw(w, http.StatusOK, body)
		case 2:
			key := parts[0] + "/" + parts[1]
			keys, ok := g.objects[key]
			if !ok {
				writeJSON(w, http.StatusNotFound, map[string]interface{}{"errorText": "Device not found"})
				return
			}
			if r.Method == http.MethodGet {
				writeRaw(w, http.StatusOK, objectListing(keys))
				return
			}
			if g.postStatus != 0 {
				writeRaw(w, g.postStatus, g.postBody)
				return
			}
			var payload map[string]interface{}
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errorText": "bad payload"})
				return
			}
			g.posted = append(g.posted, payload)
			oid, _ := payload["object-identifier"].(map[string]interface{})
			value, _ := oid["value"].(string)
			g.objects[key] = append(g.objects[key], strings.ToLower(value))
			writeJSON(w, http.StatusOK, map[string]interface{}{})
		default:
			writeJSON(w, http.StatusNotFound, map[string]interface{}{"errorText": "Not found"})
		}

	default:
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"errorText": "Not found"})
	}
}

// last returns what the most recent request carried.
func (g *fakeGateway) last() (auth string, query url.Values, path string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastAuth, g.lastQuery, g.lastPath
}

func (g *fakeGateway) postedBodies() []map[string]interface{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]map[string]interface{}(nil), g.posted...)
}

func (g *fakeGateway) requestCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.requests
}

func quietLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// newTestClient starts g and returns a client authenticated as the gateway's user.
func newTestClient(t *testing.T, g *fakeGateway) *Client {
	t.Helper()
	srv := httptest.NewServer(g)
	t.Cleanup(srv.Close)
	return NewClient(Credentials{
		Address:  strings.TrimPrefix(srv.URL, "http://"),
		Username: testUser,
		Password: testPassword,
	}, Options{Log: quietLog()})
}
