package catalog_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rohmanhakim/ikea-catalog/internal/cache"
	"github.com/rohmanhakim/ikea-catalog/internal/catalog"
	"github.com/rohmanhakim/ikea-catalog/internal/config"
	"github.com/rohmanhakim/ikea-catalog/internal/metadata"
	"github.com/stretchr/testify/require"
)

// mockSink is a test double for metadata.Sink
type mockSink struct {
	mu        sync.Mutex
	requests  []requestEvent
	cacheHits []cacheHitEvent
	drops     []dropEvent
	artifacts []artifactEvent
	errors    []errorEvent
}

type requestEvent struct {
	url       string
	status    int
	sizeBytes int
}

type cacheHitEvent struct {
	itemNo string
	asset  string
}

type dropEvent struct {
	itemNo string
	name   string
	reason string
}

type artifactEvent struct {
	kind        metadata.ArtifactKind
	path        string
	contentHash string
}

type errorEvent struct {
	packageName string
	action      string
	cause       metadata.ErrorCause
	details     string
}

func (m *mockSink) RecordRequest(requestUrl string, httpStatus int, duration time.Duration, sizeBytes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, requestEvent{
		url:       requestUrl,
		status:    httpStatus,
		sizeBytes: sizeBytes,
	})
}

func (m *mockSink) RecordCacheHit(itemNo string, asset string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits = append(m.cacheHits, cacheHitEvent{
		itemNo: itemNo,
		asset:  asset,
	})
}

func (m *mockSink) RecordDrop(itemNo string, name string, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drops = append(m.drops, dropEvent{
		itemNo: itemNo,
		name:   name,
		reason: reason,
	})
}

func (m *mockSink) RecordArtifact(kind metadata.ArtifactKind, path string, contentHash string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artifacts = append(m.artifacts, artifactEvent{
		kind:        kind,
		path:        path,
		contentHash: contentHash,
	})
}

func (m *mockSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, errorEvent{
		packageName: packageName,
		action:      action,
		cause:       cause,
		details:     details,
	})
}

// fixture wires a client against three local test servers.
type fixture struct {
	client    *catalog.Client
	sink      *mockSink
	cacheRoot string
}

// unexpectedCall is the default handler for hosts a test does not expect
// to be contacted.
func unexpectedCall(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func newFixture(t *testing.T, search, pip, webAPI http.HandlerFunc) *fixture {
	t.Helper()

	if search == nil {
		search = unexpectedCall(t)
	}
	if pip == nil {
		pip = unexpectedCall(t)
	}
	if webAPI == nil {
		webAPI = unexpectedCall(t)
	}

	searchSrv := httptest.NewServer(search)
	pipSrv := httptest.NewServer(pip)
	webAPISrv := httptest.NewServer(webAPI)
	t.Cleanup(searchSrv.Close)
	t.Cleanup(pipSrv.Close)
	t.Cleanup(webAPISrv.Close)

	cacheRoot := t.TempDir()
	cfg, err := config.WithDefault().
		WithCacheDir(cacheRoot).
		Build()
	require.NoError(t, err)

	sink := &mockSink{}
	store := cache.New(cfg.CacheDir())
	client := catalog.NewClientForTest(
		cfg,
		&store,
		sink,
		searchSrv.URL,
		pipSrv.URL,
		webAPISrv.URL,
	)

	return &fixture{
		client:    client,
		sink:      sink,
		cacheRoot: cacheRoot,
	}
}

// existsHandler answers the existence endpoint with a fixed response and
// counts requests.
func existsHandler(exists string, counter *int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if counter != nil {
			*counter++
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"exists": ` + exists + `}`))
	}
}
