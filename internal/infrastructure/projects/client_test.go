package projects

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"collab-match/internal/domain/project"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = b
	m.mu.Unlock()
	return nil
}

func newProjectService(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/projects/1", func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		_, _ = w.Write([]byte(`{"id":1,"title":"Platform","description":"infra","tags":[{"nome":"DevOps","skill_level":"advanced"},{"tag_id":3}]}`))
	})
	mux.HandleFunc("/projects/2", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/projects", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"title":"Platform","tags":[]},{"id":5,"title":"Site","tags":[]}]`))
	})
	mux.HandleFunc("/tags", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":3,"name":"Kubernetes"},{"id":4,"name":"  "}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetProject(t *testing.T) {
	srv := newProjectService(t, nil)
	c := NewClient(srv.URL+"/", time.Second, nil)

	p, ok := c.GetProject(context.Background(), 1)
	require.True(t, ok)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Platform", p.Title)
	require.Len(t, p.Tags, 2)
	name, _ := p.Tags[0].String("nome")
	assert.Equal(t, "DevOps", name)
	id, ok := p.Tags[1].TagID()
	assert.True(t, ok)
	assert.Equal(t, int64(3), id)
}

func TestClient_GetProject_FailuresAreNotFound(t *testing.T) {
	srv := newProjectService(t, nil)
	c := NewClient(srv.URL, time.Second, nil)
	ctx := context.Background()

	_, ok := c.GetProject(ctx, 404)
	assert.False(t, ok, "404")
	_, ok = c.GetProject(ctx, 2)
	assert.False(t, ok, "5xx")

	down := NewClient("http://127.0.0.1:1", 200*time.Millisecond, nil)
	_, ok = down.GetProject(ctx, 1)
	assert.False(t, ok, "unreachable")
}

func TestClient_SlowUpstreamTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	const timeout = 150 * time.Millisecond
	c := NewClient(srv.URL, timeout, nil)
	ctx := context.Background()

	start := time.Now()
	_, ok := c.GetProject(ctx, 1)
	elapsed := time.Since(start)
	assert.False(t, ok)
	assert.GreaterOrEqual(t, elapsed, timeout)
	assert.Less(t, elapsed, timeout+time.Second)

	start = time.Now()
	assert.Empty(t, c.ListProjects(ctx))
	assert.Less(t, time.Since(start), timeout+time.Second)
}

func TestClient_GetProject_UsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := newProjectService(t, &hits)
	cache := newMemCache()
	c := NewClient(srv.URL, time.Second, nil, WithCache(cache, time.Minute))
	ctx := context.Background()

	first, ok := c.GetProject(ctx, 1)
	require.True(t, ok)
	second, ok := c.GetProject(ctx, 1)
	require.True(t, ok)

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, first.Title, second.Title)
	assert.Contains(t, cache.data, "projects:1")

	_, ok = c.GetProject(ctx, 2)
	assert.False(t, ok)
	assert.NotContains(t, cache.data, "projects:2")
}

func TestClient_ListProjects(t *testing.T) {
	srv := newProjectService(t, nil)
	c := NewClient(srv.URL, time.Second, nil)

	items := c.ListProjects(context.Background())
	require.Len(t, items, 2)
	assert.Equal(t, int64(5), items[1].ID)

	down := NewClient("http://127.0.0.1:1", 200*time.Millisecond, nil)
	items = down.ListProjects(context.Background())
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestClient_ListTags(t *testing.T) {
	srv := newProjectService(t, nil)
	c := NewClient(srv.URL, time.Second, nil)

	tags := c.ListTags(context.Background())
	require.Len(t, tags, 2)
	assert.Equal(t, project.CatalogTag{ID: 3, Name: "Kubernetes"}, tags[0])
}
