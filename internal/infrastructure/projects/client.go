package projects

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"collab-match/internal/domain/project"
)

const DefaultTimeout = 5 * time.Second

// Client reads projects from the project service. It never reports transport
// or HTTP failures to the caller: a project that cannot be fetched is simply
// not found, and a list that cannot be fetched is empty.
type Client interface {
	GetProject(ctx context.Context, id int64) (project.Project, bool)
	ListProjects(ctx context.Context) []project.Project
	ListTags(ctx context.Context) []project.CatalogTag
}

// JSONCache is the subset of the Redis cache the client needs.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type httpClient struct {
	baseURL string
	client  *http.Client
	cache   JSONCache
	ttl     time.Duration
	logger  *log.Logger
}

type Option func(*httpClient)

func WithCache(cache JSONCache, ttl time.Duration) Option {
	return func(c *httpClient) {
		c.cache = cache
		c.ttl = ttl
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		if hc != nil {
			c.client = hc
		}
	}
}

func NewClient(baseURL string, timeout time.Duration, logger *log.Logger, opts ...Option) Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &httpClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func projectCacheKey(id int64) string {
	return "projects:" + strconv.FormatInt(id, 10)
}

func (c *httpClient) GetProject(ctx context.Context, id int64) (project.Project, bool) {
	key := projectCacheKey(id)
	if c.cache != nil {
		var cached project.Project
		if hit, err := c.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, true
		}
	}

	var p project.Project
	found, err := c.getJSON(ctx, "/projects/"+strconv.FormatInt(id, 10), &p)
	if err != nil {
		c.warn("get project failed", "project_id", id, "err", err)
		return project.Project{}, false
	}
	if !found {
		return project.Project{}, false
	}
	if p.ID == 0 {
		p.ID = id
	}

	if c.cache != nil {
		if err := c.cache.SetJSON(ctx, key, p, c.ttl); err != nil {
			c.warn("cache project failed", "project_id", id, "err", err)
		}
	}
	return p, true
}

func (c *httpClient) ListProjects(ctx context.Context) []project.Project {
	var out []project.Project
	found, err := c.getJSON(ctx, "/projects", &out)
	if err != nil {
		c.warn("list projects failed", "err", err)
		return []project.Project{}
	}
	if !found || out == nil {
		return []project.Project{}
	}
	return out
}

func (c *httpClient) ListTags(ctx context.Context) []project.CatalogTag {
	var out []project.CatalogTag
	found, err := c.getJSON(ctx, "/tags", &out)
	if err != nil {
		c.warn("list tags failed", "err", err)
		return []project.CatalogTag{}
	}
	if !found || out == nil {
		return []project.CatalogTag{}
	}
	return out
}

// getJSON decodes the response body into out. A 404 is reported as
// found=false with no error; any other non-2xx status is an error.
func (c *httpClient) getJSON(ctx context.Context, path string, out any) (bool, error) {
	if c == nil || c.client == nil {
		return false, fmt.Errorf("nil project client")
	}
	if c.baseURL == "" {
		return false, fmt.Errorf("project service url not configured")
	}
	endpoint := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return false, fmt.Errorf("project service: status=%d endpoint=%s body=%s", resp.StatusCode, endpoint, strings.TrimSpace(string(rb)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return true, nil
}

func (c *httpClient) warn(msg string, keyvals ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, keyvals...)
	}
}

var _ Client = (*httpClient)(nil)
