package projects

import (
	"context"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"collab-match/internal/domain/matching"
	"collab-match/internal/domain/project"
)

const (
	defaultTagCacheSize = 512
	minCatalogRefresh   = 30 * time.Second
)

// TagCatalog resolves tag_id references to skill names using the project
// service tag list. Names are kept in an LRU and the catalog is refetched at
// most once per minCatalogRefresh when an unknown id shows up.
type TagCatalog struct {
	client Client
	names  *lru.Cache[int64, string]

	mu          sync.Mutex
	lastRefresh time.Time
	now         func() time.Time
}

func NewTagCatalog(client Client, size int) (*TagCatalog, error) {
	if size <= 0 {
		size = defaultTagCacheSize
	}
	names, err := lru.New[int64, string](size)
	if err != nil {
		return nil, err
	}
	return &TagCatalog{client: client, names: names, now: time.Now}, nil
}

// Enrich returns a copy of tags in which every tag that only carries a tag_id
// gets a skill_name from the catalog. Tags that already name a skill, and ids
// the catalog does not know, are returned unchanged.
func (c *TagCatalog) Enrich(ctx context.Context, tags []project.Tag) []project.Tag {
	out := make([]project.Tag, 0, len(tags))
	for _, tag := range tags {
		if tag == nil {
			out = append(out, tag)
			continue
		}
		if _, ok := matching.ResolveSkillName(tag); ok {
			out = append(out, tag)
			continue
		}
		id, ok := tag.TagID()
		if !ok {
			out = append(out, tag)
			continue
		}
		name, ok := c.lookup(ctx, id)
		if !ok {
			out = append(out, tag)
			continue
		}

		enriched := make(project.Tag, len(tag)+1)
		for k, v := range tag {
			enriched[k] = v
		}
		enriched["skill_name"] = name
		out = append(out, enriched)
	}
	return out
}

func (c *TagCatalog) lookup(ctx context.Context, id int64) (string, bool) {
	if c == nil {
		return "", false
	}
	if name, ok := c.names.Get(id); ok {
		return name, true
	}
	c.refresh(ctx)
	return c.names.Get(id)
}

func (c *TagCatalog) refresh(ctx context.Context) {
	if c.client == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if !c.lastRefresh.IsZero() && now.Sub(c.lastRefresh) < minCatalogRefresh {
		return
	}
	c.lastRefresh = now

	for _, t := range c.client.ListTags(ctx) {
		name := strings.TrimSpace(t.Name)
		if t.ID == 0 || name == "" {
			continue
		}
		c.names.Add(t.ID, name)
	}
}
