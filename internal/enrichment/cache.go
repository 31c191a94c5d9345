package enrichment

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/phrazzld/tasktag-api/internal/domain"
)

type cached struct {
	next  Enricher
	cache *lru.Cache[string, []string]
}

// Cached remembers the tags next produced for the most recent size distinct
// (title, description) pairs. Failures are not cached.
func Cached(next Enricher, size int) (Enricher, error) {
	c, err := lru.New[string, []string](size)
	if err != nil {
		return nil, fmt.Errorf("%w: cache: %v", ErrInvalidConfig, err)
	}
	return &cached{next: next, cache: c}, nil
}

func (c *cached) Enrich(ctx context.Context, title, description string) ([]string, error) {
	key := title + "\x00" + description
	if tags, ok := c.cache.Get(key); ok {
		return domain.CloneTags(tags), nil
	}

	tags, err := c.next.Enrich(ctx, title, description)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, domain.CloneTags(tags))
	return tags, nil
}
