package enrichment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

type rateLimited struct {
	next    Enricher
	limiter *rate.Limiter
}

// RateLimited spaces calls to next so that at most perMinute start in any
// minute. Callers block until a slot frees up or ctx ends.
func RateLimited(next Enricher, perMinute int) Enricher {
	return &rateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

func (r *rateLimited) Enrich(ctx context.Context, title, description string) ([]string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: %v", ErrEnrichment, err)
		}
		// Wait also fails early when the deadline would pass before a slot.
		return nil, fmt.Errorf("%w: waiting for rate limit: %v", ErrTimeout, err)
	}
	return r.next.Enrich(ctx, title, description)
}
