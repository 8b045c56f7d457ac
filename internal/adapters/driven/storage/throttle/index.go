// Package throttle limits how fast queries reach a content index.
package throttle

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/lore/internal/core/domain"
	"github.com/custodia-labs/lore/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.ContentIndex = (*Index)(nil)

// Index wraps a content index with a token bucket.
// Waiting for a token honours cancellation, so superseded queries
// give up their place instead of consuming it.
type Index struct {
	next   driven.ContentIndex
	bucket *rate.Limiter
}

// New wraps next so at most perSecond calls start each second, with bursts
// of up to burst calls. A burst below one is treated as one.
func New(next driven.ContentIndex, perSecond float64, burst int) *Index {
	if burst < 1 {
		burst = 1
	}
	return &Index{
		next:   next,
		bucket: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Wrap returns next unchanged when perSecond is not positive.
func Wrap(next driven.ContentIndex, perSecond float64, burst int) driven.ContentIndex {
	if perSecond <= 0 {
		return next
	}
	return New(next, perSecond, burst)
}

// Query waits for a token, then queries the wrapped index.
func (i *Index) Query(ctx context.Context, spec domain.QuerySpec) (domain.QueryResult, error) {
	if err := i.wait(ctx); err != nil {
		return domain.QueryResult{}, err
	}
	return i.next.Query(ctx, spec)
}

// Get waits for a token, then reads from the wrapped index.
func (i *Index) Get(ctx context.Context, id string) (*domain.ContentRef, error) {
	if err := i.wait(ctx); err != nil {
		return nil, err
	}
	return i.next.Get(ctx, id)
}

func (i *Index) wait(ctx context.Context) error {
	if err := i.bucket.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}
