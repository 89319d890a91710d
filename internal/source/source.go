// Package source contains the record source adapters: a warehouse query
// adapter, a tabular-file adapter, and the mock generator used when both
// are unreachable. Adapters are tried in a fixed order; the first success
// wins.
package source

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/fanpulse/backend/internal/models"
	"github.com/fanpulse/backend/internal/normalize"
)

// ErrSourceUnavailable marks an adapter that cannot reach or read its
// backing store. An empty row-set is success, not this error.
var ErrSourceUnavailable = errors.New("source unavailable")

// Fetcher is one record source.
type Fetcher interface {
	// Name identifies the adapter in logs and snapshot metadata.
	Name() string
	// Fetch returns the source's rows under their native column names.
	Fetch(ctx context.Context) ([]models.Row, error)
}

// Result is one fetched, normalized row-set.
type Result struct {
	Records []models.FeedbackRecord
	// Origin is the name of the adapter that produced the set.
	Origin string
	// Degraded is set when every real adapter failed and the mock
	// generator filled in.
	Degraded bool
}

// Chain tries its adapters in order and falls back to mock data when all of
// them fail, so consumers never see an absent row-set.
type Chain struct {
	fetchers   []Fetcher
	mock       *MockSource
	normalizer *normalize.Normalizer
	timeout    time.Duration
	logger     *zap.Logger
}

// NewChain creates a fallback chain over the given adapters. Each adapter
// call is bounded by timeout so a stalled source cannot wedge a request.
func NewChain(fetchers []Fetcher, normalizer *normalize.Normalizer, timeout time.Duration, logger *zap.Logger) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{
		fetchers:   fetchers,
		mock:       NewMockSource(),
		normalizer: normalizer,
		timeout:    timeout,
		logger:     logger,
	}
}

// Fetch returns the first adapter's rows that could be loaded, normalized
// and decoded. With every adapter down it serves mock data flagged
// degraded; the error return is reserved for future non-availability
// failures and is nil today.
func (c *Chain) Fetch(ctx context.Context) (Result, error) {
	for _, f := range c.fetchers {
		rows, err := c.fetchOne(ctx, f)
		if err != nil {
			c.logger.Warn("source adapter failed, falling through",
				zap.String("source", f.Name()),
				zap.Error(err))
			continue
		}
		return Result{
			Records: models.DecodeRecords(c.normalizer.Normalize(rows)),
			Origin:  f.Name(),
		}, nil
	}

	c.logger.Warn("all source adapters failed, serving mock data")
	rows := c.mock.Generate()
	return Result{
		Records:  models.DecodeRecords(c.normalizer.Normalize(rows)),
		Origin:   c.mock.Name(),
		Degraded: true,
	}, nil
}

func (c *Chain) fetchOne(ctx context.Context, f Fetcher) ([]models.Row, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return f.Fetch(ctx)
}
