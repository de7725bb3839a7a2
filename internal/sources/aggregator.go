package sources

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/masar-app/recommender/internal/catalog"
	"github.com/masar-app/recommender/internal/logger"
	"github.com/masar-app/recommender/internal/profile"
)

// Aggregator fans a query out to all enabled connectors concurrently and
// joins the successful results. A failing or slow source never reduces the
// result set below what the other sources provide, and Aggregate never
// returns an error for a subset of failed sources.
type Aggregator struct {
	timeout time.Duration
	logger  *zap.Logger
}

func NewAggregator(timeout time.Duration, logger *zap.Logger) *Aggregator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{timeout: timeout, logger: logger}
}

type fetchResult struct {
	index int
	items []catalog.RawItem
	err   error
}

// Aggregate launches one goroutine per enabled connector, each with its own
// timeout-bound child context, and waits for all of them. Results are
// concatenated in the declared connector order, so downstream "first
// occurrence wins" deduplication is deterministic even though fetches run
// concurrently. If the parent context is cancelled mid-flight, whatever has
// already arrived is returned.
func (a *Aggregator) Aggregate(ctx context.Context, query profile.Query, connectors []Connector, perSourceLimit int) []catalog.RawItem {
	slots := make([][]catalog.RawItem, len(connectors))
	results := make(chan fetchResult, len(connectors))

	launched := 0
	for i, connector := range connectors {
		if connector == nil || !connector.Enabled() {
			continue
		}
		launched++

		go func(index int, c Connector) {
			callCtx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			items, err := c.Search(callCtx, query, perSourceLimit)
			results <- fetchResult{index: index, items: items, err: err}
		}(i, connector)
	}

	pending := launched
	cancelled := false
	for pending > 0 && !cancelled {
		select {
		case res := <-results:
			pending--
			connector := connectors[res.index]
			if res.err != nil {
				a.logger.Warn("source failed, skipping",
					zap.String(logger.FieldSource, connector.Name()),
					zap.Error(res.err),
				)
				continue
			}
			a.logger.Debug("source returned items",
				zap.String(logger.FieldSource, connector.Name()),
				zap.Int("count", len(res.items)),
			)
			slots[res.index] = res.items
		case <-ctx.Done():
			// Caller cancellation aborts the wait; in-flight calls see the
			// same cancellation through their child contexts.
			a.logger.Info("aggregation cancelled, returning partial results",
				zap.Int("pending_sources", pending),
			)
			cancelled = true
		}
	}

	var out []catalog.RawItem
	for _, items := range slots {
		out = append(out, items...)
	}

	return out
}
