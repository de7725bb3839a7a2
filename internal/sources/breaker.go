package sources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/masar-app/recommender/internal/catalog"
	"github.com/masar-app/recommender/internal/profile"
)

// BreakerConfig tunes the circuit breaker wrapped around a connector.
type BreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxFailures uint32        `mapstructure:"max-failures"`
	OpenFor     time.Duration `mapstructure:"open-for"`
}

const (
	defaultBreakerMaxFailures = 3
	defaultBreakerOpenFor     = 30 * time.Second
)

type breakerConnector struct {
	inner Connector
	cb    *gobreaker.CircuitBreaker
}

// WithBreaker wraps a connector in a circuit breaker so a repeatedly failing
// upstream is skipped outright for a while instead of eating its full timeout
// on every request. An open breaker reports ErrUnavailable, which the
// aggregator already treats as "this source contributes nothing".
func WithBreaker(inner Connector, cfg BreakerConfig) Connector {
	if !cfg.Enabled {
		return inner
	}

	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = defaultBreakerMaxFailures
	}
	openFor := cfg.OpenFor
	if openFor <= 0 {
		openFor = defaultBreakerOpenFor
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    inner.Name(),
		Timeout: openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
	})

	return &breakerConnector{inner: inner, cb: cb}
}

func (b *breakerConnector) Name() string       { return b.inner.Name() }
func (b *breakerConnector) Kind() catalog.Kind { return b.inner.Kind() }
func (b *breakerConnector) Enabled() bool      { return b.inner.Enabled() }

func (b *breakerConnector) Search(ctx context.Context, query profile.Query, limit int) ([]catalog.RawItem, error) {
	result, err := b.cb.Execute(func() (any, error) {
		return b.inner.Search(ctx, query, limit)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit breaker %s", ErrUnavailable, err)
		}
		return nil, err
	}

	items, _ := result.([]catalog.RawItem)
	return items, nil
}
