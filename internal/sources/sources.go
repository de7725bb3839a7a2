// Package sources provides the uniform connector contract around external
// course and job catalogs, and the concurrent aggregator that fans a query
// out to every configured connector.
package sources

import (
	"context"
	"errors"
	"time"

	"github.com/masar-app/recommender/internal/catalog"
	"github.com/masar-app/recommender/internal/profile"
)

// Typed connector failures. The aggregator treats them all the same (skip and
// log); the types exist so wrappers can apply backoff heuristics.
var (
	// ErrUnavailable covers timeouts, network failures and 5xx responses.
	ErrUnavailable = errors.New("source unavailable")
	// ErrRateLimited is returned when the upstream throttles the caller.
	ErrRateLimited = errors.New("source rate limited")
	// ErrInvalidResponse is returned when the upstream payload cannot be used.
	ErrInvalidResponse = errors.New("source returned invalid response")
)

// DefaultTimeout bounds a single connector call unless configured otherwise.
const DefaultTimeout = 8 * time.Second

// Connector adapts one external catalog to the engine's search contract.
// Implementations must be read-only, must never panic, and must return within
// their configured timeout.
type Connector interface {
	Name() string
	Kind() catalog.Kind
	Enabled() bool
	Search(ctx context.Context, query profile.Query, limit int) ([]catalog.RawItem, error)
}
