package sources

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/masar-app/recommender/internal/catalog"
	"github.com/masar-app/recommender/internal/profile"
)

type stubConnector struct {
	name    string
	kind    catalog.Kind
	enabled bool
	items   []catalog.RawItem
	err     error
	delay   time.Duration
	calls   int
}

func (s *stubConnector) Name() string       { return s.name }
func (s *stubConnector) Kind() catalog.Kind { return s.kind }
func (s *stubConnector) Enabled() bool      { return s.enabled }

func (s *stubConnector) Search(ctx context.Context, _ profile.Query, _ int) ([]catalog.RawItem, error) {
	s.calls++
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func rawItems(source string, ids ...string) []catalog.RawItem {
	out := make([]catalog.RawItem, 0, len(ids))
	for _, id := range ids {
		out = append(out, catalog.RawItem{SourceID: source, Fields: map[string]any{"id": id}})
	}
	return out
}

func TestAggregatePreservesConnectorOrder(t *testing.T) {
	t.Parallel()

	first := &stubConnector{name: "first", enabled: true, items: rawItems("first", "a"), delay: 50 * time.Millisecond}
	second := &stubConnector{name: "second", enabled: true, items: rawItems("second", "b")}

	agg := NewAggregator(time.Second, zap.NewNop())
	out := agg.Aggregate(context.Background(), profile.Query{}, []Connector{first, second}, 0)

	if len(out) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out))
	}

	// The slower connector is declared first, so its items still come first.
	if out[0].SourceID != "first" || out[1].SourceID != "second" {
		t.Fatalf("unexpected order: %s, %s", out[0].SourceID, out[1].SourceID)
	}
}

func TestAggregatePartialFailure(t *testing.T) {
	t.Parallel()

	healthy := &stubConnector{name: "healthy", enabled: true, items: rawItems("healthy", "a", "b")}
	failing := &stubConnector{name: "failing", enabled: true, err: ErrUnavailable}
	limited := &stubConnector{name: "limited", enabled: true, err: ErrRateLimited}

	agg := NewAggregator(time.Second, zap.NewNop())
	out := agg.Aggregate(context.Background(), profile.Query{}, []Connector{failing, healthy, limited}, 0)

	if len(out) != 2 {
		t.Fatalf("expected the healthy source's items, got %d", len(out))
	}
}

func TestAggregateAllFail(t *testing.T) {
	t.Parallel()

	a := &stubConnector{name: "a", enabled: true, err: ErrUnavailable}
	b := &stubConnector{name: "b", enabled: true, err: errors.New("boom")}

	agg := NewAggregator(time.Second, zap.NewNop())
	out := agg.Aggregate(context.Background(), profile.Query{}, []Connector{a, b}, 0)

	if len(out) != 0 {
		t.Fatalf("expected no items, got %d", len(out))
	}
}

func TestAggregateSkipsDisabledConnectors(t *testing.T) {
	t.Parallel()

	disabled := &stubConnector{name: "disabled", items: rawItems("disabled", "a")}
	enabled := &stubConnector{name: "enabled", enabled: true, items: rawItems("enabled", "b")}

	agg := NewAggregator(time.Second, zap.NewNop())
	out := agg.Aggregate(context.Background(), profile.Query{}, []Connector{disabled, enabled}, 0)

	if len(out) != 1 || out[0].SourceID != "enabled" {
		t.Fatalf("expected only the enabled connector's items, got %+v", out)
	}

	if disabled.calls != 0 {
		t.Fatalf("expected the disabled connector to never be called")
	}
}

func TestAggregateSlowSourceTimesOut(t *testing.T) {
	t.Parallel()

	slow := &stubConnector{name: "slow", enabled: true, items: rawItems("slow", "a"), delay: time.Second}
	fast := &stubConnector{name: "fast", enabled: true, items: rawItems("fast", "b")}

	agg := NewAggregator(20*time.Millisecond, zap.NewNop())
	out := agg.Aggregate(context.Background(), profile.Query{}, []Connector{slow, fast}, 0)

	if len(out) != 1 || out[0].SourceID != "fast" {
		t.Fatalf("expected only the fast connector's items, got %+v", out)
	}
}

func TestAggregateParentCancellationReturnsPartial(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	fast := &stubConnector{name: "fast", enabled: true, items: rawItems("fast", "a")}
	hanging := &stubConnector{name: "hanging", enabled: true, delay: 10 * time.Second}

	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	agg := NewAggregator(30*time.Second, zap.NewNop())

	start := time.Now()
	out := agg.Aggregate(ctx, profile.Query{}, []Connector{fast, hanging}, 0)

	if time.Since(start) > 5*time.Second {
		t.Fatal("expected cancellation to abort the wait")
	}

	if len(out) != 1 || out[0].SourceID != "fast" {
		t.Fatalf("expected the already-arrived items, got %+v", out)
	}
}
