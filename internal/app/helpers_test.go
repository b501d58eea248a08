package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"stayhub/internal/domain"
	"stayhub/internal/storage/memory"
)

// countingBackend wraps the memory store, counts fetches, remembers the
// last query and can be told to fail creates.
type countingBackend struct {
	*memory.Store
	fetches    atomic.Int64
	mu         sync.Mutex
	last       domain.Query
	failWrites string
	// failOnly limits failWrites to these record indexes; empty means all.
	failOnly []int
}

func newBackend() *countingBackend {
	s := memory.New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var tick atomic.Int64
	s.Now = func() time.Time { return base.Add(time.Duration(tick.Add(1)) * time.Second) }
	return &countingBackend{Store: s}
}

func (b *countingBackend) Fetch(ctx context.Context, table string, q domain.Query) ([]domain.Record, error) {
	b.fetches.Add(1)
	b.mu.Lock()
	b.last = q
	b.mu.Unlock()
	return b.Store.Fetch(ctx, table, q)
}

func (b *countingBackend) lastQuery() domain.Query {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

func (b *countingBackend) Create(ctx context.Context, table string, recs []domain.Record) ([]domain.Result, error) {
	if b.failWrites == "" {
		return b.Store.Create(ctx, table, recs)
	}
	out := make([]domain.Result, len(recs))
	for i, r := range recs {
		if b.fails(i) {
			out[i] = domain.Result{Message: b.failWrites}
			continue
		}
		res, err := b.Store.Create(ctx, table, []domain.Record{r})
		if err != nil {
			return nil, err
		}
		out[i] = res[0]
	}
	return out, nil
}

func (b *countingBackend) fails(i int) bool {
	if len(b.failOnly) == 0 {
		return true
	}
	for _, j := range b.failOnly {
		if i == j {
			return true
		}
	}
	return false
}

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

type failingStats struct{}

func (failingStats) HotelStats(context.Context, int64) (domain.ReviewStats, error) {
	return domain.ReviewStats{}, &domain.BackendError{Op: "fetch", Table: domain.TableReview, Message: "upstream down"}
}

// scriptedRegistry answers Reserve from a fixed script, then true.
type scriptedRegistry struct {
	answers []bool
	err     error
	seen    []string
}

func (r *scriptedRegistry) Reserve(_ context.Context, code string) (bool, error) {
	r.seen = append(r.seen, code)
	if r.err != nil {
		return false, r.err
	}
	if len(r.answers) == 0 {
		return true, nil
	}
	ok := r.answers[0]
	r.answers = r.answers[1:]
	return ok, nil
}

var errRegistryDown = errors.New("registry down")

func ptr[T any](v T) *T { return &v }
