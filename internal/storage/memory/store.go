// Package memory is an in-process domain.Backend. It evaluates queries the
// same way the hosted backend does and is used for local runs and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"stayhub/internal/domain"
)

type table struct {
	nextID int64
	rows   map[int64]domain.Record
}

type Store struct {
	mu     sync.RWMutex
	tables map[string]*table

	// Now stamps CreatedOn/ModifiedOn. Defaults to time.Now.
	Now func() time.Time
}

func New() *Store {
	return &Store{tables: map[string]*table{}, Now: time.Now}
}

func (s *Store) tbl(name string) *table {
	t, ok := s.tables[name]
	if !ok {
		t = &table{rows: map[int64]domain.Record{}}
		s.tables[name] = t
	}
	return t
}

func (s *Store) stamp() string {
	return s.Now().UTC().Format(time.RFC3339Nano)
}

// Seed inserts records as-is. Records without an Id get the next one.
func (s *Store) Seed(tableName string, recs ...domain.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tbl(tableName)
	for _, r := range recs {
		c := clone(r)
		id, ok := asInt(c[domain.FieldID])
		if !ok || id <= 0 {
			t.nextID++
			id = t.nextID
		} else if id > t.nextID {
			t.nextID = id
		}
		c[domain.FieldID] = id
		t.rows[id] = c
	}
}

func (s *Store) Fetch(_ context.Context, tableName string, q domain.Query) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[tableName]
	if !ok {
		return []domain.Record{}, nil
	}
	matched := make([]domain.Record, 0, len(t.rows))
	for _, r := range t.rows {
		if matches(r, q) {
			matched = append(matched, r)
		}
	}
	sortRecords(matched, q.OrderBy)
	matched = page(matched, q.Paging)
	out := make([]domain.Record, 0, len(matched))
	for _, r := range matched {
		out = append(out, project(r, q.Fields))
	}
	return out, nil
}

func (s *Store) GetByID(_ context.Context, tableName string, id int64, fields []string) (domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[tableName]
	if !ok {
		return nil, nil
	}
	r, ok := t.rows[id]
	if !ok {
		return nil, nil
	}
	return project(r, fields), nil
}

func (s *Store) Create(_ context.Context, tableName string, recs []domain.Record) ([]domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tbl(tableName)
	now := s.stamp()
	out := make([]domain.Result, 0, len(recs))
	for _, r := range recs {
		c := clone(r)
		t.nextID++
		c[domain.FieldID] = t.nextID
		c[domain.FieldCreatedOn] = now
		c[domain.FieldModifiedOn] = now
		t.rows[t.nextID] = c
		out = append(out, domain.Result{Success: true, Data: clone(c)})
	}
	return out, nil
}

func (s *Store) Update(_ context.Context, tableName string, recs []domain.Record) ([]domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tbl(tableName)
	now := s.stamp()
	out := make([]domain.Result, 0, len(recs))
	for _, r := range recs {
		id, ok := asInt(r[domain.FieldID])
		if !ok {
			out = append(out, domain.Result{Message: "Id is required"})
			continue
		}
		cur, ok := t.rows[id]
		if !ok {
			out = append(out, domain.Result{Message: fmt.Sprintf("record %d does not exist", id)})
			continue
		}
		for k, v := range r {
			cur[k] = v
		}
		cur[domain.FieldID] = id
		cur[domain.FieldModifiedOn] = now
		out = append(out, domain.Result{Success: true, Data: clone(cur)})
	}
	return out, nil
}

func (s *Store) Delete(_ context.Context, tableName string, ids []int64) ([]domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tbl(tableName)
	out := make([]domain.Result, 0, len(ids))
	for _, id := range ids {
		if _, ok := t.rows[id]; !ok {
			out = append(out, domain.Result{Message: fmt.Sprintf("record %d does not exist", id)})
			continue
		}
		delete(t.rows, id)
		out = append(out, domain.Result{Success: true, Data: domain.Record{domain.FieldID: id}})
	}
	return out, nil
}

func clone(r domain.Record) domain.Record {
	c := make(domain.Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// project keeps the requested fields plus Id. Unknown fields are skipped.
func project(r domain.Record, fields []string) domain.Record {
	if len(fields) == 0 {
		return clone(r)
	}
	out := domain.Record{domain.FieldID: r[domain.FieldID]}
	for _, f := range fields {
		if v, ok := r[f]; ok {
			out[f] = v
		}
	}
	return out
}

func page(rs []domain.Record, p *domain.Paging) []domain.Record {
	if p == nil || p.Limit <= 0 {
		return rs
	}
	if p.Offset >= len(rs) {
		return nil
	}
	end := p.Offset + p.Limit
	if end > len(rs) {
		end = len(rs)
	}
	return rs[p.Offset:end]
}

// sortRecords orders by the given keys, then by Id so output is stable.
func sortRecords(rs []domain.Record, order []domain.Order) {
	sort.SliceStable(rs, func(i, j int) bool {
		for _, o := range order {
			c := compare(rs[i][o.Field], rs[j][o.Field])
			if c == 0 {
				continue
			}
			if o.Direction == domain.Desc {
				return c > 0
			}
			return c < 0
		}
		a, _ := asInt(rs[i][domain.FieldID])
		b, _ := asInt(rs[j][domain.FieldID])
		return a < b
	})
}

func matches(r domain.Record, q domain.Query) bool {
	for _, c := range q.Where {
		if !holds(r, c) {
			return false
		}
	}
	for _, g := range q.Groups {
		hit := false
		for _, c := range g.Conditions {
			if holds(r, c) {
				hit = true
				break
			}
		}
		if !hit && len(g.Conditions) > 0 {
			return false
		}
	}
	return true
}

func holds(r domain.Record, c domain.Condition) bool {
	v, present := r[c.Field]
	switch c.Operator {
	case domain.OpEqualTo:
		if !present {
			return false
		}
		for _, want := range c.Values {
			if equal(v, want) {
				return true
			}
		}
		return false
	case domain.OpNotEqualTo:
		for _, want := range c.Values {
			if present && equal(v, want) {
				return false
			}
		}
		return true
	case domain.OpGreaterThanOrEqualTo:
		return present && len(c.Values) > 0 && compare(v, c.Values[0]) >= 0
	case domain.OpLessThanOrEqualTo:
		return present && len(c.Values) > 0 && compare(v, c.Values[0]) <= 0
	case domain.OpContains:
		if !present || v == nil {
			return false
		}
		hay := strings.ToLower(fmt.Sprint(v))
		for _, want := range c.Values {
			if strings.Contains(hay, strings.ToLower(fmt.Sprint(want))) {
				return true
			}
		}
		return false
	}
	return false
}

func equal(a, b any) bool {
	return compare(a, b) == 0 && (a == nil) == (b == nil)
}

// compare orders numbers numerically and everything else by its string
// form. nil sorts first.
func compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if x, ok := asFloat(a); ok {
		if y, ok := asFloat(b); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}
