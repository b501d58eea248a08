// Package query turns domain filter requests into backend queries.
//
// A Builder collects AND conditions, OR groups, ordering and paging and
// emits a domain.Query. It performs no I/O; the same calls always produce
// the same query. Coercion helpers record the first failure and Build
// returns it, so a bad caller value never reaches the backend.
package query

import (
	"strings"

	"stayhub/internal/domain"
)

// DefaultOrder is used when no sort key matches.
var DefaultOrder = domain.Order{Field: domain.FieldID, Direction: domain.Asc}

type Builder struct {
	q   domain.Query
	err error
}

// New starts a query projecting fields. The slice is copied.
func New(fields ...string) *Builder {
	b := &Builder{}
	if len(fields) > 0 {
		b.q.Fields = append([]string(nil), fields...)
	}
	return b
}

func (b *Builder) cond(field string, op domain.Operator, vals []any) *Builder {
	b.q.Where = append(b.q.Where, domain.Condition{
		Field:    field,
		Operator: op,
		Values:   append([]any(nil), vals...),
	})
	return b
}

// Eq adds field = v; several values mean "any of".
func (b *Builder) Eq(field string, vals ...any) *Builder {
	return b.cond(field, domain.OpEqualTo, vals)
}

func (b *Builder) Ne(field string, v any) *Builder {
	return b.cond(field, domain.OpNotEqualTo, []any{v})
}

func (b *Builder) Gte(field string, v any) *Builder {
	return b.cond(field, domain.OpGreaterThanOrEqualTo, []any{v})
}

func (b *Builder) Lte(field string, v any) *Builder {
	return b.cond(field, domain.OpLessThanOrEqualTo, []any{v})
}

// AnyContains adds one OR group matching term as a substring of any of
// fields. A blank term adds nothing.
func (b *Builder) AnyContains(term string, fields ...string) *Builder {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return b
	}
	g := domain.Group{Conditions: make([]domain.Condition, 0, len(fields))}
	for _, f := range fields {
		g.Conditions = append(g.Conditions, domain.Condition{
			Field:    f,
			Operator: domain.OpContains,
			Values:   []any{term},
		})
	}
	b.q.Groups = append(b.q.Groups, g)
	return b
}

// OrderBy appends an explicit ordering.
func (b *Builder) OrderBy(field string, dir domain.Direction) *Builder {
	b.q.OrderBy = append(b.q.OrderBy, domain.Order{Field: field, Direction: dir})
	return b
}

// Sort resolves key through s; unknown or empty keys use s's default.
func (b *Builder) Sort(key string, s Sorts) *Builder {
	b.q.OrderBy = append(b.q.OrderBy, s.Resolve(key))
	return b
}

// Page sets limit/offset. A non-positive limit leaves paging unset.
func (b *Builder) Page(limit, offset int) *Builder {
	if limit <= 0 {
		return b
	}
	if offset < 0 {
		offset = 0
	}
	b.q.Paging = &domain.Paging{Limit: limit, Offset: offset}
	return b
}

// Build returns the query, or the first coercion error.
func (b *Builder) Build() (domain.Query, error) {
	if b.err != nil {
		return domain.Query{}, b.err
	}
	return b.q, nil
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Int coerces raw into an int64; on failure it records a validation error.
func (b *Builder) Int(name, raw string) int64 {
	n, err := ParseInt(name, raw)
	if err != nil {
		b.fail(err)
	}
	return n
}

// Float coerces raw into a float64; on failure it records a validation error.
func (b *Builder) Float(name, raw string) float64 {
	f, err := ParseFloat(name, raw)
	if err != nil {
		b.fail(err)
	}
	return f
}

// Ints coerces every element of raw.
func (b *Builder) Ints(name string, raw []string) []any {
	out := make([]any, 0, len(raw))
	for _, r := range raw {
		out = append(out, b.Int(name, r))
	}
	return out
}

// Err reports the first coercion failure so far.
func (b *Builder) Err() error { return b.err }
