package query

import "stayhub/internal/domain"

// Sorts is a closed enumeration of sort keys.
type Sorts struct {
	Keys    map[string]domain.Order
	Default domain.Order
}

// Resolve never fails: unknown keys yield the default ordering.
func (s Sorts) Resolve(key string) domain.Order {
	if o, ok := s.Keys[key]; ok {
		return o
	}
	if s.Default.Field == "" {
		return DefaultOrder
	}
	return s.Default
}
