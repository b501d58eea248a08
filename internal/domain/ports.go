package domain

import "context"

// Backend is the external table store. Implementations make exactly one
// attempt per call; a non-success response is returned as *BackendError.
type Backend interface {
	Fetch(ctx context.Context, table string, q Query) ([]Record, error)
	// GetByID returns (nil, nil) when the record does not exist.
	GetByID(ctx context.Context, table string, id int64, fields []string) (Record, error)
	Create(ctx context.Context, table string, records []Record) ([]Result, error)
	// Update payloads must carry FieldID.
	Update(ctx context.Context, table string, records []Record) ([]Result, error)
	Delete(ctx context.Context, table string, ids []int64) ([]Result, error)
}

// ConfirmationRegistry claims booking confirmation numbers.
type ConfirmationRegistry interface {
	// Reserve returns false when code is already taken.
	Reserve(ctx context.Context, code string) (bool, error)
}

// RandomSource yields values in [0,1). *math/rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}
