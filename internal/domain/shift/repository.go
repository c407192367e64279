package shift

import "context"

// ShiftRepository is a read-only lookup; shift CRUD lives outside the
// attendance engine.
type ShiftRepository interface {
	// GetByID retrieves a shift by ID
	GetByID(ctx context.Context, id string) (Shift, error)
}
