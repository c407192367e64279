package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for login sessions.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByID retrieves a record by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// Update persists mutable fields (logout, metadata) of an existing record
	Update(ctx context.Context, att Attendance) error

	// ListByUser retrieves all records for a user, newest login first
	ListByUser(ctx context.Context, userID string) ([]Attendance, error)

	// ListByUserBetween retrieves records with loginTime in [start, end),
	// newest login first
	ListByUserBetween(ctx context.Context, userID string, start, end time.Time) ([]Attendance, error)

	// GetOpenSession retrieves the most recent record with a null logout
	// time for the user
	GetOpenSession(ctx context.Context, userID string) (Attendance, error)

	// CountOpenSessions counts records with null logout time for the user
	CountOpenSessions(ctx context.Context, userID string) (int, error)

	// ListOpenSessions retrieves every record with a null logout time
	ListOpenSessions(ctx context.Context) ([]Attendance, error)

	// DeleteOlderThan purges records created before the cutoff, returning
	// the number of rows removed
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
