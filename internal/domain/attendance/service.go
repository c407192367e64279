package attendance

import (
	"context"
	"time"
)

// AttendanceService is the attendance determination engine's surface.
type AttendanceService interface {
	// Login validates geofencing, derives the at-login status and creates
	// the session record
	Login(ctx context.Context, req LoginRequest) (AttendanceResponse, error)

	// Logout closes a session record
	Logout(ctx context.Context, req LogoutRequest) (AttendanceResponse, error)

	// History retrieves all records for a user, newest first
	History(ctx context.Context, userID string) ([]AttendanceResponse, error)

	// History60Days reconstructs a rolling day-by-day view ending at end,
	// one entry per calendar date, most recent first
	History60Days(ctx context.Context, userID string, end time.Time) ([]DayStatus, error)

	// GetByDate reconstructs a single calendar date
	GetByDate(ctx context.Context, userID string, date time.Time) (DayStatus, error)

	// UpdateAttendance applies a manual HR/Admin correction
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// RecordHourlyIP appends to the session's IP audit trail, deduplicating
	// repeats of the same address inside the dedup window
	RecordHourlyIP(ctx context.Context, userID, ip string) error
}
