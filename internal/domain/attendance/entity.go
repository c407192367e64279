package attendance

import (
	"time"
)

// Attendance is one login session. LoginTime is set at creation and never
// changes; LogoutTime stays nil until checkout. Records are never
// hard-deleted by the engine (the retention job is a separate concern).
type Attendance struct {
	ID              string
	UserID          string
	LoginTime       time.Time
	LogoutTime      *time.Time
	IPAddress       string
	LogoutIPAddress *string
	UserAgent       *string
	Metadata        Metadata
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsOpen reports whether the session has no checkout yet.
func (a *Attendance) IsOpen() bool {
	return a.LogoutTime == nil
}

// CanCheckOut reports whether the session is still open and young enough to
// be checked out: login set, no logout, and less than the given window since
// login.
func (a *Attendance) CanCheckOut(now time.Time, window time.Duration) bool {
	if a.LogoutTime != nil || a.LoginTime.IsZero() {
		return false
	}
	return now.Sub(a.LoginTime) < window
}
