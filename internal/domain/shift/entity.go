package shift

import "time"

// Shift is a named daily work window. StartTime/EndTime carry only the clock
// portion (zero date). StartTime after EndTime denotes an overnight shift
// that wraps past midnight.
type Shift struct {
	ID               string
	Name             string
	StartTime        time.Time
	EndTime          time.Time
	LateGraceMinutes int
	HalfDayTime      *time.Time
	AbsentTime       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsOvernight reports whether the shift wraps past midnight.
func (s Shift) IsOvernight() bool {
	return minuteOfDay(s.StartTime) > minuteOfDay(s.EndTime)
}

// LateCutoff returns the clock time after which a check-in counts as late:
// shift start plus the grace period.
func (s Shift) LateCutoff() time.Time {
	return s.StartTime.Add(time.Duration(s.LateGraceMinutes) * time.Minute)
}

// StartOn materializes the shift start on the calendar date of d.
func (s Shift) StartOn(d time.Time) time.Time {
	return clockOn(s.StartTime, d)
}

// EndOn materializes the shift end on the calendar date of d. Overnight
// wraparound is the caller's concern; see the escalation scheduler.
func (s Shift) EndOn(d time.Time) time.Time {
	return clockOn(s.EndTime, d)
}

func clockOn(clock, d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, d.Location())
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ClockOn exposes clock materialization for callers that hold bare clock
// values (half-day and absent thresholds).
func ClockOn(clock, d time.Time) time.Time {
	return clockOn(clock, d)
}
