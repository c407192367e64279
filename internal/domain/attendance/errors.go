package attendance

import "errors"

// Attendance domain errors
var (
	// Login errors
	ErrLocationSignalLost  = errors.New("location signal lost: coordinates are required to log in")
	ErrOutsideGeoPerimeter = errors.New("you are outside the allowed login perimeter")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyCheckedOut  = errors.New("you have already checked out")
)
