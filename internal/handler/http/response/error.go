package response

import (
	"errors"
	"net/http"

	"github.com/megamart/hr-backend-go/internal/domain/attendance"
	"github.com/megamart/hr-backend-go/internal/domain/branch"
	"github.com/megamart/hr-backend-go/internal/domain/shift"
	"github.com/megamart/hr-backend-go/internal/domain/user"
	"github.com/megamart/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrLocationSignalLost):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrOutsideGeoPerimeter):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Session already checked out")

	// Lookup domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrHRAccessRequired):
		Forbidden(w, "HR or Admin role required")
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, branch.ErrBranchNotFound):
		NotFound(w, "Branch not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
