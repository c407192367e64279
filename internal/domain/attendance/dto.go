package attendance

import (
	"time"

	"github.com/megamart/hr-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type LoginRequest struct {
	UserID    string   `json:"user_id"`
	IPAddress string   `json:"-"`
	UserAgent string   `json:"-"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LogoutRequest struct {
	RecordID  string `json:"record_id"`
	IPAddress string `json:"-"`
}

func (r *LogoutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RecordID) {
		errs = append(errs, validator.ValidationError{
			Field:   "record_id",
			Message: "record_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateAttendanceRequest is the manual HR/Admin correction. Whatever is set
// here overrides every derivation rule for the record from then on.
type UpdateAttendanceRequest struct {
	ID       string  `json:"-"`
	Status   *string `json:"status,omitempty"`
	CheckIn  *string `json:"check_in,omitempty"`
	CheckOut *string `json:"check_out,omitempty"`
	Remark   *string `json:"remark,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "record id is required",
		})
	}

	if r.CheckIn != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be an ISO8601 timestamp",
			})
		}
	}

	if r.CheckOut != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be an ISO8601 timestamp",
			})
		}
	}

	if r.Status == nil && r.CheckIn == nil && r.CheckOut == nil && r.Remark == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one of status, check_in, check_out, remark is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AttendanceResponse mirrors one record for the API surface.
type AttendanceResponse struct {
	ID              string   `json:"id"`
	UserID          string   `json:"user_id"`
	LoginTime       string   `json:"login_time"`
	LogoutTime      *string  `json:"logout_time,omitempty"`
	IPAddress       string   `json:"ip_address"`
	LogoutIPAddress *string  `json:"logout_ip_address,omitempty"`
	Status          string   `json:"status,omitempty"`
	Shift           string   `json:"shift,omitempty"`
	Device          string   `json:"device,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	Remark          string   `json:"remark,omitempty"`
}

// DayStatus is one reconstructed calendar day.
type DayStatus struct {
	Date        string  `json:"date"`
	Status      string  `json:"status"`
	Remark      string  `json:"remark"`
	CheckIn     *string `json:"check_in,omitempty"`
	CheckOut    *string `json:"check_out,omitempty"`
	RecordID    *string `json:"record_id,omitempty"`
	CanCheckOut bool    `json:"can_check_out"`
}

// Day status values.
const (
	StatusPresent = "Present"
	StatusLate    = "Late"
	StatusAbsent  = "Absent"
	StatusHalfDay = "Half Day"
	StatusHoliday = "Holiday"
)

// Day status remarks.
const (
	RemarkSundayHoliday = "Sunday Holiday"
	RemarkAbsent        = "Absent"
	RemarkNoData        = "No Data"
	RemarkMarkedAbsent  = "Marked Absent (Late Check-in)"
	RemarkLeftEarly     = "Left Early"
)

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// ToResponse maps a record to its API shape.
func (a *Attendance) ToResponse() AttendanceResponse {
	return AttendanceResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		LoginTime:       a.LoginTime.Format("2006-01-02 15:04:05"),
		LogoutTime:      timePtrToString(a.LogoutTime),
		IPAddress:       a.IPAddress,
		LogoutIPAddress: a.LogoutIPAddress,
		Status:          a.Metadata.Status,
		Shift:           a.Metadata.Shift,
		Device:          a.Metadata.Device,
		Latitude:        a.Metadata.Lat,
		Longitude:       a.Metadata.Lng,
		Remark:          a.Metadata.Remark,
	}
}
