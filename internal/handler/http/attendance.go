package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/megamart/hr-backend-go/internal/domain/attendance"
	"github.com/megamart/hr-backend-go/internal/handler/http/middleware"
	"github.com/megamart/hr-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	DailyHistory(w http.ResponseWriter, r *http.Request)
	GetByDate(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Login implements AttendanceHandler.
func (h *attendanceHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req attendance.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	userID, err := claimedUserID(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}
	req.UserID = userID
	req.IPAddress = middleware.ClientIP(r)
	req.UserAgent = r.UserAgent()

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", record)
}

// Logout implements AttendanceHandler.
func (h *attendanceHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	req := attendance.LogoutRequest{
		RecordID:  chi.URLParam(r, "id"),
		IPAddress: middleware.ClientIP(r),
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.Logout(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", record)
}

// History implements AttendanceHandler.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	userID, err := claimedUserID(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	records, err := h.attendanceService.History(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, &response.Meta{TotalItems: int64(len(records))})
}

// DailyHistory implements AttendanceHandler. The window ends at the `end`
// query parameter (YYYY-MM-DD), defaulting to today.
func (h *attendanceHandlerImpl) DailyHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := claimedUserID(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	end := time.Now()
	if raw := r.URL.Query().Get("end"); raw != "" {
		end, err = time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			response.BadRequest(w, "end must be a YYYY-MM-DD date", nil)
			return
		}
	}

	days, err := h.attendanceService.History60Days(r.Context(), userID, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, days)
}

// GetByDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetByDate(w http.ResponseWriter, r *http.Request) {
	userID, err := claimedUserID(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", chi.URLParam(r, "date"), time.Local)
	if err != nil {
		response.BadRequest(w, "date must be a YYYY-MM-DD date", nil)
		return
	}

	day, err := h.attendanceService.GetByDate(r.Context(), userID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, day)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.UpdateAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record updated", record)
}

func claimedUserID(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", jwtauth.ErrNoTokenFound
	}
	return userID, nil
}
