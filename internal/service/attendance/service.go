package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/megamart/hr-backend-go/internal/config"
	"github.com/megamart/hr-backend-go/internal/domain/attendance"
	"github.com/megamart/hr-backend-go/internal/domain/branch"
	"github.com/megamart/hr-backend-go/internal/domain/shift"
	"github.com/megamart/hr-backend-go/internal/domain/user"
	"github.com/megamart/hr-backend-go/internal/pkg/database"
	"github.com/megamart/hr-backend-go/internal/pkg/validator"
	"github.com/megamart/hr-backend-go/internal/repository/postgresql"
	"github.com/mileusna/useragent"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	user.UserRepository
	shift.ShiftRepository
	branch.BranchRepository
	cfg  config.AttendanceConfig
	now  func() time.Time
	inTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	shiftRepo shift.ShiftRepository,
	branchRepo branch.BranchRepository,
	cfg config.AttendanceConfig,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		UserRepository:       userRepo,
		ShiftRepository:      shiftRepo,
		BranchRepository:     branchRepo,
		cfg:                  cfg,
		now:                  time.Now,
		inTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
				return fn(postgresql.ContextWithTx(ctx, tx))
			})
		},
	}
}

// Login implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Login(ctx context.Context, req attendance.LoginRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	usr, err := a.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return attendance.AttendanceResponse{}, user.ErrUserNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := a.checkGeofence(ctx, &usr, req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := a.now()
	sh := a.resolveShift(ctx, &usr)

	meta := attendance.Metadata{
		Status: a.loginStatus(nowLocal, sh),
		Lat:    req.Latitude,
		Lng:    req.Longitude,
		Device: deviceLabel(req.UserAgent),
	}
	if sh != nil {
		meta.Shift = sh.Name
	}

	var created attendance.Attendance
	err = a.inTx(ctx, func(ctx context.Context) error {
		// The store does not forbid overlapping open sessions; surface it in
		// the logs rather than silently closing or rejecting.
		if open, err := a.AttendanceRepository.CountOpenSessions(ctx, usr.ID); err == nil && open > 0 {
			slog.Warn("User already has an open attendance session",
				"user_id", usr.ID, "open_sessions", open)
		}

		data := attendance.Attendance{
			ID:        uuid.NewString(),
			UserID:    usr.ID,
			LoginTime: nowLocal,
			IPAddress: req.IPAddress,
			Metadata:  meta,
		}
		if req.UserAgent != "" {
			ua := req.UserAgent
			data.UserAgent = &ua
		}

		var err error
		if created, err = a.AttendanceRepository.Create(ctx, data); err != nil {
			return fmt.Errorf("failed to create attendance record: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return created.ToResponse(), nil
}

// Logout implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Logout(ctx context.Context, req attendance.LogoutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec, err := a.AttendanceRepository.GetByID(ctx, req.RecordID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	if !rec.IsOpen() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	nowLocal := a.now()
	rec.LogoutTime = &nowLocal
	if req.IPAddress != "" {
		ip := req.IPAddress
		rec.LogoutIPAddress = &ip
	}

	if err := a.AttendanceRepository.Update(ctx, rec); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return rec.ToResponse(), nil
}

// History implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) History(ctx context.Context, userID string) ([]attendance.AttendanceResponse, error) {
	records, err := a.AttendanceRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for i := range records {
		responses = append(responses, records[i].ToResponse())
	}
	return responses, nil
}

// UpdateAttendance implements attendance.AttendanceService.
// Manual HR/Admin corrections supersede all derivation for the record.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// Read and rewrite inside one transaction so concurrent corrections to
	// the same record cannot interleave.
	var rec attendance.Attendance
	err := a.inTx(ctx, func(ctx context.Context) error {
		var err error
		rec, err = a.AttendanceRepository.GetByID(ctx, req.ID)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.ErrAttendanceNotFound
			}
			return fmt.Errorf("failed to get attendance record: %w", err)
		}

		if req.Status != nil {
			rec.Metadata.Status = *req.Status
		}
		if req.Remark != nil {
			rec.Metadata.Remark = *req.Remark
		}
		if req.CheckIn != nil {
			if t, err := time.Parse(time.RFC3339, *req.CheckIn); err == nil {
				rec.LoginTime = t
			}
		}
		if req.CheckOut != nil {
			if t, err := time.Parse(time.RFC3339, *req.CheckOut); err == nil {
				rec.LogoutTime = &t
			}
		}

		if err := a.AttendanceRepository.Update(ctx, rec); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return rec.ToResponse(), nil
}

// RecordHourlyIP implements attendance.AttendanceService.
// Appends to the open session's IP audit trail unless the last entry is the
// same address inside the dedup window. Without an open session, or with an
// address that does not parse, it is a no-op.
func (a *AttendanceServiceImpl) RecordHourlyIP(ctx context.Context, userID, ip string) error {
	if !validator.IsValidIP(ip) {
		return nil
	}

	rec, err := a.AttendanceRepository.GetOpenSession(ctx, userID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get open session: %w", err)
	}

	nowLocal := a.now()
	if last := rec.Metadata.LastIPEntry(); last != nil &&
		last.IP == ip && nowLocal.Sub(last.Timestamp) < a.cfg.IPDedupWindow {
		return nil
	}

	rec.Metadata.IPHistory = append(rec.Metadata.IPHistory, attendance.IPLogEntry{
		Timestamp: nowLocal,
		IP:        ip,
	})

	if err := a.AttendanceRepository.Update(ctx, rec); err != nil {
		return fmt.Errorf("failed to update ip history: %w", err)
	}
	return nil
}

// resolveShift returns the user's shift config, or nil when none is
// configured or the lookup fails; the engine then falls back to its
// defaults instead of failing the caller.
func (a *AttendanceServiceImpl) resolveShift(ctx context.Context, usr *user.User) *shift.Shift {
	if usr.ShiftID == nil {
		return nil
	}
	sh, err := a.ShiftRepository.GetByID(ctx, *usr.ShiftID)
	if err != nil {
		if !errors.Is(err, shift.ErrShiftNotFound) {
			slog.Warn("Failed to resolve shift, using engine defaults",
				"user_id", usr.ID, "shift_id", *usr.ShiftID, "error", err)
		}
		return nil
	}
	return &sh
}

// deviceLabel condenses a raw user agent into "Browser / OS".
func deviceLabel(rawUA string) string {
	if rawUA == "" {
		return ""
	}
	ua := useragent.Parse(rawUA)
	if ua.Name == "" {
		return ""
	}
	if ua.OS == "" {
		return ua.Name
	}
	return ua.Name + " / " + ua.OS
}
