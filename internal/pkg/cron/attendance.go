package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/megamart/hr-backend-go/internal/config"
	"github.com/megamart/hr-backend-go/internal/domain/attendance"
	"github.com/megamart/hr-backend-go/internal/domain/shift"
	"github.com/megamart/hr-backend-go/internal/domain/user"
	"github.com/megamart/hr-backend-go/internal/pkg/email"
)

// AttendanceJobs owns the background side of the attendance engine: the
// missed-checkout escalation sweep and the retention purge.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	shiftRepo      shift.ShiftRepository
	emailSvc       email.EmailService
	cfg            config.AttendanceConfig

	now func() time.Time
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	shiftRepo shift.ShiftRepository,
	emailSvc email.EmailService,
	cfg config.AttendanceConfig,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		shiftRepo:      shiftRepo,
		emailSvc:       emailSvc,
		cfg:            cfg,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("missed_checkout_escalation", j.cfg.EscalationInterval, j.CheckMissedCheckouts)
	if j.cfg.RetentionDays > 0 {
		scheduler.AddJob("attendance_retention", j.cfg.RetentionPeriod, j.PurgeExpiredRecords)
	}
}

// CheckMissedCheckouts walks every open session and pushes each one through
// the escalation ladder: reminder email after the grace period, terminal
// missed-checkout marker after the cutoff. A failure on one session never
// stops the sweep.
func (j *AttendanceJobs) CheckMissedCheckouts(ctx context.Context) error {
	sessions, err := j.attendanceRepo.ListOpenSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list open sessions: %w", err)
	}

	now := j.now()
	for _, session := range sessions {
		if err := j.processSession(ctx, session, now); err != nil {
			slog.Error("Cron: Failed to escalate open session",
				"attendance_id", session.ID,
				"user_id", session.UserID,
				"error", err)
		}
	}
	return nil
}

func (j *AttendanceJobs) processSession(ctx context.Context, session attendance.Attendance, now time.Time) error {
	// Already escalated to the terminal marker on a previous sweep.
	if session.Metadata.IsMissedCheckout() {
		return nil
	}

	usr, err := j.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			slog.Warn("Cron: Open session without a user, skipping",
				"attendance_id", session.ID, "user_id", session.UserID)
			return nil
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	shiftEnd := j.resolveShiftEnd(ctx, &usr, session.LoginTime)
	if !now.After(shiftEnd.Add(j.cfg.ReminderGrace)) {
		return nil
	}

	if !session.Metadata.CheckoutReminderSent {
		if err := j.emailSvc.SendCheckoutReminder(ctx, usr.Email, usr.DisplayName(), shiftEnd); err != nil {
			// The flag is still set so the user gets at most one email.
			slog.Error("Cron: Checkout reminder send failed",
				"user_id", usr.ID, "error", err)
		}
		session.Metadata.CheckoutReminderSent = true
		if err := j.attendanceRepo.Update(ctx, session); err != nil {
			return fmt.Errorf("failed to persist reminder flag: %w", err)
		}
		return nil
	}

	if now.After(shiftEnd.Add(j.cfg.MissedCutoff)) {
		session.Metadata.Status = fmt.Sprintf("%s — %s — Email Sent but User Did Not Checkout",
			attendance.MissedCheckoutMarker, usr.DisplayName())
		if err := j.attendanceRepo.Update(ctx, session); err != nil {
			return fmt.Errorf("failed to persist missed-checkout status: %w", err)
		}
		slog.Info("Cron: Session marked as missed checkout",
			"attendance_id", session.ID, "user_id", usr.ID)
	}
	return nil
}

// resolveShiftEnd computes the wall-clock end of the shift the session
// belongs to, on the login date. Overnight shifts end on the next calendar
// day when the login happened at or after the shift window, with a tolerance
// for people who clock in slightly early.
func (j *AttendanceJobs) resolveShiftEnd(ctx context.Context, usr *user.User, loginTime time.Time) time.Time {
	sh := j.lookupShift(ctx, usr)
	if sh == nil {
		return j.cfg.DefaultShiftEnd.On(loginTime)
	}

	end := sh.EndOn(loginTime)
	if sh.IsOvernight() {
		earliestStart := sh.StartOn(loginTime).Add(-j.cfg.OvernightTolerance)
		if loginTime.After(earliestStart) {
			end = end.AddDate(0, 0, 1)
		}
	}
	return end
}

func (j *AttendanceJobs) lookupShift(ctx context.Context, usr *user.User) *shift.Shift {
	if usr.ShiftID == nil || *usr.ShiftID == "" {
		return nil
	}
	sh, err := j.shiftRepo.GetByID(ctx, *usr.ShiftID)
	if err != nil {
		if !errors.Is(err, shift.ErrShiftNotFound) {
			slog.Warn("Cron: Shift lookup failed, using default shift end",
				"shift_id", *usr.ShiftID, "error", err)
		}
		return nil
	}
	return &sh
}

// PurgeExpiredRecords deletes attendance rows older than the retention
// window.
func (j *AttendanceJobs) PurgeExpiredRecords(ctx context.Context) error {
	cutoff := j.now().AddDate(0, 0, -j.cfg.RetentionDays)
	deleted, err := j.attendanceRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to purge expired attendance records: %w", err)
	}
	if deleted > 0 {
		slog.Info("Cron: Purged expired attendance records", "count", deleted, "cutoff", cutoff)
	}
	return nil
}
