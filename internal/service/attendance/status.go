package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/megamart/hr-backend-go/internal/domain/attendance"
	"github.com/megamart/hr-backend-go/internal/domain/shift"
)

// loginStatus derives the status frozen into the record at login: Late when
// the local time-of-day is past shift start plus grace, Present otherwise.
func (a *AttendanceServiceImpl) loginStatus(now time.Time, sh *shift.Shift) string {
	if now.After(a.lateCutoffOn(now, sh)) {
		return attendance.StatusLate
	}
	return attendance.StatusPresent
}

// lateCutoffOn materializes the late cutoff on the calendar date of d. With
// no shift the engine default applies (09:30 start, 15 minutes grace).
func (a *AttendanceServiceImpl) lateCutoffOn(d time.Time, sh *shift.Shift) time.Time {
	if sh != nil {
		return shift.ClockOn(sh.LateCutoff(), d)
	}
	grace := time.Duration(a.cfg.DefaultGraceMinutes) * time.Minute
	return a.cfg.DefaultShiftStart.On(d).Add(grace)
}

// History60Days implements attendance.AttendanceService.
// Reconstructs one entry per calendar date over the rolling window ending at
// end, most recent date first. When several records share a date the first
// one in fetch order wins.
func (a *AttendanceServiceImpl) History60Days(ctx context.Context, userID string, end time.Time) ([]attendance.DayStatus, error) {
	usr, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	sh := a.resolveShift(ctx, &usr)

	endDay := startOfDay(end)
	startDay := endDay.AddDate(0, 0, -(a.cfg.HistoryDays - 1))

	records, err := a.AttendanceRepository.ListByUserBetween(ctx, userID, startDay, endDay.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	byDate := indexFirstPerDate(records)

	nowLocal := a.now()
	days := make([]attendance.DayStatus, 0, a.cfg.HistoryDays)
	for i := 0; i < a.cfg.HistoryDays; i++ {
		date := endDay.AddDate(0, 0, -i)
		days = append(days, a.dayStatus(date, byDate[date.Format("2006-01-02")], sh, nowLocal))
	}
	return days, nil
}

// GetByDate implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetByDate(ctx context.Context, userID string, date time.Time) (attendance.DayStatus, error) {
	usr, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return attendance.DayStatus{}, fmt.Errorf("failed to get user: %w", err)
	}
	sh := a.resolveShift(ctx, &usr)

	day := startOfDay(date)
	records, err := a.AttendanceRepository.ListByUserBetween(ctx, userID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return attendance.DayStatus{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	var rec *attendance.Attendance
	if len(records) > 0 {
		rec = &records[0]
	}

	result := a.dayStatus(day, rec, sh, a.now())
	if rec == nil && result.Status != attendance.StatusHoliday {
		result.Remark = attendance.RemarkNoData
	}
	return result, nil
}

// dayStatus resolves one calendar date. Precedence: Sunday holiday when no
// record, Absent when no record, the record's stored status verbatim, then
// shift-rule derivation against the check-in time-of-day.
func (a *AttendanceServiceImpl) dayStatus(date time.Time, rec *attendance.Attendance, sh *shift.Shift, now time.Time) attendance.DayStatus {
	day := attendance.DayStatus{Date: date.Format("2006-01-02")}

	if rec == nil {
		if date.Weekday() == time.Sunday {
			day.Status = attendance.StatusHoliday
			day.Remark = attendance.RemarkSundayHoliday
		} else {
			day.Status = attendance.StatusAbsent
			day.Remark = attendance.RemarkAbsent
		}
		return day
	}

	day.RecordID = &rec.ID
	day.CheckIn = formatTimePtr(&rec.LoginTime)
	day.CheckOut = formatTimePtr(rec.LogoutTime)
	day.CanCheckOut = rec.CanCheckOut(now, a.cfg.CheckoutWindow)

	// A stored status (written at login, by escalation, or by manual
	// correction) is authoritative over anything the rules would derive.
	if rec.Metadata.Status != "" {
		day.Status = rec.Metadata.Status
		day.Remark = rec.Metadata.Status
		if rec.Metadata.Remark != "" {
			day.Remark = rec.Metadata.Remark
		}
		return day
	}

	day.Status = attendance.StatusPresent
	checkIn := rec.LoginTime
	if checkIn.After(a.lateCutoffOn(checkIn, sh)) {
		day.Status = attendance.StatusLate
	}
	if sh != nil && sh.AbsentTime != nil && checkIn.After(shift.ClockOn(*sh.AbsentTime, checkIn)) {
		day.Status = attendance.StatusAbsent
		day.Remark = attendance.RemarkMarkedAbsent
		return day
	}
	if rec.LogoutTime != nil && sh != nil && sh.HalfDayTime != nil &&
		rec.LogoutTime.Before(shift.ClockOn(*sh.HalfDayTime, *rec.LogoutTime)) {
		day.Status = attendance.StatusHalfDay
		day.Remark = attendance.RemarkLeftEarly
		return day
	}
	day.Remark = day.Status
	return day
}

// indexFirstPerDate keys records by the calendar date of loginTime, keeping
// the first record encountered for each date.
func indexFirstPerDate(records []attendance.Attendance) map[string]*attendance.Attendance {
	byDate := make(map[string]*attendance.Attendance, len(records))
	for i := range records {
		key := records[i].LoginTime.Format("2006-01-02")
		if _, ok := byDate[key]; !ok {
			byDate[key] = &records[i]
		}
	}
	return byDate
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02 15:04:05")
	return &s
}
