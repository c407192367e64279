package attendance

import (
	"context"
	"sort"
	"time"

	"github.com/megamart/hr-backend-go/internal/config"
	"github.com/megamart/hr-backend-go/internal/domain/attendance"
	"github.com/megamart/hr-backend-go/internal/domain/branch"
	"github.com/megamart/hr-backend-go/internal/domain/shift"
	"github.com/megamart/hr-backend-go/internal/domain/user"
)

// In-memory repository fakes so the engine tests run without a database.

type fakeAttendanceRepo struct {
	records []*attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	cp := att
	cp.CreatedAt = att.LoginTime
	cp.UpdatedAt = att.LoginTime
	f.records = append(f.records, &cp)
	return cp, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	for _, r := range f.records {
		if r.ID == id {
			return *r, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) Update(_ context.Context, att attendance.Attendance) error {
	for i, r := range f.records {
		if r.ID == att.ID {
			cp := att
			f.records[i] = &cp
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) ListByUser(_ context.Context, userID string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (f *fakeAttendanceRepo) ListByUserBetween(_ context.Context, userID string, start, end time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, r := range f.records {
		if r.UserID == userID && !r.LoginTime.Before(start) && r.LoginTime.Before(end) {
			out = append(out, *r)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (f *fakeAttendanceRepo) GetOpenSession(_ context.Context, userID string) (attendance.Attendance, error) {
	var open []attendance.Attendance
	for _, r := range f.records {
		if r.UserID == userID && r.LogoutTime == nil {
			open = append(open, *r)
		}
	}
	if len(open) == 0 {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	sortNewestFirst(open)
	return open[0], nil
}

func (f *fakeAttendanceRepo) CountOpenSessions(_ context.Context, userID string) (int, error) {
	count := 0
	for _, r := range f.records {
		if r.UserID == userID && r.LogoutTime == nil {
			count++
		}
	}
	return count, nil
}

func (f *fakeAttendanceRepo) ListOpenSessions(_ context.Context) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, r := range f.records {
		if r.LogoutTime == nil {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoginTime.Before(out[j].LoginTime) })
	return out, nil
}

func (f *fakeAttendanceRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var kept []*attendance.Attendance
	var deleted int64
	for _, r := range f.records {
		if r.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return deleted, nil
}

func sortNewestFirst(records []attendance.Attendance) {
	sort.Slice(records, func(i, j int) bool { return records[i].LoginTime.After(records[j].LoginTime) })
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	usr, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return usr, nil
}

type fakeShiftRepo struct {
	shifts map[string]shift.Shift
}

func (f *fakeShiftRepo) GetByID(_ context.Context, id string) (shift.Shift, error) {
	sh, ok := f.shifts[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return sh, nil
}

type fakeBranchRepo struct {
	branches map[string]branch.Branch
}

func (f *fakeBranchRepo) GetByID(_ context.Context, id string) (branch.Branch, error) {
	br, ok := f.branches[id]
	if !ok {
		return branch.Branch{}, branch.ErrBranchNotFound
	}
	return br, nil
}

type testEnv struct {
	svc      *AttendanceServiceImpl
	attRepo  *fakeAttendanceRepo
	users    *fakeUserRepo
	shifts   *fakeShiftRepo
	branches *fakeBranchRepo
	txCalls  int
}

func newTestEnv(now time.Time) *testEnv {
	env := &testEnv{
		attRepo:  &fakeAttendanceRepo{},
		users:    &fakeUserRepo{users: map[string]user.User{}},
		shifts:   &fakeShiftRepo{shifts: map[string]shift.Shift{}},
		branches: &fakeBranchRepo{branches: map[string]branch.Branch{}},
	}
	env.svc = &AttendanceServiceImpl{
		AttendanceRepository: env.attRepo,
		UserRepository:       env.users,
		ShiftRepository:      env.shifts,
		BranchRepository:     env.branches,
		cfg:                  config.DefaultAttendanceConfig(),
		now:                  func() time.Time { return now },
		inTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			env.txCalls++
			return fn(ctx)
		},
	}
	return env
}

func (e *testEnv) setNow(now time.Time) {
	e.svc.now = func() time.Time { return now }
}

func clockTime(hour, minute int) time.Time {
	return time.Date(0, time.January, 1, hour, minute, 0, 0, time.UTC)
}
