package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/megamart/hr-backend-go/internal/domain/shift"
	"github.com/megamart/hr-backend-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

// GetByID implements shift.ShiftRepository.
func (s *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, name, start_time, end_time, late_grace_minutes,
			   half_day_time, absent_time, created_at, updated_at
		FROM shifts
		WHERE id = $1
	`

	var sh shift.Shift
	err := q.QueryRow(ctx, query, id).Scan(
		&sh.ID, &sh.Name, &sh.StartTime, &sh.EndTime, &sh.LateGraceMinutes,
		&sh.HalfDayTime, &sh.AbsentTime, &sh.CreatedAt, &sh.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return sh, nil
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}
