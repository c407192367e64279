package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/megamart/hr-backend-go/internal/domain/user"
	"github.com/megamart/hr-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

// GetByID implements user.UserRepository.
func (u *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, u.db)

	query := `
		SELECT id, full_name, username, email, role, shift_id, branch_id,
			   geofenced, office_latitude, office_longitude, geo_radius,
			   created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var usr user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&usr.ID, &usr.FullName, &usr.Username, &usr.Email, &usr.Role,
		&usr.ShiftID, &usr.BranchID, &usr.Geofenced,
		&usr.OfficeLatitude, &usr.OfficeLongitude, &usr.GeoRadius,
		&usr.CreatedAt, &usr.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return usr, nil
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}
