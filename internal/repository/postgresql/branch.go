package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/megamart/hr-backend-go/internal/domain/branch"
	"github.com/megamart/hr-backend-go/internal/pkg/database"
)

type branchRepository struct {
	db *database.DB
}

// GetByID implements branch.BranchRepository.
func (b *branchRepository) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		SELECT id, name, code, address, latitude, longitude, geo_radius,
			   created_at, updated_at
		FROM branches
		WHERE id = $1
	`

	var br branch.Branch
	err := q.QueryRow(ctx, query, id).Scan(
		&br.ID, &br.Name, &br.Code, &br.Address,
		&br.Latitude, &br.Longitude, &br.GeoRadius,
		&br.CreatedAt, &br.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		return branch.Branch{}, fmt.Errorf("failed to get branch: %w", err)
	}

	return br, nil
}

func NewBranchRepository(db *database.DB) branch.BranchRepository {
	return &branchRepository{db: db}
}
