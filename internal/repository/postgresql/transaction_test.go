package postgresql

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/megamart/hr-backend-go/internal/pkg/database"
)

// stubTx satisfies pgx.Tx through embedding; only its identity matters here.
type stubTx struct {
	pgx.Tx
}

func TestGetQuerierPrefersContextTx(t *testing.T) {
	db := &database.DB{}
	tx := stubTx{}

	ctx := ContextWithTx(context.Background(), tx)
	assert.Equal(t, tx, GetQuerier(ctx, db))
}

func TestGetQuerierFallsBackToPool(t *testing.T) {
	db := &database.DB{}

	q := GetQuerier(context.Background(), db)
	assert.Equal(t, database.Querier(db.Pool), q)
}
