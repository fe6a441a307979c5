package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/compliance-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_SaveAssessment(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO assessments`).
		WithArgs(pgxmock.AnyArg(), "individual", "LOW", 3, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	rec, err := s.SaveAssessment(context.Background(), sampleSnapshot(model.CategoryIndividual, model.TierLow, 3))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, model.TierLow, rec.Tier)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetAssessment(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	snap := sampleSnapshot(model.CategoryCorporate, model.TierHigh, 11)
	snapJSON, err := json.Marshal(snap)
	require.NoError(t, err)

	created := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, category, tier, score, snapshot, created_at FROM assessments WHERE id = \$1`).
		WithArgs("rec-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "category", "tier", "score", "snapshot", "created_at"}).
			AddRow("rec-1", "corporate", "HIGH", 11, snapJSON, created))

	got, err := s.GetAssessment(context.Background(), "rec-1")
	require.NoError(t, err)
	assert.Equal(t, "rec-1", got.ID)
	assert.Equal(t, model.CategoryCorporate, got.Category)
	assert.Equal(t, 11, got.Snapshot.Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetAssessment_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, category, tier, score, snapshot, created_at FROM assessments WHERE id = \$1`).
		WithArgs("nonexistent").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetAssessment(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get assessment")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListAssessments_Filters(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	snap := sampleSnapshot(model.CategoryIndividual, model.TierMedium, 6)
	snapJSON, err := json.Marshal(snap)
	require.NoError(t, err)

	created := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, category, tier, score, snapshot, created_at FROM assessments WHERE true AND category = \$1 AND tier = \$2`).
		WithArgs("individual", "MEDIUM", 100).
		WillReturnRows(pgxmock.NewRows([]string{"id", "category", "tier", "score", "snapshot", "created_at"}).
			AddRow("rec-2", "individual", "MEDIUM", 6, snapJSON, created))

	records, err := s.ListAssessments(context.Background(), Filter{
		Category: model.CategoryIndividual,
		Tier:     model.TierMedium,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "rec-2", records[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS assessments`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
