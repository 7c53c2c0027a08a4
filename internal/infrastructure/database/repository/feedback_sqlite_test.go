package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truthlens/internal/config"
	"truthlens/internal/domain/models"
	"truthlens/internal/infrastructure/database"
	"truthlens/internal/infrastructure/database/repository"
	"truthlens/pkg/logger"
)

func newSQLiteRepo(t *testing.T) *repository.SQLiteFeedbackRepository {
	t.Helper()
	ctx := context.Background()

	db, err := database.NewSQLite(ctx, config.DatabaseConfig{
		SQLitePath: filepath.Join(t.TempDir(), "feedback.db"),
	}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate(ctx))
	// migrations are idempotent
	require.NoError(t, db.Migrate(ctx))

	return repository.NewSQLiteFeedbackRepository(db.DB())
}

func TestSQLiteFeedbackRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := &models.Feedback{ContentHash: "aaa", WasAccurate: true, UserRating: 5, CreatedAt: base}
	second := &models.Feedback{ContentHash: "bbb", WasAccurate: false, UserRating: 2, Comments: "missed a scam", CreatedAt: base.Add(time.Minute)}

	require.NoError(t, repo.SaveFeedback(ctx, first))
	require.NoError(t, repo.SaveFeedback(ctx, second))
	assert.NotEqual(t, uuid.Nil, first.ID)

	list, err := repo.ListFeedback(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, "bbb", list[0].ContentHash)
	assert.False(t, list[0].WasAccurate)
	assert.Equal(t, 2, list[0].UserRating)
	assert.Equal(t, "missed a scam", list[0].Comments)
	assert.True(t, second.CreatedAt.Equal(list[0].CreatedAt))

	assert.Equal(t, first.ID, list[1].ID)
	assert.True(t, list[1].WasAccurate)
	assert.Empty(t, list[1].Comments)

	limited, err := repo.ListFeedback(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLiteStats(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackStats{}, *stats)

	for _, f := range []*models.Feedback{
		{ContentHash: "a", WasAccurate: true, UserRating: 5},
		{ContentHash: "b", WasAccurate: true, UserRating: 4},
		{ContentHash: "c", WasAccurate: false, UserRating: 1},
	} {
		require.NoError(t, repo.SaveFeedback(ctx, f))
	}
	require.NoError(t, repo.SaveReport(ctx, &models.ContentReport{
		ContentHash: "d", Category: "scam", Source: "whatsapp",
	}))

	stats, err = repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalFeedback)
	assert.Equal(t, int64(2), stats.AccurateCount)
	assert.InDelta(t, 10.0/3.0, stats.AverageRating, 1e-9)
	assert.Equal(t, int64(1), stats.TotalReports)
}

func TestSQLiteRejectsInvalidRating(t *testing.T) {
	repo := newSQLiteRepo(t)
	err := repo.SaveFeedback(context.Background(), &models.Feedback{ContentHash: "x", UserRating: 9})
	assert.Error(t, err)
}
