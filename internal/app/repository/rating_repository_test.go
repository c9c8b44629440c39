package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmaksimov/appstore-backend/internal/db"
)

func TestRatingRepository_Recompute(t *testing.T) {
	database := db.SetupTestDB()
	defer db.CleanupTestDB(database)

	repo := NewRatingRepository(database)

	app := createTestApp(t, database, "Notes", "Productivity")
	createTestReview(t, database, app.ID, nil, 5)
	createTestReview(t, database, app.ID, nil, 4)
	createTestReview(t, database, app.ID, nil, 3)

	require.NoError(t, repo.Recompute(app.ID))

	summary, err := repo.Get(app.ID)
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.InDelta(t, 4.0, summary.AverageRating, 0.0001)
	assert.Equal(t, int64(3), summary.TotalReviews)
}

func TestRatingRepository_Recompute_Upserts(t *testing.T) {
	database := db.SetupTestDB()
	defer db.CleanupTestDB(database)

	repo := NewRatingRepository(database)

	app := createTestApp(t, database, "Notes", "Productivity")
	createTestReview(t, database, app.ID, nil, 5)
	require.NoError(t, repo.Recompute(app.ID))

	createTestReview(t, database, app.ID, nil, 1)
	require.NoError(t, repo.Recompute(app.ID))

	summary, err := repo.Get(app.ID)
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.InDelta(t, 3.0, summary.AverageRating, 0.0001)
	assert.Equal(t, int64(2), summary.TotalReviews)
}

func TestRatingRepository_Recompute_RemovesEmptySummary(t *testing.T) {
	database := db.SetupTestDB()
	defer db.CleanupTestDB(database)

	reviewRepo := NewReviewRepository(database)
	repo := NewRatingRepository(database)

	app := createTestApp(t, database, "Notes", "Productivity")
	review := createTestReview(t, database, app.ID, nil, 5)
	require.NoError(t, repo.Recompute(app.ID))

	require.NoError(t, reviewRepo.DeleteReview(review.ID))
	require.NoError(t, repo.Recompute(app.ID))

	summary, err := repo.Get(app.ID)
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestRatingRepository_Get_AbsentSummary(t *testing.T) {
	database := db.SetupTestDB()
	defer db.CleanupTestDB(database)

	repo := NewRatingRepository(database)

	summary, err := repo.Get(9999)
	require.NoError(t, err)
	assert.Nil(t, summary)
}
