package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmaksimov/appstore-backend/internal/app/repository"
	"github.com/vmaksimov/appstore-backend/internal/db"
	"gorm.io/gorm"
)

func setupProfileService(t *testing.T) (ProfileService, ReviewService, *gorm.DB) {
	t.Helper()
	database := db.SetupTestDB()
	t.Cleanup(func() { db.CleanupTestDB(database) })

	userRepo := repository.NewUserRepository(database)
	appRepo := repository.NewAppRepository(database)
	reviewRepo := repository.NewReviewRepository(database)
	ratingRepo := repository.NewRatingRepository(database)

	profile := NewProfileService(
		userRepo,
		appRepo,
		reviewRepo,
		repository.NewFavoriteRepository(database),
		repository.NewDownloadRepository(database),
	)
	reviews := NewReviewService(database, reviewRepo, ratingRepo, appRepo, userRepo)
	return profile, reviews, database
}

func TestProfileService_FavoriteLifecycle(t *testing.T) {
	profile, _, database := setupProfileService(t)
	user := seedUser(t, database, 42, "Ivan")
	app := seedApp(t, database, "Chess Master")

	require.NoError(t, profile.AddFavorite(user.ID, app.ID))
	// Repeated add refreshes the timestamp, never duplicates.
	require.NoError(t, profile.AddFavorite(user.ID, app.ID))

	favorites, err := profile.ListFavorites(user.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "Chess Master", favorites[0].Name)

	require.NoError(t, profile.RemoveFavorite(user.ID, app.ID))

	favorites, err = profile.ListFavorites(user.ID)
	require.NoError(t, err)
	assert.Empty(t, favorites)

	err = profile.RemoveFavorite(user.ID, app.ID)
	assert.ErrorIs(t, err, ErrFavoriteNotFound)
}

func TestProfileService_AddFavorite_UnknownApp(t *testing.T) {
	profile, _, database := setupProfileService(t)
	user := seedUser(t, database, 42, "Ivan")

	err := profile.AddFavorite(user.ID, 9999)
	assert.ErrorIs(t, err, ErrAppNotFound)
}

func TestProfileService_RecordDownload(t *testing.T) {
	profile, _, database := setupProfileService(t)
	user := seedUser(t, database, 42, "Ivan")
	app := seedApp(t, database, "Chess Master")

	require.NoError(t, profile.RecordDownload(user.ID, app.ID))
	require.NoError(t, profile.RecordDownload(user.ID, app.ID))

	downloads, err := profile.ListDownloads(user.ID)
	require.NoError(t, err)
	require.Len(t, downloads, 1)
	assert.Equal(t, app.ID, downloads[0].AppID)

	err = profile.RecordDownload(user.ID, 9999)
	assert.ErrorIs(t, err, ErrAppNotFound)
}

func TestProfileService_GetProfile_Counts(t *testing.T) {
	profile, reviews, database := setupProfileService(t)
	user := seedUser(t, database, 42, "Ivan")
	app := seedApp(t, database, "Chess Master")
	other := seedApp(t, database, "Budget Planner")

	require.NoError(t, profile.RecordDownload(user.ID, app.ID))
	require.NoError(t, profile.RecordDownload(user.ID, other.ID))
	require.NoError(t, profile.AddFavorite(user.ID, app.ID))
	_, err := reviews.CreateReview(CreateReviewInput{
		AppID:  app.ID,
		UserID: &user.ID,
		Text:   "Great",
		Rating: 5,
	})
	require.NoError(t, err)

	response, err := profile.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, response.DownloadCount)
	assert.Equal(t, 1, response.FavoriteCount)
	assert.Equal(t, 1, response.ReviewCount)
	assert.Equal(t, "Ivan", response.User.FirstName)

	_, err = profile.GetProfile(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestProfileService_ListReviews(t *testing.T) {
	profile, reviews, database := setupProfileService(t)
	user := seedUser(t, database, 42, "Ivan")
	app := seedApp(t, database, "Chess Master")

	_, err := reviews.CreateReview(CreateReviewInput{
		AppID:  app.ID,
		UserID: &user.ID,
		Text:   "Great",
		Rating: 5,
	})
	require.NoError(t, err)

	entries, err := profile.ListReviews(user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Chess Master", entries[0].AppName)
	assert.Equal(t, 5, entries[0].Rating)
	assert.NotEmpty(t, entries[0].Date)
}
