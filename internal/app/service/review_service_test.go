package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmaksimov/appstore-backend/internal/app/model"
	"github.com/vmaksimov/appstore-backend/internal/app/repository"
	"github.com/vmaksimov/appstore-backend/internal/db"
	"gorm.io/gorm"
)

func setupReviewService(t *testing.T) (ReviewService, *gorm.DB) {
	t.Helper()
	database := db.SetupTestDB()
	t.Cleanup(func() { db.CleanupTestDB(database) })

	svc := NewReviewService(
		database,
		repository.NewReviewRepository(database),
		repository.NewRatingRepository(database),
		repository.NewAppRepository(database),
		repository.NewUserRepository(database),
	)
	return svc, database
}

func seedApp(t *testing.T, database *gorm.DB, name string) *model.App {
	t.Helper()
	app := &model.App{
		Name:      name,
		Developer: "Test Studio",
		Category:  "Games",
	}
	require.NoError(t, database.Create(app).Error)
	return app
}

func seedUser(t *testing.T, database *gorm.DB, vkID int64, firstName string) *model.User {
	t.Helper()
	user := &model.User{
		VKID:      &vkID,
		FirstName: firstName,
		LastName:  "Tester",
		Avatar:    "https://vk.com/avatar.png",
	}
	require.NoError(t, database.Create(user).Error)
	return user
}

func TestReviewService_CreateReview_UpdatesRatingSummary(t *testing.T) {
	svc, database := setupReviewService(t)
	app := seedApp(t, database, "Chess Master")

	for _, rating := range []int{5, 4, 3} {
		_, err := svc.CreateReview(CreateReviewInput{
			AppID:  app.ID,
			Author: "Guest",
			Text:   "Nice game",
			Rating: rating,
		})
		require.NoError(t, err)
	}

	summary, err := svc.GetAppRating(app.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, summary.Average, 0.0001)
	assert.Equal(t, int64(3), summary.TotalReviews)
}

func TestReviewService_CreateReview_FormatsDate(t *testing.T) {
	svc, database := setupReviewService(t)
	app := seedApp(t, database, "Chess Master")

	created, err := svc.CreateReview(CreateReviewInput{
		AppID:  app.ID,
		Author: "Guest",
		Text:   "Nice game",
		Rating: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("02.01.2006"), created.Date)

	reviews, err := svc.ListReviews(app.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, created.Date, reviews[0].Date)
	assert.Equal(t, "Guest", reviews[0].Author)
}

func TestReviewService_CreateReview_AuthorFromUser(t *testing.T) {
	svc, database := setupReviewService(t)
	app := seedApp(t, database, "Chess Master")
	user := seedUser(t, database, 123, "Ivan")

	created, err := svc.CreateReview(CreateReviewInput{
		AppID:  app.ID,
		UserID: &user.ID,
		Author: "ignored",
		Text:   "Great",
		Rating: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ivan Tester", created.Author)
	assert.Equal(t, "https://vk.com/avatar.png", created.Avatar)
}

func TestReviewService_CreateReview_DuplicateRejected(t *testing.T) {
	svc, database := setupReviewService(t)
	app := seedApp(t, database, "Chess Master")
	user := seedUser(t, database, 123, "Ivan")

	_, err := svc.CreateReview(CreateReviewInput{
		AppID:  app.ID,
		UserID: &user.ID,
		Text:   "First",
		Rating: 5,
	})
	require.NoError(t, err)

	_, err = svc.CreateReview(CreateReviewInput{
		AppID:  app.ID,
		UserID: &user.ID,
		Text:   "Second",
		Rating: 1,
	})
	assert.ErrorIs(t, err, ErrReviewExists)

	// The rejected review must not touch the summary.
	summary, err := svc.GetAppRating(app.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, summary.Average, 0.0001)
	assert.Equal(t, int64(1), summary.TotalReviews)
}

func TestReviewService_CreateReview_Validation(t *testing.T) {
	svc, database := setupReviewService(t)
	app := seedApp(t, database, "Chess Master")

	tests := []struct {
		name        string
		input       CreateReviewInput
		expectedErr error
	}{
		{
			name:        "rating above range",
			input:       CreateReviewInput{AppID: app.ID, Text: "ok", Rating: 6},
			expectedErr: ErrInvalidRating,
		},
		{
			name:        "rating below range",
			input:       CreateReviewInput{AppID: app.ID, Text: "ok", Rating: -1},
			expectedErr: ErrInvalidRating,
		},
		{
			name:        "zero rating",
			input:       CreateReviewInput{AppID: app.ID, Text: "ok", Rating: 0},
			expectedErr: ErrInvalidRating,
		},
		{
			name:        "empty text",
			input:       CreateReviewInput{AppID: app.ID, Text: "   ", Rating: 3},
			expectedErr: ErrReviewTextRequired,
		},
		{
			name:        "unknown app",
			input:       CreateReviewInput{AppID: 9999, Text: "ok", Rating: 3},
			expectedErr: ErrAppNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateReview(tt.input)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}

	// None of the rejected submissions may leave review rows behind.
	var count int64
	database.Model(&model.Review{}).Count(&count)
	assert.Zero(t, count)
}

func TestReviewService_GetAppRating_NoReviews(t *testing.T) {
	svc, database := setupReviewService(t)
	app := seedApp(t, database, "Chess Master")

	summary, err := svc.GetAppRating(app.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.Average)
	assert.Zero(t, summary.TotalReviews)
	assert.Equal(t, int64(0), summary.Distribution[5])
}

func TestReviewService_CreateReview_ZeroRatingRejected(t *testing.T) {
	svc, database := setupReviewService(t)
	app := seedApp(t, database, "Chess Master")

	_, err := svc.CreateReview(CreateReviewInput{
		AppID:  app.ID,
		Text:   "Rated",
		Rating: 4,
	})
	require.NoError(t, err)

	_, err = svc.CreateReview(CreateReviewInput{
		AppID:  app.ID,
		Text:   "Text only",
		Rating: 0,
	})
	assert.ErrorIs(t, err, ErrInvalidRating)

	// The rejected submission leaves no row and no trace in the summary.
	var count int64
	database.Model(&model.Review{}).Count(&count)
	assert.Equal(t, int64(1), count)

	summary, err := svc.GetAppRating(app.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, summary.Average, 0.0001)
	assert.Equal(t, int64(1), summary.TotalReviews)
}

func TestReviewService_LikeReview(t *testing.T) {
	svc, database := setupReviewService(t)
	app := seedApp(t, database, "Chess Master")

	created, err := svc.CreateReview(CreateReviewInput{
		AppID:  app.ID,
		Text:   "Nice",
		Rating: 5,
	})
	require.NoError(t, err)

	for i := 1; i <= 4; i++ {
		likes, err := svc.LikeReview(created.ID)
		require.NoError(t, err)
		assert.Equal(t, i, likes)
	}

	_, err = svc.LikeReview(9999)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestReviewService_UpdateReview(t *testing.T) {
	svc, database := setupReviewService(t)
	app := seedApp(t, database, "Chess Master")
	owner := seedUser(t, database, 123, "Ivan")
	stranger := seedUser(t, database, 456, "Petr")

	created, err := svc.CreateReview(CreateReviewInput{
		AppID:  app.ID,
		UserID: &owner.ID,
		Text:   "Okay",
		Rating: 3,
	})
	require.NoError(t, err)

	_, err = svc.UpdateReview(created.ID, stranger.ID, UpdateReviewInput{Text: "Hacked", Rating: 1})
	assert.ErrorIs(t, err, ErrNotReviewOwner)

	_, err = svc.UpdateReview(created.ID, owner.ID, UpdateReviewInput{Text: "Unrated", Rating: 0})
	assert.ErrorIs(t, err, ErrInvalidRating)

	updated, err := svc.UpdateReview(created.ID, owner.ID, UpdateReviewInput{Text: "Actually great", Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)

	summary, err := svc.GetAppRating(app.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, summary.Average, 0.0001)
}

func TestReviewService_DeleteReview_RecomputesSummary(t *testing.T) {
	svc, database := setupReviewService(t)
	app := seedApp(t, database, "Chess Master")
	owner := seedUser(t, database, 123, "Ivan")

	created, err := svc.CreateReview(CreateReviewInput{
		AppID:  app.ID,
		UserID: &owner.ID,
		Text:   "Okay",
		Rating: 4,
	})
	require.NoError(t, err)

	err = svc.DeleteReview(created.ID, owner.ID, model.RoleUser)
	require.NoError(t, err)

	summary, err := svc.GetAppRating(app.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.Average)
	assert.Zero(t, summary.TotalReviews)
}

func TestReviewService_DeleteReview_AdminOverride(t *testing.T) {
	svc, database := setupReviewService(t)
	app := seedApp(t, database, "Chess Master")
	owner := seedUser(t, database, 123, "Ivan")
	admin := seedUser(t, database, 456, "Root")

	created, err := svc.CreateReview(CreateReviewInput{
		AppID:  app.ID,
		UserID: &owner.ID,
		Text:   "Spam",
		Rating: 1,
	})
	require.NoError(t, err)

	err = svc.DeleteReview(created.ID, admin.ID, model.RoleAdmin)
	require.NoError(t, err)

	reviews, err := svc.ListReviews(app.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}
