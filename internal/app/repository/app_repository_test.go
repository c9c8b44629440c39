package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmaksimov/appstore-backend/internal/app/model"
	"github.com/vmaksimov/appstore-backend/internal/db"
	"gorm.io/gorm"
)

func createTestApp(t *testing.T, database *gorm.DB, name, category string) *model.App {
	t.Helper()
	app := &model.App{
		Name:      name,
		Developer: "Test Studio",
		Category:  category,
		AgeRating: "12+",
		Version:   "1.0.0",
		Size:      "45 MB",
		Price:     "Free",
	}
	require.NoError(t, database.Create(app).Error)
	return app
}

func TestAppRepository_Create(t *testing.T) {
	database := db.SetupTestDB()
	defer db.CleanupTestDB(database)

	repo := NewAppRepository(database)

	app := &model.App{
		Name:        "Notes",
		Developer:   "Acme",
		Category:    "Productivity",
		Description: "Simple note taking",
		Screenshots: []model.Screenshot{
			{ImageURL: "https://cdn.example.com/notes-1.png"},
			{ImageURL: "https://cdn.example.com/notes-2.png"},
		},
	}

	err := repo.Create(app)
	require.NoError(t, err)
	assert.NotZero(t, app.ID)

	found, err := repo.FindByID(app.ID)
	require.NoError(t, err)
	assert.Equal(t, "Notes", found.Name)
	assert.Len(t, found.Screenshots, 2)
}

func TestAppRepository_FindByID_NotFound(t *testing.T) {
	database := db.SetupTestDB()
	defer db.CleanupTestDB(database)

	repo := NewAppRepository(database)

	_, err := repo.FindByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAppRepository_FindWithFilter(t *testing.T) {
	database := db.SetupTestDB()
	defer db.CleanupTestDB(database)

	repo := NewAppRepository(database)

	createTestApp(t, database, "Chess Master", "Games")
	createTestApp(t, database, "Budget Planner", "Finance")
	featured := createTestApp(t, database, "Photo Editor", "Photography")
	require.NoError(t, database.Model(featured).Update("featured", true).Error)

	tests := []struct {
		name          string
		filter        AppFilter
		expectedCount int
		expectedFirst string
	}{
		{
			name:          "no filter returns all",
			filter:        AppFilter{},
			expectedCount: 3,
		},
		{
			name:          "filter by category",
			filter:        AppFilter{Category: "Games"},
			expectedCount: 1,
			expectedFirst: "Chess Master",
		},
		{
			name:          "filter by featured",
			filter:        AppFilter{Featured: true},
			expectedCount: 1,
			expectedFirst: "Photo Editor",
		},
		{
			name:          "search is case-insensitive",
			filter:        AppFilter{Search: "chess"},
			expectedCount: 1,
			expectedFirst: "Chess Master",
		},
		{
			name:          "search matches category",
			filter:        AppFilter{Search: "finance"},
			expectedCount: 1,
			expectedFirst: "Budget Planner",
		},
		{
			name:          "search with no match",
			filter:        AppFilter{Search: "nonexistent"},
			expectedCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apps, err := repo.FindWithFilter(tt.filter)
			require.NoError(t, err)
			assert.Len(t, apps, tt.expectedCount)
			if tt.expectedFirst != "" {
				assert.Equal(t, tt.expectedFirst, apps[0].Name)
			}
		})
	}
}

func TestAppRepository_ListCategories(t *testing.T) {
	database := db.SetupTestDB()
	defer db.CleanupTestDB(database)

	repo := NewAppRepository(database)

	createTestApp(t, database, "Chess Master", "Games")
	createTestApp(t, database, "Sudoku", "Games")
	createTestApp(t, database, "Budget Planner", "Finance")

	categories, err := repo.ListCategories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Finance", "Games"}, categories)
}

func TestAppRepository_ReplaceScreenshots(t *testing.T) {
	database := db.SetupTestDB()
	defer db.CleanupTestDB(database)

	repo := NewAppRepository(database)

	app := createTestApp(t, database, "Notes", "Productivity")
	require.NoError(t, database.Create(&model.Screenshot{AppID: app.ID, ImageURL: "old.png"}).Error)

	err := repo.ReplaceScreenshots(app.ID, []string{"new-1.png", "new-2.png"})
	require.NoError(t, err)

	found, err := repo.FindByID(app.ID)
	require.NoError(t, err)
	require.Len(t, found.Screenshots, 2)
	assert.Equal(t, "new-1.png", found.Screenshots[0].ImageURL)
}

func TestAppRepository_Delete(t *testing.T) {
	database := db.SetupTestDB()
	defer db.CleanupTestDB(database)

	repo := NewAppRepository(database)

	app := createTestApp(t, database, "Notes", "Productivity")
	require.NoError(t, database.Create(&model.Review{
		AppID:  app.ID,
		Author: "Guest",
		Text:   "Works well",
		Rating: 5,
	}).Error)

	err := repo.Delete(app.ID)
	require.NoError(t, err)

	_, err = repo.FindByID(app.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var reviewCount int64
	database.Model(&model.Review{}).Where("app_id = ?", app.ID).Count(&reviewCount)
	assert.Zero(t, reviewCount)
}

func TestAppRepository_Delete_NotFound(t *testing.T) {
	database := db.SetupTestDB()
	defer db.CleanupTestDB(database)

	repo := NewAppRepository(database)

	err := repo.Delete(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
