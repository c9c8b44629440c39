package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmaksimov/appstore-backend/internal/app/model"
	"github.com/vmaksimov/appstore-backend/internal/app/repository"
	"github.com/vmaksimov/appstore-backend/internal/app/service"
	"github.com/vmaksimov/appstore-backend/internal/db"
	"github.com/vmaksimov/appstore-backend/internal/middleware"
)

func setupCatalogEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database := db.SetupTestDB()
	t.Cleanup(func() { db.CleanupTestDB(database) })

	catalogService := service.NewCatalogService(
		repository.NewAppRepository(database),
		repository.NewRatingRepository(database),
	)
	appController := NewAppController(catalogService)

	authMW := middleware.NewAuthMiddleware(testJWTSecret)
	adminOnly := []gin.HandlerFunc{
		authMW.Authenticate(),
		authMW.RequireRole(string(model.RoleAdmin)),
	}

	router := gin.New()
	api := router.Group("/api")
	{
		api.GET("/apps", appController.ListApps)
		api.GET("/apps/:id", appController.GetApp)
		api.GET("/categories", appController.ListCategories)
		api.POST("/apps", append(adminOnly, appController.CreateApp)...)
		api.DELETE("/apps/:id", append(adminOnly, appController.DeleteApp)...)
	}

	return &testEnv{router: router, database: database}
}

func (env *testEnv) seedCatalog(t *testing.T) {
	t.Helper()
	apps := []model.App{
		{Name: "Chess Master", Developer: "Acme", Category: "Games", Description: "Play chess online"},
		{Name: "Budget Planner", Developer: "Acme", Category: "Finance"},
		{Name: "Photo Editor", Developer: "Pixel Labs", Category: "Photography", Featured: true},
	}
	for i := range apps {
		require.NoError(t, env.database.Create(&apps[i]).Error)
	}
}

func TestAppController_ListApps_Filters(t *testing.T) {
	env := setupCatalogEnv(t)
	env.seedCatalog(t)

	tests := []struct {
		name          string
		query         string
		expectedCount int
	}{
		{name: "all apps", query: "", expectedCount: 3},
		{name: "by category", query: "?category=Games", expectedCount: 1},
		{name: "featured only", query: "?featured=true", expectedCount: 1},
		{name: "search name", query: "?search=chess", expectedCount: 1},
		{name: "search description", query: "?search=online", expectedCount: 1},
		{name: "no match", query: "?search=nothing", expectedCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(env.router, http.MethodGet, "/api/apps"+tt.query, "", nil)
			require.Equal(t, http.StatusOK, w.Code)

			var body struct {
				Apps  []service.AppResponse `json:"apps"`
				Count int                   `json:"count"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Len(t, body.Apps, tt.expectedCount)
			assert.Equal(t, tt.expectedCount, body.Count)
		})
	}
}

func TestAppController_GetApp(t *testing.T) {
	env := setupCatalogEnv(t)
	app := env.seedApp(t, "Chess Master")

	w := doJSON(env.router, http.MethodGet, fmt.Sprintf("/api/apps/%d", app.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body service.AppResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Chess Master", body.Name)

	w = doJSON(env.router, http.MethodGet, "/api/apps/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "APP_NOT_FOUND")
}

func TestAppController_ListCategories(t *testing.T) {
	env := setupCatalogEnv(t)
	env.seedCatalog(t)

	w := doJSON(env.router, http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"Finance", "Games", "Photography"}, body.Categories)
}

func TestAppController_AdminRoutes_RequireRole(t *testing.T) {
	env := setupCatalogEnv(t)
	user := env.seedUser(t, 42)

	admin := &model.User{FirstName: "Root", Email: "admin@example.com", Role: model.RoleAdmin}
	require.NoError(t, env.database.Create(admin).Error)

	payload := gin.H{"name": "New App", "developer": "Acme"}

	// No token
	w := doJSON(env.router, http.MethodPost, "/api/apps", "", payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Regular user
	w = doJSON(env.router, http.MethodPost, "/api/apps", tokenFor(t, user), payload)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin
	w = doJSON(env.router, http.MethodPost, "/api/apps", tokenFor(t, admin), payload)
	require.Equal(t, http.StatusCreated, w.Code)

	var created service.AppResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "New App", created.Name)

	w = doJSON(env.router, http.MethodDelete, fmt.Sprintf("/api/apps/%d", created.ID), tokenFor(t, admin), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	env.database.Model(&model.App{}).Count(&count)
	assert.Zero(t, count)
}
