package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vmaksimov/appstore-backend/internal/app/repository"
	"github.com/vmaksimov/appstore-backend/internal/app/service"
	appErrors "github.com/vmaksimov/appstore-backend/internal/errors"
	"github.com/vmaksimov/appstore-backend/internal/middleware"
)

type AppController struct {
	catalogService service.CatalogService
}

func NewAppController(catalogService service.CatalogService) *AppController {
	return &AppController{catalogService: catalogService}
}

type appRequest struct {
	Name        string   `json:"name" binding:"required"`
	Developer   string   `json:"developer" binding:"required"`
	Category    string   `json:"category"`
	AgeRating   string   `json:"age_rating"`
	Description string   `json:"description"`
	IconURL     string   `json:"icon_url"`
	Version     string   `json:"version"`
	Size        string   `json:"size"`
	Price       string   `json:"price"`
	Featured    bool     `json:"featured"`
	TopWeek     bool     `json:"top_week"`
	Screenshots []string `json:"screenshots"`
}

func (r *appRequest) toInput() service.AppInput {
	return service.AppInput{
		Name:        r.Name,
		Developer:   r.Developer,
		Category:    r.Category,
		AgeRating:   r.AgeRating,
		Description: r.Description,
		IconURL:     r.IconURL,
		Version:     r.Version,
		Size:        r.Size,
		Price:       r.Price,
		Featured:    r.Featured,
		TopWeek:     r.TopWeek,
		Screenshots: r.Screenshots,
	}
}

// ListApps handles GET /api/apps with optional category, search,
// featured and topWeek query filters.
func (ctrl *AppController) ListApps(c *gin.Context) {
	filter := repository.AppFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Featured: c.Query("featured") == "true",
		TopWeek:  c.Query("topWeek") == "true",
	}

	apps, err := ctrl.catalogService.ListApps(filter)
	if err != nil {
		log := middleware.GetLoggerFromContext(c)
		log.Error("Failed to list apps", err, nil)
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"apps":  apps,
		"count": len(apps),
	})
}

// GetApp handles GET /api/apps/:id
func (ctrl *AppController) GetApp(c *gin.Context) {
	appID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	app, err := ctrl.catalogService.GetApp(appID)
	if err != nil {
		if errors.Is(err, service.ErrAppNotFound) {
			appErrors.NotFound(c, appErrors.AppNotFound, "App not found")
			return
		}
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, app)
}

// ListCategories handles GET /api/categories
func (ctrl *AppController) ListCategories(c *gin.Context) {
	categories, err := ctrl.catalogService.ListCategories()
	if err != nil {
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateApp handles POST /api/apps (admin only)
func (ctrl *AppController) CreateApp(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req appRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErrors.BadRequest(c, appErrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	app, err := ctrl.catalogService.CreateApp(req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAppNameRequired), errors.Is(err, service.ErrAppDeveloperRequired):
			appErrors.BadRequest(c, appErrors.ValidationRequired, err.Error())
		default:
			log.Error("Failed to create app", err, nil)
			respondDatabaseError(c, err, "app")
		}
		return
	}

	c.JSON(http.StatusCreated, app)
}

// UpdateApp handles PUT /api/apps/:id (admin only)
func (ctrl *AppController) UpdateApp(c *gin.Context) {
	appID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req appRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErrors.BadRequest(c, appErrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	app, err := ctrl.catalogService.UpdateApp(appID, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAppNotFound):
			appErrors.NotFound(c, appErrors.AppNotFound, "App not found")
		case errors.Is(err, service.ErrAppNameRequired), errors.Is(err, service.ErrAppDeveloperRequired):
			appErrors.BadRequest(c, appErrors.ValidationRequired, err.Error())
		default:
			appErrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, app)
}

// DeleteApp handles DELETE /api/apps/:id (admin only)
func (ctrl *AppController) DeleteApp(c *gin.Context) {
	appID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.catalogService.DeleteApp(appID); err != nil {
		if errors.Is(err, service.ErrAppNotFound) {
			appErrors.NotFound(c, appErrors.AppNotFound, "App not found")
			return
		}
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "App deleted"})
}
