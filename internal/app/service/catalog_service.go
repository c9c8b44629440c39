package service

import (
	"errors"
	"strings"
	"time"

	"github.com/vmaksimov/appstore-backend/internal/app/model"
	"github.com/vmaksimov/appstore-backend/internal/app/repository"
	"github.com/vmaksimov/appstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrAppNameRequired      = errors.New("app name is required")
	ErrAppDeveloperRequired = errors.New("app developer is required")
)

type AppInput struct {
	Name        string
	Developer   string
	Category    string
	AgeRating   string
	Description string
	IconURL     string
	Version     string
	Size        string
	Price       string
	Featured    bool
	TopWeek     bool
	Screenshots []string
}

type AppResponse struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Developer   string   `json:"developer"`
	Category    string   `json:"category"`
	AgeRating   string   `json:"age_rating"`
	Description string   `json:"description"`
	IconURL     string   `json:"icon_url"`
	Rating      float64  `json:"rating"`
	ReviewCount int64    `json:"review_count"`
	Version     string   `json:"version"`
	Size        string   `json:"size"`
	Price       string   `json:"price"`
	Featured    bool     `json:"featured"`
	TopWeek     bool     `json:"top_week"`
	LastUpdate  string   `json:"last_update,omitempty"`
	Screenshots []string `json:"screenshots"`
}

type CatalogService interface {
	ListApps(filter repository.AppFilter) ([]AppResponse, error)
	GetApp(id uint) (*AppResponse, error)
	ListCategories() ([]string, error)
	CreateApp(input AppInput) (*AppResponse, error)
	UpdateApp(id uint, input AppInput) (*AppResponse, error)
	DeleteApp(id uint) error
}

type catalogService struct {
	appRepo    repository.AppRepository
	ratingRepo *repository.RatingRepository
}

func NewCatalogService(appRepo repository.AppRepository, ratingRepo *repository.RatingRepository) CatalogService {
	return &catalogService{
		appRepo:    appRepo,
		ratingRepo: ratingRepo,
	}
}

// ListApps returns catalog entries with live rating summaries applied
// on top of the seeded editorial rating.
func (s *catalogService) ListApps(filter repository.AppFilter) ([]AppResponse, error) {
	apps, err := s.appRepo.FindWithFilter(filter)
	if err != nil {
		return nil, err
	}

	appIDs := make([]uint, 0, len(apps))
	for i := range apps {
		appIDs = append(appIDs, apps[i].ID)
	}
	summaries, err := s.ratingRepo.GetMany(appIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]AppResponse, 0, len(apps))
	for i := range apps {
		response := toAppResponse(&apps[i])
		if summary, ok := summaries[apps[i].ID]; ok {
			response.Rating = summary.AverageRating
			response.ReviewCount = summary.TotalReviews
		}
		responses = append(responses, response)
	}
	return responses, nil
}

func (s *catalogService) GetApp(id uint) (*AppResponse, error) {
	app, err := s.appRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppNotFound
		}
		return nil, err
	}

	response := toAppResponse(app)
	summary, err := s.ratingRepo.Get(id)
	if err != nil {
		return nil, err
	}
	if summary != nil {
		response.Rating = summary.AverageRating
		response.ReviewCount = summary.TotalReviews
	}
	return &response, nil
}

func (s *catalogService) ListCategories() ([]string, error) {
	return s.appRepo.ListCategories()
}

func (s *catalogService) CreateApp(input AppInput) (*AppResponse, error) {
	if err := validateAppInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	app := &model.App{
		Name:        strings.TrimSpace(input.Name),
		Developer:   strings.TrimSpace(input.Developer),
		Category:    input.Category,
		AgeRating:   input.AgeRating,
		Description: input.Description,
		IconURL:     input.IconURL,
		Version:     input.Version,
		Size:        input.Size,
		Price:       input.Price,
		Featured:    input.Featured,
		TopWeek:     input.TopWeek,
		LastUpdate:  &now,
	}
	if app.Price == "" {
		app.Price = "Free"
	}
	for _, url := range input.Screenshots {
		app.Screenshots = append(app.Screenshots, model.Screenshot{ImageURL: url})
	}

	if err := s.appRepo.Create(app); err != nil {
		return nil, err
	}

	logger.Info("App created", map[string]interface{}{
		"app_id": app.ID,
		"name":   app.Name,
	})

	response := toAppResponse(app)
	return &response, nil
}

func (s *catalogService) UpdateApp(id uint, input AppInput) (*AppResponse, error) {
	if err := validateAppInput(input); err != nil {
		return nil, err
	}

	app, err := s.appRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppNotFound
		}
		return nil, err
	}

	now := time.Now()
	app.Name = strings.TrimSpace(input.Name)
	app.Developer = strings.TrimSpace(input.Developer)
	app.Category = input.Category
	app.AgeRating = input.AgeRating
	app.Description = input.Description
	app.IconURL = input.IconURL
	app.Version = input.Version
	app.Size = input.Size
	app.Price = input.Price
	app.Featured = input.Featured
	app.TopWeek = input.TopWeek
	app.LastUpdate = &now

	if err := s.appRepo.Update(app); err != nil {
		return nil, err
	}
	if input.Screenshots != nil {
		if err := s.appRepo.ReplaceScreenshots(id, input.Screenshots); err != nil {
			return nil, err
		}
	}

	return s.GetApp(id)
}

func (s *catalogService) DeleteApp(id uint) error {
	if err := s.appRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppNotFound
		}
		return err
	}

	logger.Info("App deleted", map[string]interface{}{"app_id": id})
	return nil
}

func validateAppInput(input AppInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrAppNameRequired
	}
	if strings.TrimSpace(input.Developer) == "" {
		return ErrAppDeveloperRequired
	}
	return nil
}

func toAppResponse(app *model.App) AppResponse {
	response := AppResponse{
		ID:          app.ID,
		Name:        app.Name,
		Developer:   app.Developer,
		Category:    app.Category,
		AgeRating:   app.AgeRating,
		Description: app.Description,
		IconURL:     app.IconURL,
		Rating:      app.Rating,
		Version:     app.Version,
		Size:        app.Size,
		Price:       app.Price,
		Featured:    app.Featured,
		TopWeek:     app.TopWeek,
		Screenshots: make([]string, 0, len(app.Screenshots)),
	}
	if app.LastUpdate != nil {
		response.LastUpdate = app.LastUpdate.Format(reviewDateLayout)
	}
	for _, shot := range app.Screenshots {
		response.Screenshots = append(response.Screenshots, shot.ImageURL)
	}
	return response
}
