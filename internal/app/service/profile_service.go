package service

import (
	"errors"

	"github.com/vmaksimov/appstore-backend/internal/app/repository"
	"gorm.io/gorm"
)

var ErrFavoriteNotFound = errors.New("favorite not found")

// HistoryEntry is an app reference in the user's downloads or
// favorites list.
type HistoryEntry struct {
	AppID   uint   `json:"app_id"`
	Name    string `json:"name"`
	IconURL string `json:"icon_url"`
	Date    string `json:"date"`
}

type UserReviewEntry struct {
	ID      uint   `json:"id"`
	AppID   uint   `json:"app_id"`
	AppName string `json:"app_name"`
	Text    string `json:"text"`
	Rating  int    `json:"rating"`
	Likes   int    `json:"likes"`
	Date    string `json:"date"`
}

type ProfileResponse struct {
	User          UserResponse `json:"user"`
	DownloadCount int          `json:"download_count"`
	FavoriteCount int          `json:"favorite_count"`
	ReviewCount   int          `json:"review_count"`
}

type ProfileService interface {
	GetProfile(userID uint) (*ProfileResponse, error)
	ListDownloads(userID uint) ([]HistoryEntry, error)
	ListFavorites(userID uint) ([]HistoryEntry, error)
	ListReviews(userID uint) ([]UserReviewEntry, error)
	AddFavorite(userID, appID uint) error
	RemoveFavorite(userID, appID uint) error
	RecordDownload(userID, appID uint) error
}

type profileService struct {
	userRepo     repository.UserRepository
	appRepo      repository.AppRepository
	reviewRepo   *repository.ReviewRepository
	favoriteRepo repository.FavoriteRepository
	downloadRepo repository.DownloadRepository
}

func NewProfileService(
	userRepo repository.UserRepository,
	appRepo repository.AppRepository,
	reviewRepo *repository.ReviewRepository,
	favoriteRepo repository.FavoriteRepository,
	downloadRepo repository.DownloadRepository,
) ProfileService {
	return &profileService{
		userRepo:     userRepo,
		appRepo:      appRepo,
		reviewRepo:   reviewRepo,
		favoriteRepo: favoriteRepo,
		downloadRepo: downloadRepo,
	}
}

func (s *profileService) GetProfile(userID uint) (*ProfileResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	downloads, err := s.downloadRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	favorites, err := s.favoriteRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.GetReviewsByUserID(userID)
	if err != nil {
		return nil, err
	}

	return &ProfileResponse{
		User:          toUserResponse(user),
		DownloadCount: len(downloads),
		FavoriteCount: len(favorites),
		ReviewCount:   len(reviews),
	}, nil
}

func (s *profileService) ListDownloads(userID uint) ([]HistoryEntry, error) {
	downloads, err := s.downloadRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(downloads))
	for _, d := range downloads {
		entries = append(entries, HistoryEntry{
			AppID:   d.AppID,
			Name:    d.App.Name,
			IconURL: d.App.IconURL,
			Date:    d.DownloadedAt.Format(reviewDateLayout),
		})
	}
	return entries, nil
}

func (s *profileService) ListFavorites(userID uint) ([]HistoryEntry, error) {
	favorites, err := s.favoriteRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(favorites))
	for _, f := range favorites {
		entries = append(entries, HistoryEntry{
			AppID:   f.AppID,
			Name:    f.App.Name,
			IconURL: f.App.IconURL,
			Date:    f.AddedAt.Format(reviewDateLayout),
		})
	}
	return entries, nil
}

func (s *profileService) ListReviews(userID uint) ([]UserReviewEntry, error) {
	reviews, err := s.reviewRepo.GetReviewsByUserID(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]UserReviewEntry, 0, len(reviews))
	for i := range reviews {
		review := &reviews[i]
		entry := UserReviewEntry{
			ID:     review.ID,
			AppID:  review.AppID,
			Text:   review.Text,
			Rating: review.Rating,
			Likes:  review.Likes,
			Date:   review.CreatedAt.Format(reviewDateLayout),
		}
		if review.App != nil {
			entry.AppName = review.App.Name
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *profileService) AddFavorite(userID, appID uint) error {
	if _, err := s.appRepo.FindByID(appID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppNotFound
		}
		return err
	}
	return s.favoriteRepo.Upsert(userID, appID)
}

func (s *profileService) RemoveFavorite(userID, appID uint) error {
	if err := s.favoriteRepo.Remove(userID, appID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFavoriteNotFound
		}
		return err
	}
	return nil
}

// RecordDownload marks the app downloaded by the user. Repeated
// downloads refresh the timestamp instead of duplicating the entry.
func (s *profileService) RecordDownload(userID, appID uint) error {
	if _, err := s.appRepo.FindByID(appID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppNotFound
		}
		return err
	}
	return s.downloadRepo.Upsert(userID, appID)
}
