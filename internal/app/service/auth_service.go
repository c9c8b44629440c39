package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmaksimov/appstore-backend/config"
	"github.com/vmaksimov/appstore-backend/internal/app/model"
	"github.com/vmaksimov/appstore-backend/internal/app/repository"
	"github.com/vmaksimov/appstore-backend/pkg/logger"
	"github.com/vmaksimov/appstore-backend/pkg/util"
	"github.com/vmaksimov/appstore-backend/pkg/vk"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrVKExchangeFailed   = errors.New("vk code exchange failed")
)

// VKExchanger trades an OAuth code for a VK profile. The concrete
// implementation lives in pkg/vk; tests substitute a stub.
type VKExchanger interface {
	Exchange(ctx context.Context, code, redirectURI string) (*vk.Profile, error)
}

type UserResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	Role      string `json:"role"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type AuthService interface {
	AuthenticateVK(ctx context.Context, code, redirectURI string) (*AuthResponse, error)
	AdminLogin(email, password string) (*AuthResponse, error)
	EnsureAdmin() error
	GetUserByID(id uint) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	vkClient VKExchanger
	jwtCfg   config.JWTConfig
	adminCfg config.AdminConfig
}

func NewAuthService(
	userRepo repository.UserRepository,
	vkClient VKExchanger,
	jwtCfg config.JWTConfig,
	adminCfg config.AdminConfig,
) AuthService {
	return &authService{
		userRepo: userRepo,
		vkClient: vkClient,
		jwtCfg:   jwtCfg,
		adminCfg: adminCfg,
	}
}

// AuthenticateVK exchanges the OAuth code for a VK profile and signs
// the matching local user in, creating the account on first login.
func (s *authService) AuthenticateVK(ctx context.Context, code, redirectURI string) (*AuthResponse, error) {
	if s.vkClient == nil {
		return nil, fmt.Errorf("%w: client is not configured", ErrVKExchangeFailed)
	}

	profile, err := s.vkClient.Exchange(ctx, code, redirectURI)
	if err != nil {
		logger.Warn("VK code exchange failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrVKExchangeFailed, err)
	}

	user, err := s.userRepo.FindByVKID(profile.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		vkID := profile.ID
		user = &model.User{
			VKID:      &vkID,
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
			Avatar:    profile.Photo200,
			Role:      model.RoleUser,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
		logger.Info("User registered via VK", map[string]interface{}{
			"user_id": user.ID,
			"vk_id":   profile.ID,
		})
	} else {
		// Refresh profile fields VK may have changed since last login.
		user.FirstName = profile.FirstName
		user.LastName = profile.LastName
		user.Avatar = profile.Photo200
		if err := s.userRepo.Update(user); err != nil {
			return nil, err
		}
	}

	return s.issueTokens(user)
}

func (s *authService) AdminLogin(email, password string) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Role != model.RoleAdmin || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if !util.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// EnsureAdmin creates the configured admin account on startup when it
// does not exist yet. Missing config skips the bootstrap.
func (s *authService) EnsureAdmin() error {
	if s.adminCfg.Email == "" || s.adminCfg.Password == "" {
		return nil
	}

	_, err := s.userRepo.FindByEmail(s.adminCfg.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := util.HashPassword(s.adminCfg.Password)
	if err != nil {
		return err
	}
	admin := &model.User{
		FirstName:    "Admin",
		Email:        s.adminCfg.Email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := s.userRepo.Create(admin); err != nil {
		return err
	}

	logger.Info("Admin account bootstrapped", map[string]interface{}{
		"email": s.adminCfg.Email,
	})
	return nil
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) issueTokens(user *model.User) (*AuthResponse, error) {
	pair, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtCfg.Secret,
		s.jwtCfg.AccessTokenExpiry,
		s.jwtCfg.RefreshTokenExpiry,
	)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         toUserResponse(user),
	}, nil
}

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Avatar:    user.Avatar,
		Role:      string(user.Role),
	}
}
