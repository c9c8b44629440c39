package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vmaksimov/appstore-backend/internal/app/service"
	appErrors "github.com/vmaksimov/appstore-backend/internal/errors"
	"github.com/vmaksimov/appstore-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type vkLoginRequest struct {
	Code        string `json:"code" binding:"required"`
	RedirectURI string `json:"redirect_uri" binding:"required"`
}

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VKLogin handles POST /api/auth/vk. The frontend completes the VK
// OAuth dialog and sends us the authorization code.
func (ctrl *AuthController) VKLogin(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req vkLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErrors.BadRequest(c, appErrors.ValidationInvalidInput, "Code and redirect_uri are required")
		return
	}

	response, err := ctrl.authService.AuthenticateVK(c.Request.Context(), req.Code, req.RedirectURI)
	if err != nil {
		if errors.Is(err, service.ErrVKExchangeFailed) {
			appErrors.RespondWithError(c, http.StatusUnauthorized, appErrors.AuthVKCodeInvalid, "VK authorization failed")
			return
		}
		log.Error("VK login failed", err, nil)
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, response)
}

// AdminLogin handles POST /api/auth/admin
func (ctrl *AuthController) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErrors.BadRequest(c, appErrors.ValidationInvalidInput, "Email and password are required")
		return
	}

	response, err := ctrl.authService.AdminLogin(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			appErrors.RespondWithError(c, http.StatusUnauthorized, appErrors.AuthInvalidCredentials, "Invalid email or password")
			return
		}
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, response)
}
