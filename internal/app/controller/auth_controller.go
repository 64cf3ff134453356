package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/ikkim/jewel-storefront/internal/app/service"
	apperrors "github.com/ikkim/jewel-storefront/internal/errors"
	"github.com/ikkim/jewel-storefront/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type SignupRequest struct {
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	Phone     string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup creates a local account and signs it in
// POST /api/v1/auth/signup
func (ctrl *AuthController) Signup(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid signup request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	user, err := ctrl.authService.Signup(c.Request.Context(), sessionID, model.User{
		Name:      req.Name,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
	})
	if err != nil {
		respondServiceError(c, err, "auth")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created",
		"user":    user.Public(),
	})
}

// Login signs in with email and password
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Email and password are required")
		return
	}

	user, err := ctrl.authService.Login(c.Request.Context(), sessionID, req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err, "auth")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user.Public(),
	})
}

// Logout forgets the signed-in user
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), sessionID); err != nil {
		respondServiceError(c, err, "auth")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out",
	})
}

// GetMe returns the signed-in user, if any
// GET /api/v1/auth/me
func (ctrl *AuthController) GetMe(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	user, err := ctrl.authService.CurrentUser(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err, "auth")
		return
	}
	if user == nil {
		c.JSON(http.StatusOK, gin.H{
			"authenticated": false,
			"user":          nil,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          user.Public(),
	})
}
