package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"remote-pet-diagnosis/internal/domain"
	"remote-pet-diagnosis/internal/service"
)

// AuthHandler mantiene dependencias para endpoints de autenticación.
type AuthHandler struct {
	logger       *zap.Logger
	authServ     *service.AuthService
	tokenServ    *service.TokenService
	cookieSecure bool
}

// NewAuthHandler crea una instancia de AuthHandler con dependencias necesarias.
func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService, tokenServ *service.TokenService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		logger:       logger,
		authServ:     authServ,
		tokenServ:    tokenServ,
		cookieSecure: cookieSecure,
	}
}

// Login maneja POST /api/auth/login. En éxito emite el token de sesión y
// lo adjunta como cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "email, password and role are required"})
		return
	}
	role, ok := domain.ParseRole(req.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "role must be owner or doctor"})
		return
	}

	principal, err := h.authServ.Authenticate(c.Request.Context(), req.Email, req.Password, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "too many login attempts"})
		default:
			h.logger.Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not login"})
		}
		return
	}

	token, err := h.tokenServ.Issue(principal)
	if err != nil {
		if errors.Is(err, service.ErrSecretMissing) {
			h.logger.Error("jwt secret not configured")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "server configuration error"})
			return
		}
		h.logger.Error("token issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not issue session"})
		return
	}

	setAuthCookie(c, token, h.tokenServ.TTL(), h.cookieSecure)
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "principal": principal})
}

// Signup maneja POST /api/auth/signup para las dos variantes de principal.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Role     string `json:"role" binding:"required"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid signup request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "name, email, role and a password of at least 6 characters are required"})
		return
	}
	role, ok := domain.ParseRole(req.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "role must be owner or doctor"})
		return
	}

	var (
		principal domain.Principal
		err       error
	)
	if role == domain.RoleOwner {
		var owner domain.Owner
		owner, err = h.authServ.RegisterOwner(c.Request.Context(), service.RegisterOwnerInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Phone:    req.Phone,
			Address:  req.Address,
		})
		principal = owner.AsPrincipal()
	} else {
		var doctor domain.Doctor
		doctor, err = h.authServ.RegisterDoctor(c.Request.Context(), service.RegisterDoctorInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		principal = doctor.AsPrincipal()
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"message": "email already registered"})
		case errors.Is(err, service.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid email"})
		default:
			h.logger.Error("signup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not sign up"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "signup successful", "principal": principal})
}

// Logout maneja POST /api/auth/logout. Siempre responde 200, haya o no
// una sesión válida.
func (h *AuthHandler) Logout(c *gin.Context) {
	clearAuthCookie(c, h.cookieSecure)
	c.JSON(http.StatusOK, gin.H{"message": "logout successful"})
}

// Me maneja GET /api/me: devuelve la identidad derivada de la cookie.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":    claims.SubjectID,
		"email": claims.Email,
		"role":  claims.Role,
	})
}
