package http

import (
	"net/http"

	"inkpress/pkg/jwt"
	"inkpress/pkg/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	jwtService   *jwt.Service
	adminUser    string
	passwordHash []byte
	logger       *logger.Logger
}

// NewAuthHandler hashes the configured admin password once at startup. An
// empty password disables login entirely.
func NewAuthHandler(jwtService *jwt.Service, adminUser, adminPassword string, logger *logger.Logger) (*AuthHandler, error) {
	handler := &AuthHandler{
		jwtService: jwtService,
		adminUser:  adminUser,
		logger:     logger,
	}

	if adminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		handler.passwordHash = hash
	}

	return handler, nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login godoc
// @Summary      Admin login
// @Description  Exchanges the admin credential for a bearer token used on write endpoints.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body loginRequest true "Admin credentials"
// @Success      200  {object}  Response
// @Failure      401  {object}  Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	if h.passwordHash == nil {
		respondError(c, http.StatusServiceUnavailable, "Admin login is not configured")
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	if req.Username != h.adminUser {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.jwtService.GenerateToken(h.adminUser, "admin")
	if err != nil {
		h.logger.Error("Failed to generate token: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respondData(c, http.StatusOK, gin.H{"token": token})
}
