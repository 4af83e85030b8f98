package api

import (
	"errors"
	"net/http"

	reqdto "webstore-service/internal/handler/dto/request"
	resdto "webstore-service/internal/handler/dto/response"
	"webstore-service/internal/usecase"

	"github.com/gin-gonic/gin"
)

// AuthHandler proxies credential operations to the identity service.
type AuthHandler struct {
	authCommands usecase.AuthCommands
}

func NewAuthHandler(authCommands usecase.AuthCommands) *AuthHandler {
	return &AuthHandler{authCommands: authCommands}
}

// @Summary Register
// @Description Create an account at the identity service
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "Credentials"
// @Success 201 {object} resdto.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	payload, err := h.authCommands.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Username already taken",
			})
		case errors.Is(err, usecase.ErrIdentityUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Identity service unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromAuthPayload(payload))
}

// @Summary Login
// @Description Exchange credentials for a token at the identity service
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Credentials"
// @Success 200 {object} resdto.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	payload, err := h.authCommands.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid credentials",
			})
		case errors.Is(err, usecase.ErrIdentityUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Identity service unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAuthPayload(payload))
}
