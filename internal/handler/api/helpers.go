package api

import (
	"errors"
	"net/http"
	"strconv"

	"webstore-service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// authenticatedUserID resolves the caller against the identity service
// and writes the error response itself when that fails.
func authenticatedUserID(c *gin.Context, userService usecase.UserService) (uuid.UUID, bool) {
	identity, err := userService.AuthenticatedUser(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotAuthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Not authenticated",
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
		return uuid.Nil, false
	}
	return identity.ID(), true
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name + " format",
		})
		return 0, false
	}
	return id, true
}
