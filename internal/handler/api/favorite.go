package api

import (
	"errors"
	"net/http"

	resdto "webstore-service/internal/handler/dto/response"
	"webstore-service/internal/usecase"
	"webstore-service/internal/usecase/commands"
	"webstore-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FavoriteHandler struct {
	favoriteCommands commands.FavoriteCommands
	favoriteQueries  queries.FavoriteQueries
	userService      usecase.UserService
}

func NewFavoriteHandler(
	favoriteCommands commands.FavoriteCommands,
	favoriteQueries queries.FavoriteQueries,
	userService usecase.UserService,
) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteCommands: favoriteCommands,
		favoriteQueries:  favoriteQueries,
		userService:      userService,
	}
}

// @Summary List favorite books
// @Description List the current user's favorite books
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /favorites [get]
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := h.authenticate(c)
	if !ok {
		return
	}

	books, err := h.favoriteQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrNoFavorites):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No favorite books",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookViews(books))
}

// @Summary Add favorite
// @Description Add a book to the current user's favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param bookId path int true "Book ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /favorites/{bookId} [post]
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, ok := h.authenticate(c)
	if !ok {
		return
	}

	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	if err := h.favoriteCommands.AddFavorite(c.Request.Context(), userID, bookID); err != nil {
		switch {
		case errors.Is(err, commands.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Book not found",
			})
		case errors.Is(err, commands.ErrAlreadyFavorite):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Book is already a favorite",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Remove favorite
// @Description Remove a book from the current user's favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param bookId path int true "Book ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /favorites/{bookId} [delete]
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := h.authenticate(c)
	if !ok {
		return
	}

	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	if err := h.favoriteCommands.RemoveFavorite(c.Request.Context(), userID, bookID); err != nil {
		switch {
		case errors.Is(err, commands.ErrFavoriteNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Favorite not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *FavoriteHandler) authenticate(c *gin.Context) (uuid.UUID, bool) {
	return authenticatedUserID(c, h.userService)
}
