package api

import (
	"errors"
	"net/http"

	reqdto "webstore-service/internal/handler/dto/request"
	resdto "webstore-service/internal/handler/dto/response"
	"webstore-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogQueries queries.CatalogQueries
}

func NewCatalogHandler(catalogQueries queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{catalogQueries: catalogQueries}
}

// @Summary List authors
// @Description List authors with optional name filter and sort direction
// @Tags catalog
// @Produce json
// @Param name query string false "Name contains"
// @Param sort_dir query string false "Sort direction (asc, desc)"
// @Success 200 {array} resdto.AuthorResponse
// @Failure 400 {object} map[string]string
// @Router /authors [get]
func (h *CatalogHandler) ListAuthors(c *gin.Context) {
	var q reqdto.ListNamesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	authors, err := h.catalogQueries.ListAuthors(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.writeCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAuthorViews(authors))
}

// @Summary List genres
// @Description List genres with optional name filter and sort direction
// @Tags catalog
// @Produce json
// @Param name query string false "Name contains"
// @Param sort_dir query string false "Sort direction (asc, desc)"
// @Success 200 {array} resdto.GenreResponse
// @Failure 400 {object} map[string]string
// @Router /genres [get]
func (h *CatalogHandler) ListGenres(c *gin.Context) {
	var q reqdto.ListNamesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	genres, err := h.catalogQueries.ListGenres(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.writeCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromGenreViews(genres))
}

func (h *CatalogHandler) writeCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queries.ErrInvalidSort):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid sort parameter",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
