package api

import (
	"errors"
	"net/http"

	reqdto "webstore-service/internal/handler/dto/request"
	resdto "webstore-service/internal/handler/dto/response"
	"webstore-service/internal/infra"
	"webstore-service/internal/usecase/commands"
	"webstore-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	bookCommands commands.BookCommands
	bookQueries  queries.BookQueries
}

func NewBookHandler(bookCommands commands.BookCommands, bookQueries queries.BookQueries) *BookHandler {
	return &BookHandler{
		bookCommands: bookCommands,
		bookQueries:  bookQueries,
	}
}

// @Summary List books
// @Description Browse the catalog with filters, sorting and paging
// @Tags books
// @Produce json
// @Param title query string false "Title contains"
// @Param author_id query int false "Author ID"
// @Param genre_id query int false "Genre ID"
// @Param price_min query number false "Minimum price"
// @Param price_max query number false "Maximum price"
// @Param sort_by query string false "Sort column (title, price, publication_year)"
// @Param sort_dir query string false "Sort direction (asc, desc)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} resdto.BookResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var q reqdto.ListBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	books, err := h.bookQueries.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrNoBooksMatch):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No books match the given criteria",
			})
		case errors.Is(err, queries.ErrInvalidSort):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid sort parameter",
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

// @Summary Get book
// @Description Get a catalog book by ID
// @Tags books
// @Produce json
// @Param bookId path int true "Book ID"
// @Success 200 {object} resdto.BookResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /books/{bookId} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	book, err := h.bookQueries.GetByID(c.Request.Context(), bookID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Book not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookView(book))
}

// @Summary Create book
// @Description Register a book; an already-known ISBN returns the existing book
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookRequest true "Book"
// @Success 201 {object} resdto.BookResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req reqdto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	book, err := h.bookCommands.CreateBook(c.Request.Context(), req)
	if err != nil {
		h.writeBookCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookView(book))
}

// @Summary Update book
// @Description Replace a book's catalog data
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bookId path int true "Book ID"
// @Param request body reqdto.UpdateBookRequest true "Book"
// @Success 200 {object} resdto.BookResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/books/{bookId} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	var req reqdto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	book, err := h.bookCommands.UpdateBook(c.Request.Context(), bookID, req)
	if err != nil {
		h.writeBookCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookView(book))
}

// @Summary Delete book
// @Description Hide a book from the catalog; order history keeps referencing it
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param bookId path int true "Book ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/books/{bookId} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	if err := h.bookCommands.DeleteBook(c.Request.Context(), bookID); err != nil {
		h.writeBookCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookHandler) writeBookCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrBookNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Book not found",
		})
	case errors.Is(err, commands.ErrBookRefNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Author or genre not found",
		})
	case errors.Is(err, commands.ErrInvalidBookData):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Invalid book data",
		})
	case errors.Is(err, commands.ErrDuplicateISBN):
		c.JSON(http.StatusConflict, gin.H{
			"error": "ISBN already registered",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
