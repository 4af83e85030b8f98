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

type OrderHandler struct {
	orderCommands commands.OrderCommands
	orderQueries  queries.OrderQueries
	userService   usecase.UserService
}

func NewOrderHandler(
	orderCommands commands.OrderCommands,
	orderQueries queries.OrderQueries,
	userService usecase.UserService,
) *OrderHandler {
	return &OrderHandler{
		orderCommands: orderCommands,
		orderQueries:  orderQueries,
		userService:   userService,
	}
}

// @Summary Get cart
// @Description Get the current user's cart; an empty cart is returned if nothing was added yet
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CartResponse
// @Failure 401 {object} map[string]string
// @Router /orders/cart [get]
func (h *OrderHandler) GetCart(c *gin.Context) {
	identity, ok := h.authenticate(c)
	if !ok {
		return
	}

	cart, err := h.orderQueries.GetCart(c.Request.Context(), identity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromCartView(cart))
}

// @Summary Add book to cart
// @Description Add a book to the current user's cart, creating the cart if needed
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param bookId path int true "Book ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/in-cart/{bookId} [post]
func (h *OrderHandler) AddToCart(c *gin.Context) {
	identity, ok := h.authenticate(c)
	if !ok {
		return
	}

	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	if err := h.orderCommands.AddToCart(c.Request.Context(), identity, bookID); err != nil {
		switch {
		case errors.Is(err, commands.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Book not found",
			})
		case errors.Is(err, commands.ErrBookAlreadyInCart):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Book is already in the cart",
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

// @Summary Remove book from cart
// @Description Remove a book from the cart; the cart is deleted when it becomes empty
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param bookId path int true "Book ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/in-cart/{bookId} [delete]
func (h *OrderHandler) RemoveFromCart(c *gin.Context) {
	identity, ok := h.authenticate(c)
	if !ok {
		return
	}

	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	if err := h.orderCommands.RemoveFromCart(c.Request.Context(), identity, bookID); err != nil {
		switch {
		case errors.Is(err, commands.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Book not found",
			})
		case errors.Is(err, commands.ErrCartNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Cart not found",
			})
		case errors.Is(err, commands.ErrBookNotInCart):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Book is not in the cart",
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

// @Summary Clear cart
// @Description Delete the current user's cart with everything in it
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/cart [delete]
func (h *OrderHandler) ClearCart(c *gin.Context) {
	identity, ok := h.authenticate(c)
	if !ok {
		return
	}

	if err := h.orderCommands.ClearCart(c.Request.Context(), identity); err != nil {
		switch {
		case errors.Is(err, commands.ErrCartNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Cart not found",
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

// @Summary Confirm order
// @Description Turn the cart into a completed order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.OrderResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/confirm [post]
func (h *OrderHandler) ConfirmOrder(c *gin.Context) {
	identity, ok := h.authenticate(c)
	if !ok {
		return
	}

	view, err := h.orderCommands.ConfirmOrder(c.Request.Context(), identity)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCartNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Cart not found",
			})
		case errors.Is(err, commands.ErrEmptyCart):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Cart is empty",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary Cancel order
// @Description Cancel a completed order within the cancellation window
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param orderId path int true "Order ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /orders/{orderId} [delete]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	identity, ok := h.authenticate(c)
	if !ok {
		return
	}

	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}

	if err := h.orderCommands.CancelOrder(c.Request.Context(), identity, orderID); err != nil {
		switch {
		case errors.Is(err, commands.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, commands.ErrCancellationExpired):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Cancellation window has passed",
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

func (h *OrderHandler) authenticate(c *gin.Context) (uuid.UUID, bool) {
	return authenticatedUserID(c, h.userService)
}
