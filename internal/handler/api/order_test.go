//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"webstore-service/internal/domain/order"
	"webstore-service/internal/domain/user"
	"webstore-service/internal/handler/api"
	resdto "webstore-service/internal/handler/dto/response"
	"webstore-service/internal/pkg/authctx"
	"webstore-service/internal/usecase/commands"
	"webstore-service/internal/usecase/queries"
	"webstore-service/tests/common/httptest"
	commandsmock "webstore-service/tests/mock/commands"
	queriesmock "webstore-service/tests/mock/queries"
	usecasemock "webstore-service/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCtrl        *gomock.Controller
	mockCommands    *commandsmock.MockOrderCommands
	mockQueries     *queriesmock.MockOrderQueries
	mockUserService *usecasemock.MockUserService
	handler         *api.OrderHandler
	userID          uuid.UUID
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.userID = uuid.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.mockUserService = usecasemock.NewMockUserService(s.mockCtrl)
	s.handler = api.NewOrderHandler(s.mockCommands, s.mockQueries, s.mockUserService)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		identity := authctx.Identity{UserID: s.userID, Username: "reader", Role: user.RoleUser.String()}
		ctx := authctx.WithIdentity(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}

	s.router.GET("/orders/cart", authMiddleware, s.handler.GetCart)
	s.router.DELETE("/orders/cart", authMiddleware, s.handler.ClearCart)
	s.router.POST("/orders/in-cart/:bookId", authMiddleware, s.handler.AddToCart)
	s.router.DELETE("/orders/in-cart/:bookId", authMiddleware, s.handler.RemoveFromCart)
	s.router.POST("/orders/confirm", authMiddleware, s.handler.ConfirmOrder)
	s.router.DELETE("/orders/:orderId", authMiddleware, s.handler.CancelOrder)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func (s *OrderHandlerTestSuite) identity() *user.Identity {
	id, err := user.NewIdentity(s.userID, "reader", user.RoleUser)
	s.Require().NoError(err)
	return id
}

func (s *OrderHandlerTestSuite) expectAuthenticated() {
	s.mockUserService.EXPECT().AuthenticatedUser(gomock.Any()).Return(s.identity(), nil)
}

func (s *OrderHandlerTestSuite) TestGetCart() {
	s.Run("success: returns the cart with totals", func() {
		s.expectAuthenticated()
		orderID := int64(42)
		s.mockQueries.EXPECT().GetCart(gomock.Any(), s.userID).Return(&queries.CartView{
			OrderID: &orderID,
			UserID:  s.userID,
			Status:  order.StatusInCart.String(),
			Books: []queries.CartBookView{
				{ID: 1, Title: "first", Price: 10},
				{ID: 2, Title: "second", Price: 5.5},
			},
			TotalPrice: 15.5,
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/cart", nil, "token")

		var body resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Books, 2)
		s.InDelta(15.5, body.TotalPrice, 0.001)
	})

	s.Run("success: empty cart for a user who never added anything", func() {
		s.expectAuthenticated()
		s.mockQueries.EXPECT().GetCart(gomock.Any(), s.userID).Return(&queries.CartView{
			UserID: s.userID,
			Status: order.StatusInCart.String(),
			Books:  []queries.CartBookView{},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/cart", nil, "token")

		var body resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Books)
		s.Nil(body.OrderID)
	})

	s.Run("error: 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/cart", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}

func (s *OrderHandlerTestSuite) TestAddToCart() {
	url := "/orders/in-cart/7"

	s.Run("success: returns 204", func() {
		s.expectAuthenticated()
		s.mockCommands.EXPECT().AddToCart(gomock.Any(), s.userID, int64(7)).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 for unknown book", func() {
		s.expectAuthenticated()
		s.mockCommands.EXPECT().AddToCart(gomock.Any(), s.userID, int64(7)).Return(commands.ErrBookNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Book not found")
	})

	s.Run("error: 409 for duplicate book", func() {
		s.expectAuthenticated()
		s.mockCommands.EXPECT().AddToCart(gomock.Any(), s.userID, int64(7)).Return(commands.ErrBookAlreadyInCart)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already in the cart")
	})

	s.Run("error: 400 for non-numeric book id", func() {
		s.expectAuthenticated()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/orders/in-cart/abc", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *OrderHandlerTestSuite) TestRemoveFromCart() {
	url := "/orders/in-cart/7"

	s.Run("success: returns 204", func() {
		s.expectAuthenticated()
		s.mockCommands.EXPECT().RemoveFromCart(gomock.Any(), s.userID, int64(7)).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 when book is not in the cart", func() {
		s.expectAuthenticated()
		s.mockCommands.EXPECT().RemoveFromCart(gomock.Any(), s.userID, int64(7)).Return(commands.ErrBookNotInCart)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "not in the cart")
	})

	s.Run("error: 404 when there is no cart", func() {
		s.expectAuthenticated()
		s.mockCommands.EXPECT().RemoveFromCart(gomock.Any(), s.userID, int64(7)).Return(commands.ErrCartNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Cart not found")
	})
}

func (s *OrderHandlerTestSuite) TestClearCart() {
	s.Run("success: returns 204", func() {
		s.expectAuthenticated()
		s.mockCommands.EXPECT().ClearCart(gomock.Any(), s.userID).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/orders/cart", nil, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 when there is no cart", func() {
		s.expectAuthenticated()
		s.mockCommands.EXPECT().ClearCart(gomock.Any(), s.userID).Return(commands.ErrCartNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/orders/cart", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Cart not found")
	})
}

func (s *OrderHandlerTestSuite) TestConfirmOrder() {
	url := "/orders/confirm"

	s.Run("success: returns the completed order", func() {
		s.expectAuthenticated()
		orderDate := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		s.mockCommands.EXPECT().ConfirmOrder(gomock.Any(), s.userID).Return(&queries.OrderView{
			ID:        42,
			UserID:    s.userID,
			OrderDate: &orderDate,
			Status:    order.StatusCompleted.String(),
			Books:     []queries.CartBookView{{ID: 1, Title: "first", Price: 10}},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")

		var body resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(42), body.ID)
		s.Equal(order.StatusCompleted.String(), body.Status)
		s.NotNil(body.OrderDate)
	})

	s.Run("error: 404 when there is no cart", func() {
		s.expectAuthenticated()
		s.mockCommands.EXPECT().ConfirmOrder(gomock.Any(), s.userID).Return(nil, commands.ErrCartNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Cart not found")
	})

	s.Run("error: 422 for an empty cart", func() {
		s.expectAuthenticated()
		s.mockCommands.EXPECT().ConfirmOrder(gomock.Any(), s.userID).Return(nil, commands.ErrEmptyCart)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "empty")
	})
}

func (s *OrderHandlerTestSuite) TestCancelOrder() {
	url := "/orders/42"

	s.Run("success: returns 204", func() {
		s.expectAuthenticated()
		s.mockCommands.EXPECT().CancelOrder(gomock.Any(), s.userID, int64(42)).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 for unknown or foreign order", func() {
		s.expectAuthenticated()
		s.mockCommands.EXPECT().CancelOrder(gomock.Any(), s.userID, int64(42)).Return(commands.ErrOrderNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})

	s.Run("error: 422 when the cancellation window has passed", func() {
		s.expectAuthenticated()
		s.mockCommands.EXPECT().CancelOrder(gomock.Any(), s.userID, int64(42)).Return(commands.ErrCancellationExpired)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "window")
	})
}
