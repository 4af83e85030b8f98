//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"webstore-service/internal/handler/api"
	resdto "webstore-service/internal/handler/dto/response"
	"webstore-service/internal/usecase"
	"webstore-service/tests/common/httptest"
	usecasemock "webstore-service/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *usecasemock.MockAuthCommands
	handler      *api.AuthHandler
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = usecasemock.NewMockAuthCommands(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockCommands)

	s.router.POST("/auth/register", s.handler.Register)
	s.router.POST("/auth/login", s.handler.Login)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestRegister() {
	body := map[string]string{"username": "reader", "password": "password123"}

	s.Run("success: relays the issued token", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), "reader", "password123").
			Return(&usecase.AuthPayload{Token: "jwt-token"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/register", body, "")

		var res resdto.AuthResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.Equal("jwt-token", res.Token)
	})

	s.Run("error: username taken", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), "reader", "password123").
			Return(nil, usecase.ErrUsernameTaken)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/register", body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Username already taken")
	})

	s.Run("error: identity service down", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), "reader", "password123").
			Return(nil, usecase.ErrIdentityUnavailable)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/register", body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Identity service unavailable")
	})

	s.Run("error: password too short", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/register",
			map[string]string{"username": "reader", "password": "short"}, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *AuthHandlerTestSuite) TestLogin() {
	body := map[string]string{"username": "reader", "password": "password123"}

	s.Run("success", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), "reader", "password123").
			Return(&usecase.AuthPayload{Token: "jwt-token"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", body, "")

		var res resdto.AuthResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("jwt-token", res.Token)
	})

	s.Run("error: wrong credentials", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), "reader", "password123").
			Return(nil, usecase.ErrInvalidCredentials)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid credentials")
	})

	s.Run("error: missing fields", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login",
			map[string]string{"username": "reader"}, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
