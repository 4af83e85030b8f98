package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"webstore-service/internal/handler/api"
	"webstore-service/internal/handler/middleware"
	"webstore-service/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	bookHandler *api.BookHandler,
	catalogHandler *api.CatalogHandler,
	orderHandler *api.OrderHandler,
	favoriteHandler *api.FavoriteHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, bookHandler, catalogHandler, orderHandler, favoriteHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	bookHandler *api.BookHandler,
	catalogHandler *api.CatalogHandler,
	orderHandler *api.OrderHandler,
	favoriteHandler *api.FavoriteHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: authHandler.Register},
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})
		}

		books := apiGroup.Group("/books")
		{
			addRoutes(books, []route{
				{Method: http.MethodGet, Path: "", Handler: bookHandler.ListBooks},
				{Method: http.MethodGet, Path: "/:bookId", Handler: bookHandler.GetBook},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/authors", Handler: catalogHandler.ListAuthors},
			{Method: http.MethodGet, Path: "/genres", Handler: catalogHandler.ListGenres},
		})

		orders := apiGroup.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			addRoutes(orders, []route{
				{Method: http.MethodGet, Path: "/cart", Handler: orderHandler.GetCart},
				{Method: http.MethodDelete, Path: "/cart", Handler: orderHandler.ClearCart},
				{Method: http.MethodPost, Path: "/in-cart/:bookId", Handler: orderHandler.AddToCart},
				{Method: http.MethodDelete, Path: "/in-cart/:bookId", Handler: orderHandler.RemoveFromCart},
				{Method: http.MethodPost, Path: "/confirm", Handler: orderHandler.ConfirmOrder},
				{Method: http.MethodDelete, Path: "/:orderId", Handler: orderHandler.CancelOrder},
			})
		}

		favorites := apiGroup.Group("/favorites")
		favorites.Use(authMiddleware.RequireAuth())
		{
			addRoutes(favorites, []route{
				{Method: http.MethodGet, Path: "", Handler: favoriteHandler.ListFavorites},
				{Method: http.MethodPost, Path: "/:bookId", Handler: favoriteHandler.AddFavorite},
				{Method: http.MethodDelete, Path: "/:bookId", Handler: favoriteHandler.RemoveFavorite},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/books", Handler: bookHandler.CreateBook},
				{Method: http.MethodPut, Path: "/books/:bookId", Handler: bookHandler.UpdateBook},
				{Method: http.MethodDelete, Path: "/books/:bookId", Handler: bookHandler.DeleteBook},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
