package httpserver

import (
	"context"
	"log"

	"storefront/internal/domain"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type authService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(token string) (string, error)
}

type cartService interface {
	Add(ctx context.Context, userID string, productID int64) (*domain.User, error)
	Get(ctx context.Context, userID string) ([]domain.CartLine, error)
	Increment(ctx context.Context, userID string, productID int64) (*domain.User, error)
	Decrement(ctx context.Context, userID string, productID int64) (*domain.User, error)
	PlaceOrder(ctx context.Context, userID string) (*domain.User, error)
	History(ctx context.Context, userID string) ([]domain.Order, error)
	OrderByPosition(ctx context.Context, userID string, position int) (*domain.Order, error)
}

type catalogClient interface {
	Categories(ctx context.Context) ([]string, error)
	Products(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id int64) (*domain.Product, error)
}

// Deps bundles the services the router depends on. A zero RatePerSec
// disables rate limiting (used by tests).
type Deps struct {
	AuthSvc    authService
	CartSvc    cartService
	Catalog    catalogClient
	RatePerSec float64
	RateBurst  int
}

// buildRouter wires all routes. Register, login, and catalog reads are
// public; everything touching a cart or order history sits behind the
// token guard.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())
	if deps.RatePerSec > 0 {
		router.Use(newRateLimiter(deps.RatePerSec, deps.RateBurst).handler())
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/register", registerHandler(deps.AuthSvc))
	router.POST("/login", loginHandler(deps.AuthSvc))
	router.GET("/category", categoriesHandler(deps.Catalog))
	router.GET("/product", productsHandler(deps.Catalog))
	router.GET("/product/:id", productHandler(deps.Catalog))

	authorized := router.Group("/", authRequired(deps.AuthSvc))
	authorized.POST("/cart/:id", addToCartHandler(deps.CartSvc))
	authorized.GET("/cart", getCartHandler(deps.CartSvc))
	authorized.PATCH("/cartupdate/:id", incrementHandler(deps.CartSvc))
	authorized.PATCH("/cartremove/:id", decrementHandler(deps.CartSvc))
	authorized.POST("/placeorder", placeOrderHandler(deps.CartSvc))
	authorized.GET("/history", historyHandler(deps.CartSvc))
	authorized.GET("/order/:id", orderHandler(deps.CartSvc))

	return router, nil
}
