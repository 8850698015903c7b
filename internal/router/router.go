package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	"firesafe/internal/auth"
	"firesafe/internal/handler"
)

// CustomValidator adapts go-playground/validator to echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the given struct.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Handlers bundles everything Register wires up.
type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Order   *handler.OrderHandler
	Address *handler.AddressHandler
	Review  *handler.ReviewHandler
	User    *handler.UserHandler
	Reset   *handler.PasswordResetHandler
	Payment *handler.PaymentHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, db *gorm.DB, jwts *auth.JWTService, h Handlers) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = envelopeErrorHandler

	health := healthCheck(db)
	e.GET("/health", health)
	e.GET("/healthz", health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	required := auth.Required(jwts)
	optional := auth.Optional(jwts)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/products", h.Product.List)
	api.GET("/products/categories", h.Product.Categories)
	api.GET("/products/:id", h.Product.Get)
	api.GET("/reviews/product/:id", h.Review.ListByProduct)
	api.POST("/password-reset/request", h.Reset.Request)
	api.POST("/password-reset/validate", h.Reset.Validate)
	api.POST("/password-reset/reset", h.Reset.Reset)

	// The gateway posts here without a token; checkout decodes the caller
	// when one is present.
	api.POST("/payment/checkout", h.Payment.Checkout, optional)
	api.POST("/payment/callback", h.Payment.Callback)

	// Authenticated routes
	api.GET("/auth/profile", h.Auth.GetProfile, required)
	api.PUT("/auth/profile", h.Auth.UpdateProfile, required)

	orders := api.Group("/orders", required)
	orders.POST("", h.Order.Create)
	orders.GET("", h.Order.ListMine)
	orders.GET("/my-orders", h.Order.ListMine)
	orders.GET("/all", h.Order.ListAll, auth.AdminOnly)
	orders.GET("/stats", h.Order.Stats, auth.AdminOnly)
	orders.GET("/:id", h.Order.Get)
	orders.PUT("/:id/status", h.Order.UpdateStatus, auth.AdminOnly)

	addresses := api.Group("/addresses", required)
	addresses.GET("", h.Address.List)
	addresses.POST("", h.Address.Create)
	addresses.PUT("/:id", h.Address.Update)
	addresses.DELETE("/:id", h.Address.Delete)

	reviews := api.Group("/reviews", required)
	reviews.POST("", h.Review.Create)
	reviews.PUT("/:id", h.Review.Update)
	reviews.DELETE("/:id", h.Review.Delete)

	// Admin-only surfaces
	api.POST("/products", h.Product.Create, required, auth.AdminOnly)
	api.PUT("/products/:id", h.Product.Update, required, auth.AdminOnly)
	api.DELETE("/products/:id", h.Product.Delete, required, auth.AdminOnly)

	users := api.Group("/users", required, auth.AdminOnly)
	users.GET("", h.User.List)
	users.GET("/stats", h.User.Stats)
	users.GET("/:id", h.User.Get)
	users.PUT("/:id/toggle-admin", h.User.ToggleAdmin)
	users.DELETE("/:id", h.User.Delete)
}

// envelopeErrorHandler renders every error in the response envelope.
func envelopeErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, handler.Response{Success: false, Message: message})
}

func healthCheck(db *gorm.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request().Context())
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unreachable")
		}
		return c.JSON(http.StatusOK, handler.Response{Success: true, Message: "ok"})
	}
}
