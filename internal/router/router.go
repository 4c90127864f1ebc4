package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"wishlist/internal/config"
	"wishlist/internal/handler"
	"wishlist/internal/session"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessions session.Store,
	authHandler *handler.AuthHandler,
	itemHandler *handler.ItemHandler,
	apiAuthHandler *handler.APIAuthHandler,
	apiItemHandler *handler.APIItemHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// HTML surface, public
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/items")
	})
	e.GET("/register", authHandler.ShowRegister)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.ShowLogin)
	e.POST("/loginUser", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.GET("/errorPage", itemHandler.ErrorPage)

	// HTML surface, session required
	authed := e.Group("", session.RequireSession(sessions))
	authed.GET("/items", itemHandler.List)
	authed.GET("/addForm", itemHandler.ShowAddForm)
	authed.POST("/create", itemHandler.Create)
	authed.GET("/edit/:id", itemHandler.ShowEditForm)
	authed.POST("/update/:id", itemHandler.Update)
	authed.GET("/delete/:id", itemHandler.Delete)

	// JSON API
	api := e.Group("/api")

	api.POST("/auth/register", apiAuthHandler.Register)
	api.POST("/auth/login", apiAuthHandler.Login)
	api.POST("/auth/refresh", apiAuthHandler.Refresh)
	api.POST("/auth/logout", apiAuthHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.GET("/items", apiItemHandler.List)
	secured.POST("/items", apiItemHandler.Create)
	secured.GET("/items/:id", apiItemHandler.Get)
	secured.PUT("/items/:id", apiItemHandler.Update)
	secured.DELETE("/items/:id", apiItemHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
