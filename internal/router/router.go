package router

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"matchmaker/internal/config"
	"matchmaker/internal/handler"
	"matchmaker/internal/identity"
	"matchmaker/internal/metrics"
	"matchmaker/internal/repository"
	"matchmaker/internal/session"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	logger zerolog.Logger,
	m *metrics.Metrics,
	sessions *session.Manager,
	users repository.UserRepository,
	pageHandler *handler.PageHandler,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	projectHandler *handler.ProjectHandler,
	apiHandler *handler.APIHandler,
) {
	e.Validator = NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler

	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(m.Middleware())
	e.Use(middleware.Recover())
	if cfg.CSRFEnabled {
		e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
			Skipper: func(c echo.Context) bool {
				return isAPIPath(c.Request().URL.Path)
			},
			TokenLookup:    "form:csrf_token",
			CookieName:     "_csrf",
			CookiePath:     "/",
			CookieHTTPOnly: true,
			CookieSecure:   cfg.CookieSecure,
			CookieSameSite: http.SameSiteLaxMode,
		}))
	}
	e.Use(sessions.Middleware())
	e.Use(identity.Resolver(sessions, users))

	if cfg.StaticDir != "" {
		e.Static("/static", cfg.StaticDir)
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Pages
	e.GET("/", pageHandler.Landing)
	e.GET("/search", pageHandler.Search)

	e.GET("/profile/new", authHandler.SignupPage)
	e.POST("/profile/new", authHandler.Signup)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)
	e.GET("/guest", authHandler.GuestPage)
	e.POST("/guest", authHandler.Guest)

	e.GET("/profile/edit", profileHandler.EditPage)
	e.POST("/profile/edit", profileHandler.Edit)
	e.POST("/profile/delete/:user_id", profileHandler.Delete)

	e.GET("/project/new", projectHandler.NewPage)
	e.POST("/project/new", projectHandler.Create)
	e.GET("/project/:id", projectHandler.Detail)
	e.GET("/project/:id/edit", projectHandler.EditPage)
	e.POST("/project/:id/edit", projectHandler.Update)
	e.POST("/project/:id/delete", projectHandler.Delete)

	// JSON API
	api := e.Group("/api")
	if len(cfg.CORSAllowedOrigins) > 0 {
		api.Use(echo.WrapMiddleware(cors.New(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
			AllowCredentials: true,
		}).Handler))
	}
	api.GET("/geocode", apiHandler.Geocode)
	api.GET("/neighborhood", apiHandler.Neighborhood)
	api.GET("/tags", apiHandler.Tags)
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/")
}
