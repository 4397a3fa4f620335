package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"contactapp/internal/auth"
	"contactapp/internal/config"
	apperrors "contactapp/internal/errors"
	"contactapp/internal/handler"
	"contactapp/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokens *auth.TokenService,
	userService service.UserService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	contactHandler *handler.ContactHandler,
	healthHandler *handler.HealthHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Use(banIPs(cfg.BannedIPs))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	api.GET("/healthchecker", healthHandler.Check)

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.GET("/auth/verified_email/:token", authHandler.VerifyEmail)
	api.POST("/auth/request_email", authHandler.RequestEmail)
	api.POST("/auth/request_password_reset", authHandler.RequestPasswordReset)
	api.POST("/auth/reset_password", authHandler.ResetPassword)

	// Secured routes: bearer token decoded with the access scope, then the
	// identity resolved through the cache-aside lookup.
	secured := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
				email, err := tokens.Decode(tokenString, auth.ScopeAccess)
				if err != nil {
					return nil, err
				}
				return email, nil
			},
		}),
		resolveIdentity(userService),
	)

	users := secured.Group("/users", rateLimit())
	users.GET("/me", userHandler.Me)
	users.PATCH("/avatar", userHandler.UpdateAvatar)

	contacts := secured.Group("/contacts")
	contacts.GET("", contactHandler.List)
	contacts.GET("/birthdays", contactHandler.Birthdays)
	contacts.GET("/:id", contactHandler.Get)
	contacts.POST("", contactHandler.Create)
	contacts.PATCH("/:id", contactHandler.Update)
	contacts.DELETE("/:id", contactHandler.Delete)
}

// resolveIdentity turns the validated token subject into a full user record.
// A subject with no matching user gets the same 401 as a bad token.
func resolveIdentity(userService service.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, ok := c.Get("user").(string)
			if !ok || email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}
			user, err := userService.CurrentUser(c.Request().Context(), email)
			if err != nil {
				if err == apperrors.ErrUserNotFound {
					return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
			}
			handler.SetCurrentUser(c, user)
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
