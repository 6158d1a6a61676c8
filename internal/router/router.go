package router

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"userapi/internal/auth"
	apperrors "userapi/internal/errors"
	"userapi/internal/handler"
	"userapi/internal/service"
)

// Register wires routes and middleware. Every API route is served both at the root and under /api.
func Register(
	e *echo.Echo,
	log *slog.Logger,
	metrics *Metrics,
	jwtService *auth.JWTService,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
) {
	e.HTTPErrorHandler = errorHandler(log)
	e.Validator = NewValidator()

	e.Use(middleware.RequestID())
	e.Use(requestLogger(log))
	if metrics != nil {
		e.Use(metrics.Middleware())
		e.GET("/metrics", metrics.Handler())
	}
	// Inside metrics so recovered panics are counted as 500s.
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableErrorHandler: true,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.ErrorContext(c.Request().Context(), "panic recovered", "error", err, "stack", string(stack))
			return err
		},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	gate := bearerGate(jwtService, authService, log)

	for _, api := range []*echo.Group{e.Group(""), e.Group("/api")} {
		// Public routes
		api.POST("/login", authHandler.Login)

		// Secured routes. The gate is attached per route so unknown paths still 404.
		api.POST("/logout", authHandler.Logout, gate...)
		api.GET("/me", authHandler.Me, gate...)

		api.GET("/user", userHandler.ListUsers, gate...)
		api.GET("/user/:id", userHandler.GetUser, gate...)
		api.POST("/user", userHandler.CreateUser, gate...)
		api.PUT("/user/:id", userHandler.UpdateUser, gate...)
		api.PUT("/user-password/:id", userHandler.UpdatePassword, gate...)
		api.DELETE("/user/:id", userHandler.DeleteUser, gate...)
	}
}

func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Status >= http.StatusInternalServerError {
				log.ErrorContext(c.Request().Context(), "request", append(attrs, "error", v.Error)...)
				return nil
			}
			log.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	})
}

// errorHandler renders every error, including echo's own 404/405, as the failure envelope.
func errorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := apperrors.ErrorResponse{Status: false, Message: apperrors.MessageInternal}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			switch msg := he.Message.(type) {
			case apperrors.ErrorResponse:
				body = msg
			case string:
				body.Message = msg
			}
		} else {
			log.ErrorContext(c.Request().Context(), "unhandled error", "error", err, "path", c.Path())
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.ErrorContext(c.Request().Context(), "write error response", "error", err)
		}
	}
}
