package router

import (
	"errors"
	"log/slog"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"userapi/internal/auth"
	apperrors "userapi/internal/errors"
	"userapi/internal/handler"
	"userapi/internal/service"
)

// bearerGate verifies the bearer token signature, then resolves it to a live user and
// stores the identity on the request before any handler runs.
func bearerGate(jwtService *auth.JWTService, authService service.AuthService, log *slog.Logger) []echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.ContextKeyClaims,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			log.WarnContext(c.Request().Context(), "token validation failed", "error", err, "path", c.Path())
			return unauthenticated()
		},
	})

	resolve := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := handler.CurrentClaims(c)
			if !ok {
				return unauthenticated()
			}
			user, err := authService.ResolveIdentity(c.Request().Context(), claims)
			if err != nil {
				if errors.Is(err, apperrors.ErrUnauthenticated) {
					log.WarnContext(c.Request().Context(), "token rejected", "user_id", claims.UserID, "path", c.Path())
					return unauthenticated()
				}
				return err
			}
			handler.SetIdentity(c, user, claims)
			return next(c)
		}
	}

	return []echo.MiddlewareFunc{verify, resolve}
}

func unauthenticated() error {
	httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthenticated)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
