package handler

import (
	"github.com/labstack/echo/v4"

	"userapi/internal/auth"
	"userapi/internal/model"
)

// Keys under which the bearer gate stores the resolved identity in the echo context.
const (
	ContextKeyUser   = "auth_user"
	ContextKeyClaims = "auth_claims"
)

// SetIdentity records the authenticated caller for the rest of the request.
func SetIdentity(c echo.Context, user *model.User, claims *auth.Claims) {
	c.Set(ContextKeyUser, user)
	c.Set(ContextKeyClaims, claims)
}

// CurrentUser returns the user resolved by the bearer gate.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(ContextKeyUser).(*model.User)
	return user, ok && user != nil
}

// CurrentClaims returns the claims of the token presented on this request.
func CurrentClaims(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(ContextKeyClaims).(*auth.Claims)
	return claims, ok && claims != nil
}
