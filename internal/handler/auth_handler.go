package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "userapi/internal/errors"
	"userapi/internal/model"
	"userapi/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Status bool        `json:"status"`
	Token  string      `json:"token"`
	User   *model.User `json:"user"`
}

// MessageResponse is a success envelope carrying only a message.
type MessageResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// MeResponse wraps the authenticated user.
type MeResponse struct {
	Status bool        `json:"status"`
	User   *model.User `json:"user"`
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 201 {object} LoginResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(apperrors.ErrInvalidCredentials)
	}
	if err := c.Validate(&req); err != nil {
		return fail(apperrors.ErrInvalidCredentials)
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusCreated, LoginResponse{
		Status: true,
		Token:  token,
		User:   user,
	})
}

// Logout godoc
// @Summary Revoke the presented bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := CurrentClaims(c)
	if !ok {
		return fail(apperrors.ErrUnauthenticated)
	}
	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{
		Status:  true,
		Message: "Logout realizado com sucesso.",
	})
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return fail(apperrors.ErrUnauthenticated)
	}
	return c.JSON(http.StatusOK, MeResponse{Status: true, User: user})
}
