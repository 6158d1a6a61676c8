package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"userapi/internal/model"
	"userapi/internal/service"
)

// UserHandler bundles HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUserRequest is the body of POST /user.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateUserRequest is the body of PUT /user/{id}.
type UpdateUserRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
}

// UpdatePasswordRequest is the body of PUT /user-password/{id}.
type UpdatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// UserListResponse wraps one page of users.
type UserListResponse struct {
	Status bool                   `json:"status"`
	Users  model.Page[model.User] `json:"users"`
}

// UserShowResponse wraps a single user. The field is named "users" on purpose.
type UserShowResponse struct {
	Status bool        `json:"status"`
	Users  *model.User `json:"users"`
}

// UserWriteResponse is returned by every successful mutation.
type UserWriteResponse struct {
	Status  bool        `json:"status"`
	User    *model.User `json:"user"`
	Message string      `json:"message"`
}

// ListUsers godoc
// @Summary List users, newest first, 40 per page
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Success 200 {object} UserListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /user [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	users, total, err := h.svc.ListUsers(c.Request().Context(), page)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, UserListResponse{
		Status: true,
		Users:  model.NewPage(users, page, service.PageSize, total, pagePath(c)),
	})
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} UserShowResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(err)
	}
	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, UserShowResponse{Status: true, Users: user})
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body CreateUserRequest true "User payload"
// @Success 201 {object} UserWriteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /user [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.svc.CreateUser(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, UserWriteResponse{
		Status:  true,
		User:    user,
		Message: "Usuário cadastrado com sucesso!",
	})
}

// UpdateUser godoc
// @Summary Update user name and email
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param user body UpdateUserRequest true "User payload"
// @Success 200 {object} UserWriteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /user/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(err)
	}
	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.svc.UpdateUser(c.Request().Context(), id, req.Name, req.Email)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, UserWriteResponse{
		Status:  true,
		User:    user,
		Message: "Usuário editado com sucesso!",
	})
}

// UpdatePassword godoc
// @Summary Update user password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param password body UpdatePasswordRequest true "New password"
// @Success 200 {object} UserWriteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /user-password/{id} [put]
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(err)
	}
	var req UpdatePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.svc.UpdatePassword(c.Request().Context(), id, req.Password)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, UserWriteResponse{
		Status:  true,
		User:    user,
		Message: "Senha editada com sucesso!",
	})
}

// DeleteUser godoc
// @Summary Delete user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} UserWriteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(err)
	}
	user, err := h.svc.DeleteUser(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, UserWriteResponse{
		Status:  true,
		User:    user,
		Message: "Usuário apagado com sucesso!",
	})
}
