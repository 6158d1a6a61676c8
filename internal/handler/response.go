package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "userapi/internal/errors"
)

// fail renders err through the domain error mapping.
func fail(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// invalidPayload renders a 422 with one message per offending field.
func invalidPayload(err error) error {
	return echo.NewHTTPError(http.StatusUnprocessableEntity, apperrors.ErrorResponse{
		Status:  false,
		Message: apperrors.MessageInvalidPayload,
		Errors:  fieldErrors(err),
	})
}

// bindAndValidate decodes the body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Status:  false,
			Message: apperrors.MessageInvalidPayload,
		})
	}
	if err := c.Validate(req); err != nil {
		return invalidPayload(err)
	}
	return nil
}

// parseID reads the :id path parameter. Anything that is not a positive integer cannot name a user.
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ErrUserNotFound
	}
	return uint(id), nil
}

func fieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	field := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("O campo %s é obrigatório.", field)
	case "email":
		return fmt.Sprintf("O campo %s deve ser um endereço de e-mail válido.", field)
	case "min":
		return fmt.Sprintf("O campo %s deve ter pelo menos %s caracteres.", field, fe.Param())
	case "max":
		return fmt.Sprintf("O campo %s não pode ter mais de %s caracteres.", field, fe.Param())
	default:
		return fmt.Sprintf("O campo %s é inválido.", field)
	}
}

var fieldLabels = map[string]string{
	"name":     "nome",
	"email":    "e-mail",
	"password": "senha",
}

func fieldLabel(field string) string {
	if label, ok := fieldLabels[strings.ToLower(field)]; ok {
		return label
	}
	return field
}

// pagePath is the absolute listing URL used for paginator links.
func pagePath(c echo.Context) string {
	return c.Scheme() + "://" + c.Request().Host + c.Request().URL.Path
}
