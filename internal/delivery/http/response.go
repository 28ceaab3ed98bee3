package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"moneytrail/internal/domain"
	"moneytrail/internal/finance"
	"moneytrail/internal/logger"
)

// Response represents a standardized API response
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// SuccessResponse sends a success response
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{
		Status: "success",
		Data:   data,
	})
}

// CreatedResponse sends a 201 Created response
func CreatedResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{
		Status: "success",
		Data:   data,
	})
}

// ErrorResponse sends an error response
func ErrorResponse(c echo.Context, statusCode int, message string, err interface{}) error {
	return c.JSON(statusCode, Response{
		Status:  "error",
		Message: message,
		Error:   err,
	})
}

// BadRequestResponse sends a 400 Bad Request response
func BadRequestResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusBadRequest, message, nil)
}

// UnauthorizedResponse sends a 401 Unauthorized response
func UnauthorizedResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusUnauthorized, message, nil)
}

// NotFoundResponse sends a 404 Not Found response
func NotFoundResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusNotFound, message, nil)
}

// ValidationErrorResponse sends a 400 response listing every rejected field
func ValidationErrorResponse(c echo.Context, verr *finance.ValidationError) error {
	return ErrorResponse(c, http.StatusBadRequest, "Validation failed", verr.Fields)
}

// InternalServerErrorResponse logs err and sends a generic 500 response
func InternalServerErrorResponse(c echo.Context, message string, err error) error {
	log := logger.FromContext(c.Request().Context())
	log.Error().Err(err).Str("path", c.Path()).Msg(message)
	return ErrorResponse(c, http.StatusInternalServerError, message, "Something went wrong")
}

// FailureResponse maps a service error to the matching response
func FailureResponse(c echo.Context, message string, err error) error {
	var verr *finance.ValidationError
	switch {
	case errors.As(err, &verr):
		return ValidationErrorResponse(c, verr)
	case errors.Is(err, domain.ErrNotFound):
		return NotFoundResponse(c, "Financial record not found")
	case errors.Is(err, finance.ErrUnknownField):
		return BadRequestResponse(c, err.Error())
	default:
		return InternalServerErrorResponse(c, message, err)
	}
}
