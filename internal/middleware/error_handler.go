package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/seatwise/floor-service/internal/dto"
	"github.com/seatwise/floor-service/pkg/logger"
)

// ErrorHandler renders every unhandled error as the dto.ErrorResponse
// envelope. Client errors carry their own message; anything 5xx is logged
// with its cause and reported generically.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error.Errorf("%s %s failed: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	_ = c.JSON(code, dto.ErrorResponse{Message: msg})
}
