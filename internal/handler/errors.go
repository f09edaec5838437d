package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/music-request-api/internal/apperr"
)

// ErrInvalidID is returned when a path id is not an unsigned integer.
var ErrInvalidID = apperr.InvalidInput("Invalid id")

// ErrorHandler is installed as echo's HTTPErrorHandler.  Every failure body
// has the shape {"msg": "..."}.  Application failures keep their message,
// echo errors (unknown route, wrong method, ...) keep their status, and
// anything else is logged and answered with a generic 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, msg := http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	var he *echo.HTTPError
	if ae, ok := apperr.As(err); ok {
		status, msg = ae.Status(), ae.Msg
	} else if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		} else {
			msg = http.StatusText(he.Code)
		}
	}
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"err", err)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(status)
	} else {
		werr = c.JSON(status, echo.Map{"msg": msg})
	}
	if werr != nil {
		slog.Error("write error response", "err", werr)
	}
}
