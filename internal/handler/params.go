package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// pathID parses the ":id" path parameter.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}

// bindBody decodes the JSON body into dst.  Any decoding problem, such as a
// string where a boolean is expected, is reported as onErr.  Path and query
// parameters are deliberately not bound.
func bindBody(c echo.Context, dst any, onErr error) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return onErr
	}
	return nil
}
