package handler

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed endpoints.json
var endpointsJSON []byte

// Endpoints serves GET /api: a description of every route of the API.
func Endpoints(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"endpoints": json.RawMessage(endpointsJSON)})
}
