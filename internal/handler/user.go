package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/music-request-api/internal/service"
)

// UserHandler serves the /api/users routes.
type UserHandler struct {
	Users    *service.UserService
	Sessions *service.SessionService
	Requests *service.RequestService
}

// NewUserHandler panics if any dependency is nil.
func NewUserHandler(users *service.UserService, sessions *service.SessionService, requests *service.RequestService) *UserHandler {
	if users == nil || sessions == nil || requests == nil {
		panic("nil service passed to NewUserHandler")
	}
	return &UserHandler{Users: users, Sessions: sessions, Requests: requests}
}

// List handles GET /api/users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// Get handles GET /api/users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := h.Users.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// ListSessions handles GET /api/users/:id/sessions.
func (h *UserHandler) ListSessions(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	sessions, err := h.Sessions.ListByUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"sessions": sessions})
}

// LiveSession handles GET /api/users/:id/sessions/live.
func (h *UserHandler) LiveSession(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	session, err := h.Sessions.GetLive(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"session": session})
}

// LiveSessionRequests handles GET /api/users/:id/sessions/live/requests.
func (h *UserHandler) LiveSessionRequests(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	requests, err := h.Requests.ListForLiveSession(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"requests": requests})
}
