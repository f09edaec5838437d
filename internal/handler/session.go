package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/music-request-api/internal/service"
)

// SessionHandler serves the /api/sessions routes.
type SessionHandler struct {
	Sessions *service.SessionService
	Requests *service.RequestService
	Comments *service.CommentService
}

func NewSessionHandler(sessions *service.SessionService, requests *service.RequestService, comments *service.CommentService) *SessionHandler {
	if sessions == nil || requests == nil || comments == nil {
		panic("nil service passed to NewSessionHandler")
	}
	return &SessionHandler{Sessions: sessions, Requests: requests, Comments: comments}
}

func (h *SessionHandler) ListRequests(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	requests, err := h.Requests.ListBySession(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"requests": requests})
}

func (h *SessionHandler) ListComments(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	comments, err := h.Comments.ListBySession(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"comments": comments})
}

// CreateRequest handles POST /api/sessions/:id/requests.
func (h *SessionHandler) CreateRequest(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body service.CreateRequestInput
	if err := bindBody(c, &body, service.ErrInvalidRequestBody); err != nil {
		return err
	}
	request, err := h.Requests.Create(c.Request().Context(), id, body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"request": request})
}

// Delete handles DELETE /api/sessions/:id.
func (h *SessionHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if _, err := h.Sessions.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteRequests handles DELETE /api/sessions/:id/requests.  The session
// itself is kept.
func (h *SessionHandler) DeleteRequests(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if _, err := h.Requests.DeleteAllInSession(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
