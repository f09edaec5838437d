package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/music-request-api/internal/service"
)

// RequestHandler serves the /api/requests routes.
type RequestHandler struct {
	Requests *service.RequestService
	Comments *service.CommentService
}

func NewRequestHandler(requests *service.RequestService, comments *service.CommentService) *RequestHandler {
	if requests == nil || comments == nil {
		panic("nil service passed to NewRequestHandler")
	}
	return &RequestHandler{Requests: requests, Comments: comments}
}

func (h *RequestHandler) ListComments(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	comments, err := h.Comments.ListByRequest(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"comments": comments})
}

// CreateComment handles POST /api/requests/:id/comments.
func (h *RequestHandler) CreateComment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body service.CreateCommentInput
	if err := bindBody(c, &body, service.ErrInvalidCommentBody); err != nil {
		return err
	}
	comment, err := h.Comments.Create(c.Request().Context(), id, body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"comment": comment})
}

// UpdateStatus handles PATCH /api/requests/:id/status.
func (h *RequestHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body service.UpdateStatusInput
	if err := bindBody(c, &body, service.ErrInvalidStatusUpdate); err != nil {
		return err
	}
	request, err := h.Requests.UpdateStatus(c.Request().Context(), id, body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"request": request})
}

// UpdateVotes handles PATCH /api/requests/:id/votes.
func (h *RequestHandler) UpdateVotes(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body service.UpdateVotesInput
	if err := bindBody(c, &body, service.ErrInvalidVoteIncrement); err != nil {
		return err
	}
	request, err := h.Requests.UpdateVotes(c.Request().Context(), id, body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"request": request})
}

func (h *RequestHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if _, err := h.Requests.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
