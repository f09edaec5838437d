package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/music-request-api/internal/service"
)

// CommentHandler serves the /api/comments routes.
type CommentHandler struct {
	Comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	if comments == nil {
		panic("nil service passed to NewCommentHandler")
	}
	return &CommentHandler{Comments: comments}
}

// UpdatePinned handles PATCH /api/comments/:id/pinned.
func (h *CommentHandler) UpdatePinned(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body service.UpdatePinnedInput
	if err := bindBody(c, &body, service.ErrInvalidPinnedUpdate); err != nil {
		return err
	}
	comment, err := h.Comments.UpdatePinned(c.Request().Context(), id, body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"comment": comment})
}

func (h *CommentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if _, err := h.Comments.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
