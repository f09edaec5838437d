package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/iliyamo/music-request-api/internal/model"
	"github.com/iliyamo/music-request-api/internal/queue"
	"github.com/iliyamo/music-request-api/internal/repository"
)

// CreateCommentInput is the body of a new comment.  Role defaults to "user"
// and Pinned to false.  Pinned stays raw so that an explicit null can be
// told apart from an omitted field.
type CreateCommentInput struct {
	Comment string          `json:"comment"`
	Author  string          `json:"author"`
	Role    *string         `json:"role"`
	Pinned  json.RawMessage `json:"pinned"`
}

// pinned returns the supplied flag, false when omitted, and ok=false for
// anything that is not a JSON boolean.
func (in CreateCommentInput) pinned() (v, ok bool) {
	switch string(bytes.TrimSpace(in.Pinned)) {
	case "":
		return false, true
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

type UpdatePinnedInput struct {
	Pinned *bool `json:"pinned"`
}

type CommentService struct {
	sessions *repository.SessionRepo
	requests *repository.RequestRepo
	comments *repository.CommentRepo
	events   EventPublisher
}

func NewCommentService(sessions *repository.SessionRepo, requests *repository.RequestRepo, comments *repository.CommentRepo, events EventPublisher) *CommentService {
	return &CommentService{sessions: sessions, requests: requests, comments: comments, events: events}
}

func (s *CommentService) ListBySession(ctx context.Context, sessionID uint64) ([]*model.Comment, error) {
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.comments.ListBySession(ctx, sessionID)
}

func (s *CommentService) ListByRequest(ctx context.Context, requestID uint64) ([]*model.Comment, error) {
	if _, err := s.requests.GetByID(ctx, requestID); err != nil {
		return nil, err
	}
	return s.comments.ListByRequest(ctx, requestID)
}

func (s *CommentService) Create(ctx context.Context, requestID uint64, in CreateCommentInput) (*model.Comment, error) {
	pinned, ok := in.pinned()
	if !ok || in.Comment == "" || in.Author == "" {
		return nil, ErrInvalidCommentBody
	}
	parent, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	c := &model.Comment{
		RequestID: requestID,
		Comment:   in.Comment,
		Author:    in.Author,
		Role:      model.CommentRoleUser,
		Pinned:    pinned,
	}
	if in.Role != nil && *in.Role != "" {
		c.Role = *in.Role
	}

	created, err := s.comments.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	ev := queue.NewActivityEvent(queue.EventCommentCreated, fmt.Sprintf("%s commented on %q", created.Author, parent.Title))
	ev.SessionID, ev.RequestID, ev.CommentID = parent.SessionID, parent.ID, created.ID
	publish(ctx, s.events, ev)
	return created, nil
}

func (s *CommentService) UpdatePinned(ctx context.Context, id uint64, in UpdatePinnedInput) (*model.Comment, error) {
	if in.Pinned == nil {
		return nil, ErrInvalidPinnedUpdate
	}
	if _, err := s.comments.GetByID(ctx, id); err != nil {
		return nil, err
	}
	updated, err := s.comments.UpdatePinned(ctx, id, *in.Pinned)
	if err != nil {
		return nil, err
	}
	ev := queue.NewActivityEvent(queue.EventCommentPinned, fmt.Sprintf("pinned=%t", updated.Pinned))
	ev.RequestID, ev.CommentID = updated.RequestID, updated.ID
	publish(ctx, s.events, ev)
	return updated, nil
}

func (s *CommentService) Delete(ctx context.Context, id uint64) (*model.Comment, error) {
	deleted, err := s.comments.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ev := queue.NewActivityEvent(queue.EventCommentDeleted, "")
	ev.RequestID, ev.CommentID = deleted.RequestID, deleted.ID
	publish(ctx, s.events, ev)
	return deleted, nil
}
