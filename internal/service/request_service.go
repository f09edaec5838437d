package service

import (
	"context"
	"fmt"

	"github.com/iliyamo/music-request-api/internal/model"
	"github.com/iliyamo/music-request-api/internal/queue"
	"github.com/iliyamo/music-request-api/internal/repository"
)

// CreateRequestInput is the body of a new song request.  Status, reason and
// votes are optional and default to pending, null and 0.
type CreateRequestInput struct {
	Title               string  `json:"title"`
	Artist              string  `json:"artist"`
	RequestorName       string  `json:"requestor_name"`
	Status              *string `json:"status"`
	ApproveRejectReason *string `json:"approve_reject_reason"`
	Votes               *int    `json:"votes"`
}

type UpdateStatusInput struct {
	Status              *string `json:"status"`
	ApproveRejectReason *string `json:"approve_reject_reason"`
}

type UpdateVotesInput struct {
	IncVotes *int `json:"inc_votes"`
}

type RequestService struct {
	sessions *SessionService
	repo     *repository.SessionRepo
	requests *repository.RequestRepo
	events   EventPublisher
}

func NewRequestService(sessions *SessionService, requests *repository.RequestRepo, events EventPublisher) *RequestService {
	return &RequestService{sessions: sessions, repo: sessions.sessions, requests: requests, events: events}
}

// ListBySession reports "Session not found" before "Session has no requests".
func (s *RequestService) ListBySession(ctx context.Context, sessionID uint64) ([]*model.Request, error) {
	if _, err := s.repo.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.requests.ListBySession(ctx, sessionID)
}

// ListForLiveSession lists the requests of the user's live session.
func (s *RequestService) ListForLiveSession(ctx context.Context, userID uint64) ([]*model.Request, error) {
	live, err := s.sessions.GetLive(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.requests.ListBySession(ctx, live.ID)
}

// Create validates the body before touching the store, then checks that the
// session exists.
func (s *RequestService) Create(ctx context.Context, sessionID uint64, in CreateRequestInput) (*model.Request, error) {
	if in.Title == "" || in.Artist == "" || in.RequestorName == "" {
		return nil, ErrInvalidRequestBody
	}
	if _, err := s.repo.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}

	rq := &model.Request{
		SessionID:           sessionID,
		Title:               in.Title,
		Artist:              in.Artist,
		RequestorName:       in.RequestorName,
		Status:              model.RequestStatusPending,
		ApproveRejectReason: nonEmpty(in.ApproveRejectReason),
	}
	if in.Status != nil && *in.Status != "" {
		rq.Status = *in.Status
	}
	if in.Votes != nil {
		rq.Votes = *in.Votes
	}

	created, err := s.requests.Create(ctx, rq)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	ev := queue.NewActivityEvent(queue.EventRequestCreated,
		fmt.Sprintf("%q by %s requested by %s", created.Title, created.Artist, created.RequestorName))
	ev.SessionID, ev.RequestID = created.SessionID, created.ID
	publish(ctx, s.events, ev)
	return created, nil
}

// UpdateStatus sets the status and replaces the reason; an absent or empty
// reason clears it.  The status value itself is not checked against the
// known statuses.
func (s *RequestService) UpdateStatus(ctx context.Context, id uint64, in UpdateStatusInput) (*model.Request, error) {
	if in.Status == nil || *in.Status == "" {
		return nil, ErrInvalidStatusUpdate
	}
	if _, err := s.requests.GetByID(ctx, id); err != nil {
		return nil, err
	}
	updated, err := s.requests.UpdateStatus(ctx, id, *in.Status, nonEmpty(in.ApproveRejectReason))
	if err != nil {
		return nil, err
	}
	ev := queue.NewActivityEvent(queue.EventRequestStatusUpdated,
		fmt.Sprintf("%q is now %s", updated.Title, updated.Status))
	ev.SessionID, ev.RequestID = updated.SessionID, updated.ID
	publish(ctx, s.events, ev)
	return updated, nil
}

// UpdateVotes adds in.IncVotes, which may be negative, to the vote total.
func (s *RequestService) UpdateVotes(ctx context.Context, id uint64, in UpdateVotesInput) (*model.Request, error) {
	if in.IncVotes == nil {
		return nil, ErrInvalidVoteIncrement
	}
	if _, err := s.requests.GetByID(ctx, id); err != nil {
		return nil, err
	}
	updated, err := s.requests.IncrementVotes(ctx, id, *in.IncVotes)
	if err != nil {
		return nil, err
	}
	ev := queue.NewActivityEvent(queue.EventRequestVotesUpdated,
		fmt.Sprintf("%q now has %d votes", updated.Title, updated.Votes))
	ev.SessionID, ev.RequestID = updated.SessionID, updated.ID
	publish(ctx, s.events, ev)
	return updated, nil
}

// Delete removes the request and its comments.
func (s *RequestService) Delete(ctx context.Context, id uint64) (*model.Request, error) {
	deleted, err := s.requests.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ev := queue.NewActivityEvent(queue.EventRequestDeleted, fmt.Sprintf("%q removed", deleted.Title))
	ev.SessionID, ev.RequestID = deleted.SessionID, deleted.ID
	publish(ctx, s.events, ev)
	return deleted, nil
}

// DeleteAllInSession clears every request of the session but keeps the
// session itself.
func (s *RequestService) DeleteAllInSession(ctx context.Context, sessionID uint64) ([]*model.Request, error) {
	deleted, err := s.requests.DeleteAllInSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ev := queue.NewActivityEvent(queue.EventSessionRequestsClear, fmt.Sprintf("%d requests cleared", len(deleted)))
	ev.SessionID = sessionID
	publish(ctx, s.events, ev)
	return deleted, nil
}

// nonEmpty maps nil and "" to nil.
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
