package service

import (
	"context"
	"fmt"

	"github.com/iliyamo/music-request-api/internal/model"
	"github.com/iliyamo/music-request-api/internal/queue"
	"github.com/iliyamo/music-request-api/internal/repository"
)

type SessionService struct {
	users    *repository.UserRepo
	sessions *repository.SessionRepo
	events   EventPublisher
}

func NewSessionService(users *repository.UserRepo, sessions *repository.SessionRepo, events EventPublisher) *SessionService {
	return &SessionService{users: users, sessions: sessions, events: events}
}

// ListByUser answers "User not found" both for unknown users and for users
// without any session.
func (s *SessionService) ListByUser(ctx context.Context, userID uint64) ([]*model.Session, error) {
	return s.sessions.ListByUser(ctx, userID)
}

// GetLive resolves the user first so that an unknown user is reported as
// such rather than as having no live session.
func (s *SessionService) GetLive(ctx context.Context, userID uint64) (*model.Session, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.sessions.GetLiveByUser(ctx, userID)
}

// Delete removes the session with all of its requests and comments.
func (s *SessionService) Delete(ctx context.Context, id uint64) (*model.Session, error) {
	deleted, err := s.sessions.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ev := queue.NewActivityEvent(queue.EventSessionDeleted, fmt.Sprintf("session %d of user %d deleted", deleted.ID, deleted.UserID))
	ev.SessionID = deleted.ID
	publish(ctx, s.events, ev)
	return deleted, nil
}
