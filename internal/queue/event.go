// Package queue defines the activity messages exchanged over the message
// broker, the publisher that emits them and the background consumer that
// records them.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// ActivityQueueName is the durable queue carrying ActivityEvent messages.
const ActivityQueueName = "song_requests.activity"

// Activity event types, one per successful mutation.
const (
	EventRequestCreated       = "request.created"
	EventRequestStatusUpdated = "request.status_updated"
	EventRequestVotesUpdated  = "request.votes_updated"
	EventRequestDeleted       = "request.deleted"
	EventSessionRequestsClear = "session.requests_cleared"
	EventSessionDeleted       = "session.deleted"
	EventCommentCreated       = "comment.created"
	EventCommentPinned        = "comment.pinned"
	EventCommentDeleted       = "comment.deleted"
)

// ActivityEvent is published after a mutation has been committed.  It
// contains enough information for downstream consumers to log, notify or
// trigger analytics without querying the primary database.  Ids that do not
// apply to the event type are left zero and omitted.
type ActivityEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	SessionID  uint64    `json:"session_id,omitempty"`
	RequestID  uint64    `json:"request_id,omitempty"`
	CommentID  uint64    `json:"comment_id,omitempty"`
	Summary    string    `json:"summary"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewActivityEvent stamps a fresh event with a random id and the current
// UTC time.
func NewActivityEvent(typ, summary string) ActivityEvent {
	return ActivityEvent{
		ID:         uuid.NewString(),
		Type:       typ,
		Summary:    summary,
		OccurredAt: time.Now().UTC(),
	}
}
