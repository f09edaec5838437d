package model

import "time"

// Request statuses.  New requests start as pending and are moderated by
// the session owner.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// Request is a song request submitted within a session.
//
// Fields:
//  ID                  – primary key identifier.
//  SessionID           – session the request was made in.
//  Title, Artist       – the song being requested.
//  RequestorName       – name of the attendee who asked for it.
//  Status              – pending, approved or rejected.
//  ApproveRejectReason – optional moderation note (nil when unset).
//  Votes               – running vote total; may go negative.
//  CreatedAt/UpdatedAt – timestamps maintained by the store.
type Request struct {
	ID                  uint64    `json:"id"`                    // requests.id
	SessionID           uint64    `json:"session_id"`            // requests.session_id
	Title               string    `json:"title"`                 // requests.title
	Artist              string    `json:"artist"`                // requests.artist
	RequestorName       string    `json:"requestor_name"`        // requests.requestor_name
	Status              string    `json:"status"`                // requests.status
	ApproveRejectReason *string   `json:"approve_reject_reason"` // requests.approve_reject_reason (nullable)
	Votes               int       `json:"votes"`                 // requests.votes
	CreatedAt           time.Time `json:"created_at"`            // requests.created_at
	UpdatedAt           time.Time `json:"updated_at"`            // requests.updated_at
}
