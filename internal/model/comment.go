package model

import "time"

// Default role for comment authors.
const CommentRoleUser = "user"

// Comment is a note attached to a request.  Comments are leaves of the
// ownership chain and can be pinned by the session owner.
type Comment struct {
	ID        uint64    `json:"id"`         // comments.id
	RequestID uint64    `json:"request_id"` // comments.request_id
	Comment   string    `json:"comment"`    // comments.comment
	Author    string    `json:"author"`     // comments.author
	Role      string    `json:"role"`       // comments.role
	Pinned    bool      `json:"pinned"`     // comments.pinned
	CreatedAt time.Time `json:"created_at"` // comments.created_at
	UpdatedAt time.Time `json:"updated_at"` // comments.updated_at
}
