package model

import "time"

// Session is a request-taking event run by one user.  A live session is
// one that is currently accepting requests.
type Session struct {
	ID        uint64    `json:"id"`         // sessions.id
	UserID    uint64    `json:"user_id"`    // sessions.user_id
	IsLive    bool      `json:"is_live"`    // sessions.is_live
	CreatedAt time.Time `json:"created_at"` // sessions.created_at
}
