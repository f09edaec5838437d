package model

import "time"

// User represents a DJ account as stored in the `users` table.  Users own
// sessions.  The PIN is only ever stored as a bcrypt hash and is never
// serialized in API responses.
//
// Fields:
//  ID           – primary key identifier of the user.
//  DisplayName  – unique public name.
//  PINHash      – bcrypt hash of the six digit PIN.
//  SessionCount – number of sessions the user has run.
//  SessionLimit – maximum number of sessions allowed (default 30).
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    `json:"id"`            // users.id
	DisplayName  string    `json:"display_name"`  // users.display_name
	PINHash      string    `json:"-"`             // users.pin_hash
	SessionCount int       `json:"session_count"` // users.session_count
	SessionLimit int       `json:"session_limit"` // users.session_limit
	CreatedAt    time.Time `json:"created_at"`    // users.created_at
}
