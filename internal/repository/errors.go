// Package repository contains data access logic separated from HTTP handlers.
// Every lookup that can miss returns one of the NotFound sentinels below;
// their messages are returned to API clients verbatim.  Listing methods
// treat an empty result as a miss, so callers never receive an empty slice
// together with a nil error.
package repository

import (
	"database/sql"

	"github.com/iliyamo/music-request-api/internal/apperr"
)

var (
	ErrUserNotFound         = apperr.NotFound("User not found")
	ErrNoLiveSession        = apperr.NotFound("User has no live session")
	ErrSessionNotFound      = apperr.NotFound("Session not found")
	ErrSessionHasNoRequests = apperr.NotFound("Session has no requests")
	ErrSessionHasNoComments = apperr.NotFound("Session has no comments")
	ErrRequestNotFound      = apperr.NotFound("Request not found")
	ErrRequestHasNoComments = apperr.NotFound("Request has no comments")
	ErrCommentNotFound      = apperr.NotFound("Comment not found")
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// finishTx commits when *errp is nil and rolls back otherwise.  A failed
// commit is reported through errp.
func finishTx(tx *sql.Tx, errp *error) {
	if *errp != nil {
		_ = tx.Rollback()
		return
	}
	*errp = tx.Commit()
}
