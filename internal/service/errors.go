package service

import "github.com/iliyamo/music-request-api/internal/apperr"

// Body validation failures.  Messages are returned to clients verbatim.
var (
	ErrInvalidRequestBody   = apperr.InvalidInput("Invalid request body")
	ErrInvalidStatusUpdate  = apperr.InvalidInput("Invalid status update")
	ErrInvalidVoteIncrement = apperr.InvalidInput("Invalid vote increment")
	ErrInvalidCommentBody   = apperr.InvalidInput("Invalid comment body")
	ErrInvalidPinnedUpdate  = apperr.InvalidInput("Invalid pinned update")
)
