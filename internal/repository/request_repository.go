package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/music-request-api/internal/model"
)

const requestColumns = `id, session_id, title, artist, requestor_name, status,
	approve_reject_reason, votes, created_at, updated_at`

// RequestRepo encapsulates queries on the requests table.
type RequestRepo struct {
	db *sql.DB
}

func NewRequestRepo(db *sql.DB) *RequestRepo {
	return &RequestRepo{db: db}
}

func scanRequest(s scanner) (*model.Request, error) {
	var (
		rq     model.Request
		reason sql.NullString
	)
	if err := s.Scan(&rq.ID, &rq.SessionID, &rq.Title, &rq.Artist, &rq.RequestorName, &rq.Status,
		&reason, &rq.Votes, &rq.CreatedAt, &rq.UpdatedAt); err != nil {
		return nil, err
	}
	if reason.Valid {
		rq.ApproveRejectReason = &reason.String
	}
	return &rq, nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func listRequests(ctx context.Context, q queryer, sessionID uint64) ([]*model.Request, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT "+requestColumns+" FROM requests WHERE session_id = ? ORDER BY id", sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Request
	for rows.Next() {
		rq, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rq)
	}
	return out, rows.Err()
}

// ListBySession returns the requests of a session ordered by id, or
// ErrSessionHasNoRequests when there are none.  It does not check that the
// session itself exists.
func (r *RequestRepo) ListBySession(ctx context.Context, sessionID uint64) ([]*model.Request, error) {
	out, err := listRequests(ctx, r.db, sessionID)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrSessionHasNoRequests
	}
	return out, nil
}

// GetByID returns ErrRequestNotFound when the request does not exist.
func (r *RequestRepo) GetByID(ctx context.Context, id uint64) (*model.Request, error) {
	rq, err := scanRequest(r.db.QueryRowContext(ctx, "SELECT "+requestColumns+" FROM requests WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return rq, nil
}

// Create inserts rq and returns the stored row, including the generated id
// and timestamps.  Status, reason and votes are written as given; defaults
// are the caller's concern.
func (r *RequestRepo) Create(ctx context.Context, rq *model.Request) (*model.Request, error) {
	const q = `INSERT INTO requests
	           (session_id, title, artist, requestor_name, status, approve_reject_reason, votes)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		rq.SessionID, rq.Title, rq.Artist, rq.RequestorName, rq.Status, rq.ApproveRejectReason, rq.Votes)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	// follow-up SELECT picks up the store-assigned timestamps
	return r.GetByID(ctx, uint64(id))
}

// UpdateStatus sets the moderation status and reason.  A nil reason clears
// the column.
func (r *RequestRepo) UpdateStatus(ctx context.Context, id uint64, status string, reason *string) (*model.Request, error) {
	const q = `UPDATE requests
	           SET status = ?, approve_reject_reason = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, status, reason, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// IncrementVotes adds inc (which may be negative) to the vote total in a
// single statement, so concurrent votes are never lost.
func (r *RequestRepo) IncrementVotes(ctx context.Context, id uint64, inc int) (*model.Request, error) {
	const q = `UPDATE requests
	           SET votes = votes + ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, inc, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// DeleteByID removes a request and its comments in one transaction and
// returns the deleted request.
func (r *RequestRepo) DeleteByID(ctx context.Context, id uint64) (deleted *model.Request, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer finishTx(tx, &err)

	deleted, err = scanRequest(tx.QueryRowContext(ctx, "SELECT "+requestColumns+" FROM requests WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrRequestNotFound
		}
		return nil, err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM comments WHERE request_id = ?`, id); err != nil {
		return nil, err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM requests WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return deleted, nil
}

// DeleteAllInSession removes every request of a session together with
// their comments and returns the deleted requests.  The session itself is
// kept.  ErrSessionNotFound and ErrSessionHasNoRequests are checked inside
// the transaction, in that order.
func (r *RequestRepo) DeleteAllInSession(ctx context.Context, sessionID uint64) (deleted []*model.Request, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer finishTx(tx, &err)

	var one int
	if err = tx.QueryRowContext(ctx, `SELECT 1 FROM sessions WHERE id = ?`, sessionID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrSessionNotFound
		}
		return nil, err
	}
	if deleted, err = listRequests(ctx, tx, sessionID); err != nil {
		return nil, err
	}
	if len(deleted) == 0 {
		err = ErrSessionHasNoRequests
		return nil, err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM comments
		 WHERE request_id IN (SELECT id FROM requests WHERE session_id = ?)`, sessionID); err != nil {
		return nil, err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM requests WHERE session_id = ?`, sessionID); err != nil {
		return nil, err
	}
	return deleted, nil
}
