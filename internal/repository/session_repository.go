package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/music-request-api/internal/model"
)

const sessionColumns = "id, user_id, is_live, created_at"

// SessionRepo encapsulates queries on the sessions table and the cascade
// that removes a session together with everything recorded in it.
type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func scanSession(s scanner) (*model.Session, error) {
	ss := new(model.Session)
	if err := s.Scan(&ss.ID, &ss.UserID, &ss.IsLive, &ss.CreatedAt); err != nil {
		return nil, err
	}
	return ss, nil
}

// ListByUser returns all sessions of a user ordered by id.  When the user
// has no sessions (or does not exist) ErrUserNotFound is returned.
func (r *SessionRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Session, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrUserNotFound
	}
	return out, nil
}

// GetLiveByUser returns the user's live session.  If several sessions are
// flagged live the one with the lowest id wins.
func (r *SessionRepo) GetLiveByUser(ctx context.Context, userID uint64) (*model.Session, error) {
	const q = "SELECT " + sessionColumns + ` FROM sessions
	           WHERE user_id = ? AND is_live = TRUE
	           ORDER BY id LIMIT 1`
	s, err := scanSession(r.db.QueryRowContext(ctx, q, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoLiveSession
		}
		return nil, err
	}
	return s, nil
}

// GetByID returns ErrSessionNotFound when the session does not exist.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (*model.Session, error) {
	s, err := scanSession(r.db.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s, nil
}

// DeleteByID removes a session, its requests and their comments in one
// transaction, children first, and returns the deleted session.  Nothing is
// touched when the session does not exist.
func (r *SessionRepo) DeleteByID(ctx context.Context, id uint64) (deleted *model.Session, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer finishTx(tx, &err)

	deleted, err = scanSession(tx.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrSessionNotFound
		}
		return nil, err
	}
	// comments of every request in the session
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM comments
		 WHERE request_id IN (SELECT id FROM requests WHERE session_id = ?)`, id); err != nil {
		return nil, err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM requests WHERE session_id = ?`, id); err != nil {
		return nil, err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return deleted, nil
}
