package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/music-request-api/internal/model"
)

const userColumns = "id, display_name, pin_hash, session_count, session_limit, created_at"

type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

func scanUser(s scanner) (*model.User, error) {
	u := new(model.User)
	if err := s.Scan(&u.ID, &u.DisplayName, &u.PINHash, &u.SessionCount, &u.SessionLimit, &u.CreatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

// ListAll returns every user ordered by id.  An empty table yields an empty
// slice.
func (r *UserRepo) ListAll(ctx context.Context) ([]*model.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single user.  It returns ErrUserNotFound when no row matches.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
