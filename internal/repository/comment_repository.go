package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/music-request-api/internal/model"
)

const commentColumns = "id, request_id, comment, author, role, pinned, created_at, updated_at"

// CommentRepo encapsulates queries on the comments table.  Comments are
// leaves, so deleting one never cascades.
type CommentRepo struct {
	db *sql.DB
}

func NewCommentRepo(db *sql.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

func scanComment(s scanner) (*model.Comment, error) {
	c := new(model.Comment)
	if err := s.Scan(&c.ID, &c.RequestID, &c.Comment, &c.Author, &c.Role, &c.Pinned, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CommentRepo) list(ctx context.Context, q string, arg uint64) ([]*model.Comment, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListBySession returns every comment on every request of the session,
// ordered by comment id.  ErrSessionHasNoComments when there are none.
func (r *CommentRepo) ListBySession(ctx context.Context, sessionID uint64) ([]*model.Comment, error) {
	const q = `SELECT c.id, c.request_id, c.comment, c.author, c.role, c.pinned, c.created_at, c.updated_at
	           FROM comments c
	           JOIN requests r ON r.id = c.request_id
	           WHERE r.session_id = ?
	           ORDER BY c.id`
	out, err := r.list(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrSessionHasNoComments
	}
	return out, nil
}

// ListByRequest returns ErrRequestHasNoComments when the request has no comments.
func (r *CommentRepo) ListByRequest(ctx context.Context, requestID uint64) ([]*model.Comment, error) {
	out, err := r.list(ctx, "SELECT "+commentColumns+" FROM comments WHERE request_id = ? ORDER BY id", requestID)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrRequestHasNoComments
	}
	return out, nil
}

func (r *CommentRepo) GetByID(ctx context.Context, id uint64) (*model.Comment, error) {
	c, err := scanComment(r.db.QueryRowContext(ctx, "SELECT "+commentColumns+" FROM comments WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return c, nil
}

// Create inserts c and returns the stored row.
func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO comments (request_id, comment, author, role, pinned) VALUES (?, ?, ?, ?, ?)",
		c.RequestID, c.Comment, c.Author, c.Role, c.Pinned)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

func (r *CommentRepo) UpdatePinned(ctx context.Context, id uint64, pinned bool) (*model.Comment, error) {
	const q = `UPDATE comments
	           SET pinned = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, pinned, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// DeleteByID removes a single comment and returns it.
func (r *CommentRepo) DeleteByID(ctx context.Context, id uint64) (deleted *model.Comment, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer finishTx(tx, &err)

	deleted, err = scanComment(tx.QueryRowContext(ctx, "SELECT "+commentColumns+" FROM comments WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrCommentNotFound
		}
		return nil, err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return deleted, nil
}
