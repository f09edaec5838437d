package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/music-request-api/internal/utils"
)

// UserSeed is one row of seed data for the users table.
type UserSeed struct {
	DisplayName string
	PIN         string
}

// SessionSeed references its user by 1-based insertion position, which
// equals the generated id on a freshly created schema.
type SessionSeed struct {
	UserID uint64
	IsLive bool
}

type RequestSeed struct {
	SessionID     uint64
	Title         string
	Artist        string
	RequestorName string
	Status        string
	Reason        *string
	Votes         int
}

type CommentSeed struct {
	RequestID uint64
	Comment   string
	Author    string
	Role      string
	Pinned    bool
}

// SeedData is a complete data set, inserted parent tables first.
type SeedData struct {
	Users    []UserSeed
	Sessions []SessionSeed
	Requests []RequestSeed
	Comments []CommentSeed
}

func reason(s string) *string { return &s }

// SampleData returns the development data set.  The shape matters to the
// test suites:
//   - user 1 owns live session 1 (five requests, four comments) and closed session 2
//   - user 2 owns only closed session 3 (one request, no comments)
//   - user 3 owns live session 4 which has no requests
//   - user 4 owns no sessions
//   - request 3 has no comments, request 5 has 4 votes
func SampleData() SeedData {
	return SeedData{
		Users: []UserSeed{
			{DisplayName: "dj_marco", PIN: "123456"},
			{DisplayName: "dj_luna", PIN: "654321"},
			{DisplayName: "dj_kai", PIN: "111111"},
			{DisplayName: "dj_nova", PIN: "909090"},
		},
		Sessions: []SessionSeed{
			{UserID: 1, IsLive: true},
			{UserID: 1, IsLive: false},
			{UserID: 2, IsLive: false},
			{UserID: 3, IsLive: true},
		},
		Requests: []RequestSeed{
			{SessionID: 1, Title: "Bohemian Rhapsody", Artist: "Queen", RequestorName: "alex", Status: "pending", Votes: 4},
			{SessionID: 1, Title: "Dancing Queen", Artist: "ABBA", RequestorName: "sam", Status: "approved", Reason: reason("Crowd favourite"), Votes: 2},
			{SessionID: 1, Title: "Smells Like Teen Spirit", Artist: "Nirvana", RequestorName: "jo", Status: "rejected", Reason: reason("Not the vibe tonight")},
			{SessionID: 1, Title: "Uptown Funk", Artist: "Mark Ronson", RequestorName: "lee", Status: "pending", Votes: 1},
			{SessionID: 1, Title: "Mr. Brightside", Artist: "The Killers", RequestorName: "kim", Status: "pending", Votes: 4},
			{SessionID: 2, Title: "Hey Jude", Artist: "The Beatles", RequestorName: "pat", Status: "approved", Votes: 3},
			{SessionID: 3, Title: "Wonderwall", Artist: "Oasis", RequestorName: "max", Status: "pending"},
		},
		Comments: []CommentSeed{
			{RequestID: 1, Comment: "Classic!", Author: "alex", Role: "user"},
			{RequestID: 1, Comment: "Playing this after the next track", Author: "dj_marco", Role: "dj", Pinned: true},
			{RequestID: 2, Comment: "Yes please", Author: "sam", Role: "user"},
			{RequestID: 5, Comment: "Turn it up", Author: "kim", Role: "user"},
			{RequestID: 6, Comment: "Great singalong", Author: "pat", Role: "user"},
		},
	}
}

// Seed inserts data in a single transaction.  PINs are hashed with the
// given bcrypt cost before they are stored.
func Seed(ctx context.Context, db *sql.DB, data SeedData, bcryptCost int) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	for _, u := range data.Users {
		hash, hashErr := utils.HashPIN(u.PIN, bcryptCost)
		if hashErr != nil {
			return fmt.Errorf("hash pin for %s: %w", u.DisplayName, hashErr)
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO users (display_name, pin_hash) VALUES (?, ?)`,
			u.DisplayName, hash); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}
	for _, s := range data.Sessions {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO sessions (user_id, is_live) VALUES (?, ?)`,
			s.UserID, s.IsLive); err != nil {
			return fmt.Errorf("seed sessions: %w", err)
		}
	}
	for _, r := range data.Requests {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO requests (session_id, title, artist, requestor_name, status, approve_reject_reason, votes)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.SessionID, r.Title, r.Artist, r.RequestorName, r.Status, r.Reason, r.Votes); err != nil {
			return fmt.Errorf("seed requests: %w", err)
		}
	}
	for _, c := range data.Comments {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO comments (request_id, comment, author, role, pinned) VALUES (?, ?, ?, ?, ?)`,
			c.RequestID, c.Comment, c.Author, c.Role, c.Pinned); err != nil {
			return fmt.Errorf("seed comments: %w", err)
		}
	}
	return nil
}
