package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/music-request-api/internal/database"
	"github.com/iliyamo/music-request-api/internal/database/dbtest"
)

func TestSeedLoadsSampleData(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	data := database.SampleData()

	for table, want := range map[string]int{
		"users":    len(data.Users),
		"sessions": len(data.Sessions),
		"requests": len(data.Requests),
		"comments": len(data.Comments),
	} {
		var got int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&got))
		assert.Equal(t, want, got, table)
	}

	var hash string
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT pin_hash FROM users WHERE display_name = ?", "dj_marco").Scan(&hash))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("123456")))
}

func TestResetEmptiesTables(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	require.NoError(t, database.Reset(ctx, db, database.DriverSQLite))

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM requests").Scan(&n))
	assert.Zero(t, n)

	// ids restart after a reset
	require.NoError(t, database.Seed(ctx, db, database.SampleData(), bcrypt.MinCost))
	var id uint64
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT id FROM users WHERE display_name = ?", "dj_marco").Scan(&id))
	assert.Equal(t, uint64(1), id)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := database.Open(database.Options{Driver: "oracle"})
	assert.Error(t, err)
}
