package database

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLDSNEscapesCredentials(t *testing.T) {
	dsn := mysqlDSN(Options{
		User: "app",
		Pass: "p@ss/w:rd",
		Host: "db.internal",
		Port: "3306",
		Name: "song_requests",
	})

	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err, dsn)
	assert.Equal(t, "app", cfg.User)
	assert.Equal(t, "p@ss/w:rd", cfg.Passwd)
	assert.Equal(t, "tcp", cfg.Net)
	assert.Equal(t, "db.internal:3306", cfg.Addr)
	assert.Equal(t, "song_requests", cfg.DBName)
	assert.True(t, cfg.ParseTime)
	assert.Equal(t, time.UTC, cfg.Loc)
	assert.Contains(t, dsn, "charset=utf8mb4")
}
