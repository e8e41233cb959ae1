package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/book-lending/internal/port"
)

func getMySQLDB(t *testing.T) *sqlx.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/library_test"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	db, err := OpenMySQL(ctx, MySQLConfig{DSN: dsn, MaxOpenConns: 60, MaxIdleConns: 10, ConnMaxLifetime: time.Minute})
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	return db
}

func TestMySQLAdapter(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	adapter := NewMySQLAdapter(db, 0)
	require.NoError(t, adapter.Migrate(context.Background()))

	runStoreContract(t, func(t *testing.T) port.BookRepository {
		_, err := db.Exec(`DELETE FROM book_copies`)
		require.NoError(t, err)
		return adapter
	})
}

func TestNormalizeDSN(t *testing.T) {
	dsn, err := normalizeDSN("root:root@tcp(localhost:3306)/library")
	require.NoError(t, err)
	assert.Contains(t, dsn, "clientFoundRows=true")
	assert.Contains(t, dsn, "parseTime=true")

	_, err = normalizeDSN("not a dsn")
	assert.Error(t, err)
}
