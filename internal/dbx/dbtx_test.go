package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, _, err := Open(fmt.Sprintf("sqlite://%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS t (id INTEGER PRIMARY KEY, v TEXT UNIQUE);`)
	require.NoError(t, err)
	return db
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n))
	return n
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO t(v) VALUES ('ok')`)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, 1, countRows(t, db), "must commit on success")
}

func TestWithTx_RollbackOnFnError(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, e := tx.ExecContext(ctx, `INSERT INTO t(v) VALUES ('fail')`)
		require.NoError(t, e)
		return errors.New("boom")
	})
	require.Error(t, err)
	assert.EqualError(t, err, "boom")

	require.Equal(t, 0, countRows(t, db), "must rollback when fn returns error")
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := setupDB(t)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic to propagate")
		}
		require.Equal(t, 0, countRows(t, db), "must rollback on panic")
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, e := tx.ExecContext(ctx, `INSERT INTO t(v) VALUES ('panic')`)
		require.NoError(t, e)
		panic("kaput")
	})
}

func TestWithTx_BeginError(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return nil
	})
	require.Error(t, err, "begin should fail when DB is closed")
	assert.ErrorContains(t, err, "begin tx")
}

func TestWithTx_KeepsSentinelErrors(t *testing.T) {
	db := setupDB(t)
	sentinel := errors.New("duplicate")

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return fmt.Errorf("create: %w", sentinel)
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestParseDSN(t *testing.T) {
	tests := []struct {
		name        string
		dsn         string
		wantDialect Dialect
		wantConn    string
		wantErr     bool
	}{
		{
			name:        "postgres",
			dsn:         "postgres://u:p@localhost:5432/todoweb?sslmode=disable",
			wantDialect: DialectPostgres,
			wantConn:    "postgres://u:p@localhost:5432/todoweb?sslmode=disable",
		},
		{
			name:        "postgresql alias",
			dsn:         "postgresql://localhost/todoweb",
			wantDialect: DialectPostgres,
			wantConn:    "postgresql://localhost/todoweb",
		},
		{
			name:        "sqlite file",
			dsn:         "sqlite://todoweb.db",
			wantDialect: DialectSQLite,
			wantConn:    "file:todoweb.db?" + sqlitePragmas,
		},
		{
			name:        "sqlite with query",
			dsn:         "sqlite://x?mode=memory",
			wantDialect: DialectSQLite,
			wantConn:    "file:x?mode=memory&" + sqlitePragmas,
		},
		{name: "sqlite empty path", dsn: "sqlite://", wantErr: true},
		{name: "mysql unsupported", dsn: "mysql://root@localhost/todos", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, conn, err := ParseDSN(tt.dsn)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDialect, d)
			assert.Equal(t, tt.wantConn, conn)
		})
	}
}

func TestUniqueViolation_SQLite(t *testing.T) {
	db := setupDB(t)

	_, err := db.Exec(`INSERT INTO t(v) VALUES ('dup')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO t(v) VALUES ('dup')`)
	require.Error(t, err)

	detail, ok := UniqueViolation(fmt.Errorf("db error: %w", err))
	require.True(t, ok)
	assert.Contains(t, detail, "t.v")
}

func TestUniqueViolation_Postgres(t *testing.T) {
	err := fmt.Errorf("db error: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	detail, ok := UniqueViolation(err)
	require.True(t, ok)
	assert.Equal(t, "users_email_key", detail)

	_, ok = UniqueViolation(&pgconn.PgError{Code: "23503"})
	assert.False(t, ok, "foreign key violation is not a unique violation")
}

func TestUniqueViolation_OtherErrors(t *testing.T) {
	_, ok := UniqueViolation(errors.New("boom"))
	assert.False(t, ok)

	_, ok = UniqueViolation(nil)
	assert.False(t, ok)
}
