package repository

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"class-companion/internal/config"
	"class-companion/internal/database"
	"class-companion/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupKVTestDB(t *testing.T) (*KVStoreRepository, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	repo := NewKVStoreRepository(sqlxDB, NewTransactionManagerAdapter(sqlxDB))
	repo.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return repo, mock
}

func TestKVStoreRepository_Get(t *testing.T) {
	repo, mock := setupKVTestDB(t)
	ctx := context.Background()
	query := regexp.QuoteMeta(`SELECT entry_value FROM kv_entries WHERE entry_key = ?`)

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs("k").
			WillReturnRows(sqlmock.NewRows([]string{"entry_value"}).AddRow("v"))
		val, err := repo.Get(ctx, "k")
		assert.NoError(t, err)
		assert.Equal(t, "v", val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"entry_value"}))
		_, err := repo.Get(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DBError", func(t *testing.T) {
		dbErr := errors.New("db down")
		mock.ExpectQuery(query).WithArgs("k").WillReturnError(dbErr)
		_, err := repo.Get(ctx, "k")
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestKVStoreRepository_Set(t *testing.T) {
	updateQuery := regexp.QuoteMeta(`UPDATE kv_entries SET entry_value = ?, updated_at = ? WHERE entry_key = ?`)
	insertQuery := regexp.QuoteMeta(`INSERT INTO kv_entries (entry_key, entry_value, updated_at) VALUES (?, ?, ?)`)
	ctx := context.Background()

	t.Run("UpdatesExistingRow", func(t *testing.T) {
		repo, mock := setupKVTestDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(updateQuery).WithArgs("v2", sqlmock.AnyArg(), "k").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Set(ctx, "k", "v2"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsertsWhenMissing", func(t *testing.T) {
		repo, mock := setupKVTestDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(updateQuery).WithArgs("v1", sqlmock.AnyArg(), "k").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(insertQuery).WithArgs("k", "v1", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Set(ctx, "k", "v1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackOnInsertError", func(t *testing.T) {
		repo, mock := setupKVTestDB(t)
		insertErr := errors.New("constraint violated")
		mock.ExpectBegin()
		mock.ExpectExec(updateQuery).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(insertQuery).WillReturnError(insertErr)
		mock.ExpectRollback()

		err := repo.Set(ctx, "k", "v1")
		assert.ErrorIs(t, err, insertErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestKVStoreRepository_Delete(t *testing.T) {
	repo, mock := setupKVTestDB(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_entries WHERE entry_key = ?`)).
		WithArgs("k").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), "k"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStoreRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, config.DBConfig{
		Driver: database.DriverSQLite,
		DSN:    "file:" + filepath.Join(t.TempDir(), "kv.db"),
	})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.RunMigrations(db, database.DriverSQLite, database.Up))

	repo := NewKVStoreRepository(db, NewTransactionManagerAdapter(db))

	_, err = repo.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, repo.Set(ctx, "k", "first"))
	require.NoError(t, repo.Set(ctx, "k", "second"))
	val, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "second", val)

	require.NoError(t, repo.Delete(ctx, "k"))
	_, err = repo.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	assert.NoError(t, repo.Ping(ctx))
}
