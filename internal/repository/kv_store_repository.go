package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"class-companion/internal/domain"

	"github.com/jmoiron/sqlx"
)

// KVStoreRepository implements domain.Store on the kv_entries table.
type KVStoreRepository struct {
	db *sqlx.DB
	tx domain.TransactionManager
	// now is replaceable in tests.
	now func() time.Time
}

func NewKVStoreRepository(db *sqlx.DB, tx domain.TransactionManager) *KVStoreRepository {
	return &KVStoreRepository{db: db, tx: tx, now: func() time.Time { return time.Now().UTC() }}
}

func (r *KVStoreRepository) Get(ctx context.Context, key string) (string, error) {
	exec := GetExecutor(ctx, r.db)
	var value string
	query := exec.Rebind(`SELECT entry_value FROM kv_entries WHERE entry_key = ?`)
	if err := exec.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to get entry %q: %w", key, err)
	}
	return value, nil
}

// Set updates the row and inserts it when no row was updated, both in one transaction.
func (r *KVStoreRepository) Set(ctx context.Context, key string, value string) error {
	return r.tx.WithTransaction(ctx, func(ctx context.Context) error {
		exec := GetExecutor(ctx, r.db)
		now := r.now()

		res, err := exec.ExecContext(ctx,
			exec.Rebind(`UPDATE kv_entries SET entry_value = ?, updated_at = ? WHERE entry_key = ?`),
			value, now, key)
		if err != nil {
			return fmt.Errorf("failed to update entry %q: %w", key, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows for %q: %w", key, err)
		}
		if affected > 0 {
			return nil
		}

		if _, err := exec.ExecContext(ctx,
			exec.Rebind(`INSERT INTO kv_entries (entry_key, entry_value, updated_at) VALUES (?, ?, ?)`),
			key, value, now); err != nil {
			return fmt.Errorf("failed to insert entry %q: %w", key, err)
		}
		return nil
	})
}

func (r *KVStoreRepository) Delete(ctx context.Context, key string) error {
	exec := GetExecutor(ctx, r.db)
	if _, err := exec.ExecContext(ctx, exec.Rebind(`DELETE FROM kv_entries WHERE entry_key = ?`), key); err != nil {
		return fmt.Errorf("failed to delete entry %q: %w", key, err)
	}
	return nil
}

func (r *KVStoreRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
