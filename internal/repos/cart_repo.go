package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrCartNotFound is returned by cart stores when nothing is stored under a key.
var ErrCartNotFound = errors.New("cart not found")

// CartRepo keeps serialized carts in sqlite, one row per storage key.
type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

func (r *CartRepo) Load(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := r.db.GetContext(ctx, &value, `SELECT value FROM cart_storage WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

// Save overwrites whatever is stored under key.
func (r *CartRepo) Save(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_storage(key, value, updated_at)
		VALUES(?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(value), time.Now().UTC().Format(time.RFC3339))
	return err
}
