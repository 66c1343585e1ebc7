package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/currimap/internal/progress"
)

// KV is a progress.Medium backed by the progress_records table.
type KV struct {
	drv *entsql.Driver
}

var _ progress.Medium = (*KV)(nil)

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// Get returns the value stored under key.
func (kv *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b := builder()
	query, args := b.Select("value").
		From(b.Table(recordsTable)).
		Where(entsql.EQ("record_key", key)).
		Query()

	rows := &entsql.Rows{}
	if err := kv.drv.Query(ctx, query, args, rows); err != nil {
		return nil, false, fmt.Errorf("query %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, false, rows.Err()
	}
	var value []byte
	if err := rows.Scan(&value); err != nil {
		return nil, false, fmt.Errorf("scan %q: %w", key, err)
	}
	return value, true, rows.Err()
}

// Put inserts or replaces the value under key.
func (kv *KV) Put(ctx context.Context, key string, value []byte) error {
	query, args := builder().Insert(recordsTable).
		Columns("record_key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("record_key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	var res sql.Result
	if err := kv.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (kv *KV) Delete(ctx context.Context, key string) error {
	query, args := builder().Delete(recordsTable).
		Where(entsql.EQ("record_key", key)).
		Query()

	var res sql.Result
	if err := kv.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Keys lists the keys starting with prefix in ascending order.
func (kv *KV) Keys(ctx context.Context, prefix string) ([]string, error) {
	b := builder()
	query, args := b.Select("record_key").
		From(b.Table(recordsTable)).
		Where(entsql.HasPrefix("record_key", prefix)).
		OrderBy("record_key").
		Query()

	rows := &entsql.Rows{}
	if err := kv.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
