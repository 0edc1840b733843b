package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no dataset is cached for a source.
var ErrNotFound = errors.New("record not found")

// CachedDataset is a dataset body stored for a source location.
type CachedDataset struct {
	Source    string
	Body      []byte
	FetchedAt time.Time
}

// GetDataset returns the cached body for source.
func (d *DB) GetDataset(ctx context.Context, source string) (*CachedDataset, error) {
	var (
		body    []byte
		fetched string
	)
	err := d.conn.QueryRowContext(ctx,
		`SELECT body, fetched_at FROM dataset_cache WHERE source = ?`, source,
	).Scan(&body, &fetched)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get dataset %s: %w", source, err)
	}
	ts, err := time.Parse(time.RFC3339, fetched)
	if err != nil {
		return nil, fmt.Errorf("get dataset %s: parse time: %w", source, err)
	}
	return &CachedDataset{Source: source, Body: body, FetchedAt: ts}, nil
}

// PutDataset stores body for source, replacing any previous entry.
func (d *DB) PutDataset(ctx context.Context, source string, body []byte, fetchedAt time.Time) error {
	_, err := d.conn.ExecContext(ctx,
		`INSERT INTO dataset_cache (source, body, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(source) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		source, body, fetchedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("put dataset %s: %w", source, err)
	}
	return nil
}

// DeleteDataset removes the cached entry for source.
func (d *DB) DeleteDataset(ctx context.Context, source string) error {
	res, err := d.conn.ExecContext(ctx, `DELETE FROM dataset_cache WHERE source = ?`, source)
	if err != nil {
		return fmt.Errorf("delete dataset %s: %w", source, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete dataset %s: rows affected: %w", source, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
