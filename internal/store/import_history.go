package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type ImportHistoryStore struct {
	db *sqlx.DB
}

func (ih *ImportHistoryStore) Insert(ctx context.Context, history *ImportHistory) error {
	query := `INSERT INTO import_history (
		kind,
		source_file,
		status,
		total,
		inserted,
		errors
	) VALUES (
		:kind,
		:source_file,
		:status,
		:total,
		:inserted,
		:errors
	) RETURNING id, processed_at`

	rows, err := ih.db.NamedQueryContext(ctx, query, history)
	if err != nil {
		return fmt.Errorf("failed to insert import history: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&history.ID, &history.ProcessedAt); err != nil {
			return fmt.Errorf("failed to scan inserted import history: %w", err)
		}
	}
	return nil
}

func (ih *ImportHistoryStore) GetLatest(ctx context.Context, limit int) ([]ImportHistory, error) {
	var out []ImportHistory
	err := ih.db.SelectContext(ctx, &out,
		`SELECT * FROM import_history ORDER BY processed_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get import history: %w", err)
	}
	return out, nil
}
