package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type PendingShareStore struct {
	db *sqlx.DB
}

func (ps *PendingShareStore) Insert(ctx context.Context, share *PendingShare) error {
	query := `INSERT INTO pending_shares (
		music_title,
		artist_name,
		participant_name,
		participant_role,
		share_percentage,
		status,
		notes
	) VALUES (
		:music_title,
		:artist_name,
		:participant_name,
		:participant_role,
		:share_percentage,
		:status,
		:notes
	) RETURNING id, inserted_at, updated_at`

	rows, err := ps.db.NamedQueryContext(ctx, query, share)
	if err != nil {
		return fmt.Errorf("failed to insert pending share: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&share.ID, &share.InsertedAt, &share.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan inserted pending share: %w", err)
		}
	}
	return nil
}

func (ps *PendingShareStore) Update(ctx context.Context, share *PendingShare) error {
	query := `UPDATE pending_shares SET
		music_title = :music_title,
		artist_name = :artist_name,
		participant_name = :participant_name,
		participant_role = :participant_role,
		share_percentage = :share_percentage,
		status = :status,
		notes = :notes,
		updated_at = NOW()
	WHERE id = :id`

	result, err := ps.db.NamedExecContext(ctx, query, share)
	if err != nil {
		return fmt.Errorf("failed to update pending share: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (ps *PendingShareStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := ps.db.ExecContext(ctx,
		`UPDATE pending_shares SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update pending share status: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete is immediate and unrecoverable; there is no soft-delete.
func (ps *PendingShareStore) Delete(ctx context.Context, id int64) error {
	result, err := ps.db.ExecContext(ctx, `DELETE FROM pending_shares WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pending share: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (ps *PendingShareStore) Get(ctx context.Context, id int64) (*PendingShare, error) {
	var share PendingShare
	err := ps.db.GetContext(ctx, &share, `SELECT * FROM pending_shares WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &share, nil
}

func (ps *PendingShareStore) List(ctx context.Context) ([]PendingShare, error) {
	var out []PendingShare
	err := ps.db.SelectContext(ctx, &out, `SELECT * FROM pending_shares ORDER BY inserted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending shares: %w", err)
	}
	return out, nil
}
