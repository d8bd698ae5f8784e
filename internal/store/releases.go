package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type ReleaseStore struct {
	db *sqlx.DB
}

func (rs *ReleaseStore) Insert(ctx context.Context, release *Release) error {
	query := `INSERT INTO releases (
		title,
		artist_id,
		release_date,
		share_applied
	) VALUES (
		:title,
		:artist_id,
		:release_date,
		:share_applied
	) RETURNING id, inserted_at, updated_at`

	rows, err := rs.db.NamedQueryContext(ctx, query, release)
	if err != nil {
		return fmt.Errorf("failed to insert release: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&release.ID, &release.InsertedAt, &release.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan inserted release: %w", err)
		}
	}
	return nil
}

func (rs *ReleaseStore) Get(ctx context.Context, id int64) (*Release, error) {
	var release Release
	err := rs.db.GetContext(ctx, &release, `SELECT * FROM releases WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &release, nil
}

func (rs *ReleaseStore) List(ctx context.Context) ([]Release, error) {
	var out []Release
	err := rs.db.SelectContext(ctx, &out, `SELECT * FROM releases ORDER BY inserted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", err)
	}
	return out, nil
}

func (rs *ReleaseStore) SetShareApplied(ctx context.Context, id int64, applied *bool) error {
	result, err := rs.db.ExecContext(ctx,
		`UPDATE releases SET share_applied = $1, updated_at = NOW() WHERE id = $2`, applied, id)
	if err != nil {
		return fmt.Errorf("failed to set share applied: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (rs *ReleaseStore) ListParticipants(ctx context.Context, releaseID int64) ([]ReleaseParticipant, error) {
	var out []ReleaseParticipant
	err := rs.db.SelectContext(ctx, &out,
		`SELECT * FROM release_participants WHERE release_id = $1 ORDER BY position`, releaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return out, nil
}

// ReplaceParticipants rewrites the whole split in one transaction. Edits are
// wholesale: there is no per-participant patch, the last writer wins.
func (rs *ReleaseStore) ReplaceParticipants(ctx context.Context, releaseID int64, participants []ReleaseParticipant) error {
	tx, err := rs.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM release_participants WHERE release_id = $1`, releaseID); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}

	query := `INSERT INTO release_participants (
		release_id, name, role, percentage, share_status, position
	) VALUES (
		:release_id, :name, :role, :percentage, :share_status, :position
	)`

	for i := range participants {
		participants[i].ReleaseID = releaseID
		participants[i].Position = i
		if _, err := tx.NamedExecContext(ctx, query, &participants[i]); err != nil {
			return fmt.Errorf("failed to insert participant %s: %w", participants[i].Name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE releases SET updated_at = NOW() WHERE id = $1`, releaseID); err != nil {
		return fmt.Errorf("failed to touch release: %w", err)
	}

	return tx.Commit()
}
