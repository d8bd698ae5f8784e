package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type ArtistStore struct {
	db *sqlx.DB
}

func (as *ArtistStore) Insert(ctx context.Context, artist *Artist) error {
	query := `INSERT INTO artists (
		artistic_name,
		full_name,
		email,
		phone,
		genre
	) VALUES (
		:artistic_name,
		:full_name,
		:email,
		:phone,
		:genre
	) RETURNING id, inserted_at, updated_at`

	rows, err := as.db.NamedQueryContext(ctx, query, artist)
	if err != nil {
		return fmt.Errorf("failed to insert artist: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&artist.ID, &artist.InsertedAt, &artist.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan inserted artist: %w", err)
		}
	}
	return nil
}

func (as *ArtistStore) List(ctx context.Context) ([]Artist, error) {
	var out []Artist
	err := as.db.SelectContext(ctx, &out, `SELECT * FROM artists ORDER BY artistic_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	return out, nil
}

func (as *ArtistStore) GetByArtisticName(ctx context.Context, name string) (*Artist, error) {
	var artist Artist
	err := as.db.GetContext(ctx, &artist, `SELECT * FROM artists WHERE LOWER(artistic_name) = LOWER($1)`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artist by name: %w", err)
	}
	return &artist, nil
}

func (as *ArtistStore) UpsertSensitiveData(ctx context.Context, data *ArtistSensitiveData) error {
	query := `INSERT INTO artist_sensitive_data (
		artist_id,
		cpf_cnpj,
		bank_name,
		bank_agency,
		bank_account,
		pix_key
	) VALUES (
		:artist_id,
		:cpf_cnpj,
		:bank_name,
		:bank_agency,
		:bank_account,
		:pix_key
	)
	ON CONFLICT (artist_id) DO UPDATE SET
		cpf_cnpj = EXCLUDED.cpf_cnpj,
		bank_name = EXCLUDED.bank_name,
		bank_agency = EXCLUDED.bank_agency,
		bank_account = EXCLUDED.bank_account,
		pix_key = EXCLUDED.pix_key,
		updated_at = NOW()`

	if _, err := as.db.NamedExecContext(ctx, query, data); err != nil {
		return fmt.Errorf("failed to upsert sensitive data: %w", err)
	}
	return nil
}
