package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/selovida/labelops/internal/rules"
)

// RuleStore is the durable adapter for the categorization engine: user rules
// and soft-deleted builtin ids live in Postgres instead of per-browser local
// storage, so they survive and are shared across clients.
type RuleStore struct {
	db *sqlx.DB
}

func (rs *RuleStore) ListUserRules(ctx context.Context) ([]rules.Rule, error) {
	rows, err := rs.db.QueryxContext(ctx,
		`SELECT id, keywords, category, transaction_type FROM categorization_rules ORDER BY inserted_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list user rules: %w", err)
	}
	defer rows.Close()

	var out []rules.Rule
	for rows.Next() {
		var r rules.Rule
		var keywords pq.StringArray
		if err := rows.Scan(&r.ID, &keywords, &r.Category, &r.Type); err != nil {
			return nil, fmt.Errorf("failed to scan user rule: %w", err)
		}
		r.Keywords = keywords
		out = append(out, r)
	}
	return out, rows.Err()
}

func (rs *RuleStore) AddUserRule(ctx context.Context, r rules.Rule) error {
	_, err := rs.db.ExecContext(ctx,
		`INSERT INTO categorization_rules (id, keywords, category, transaction_type)
		 VALUES ($1, $2, $3, $4)`,
		r.ID, pq.Array(r.Keywords), r.Category, r.Type)
	if err != nil {
		return fmt.Errorf("failed to add user rule: %w", err)
	}
	return nil
}

func (rs *RuleStore) RemoveUserRule(ctx context.Context, id string) error {
	result, err := rs.db.ExecContext(ctx, `DELETE FROM categorization_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to remove user rule: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (rs *RuleStore) Exclusions(ctx context.Context) ([]string, error) {
	var out []string
	err := rs.db.SelectContext(ctx, &out, `SELECT builtin_id FROM rule_exclusions`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rule exclusions: %w", err)
	}
	return out, nil
}

func (rs *RuleStore) Exclude(ctx context.Context, builtinID string) error {
	_, err := rs.db.ExecContext(ctx,
		`INSERT INTO rule_exclusions (builtin_id) VALUES ($1) ON CONFLICT DO NOTHING`, builtinID)
	if err != nil {
		return fmt.Errorf("failed to exclude builtin rule: %w", err)
	}
	return nil
}

func (rs *RuleStore) Restore(ctx context.Context, builtinID string) error {
	_, err := rs.db.ExecContext(ctx, `DELETE FROM rule_exclusions WHERE builtin_id = $1`, builtinID)
	if err != nil {
		return fmt.Errorf("failed to restore builtin rule: %w", err)
	}
	return nil
}
