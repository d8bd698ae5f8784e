package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

type TransactionStore struct {
	db *sqlx.DB
}

func (ts *TransactionStore) Insert(ctx context.Context, tx *FinancialTransaction) error {
	query := `INSERT INTO financial_transactions (
		description,
		amount,
		transaction_type,
		category,
		status,
		transaction_date,
		artist_id,
		contract_id,
		project_id,
		event_id
	) VALUES (
		:description,
		:amount,
		:transaction_type,
		:category,
		:status,
		:transaction_date,
		:artist_id,
		:contract_id,
		:project_id,
		:event_id
	) RETURNING id, inserted_at, updated_at`

	rows, err := ts.db.NamedQueryContext(ctx, query, tx)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&tx.ID, &tx.InsertedAt, &tx.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan inserted transaction: %w", err)
		}
	}
	return nil
}

func (ts *TransactionStore) Update(ctx context.Context, tx *FinancialTransaction) error {
	query := `UPDATE financial_transactions SET
		description = :description,
		amount = :amount,
		transaction_type = :transaction_type,
		category = :category,
		status = :status,
		transaction_date = :transaction_date,
		artist_id = :artist_id,
		contract_id = :contract_id,
		project_id = :project_id,
		event_id = :event_id,
		updated_at = NOW()
	WHERE id = :id`

	result, err := ts.db.NamedExecContext(ctx, query, tx)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (ts *TransactionStore) Delete(ctx context.Context, id int64) error {
	result, err := ts.db.ExecContext(ctx, `DELETE FROM financial_transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (ts *TransactionStore) Get(ctx context.Context, id int64) (*FinancialTransaction, error) {
	var tx FinancialTransaction
	err := ts.db.GetContext(ctx, &tx, `SELECT * FROM financial_transactions WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func buildFilter(filter TransactionFilter) (string, []interface{}) {
	var where []string
	var args []interface{}

	add := func(clause string, value interface{}) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if filter.Type != "" {
		add("transaction_type = $%d", filter.Type)
	}
	if filter.Category != "" {
		add("category = $%d", filter.Category)
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.Search != "" {
		add("description ILIKE $%d", "%"+filter.Search+"%")
	}
	if !filter.StartDate.IsZero() {
		add("transaction_date >= $%d", filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		add("transaction_date <= $%d", filter.EndDate)
	}

	if len(where) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

func (ts *TransactionStore) List(ctx context.Context, filter TransactionFilter) ([]FinancialTransaction, error) {
	whereClause, args := buildFilter(filter)
	query := `SELECT * FROM financial_transactions` + whereClause + ` ORDER BY transaction_date DESC, id DESC`

	var out []FinancialTransaction
	if err := ts.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return out, nil
}

func (ts *TransactionStore) SummaryByType(ctx context.Context, filter TransactionFilter) ([]TypeTotal, error) {
	whereClause, args := buildFilter(filter)
	query := `
	SELECT
		transaction_type,
		COALESCE(SUM(amount), 0) AS total,
		COUNT(*) AS count
	FROM financial_transactions` + whereClause + `
	GROUP BY transaction_type
	ORDER BY transaction_type`

	var out []TypeTotal
	if err := ts.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query totals by type: %w", err)
	}
	return out, nil
}

func (ts *TransactionStore) SummaryByCategory(ctx context.Context, filter TransactionFilter) ([]CategoryTotal, error) {
	whereClause, args := buildFilter(filter)
	query := `
	SELECT
		category,
		transaction_type,
		COALESCE(SUM(amount), 0) AS total,
		COUNT(*) AS count
	FROM financial_transactions` + whereClause + `
	GROUP BY category, transaction_type
	ORDER BY total DESC`

	var out []CategoryTotal
	if err := ts.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query totals by category: %w", err)
	}
	return out, nil
}
