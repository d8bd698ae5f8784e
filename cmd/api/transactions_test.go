package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/selovida/labelops/internal/logger"
	"github.com/selovida/labelops/internal/response"
	"github.com/selovida/labelops/internal/store"
)

type fakeTransactionStore struct {
	inserted     []store.FinancialTransaction
	deleted      []int64
	failDelete   map[int64]bool
	failInsertAt int // 1-based insert call that fails, 0 disables
	insertCalls  int
}

func (f *fakeTransactionStore) Insert(ctx context.Context, tx *store.FinancialTransaction) error {
	f.insertCalls++
	if f.failInsertAt != 0 && f.insertCalls == f.failInsertAt {
		return errors.New("insert failed")
	}
	tx.ID = int64(len(f.inserted) + 1)
	f.inserted = append(f.inserted, *tx)
	return nil
}

func (f *fakeTransactionStore) Update(ctx context.Context, tx *store.FinancialTransaction) error {
	return nil
}

func (f *fakeTransactionStore) Delete(ctx context.Context, id int64) error {
	if f.failDelete[id] {
		return errors.New("delete failed")
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeTransactionStore) Get(ctx context.Context, id int64) (*store.FinancialTransaction, error) {
	return nil, nil
}

func (f *fakeTransactionStore) List(ctx context.Context, filter store.TransactionFilter) ([]store.FinancialTransaction, error) {
	return f.inserted, nil
}

func (f *fakeTransactionStore) SummaryByType(ctx context.Context, filter store.TransactionFilter) ([]store.TypeTotal, error) {
	return nil, nil
}

func (f *fakeTransactionStore) SummaryByCategory(ctx context.Context, filter store.TransactionFilter) ([]store.CategoryTotal, error) {
	return nil, nil
}

func newTestApp(txs *fakeTransactionStore) *application {
	return &application{
		store:  &store.Storage{Transactions: txs},
		logger: logger.New(logger.LevelError),
	}
}

func TestBulkDeleteTally(t *testing.T) {
	t.Parallel()
	txs := &fakeTransactionStore{failDelete: map[int64]bool{3: true}}
	app := newTestApp(txs)

	req := httptest.NewRequest("POST", "/v1/transactions/bulk-delete", strings.NewReader(`{"ids":[1,2,3,4,5]}`))
	rec := httptest.NewRecorder()
	app.handleBulkDeleteTransactions(rec, req)

	require.Equal(t, 200, rec.Code)

	var resp response.APIResponse[response.BatchResult]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, 5, resp.Data.Total)
	require.Equal(t, 4, resp.Data.SuccessCount)
	require.Equal(t, 1, resp.Data.ErrorCount)

	// A failure partway through does not stop the remaining deletes.
	require.Equal(t, []int64{1, 2, 4, 5}, txs.deleted)
}

func TestBulkDeleteRequiresIDs(t *testing.T) {
	t.Parallel()
	app := newTestApp(&fakeTransactionStore{})

	req := httptest.NewRequest("POST", "/v1/transactions/bulk-delete", strings.NewReader(`{"ids":[]}`))
	rec := httptest.NewRecorder()
	app.handleBulkDeleteTransactions(rec, req)

	require.Equal(t, 400, rec.Code)
}

func TestCreateTransactionSeries(t *testing.T) {
	t.Parallel()
	txs := &fakeTransactionStore{}
	app := newTestApp(txs)

	body := `{"description":"Parcela equipamento","amount":-300,"transaction_type":"despesas","category":"equipamentos","date":"2024-01-15","count":3}`
	req := httptest.NewRequest("POST", "/v1/transactions/series", strings.NewReader(body))
	rec := httptest.NewRecorder()
	app.handleCreateTransactionSeries(rec, req)

	require.Equal(t, 201, rec.Code)

	var resp response.APIResponse[response.BatchResult]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 3, resp.Data.Total)
	require.Equal(t, 3, resp.Data.SuccessCount)

	require.Len(t, txs.inserted, 3)
	require.Equal(t, "Parcela equipamento (1/3)", txs.inserted[0].Description)
	require.Equal(t, "Parcela equipamento (3/3)", txs.inserted[2].Description)

	// Installments land one month apart.
	require.Equal(t, "2024-01-15", txs.inserted[0].Date.Format("2006-01-02"))
	require.Equal(t, "2024-02-15", txs.inserted[1].Date.Format("2006-01-02"))
	require.Equal(t, "2024-03-15", txs.inserted[2].Date.Format("2006-01-02"))
}

func TestCreateTransactionSeriesPartialFailure(t *testing.T) {
	t.Parallel()
	txs := &fakeTransactionStore{failInsertAt: 2}
	app := newTestApp(txs)

	body := `{"description":"Parcela","amount":-100,"transaction_type":"despesas","date":"2024-01-15","count":3}`
	req := httptest.NewRequest("POST", "/v1/transactions/series", strings.NewReader(body))
	rec := httptest.NewRecorder()
	app.handleCreateTransactionSeries(rec, req)

	require.Equal(t, 201, rec.Code)

	var resp response.APIResponse[response.BatchResult]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Data.SuccessCount)
	require.Equal(t, 1, resp.Data.ErrorCount)
}

func TestCreateTransactionSeriesCountBounds(t *testing.T) {
	t.Parallel()
	app := newTestApp(&fakeTransactionStore{})

	for _, body := range []string{
		`{"description":"x","amount":1,"transaction_type":"receitas","date":"2024-01-15","count":0}`,
		`{"description":"x","amount":1,"transaction_type":"receitas","date":"2024-01-15","count":121}`,
	} {
		req := httptest.NewRequest("POST", "/v1/transactions/series", strings.NewReader(body))
		rec := httptest.NewRecorder()
		app.handleCreateTransactionSeries(rec, req)
		require.Equal(t, 400, rec.Code)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	t.Parallel()
	app := newTestApp(&fakeTransactionStore{})

	cases := []string{
		`{"amount":10,"transaction_type":"receitas","date":"2024-01-15"}`,        // missing description
		`{"description":"x","amount":10,"transaction_type":"lucros","date":"2024-01-15"}`, // bad type
		`{"description":"x","amount":10,"transaction_type":"receitas","date":"15/01/2024"}`, // bad date
	}
	for _, body := range cases {
		req := httptest.NewRequest("POST", "/v1/transactions", strings.NewReader(body))
		rec := httptest.NewRecorder()
		app.handleCreateTransaction(rec, req)
		require.Equal(t, 400, rec.Code, body)
	}
}
