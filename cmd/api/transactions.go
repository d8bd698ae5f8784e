package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/selovida/labelops/internal/importer"
	"github.com/selovida/labelops/internal/ofx"
	"github.com/selovida/labelops/internal/response"
	"github.com/selovida/labelops/internal/rules"
	"github.com/selovida/labelops/internal/store"
)

type ListTransactionsResponse = response.APIResponse[[]store.FinancialTransaction]
type TransactionResponse = response.APIResponse[*store.FinancialTransaction]
type BulkDeleteResponse = response.APIResponse[response.BatchResult]
type ImportOFXResponse = response.APIResponse[importer.Summary]

type transactionInput struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"transaction_type"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	Date        string  `json:"date"`
	ArtistID    *int64  `json:"artist_id"`
	ContractID  *int64  `json:"contract_id"`
	ProjectID   *int64  `json:"project_id"`
	EventID     *int64  `json:"event_id"`
}

func (in *transactionInput) toTransaction() (*store.FinancialTransaction, error) {
	if in.Description == "" {
		return nil, fmt.Errorf("description is required")
	}
	if !rules.ValidType(rules.TransactionType(in.Type)) {
		return nil, fmt.Errorf("invalid transaction_type %q", in.Type)
	}
	date, err := parseTime(in.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format (YYYY-MM-DD expected)")
	}

	status := in.Status
	if status == "" {
		status = store.TransactionStatusPending
	}
	category := in.Category
	if category == "" {
		category = importer.FallbackCategory
	}

	return &store.FinancialTransaction{
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    category,
		Status:      status,
		Date:        date,
		ArtistID:    in.ArtistID,
		ContractID:  in.ContractID,
		ProjectID:   in.ProjectID,
		EventID:     in.EventID,
	}, nil
}

func (app *application) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	data, err := app.store.Transactions.List(r.Context(), transactionFilterFromQuery(r))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list transactions: "+err.Error())
		return
	}

	response := &ListTransactionsResponse{
		Success: true,
		Data:    data,
		Message: "Successfully listed transactions",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var input transactionInput
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	tx, err := input.toTransaction()
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := app.store.Transactions.Insert(r.Context(), tx); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to create transaction: "+err.Error())
		return
	}

	response := &TransactionResponse{
		Success: true,
		Data:    tx,
		Message: "Transaction created",
	}

	if err := writeJSON(w, http.StatusCreated, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	var input transactionInput
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	tx, err := input.toTransaction()
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	tx.ID = id

	if err := app.store.Transactions.Update(r.Context(), tx); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to update transaction: "+err.Error())
		return
	}

	response := &TransactionResponse{
		Success: true,
		Data:    tx,
		Message: "Transaction updated",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := app.store.Transactions.Delete(r.Context(), id); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to delete transaction: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, &response.APIResponse[any]{Success: true, Message: "Transaction deleted"})
}

// handleBulkDeleteTransactions deletes rows one by one. A failure partway
// through does not roll back earlier deletes; the caller gets a tally of
// successes and errors instead.
func (app *application) handleBulkDeleteTransactions(w http.ResponseWriter, r *http.Request) {
	var input struct {
		IDs []int64 `json:"ids"`
	}
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if len(input.IDs) == 0 {
		writeJSONError(w, http.StatusBadRequest, "ids is required")
		return
	}

	result := response.BatchResult{Total: len(input.IDs)}
	for _, id := range input.IDs {
		if err := app.store.Transactions.Delete(r.Context(), id); err != nil {
			app.logger.Error("BulkDelete", "Failed to delete transaction %d: %v", id, err)
			result.ErrorCount++
			continue
		}
		result.SuccessCount++
	}

	resp := &BulkDeleteResponse{
		Success: true,
		Data:    result,
		Message: fmt.Sprintf("Deleted %d of %d transactions", result.SuccessCount, result.Total),
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// handleCreateTransactionSeries generates an installment or recurring series
// as sequential single-row inserts, reported as a tally.
func (app *application) handleCreateTransactionSeries(w http.ResponseWriter, r *http.Request) {
	var input struct {
		transactionInput
		Count int `json:"count"`
	}
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if input.Count < 1 || input.Count > 120 {
		writeJSONError(w, http.StatusBadRequest, "count must be between 1 and 120")
		return
	}

	base, err := input.toTransaction()
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := response.BatchResult{Total: input.Count}
	for i := 0; i < input.Count; i++ {
		tx := *base
		tx.Date = base.Date.AddDate(0, i, 0)
		tx.Description = fmt.Sprintf("%s (%d/%d)", base.Description, i+1, input.Count)
		if err := app.store.Transactions.Insert(r.Context(), &tx); err != nil {
			app.logger.Error("Series", "Failed to insert installment %d: %v", i+1, err)
			result.ErrorCount++
			continue
		}
		result.SuccessCount++
	}

	resp := &BulkDeleteResponse{
		Success: true,
		Data:    result,
		Message: fmt.Sprintf("Created %d of %d installments", result.SuccessCount, result.Total),
	}

	if err := writeJSON(w, http.StatusCreated, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Import OFX bank statement
// @Description	Parses an OFX statement, categorizes each record and inserts pending transactions.
// @Tags			Transactions
// @Accept			application/octet-stream
// @Produce		json
// @Success		200	{object}	ImportOFXResponse
// @Failure		400	{object}	response.ErrorResponse	"Empty or unreadable file"
// @Router			/transactions/import/ofx [post]
func (app *application) handleImportOFX(w http.ResponseWriter, r *http.Request) {
	sourceFile := r.URL.Query().Get("filename")
	if sourceFile == "" {
		sourceFile = "upload.ofx"
	}

	summary, err := app.pipeline.ImportOFX(r.Context(), r.Body, sourceFile)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "failed to import statement: "+err.Error())
		return
	}

	resp := &ImportOFXResponse{
		Success: true,
		Data:    summary,
		Message: fmt.Sprintf("Imported %d of %d transactions", summary.Inserted, summary.Total),
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleExportOFX(w http.ResponseWriter, r *http.Request) {
	data, err := app.store.Transactions.List(r.Context(), transactionFilterFromQuery(r))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list transactions: "+err.Error())
		return
	}

	records := make([]ofx.Transaction, 0, len(data))
	for _, tx := range data {
		txType := ofx.TypeCredit
		if tx.Type == string(rules.Despesas) || tx.Amount < 0 {
			txType = ofx.TypeDebit
		}
		records = append(records, ofx.Transaction{
			Date:        tx.Date,
			Description: tx.Description,
			Amount:      tx.Amount,
			Type:        txType,
			FITID:       fmt.Sprintf("labelops-%d", tx.ID),
		})
	}

	w.Header().Set("Content-Type", "application/x-ofx")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=transactions-%s.ofx", time.Now().Format("20060102")))
	if err := ofx.Write(w, records); err != nil {
		app.logger.Error("Export", "Failed to write OFX export: %v", err)
	}
}

func (app *application) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := app.store.Transactions.List(r.Context(), transactionFilterFromQuery(r))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list transactions: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=transactions-%s.csv", time.Now().Format("20060102")))
	if err := importer.WriteTransactionsCSV(w, data); err != nil {
		app.logger.Error("Export", "Failed to write CSV export: %v", err)
	}
}
