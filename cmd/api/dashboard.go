package main

import (
	"net/http"

	"github.com/selovida/labelops/internal/response"
	"github.com/selovida/labelops/internal/store"
)

// DashboardSummary aggregates the books for a date range.
type DashboardSummary struct {
	ByType     []store.TypeTotal     `json:"by_type"`
	ByCategory []store.CategoryTotal `json:"by_category"`
	Balance    float64               `json:"balance"`
}

type GetDashboardSummaryResponse = response.APIResponse[DashboardSummary]

func (app *application) handleGetDashboardSummary(w http.ResponseWriter, r *http.Request) {
	filter := transactionFilterFromQuery(r)
	ctx := r.Context()

	byType, err := app.store.Transactions.SummaryByType(ctx, filter)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get totals by type: "+err.Error())
		return
	}

	byCategory, err := app.store.Transactions.SummaryByCategory(ctx, filter)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get totals by category: "+err.Error())
		return
	}

	summary := DashboardSummary{
		ByType:     byType,
		ByCategory: byCategory,
	}
	for _, t := range byType {
		if t.Type == "receitas" {
			summary.Balance += t.Total
		} else {
			summary.Balance -= t.Total
		}
	}

	response := &GetDashboardSummaryResponse{
		Success: true,
		Data:    summary,
		Message: "Successfully retrieved dashboard summary",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
