package main

import (
	"net/http"
	"strconv"

	"github.com/selovida/labelops/internal/response"
	"github.com/selovida/labelops/internal/store"
)

type GetImportHistoryResponse = response.APIResponse[[]store.ImportHistory]

// @Summary		Get import history
// @Description	Get a list of the latest import runs.
// @Tags			Imports
// @Produce		json
// @Param			limit	query		int							false	"Limit the number of results"	default(10)
// @Success		200		{object}	GetImportHistoryResponse	"Successfully retrieved latest import runs"
// @Failure		500		{object}	response.ErrorResponse		"Failed to get import history"
// @Router			/imports/history [get]
func (app *application) handleGetImportHistory(w http.ResponseWriter, r *http.Request) {
	limitParam := r.URL.Query().Get("limit")
	limit := 10
	if limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil {
			limit = l
		}
	}

	data, err := app.store.ImportHistory.GetLatest(r.Context(), limit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get import history: "+err.Error())
		return
	}

	response := &GetImportHistoryResponse{
		Success: true,
		Data:    data,
		Message: "Successfully retrieved latest import runs",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
