package main

import (
	"fmt"
	"net/http"

	"github.com/selovida/labelops/internal/importer"
	"github.com/selovida/labelops/internal/response"
	"github.com/selovida/labelops/internal/store"
)

type ListArtistsResponse = response.APIResponse[[]store.Artist]
type ArtistResponse = response.APIResponse[*store.Artist]
type ImportArtistsResponse = response.APIResponse[importer.ArtistImportSummary]

func (app *application) handleListArtists(w http.ResponseWriter, r *http.Request) {
	data, err := app.store.Artists.List(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list artists: "+err.Error())
		return
	}

	response := &ListArtistsResponse{
		Success: true,
		Data:    data,
		Message: "Successfully listed artists",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ArtisticName string `json:"artistic_name"`
		FullName     string `json:"full_name"`
		Email        string `json:"email"`
		Phone        string `json:"phone"`
		Genre        string `json:"genre"`
		CPFCNPJ      string `json:"cpf_cnpj"`
		BankName     string `json:"bank_name"`
		BankAgency   string `json:"bank_agency"`
		BankAccount  string `json:"bank_account"`
		PixKey       string `json:"pix_key"`
	}
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if input.ArtisticName == "" {
		writeJSONError(w, http.StatusBadRequest, "artistic_name is required")
		return
	}

	ctx := r.Context()
	artist := &store.Artist{
		ArtisticName: input.ArtisticName,
		FullName:     input.FullName,
		Email:        input.Email,
		Phone:        input.Phone,
		Genre:        input.Genre,
	}
	if err := app.store.Artists.Insert(ctx, artist); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to create artist: "+err.Error())
		return
	}

	// Sensitive fields live in their own table and are only written when at
	// least one of them has a value.
	sensitive := &store.ArtistSensitiveData{
		ArtistID:    artist.ID,
		CPFCNPJ:     input.CPFCNPJ,
		BankName:    input.BankName,
		BankAgency:  input.BankAgency,
		BankAccount: input.BankAccount,
		PixKey:      input.PixKey,
	}
	if sensitive.HasValue() {
		if err := app.store.Artists.UpsertSensitiveData(ctx, sensitive); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "artist created but sensitive data failed: "+err.Error())
			return
		}
	}

	response := &ArtistResponse{
		Success: true,
		Data:    artist,
		Message: "Artist created",
	}

	if err := writeJSON(w, http.StatusCreated, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Import artists spreadsheet
// @Description	Loads a CSV of artists; headers are matched by alias with accents and casing normalized.
// @Tags			Artists
// @Produce		json
// @Success		200	{object}	ImportArtistsResponse
// @Failure		400	{object}	response.ErrorResponse	"Empty file or missing required columns"
// @Router			/artists/import/csv [post]
func (app *application) handleImportArtistsCSV(w http.ResponseWriter, r *http.Request) {
	sourceFile := r.URL.Query().Get("filename")
	if sourceFile == "" {
		sourceFile = "upload.csv"
	}

	summary, err := app.pipeline.ImportArtistsCSV(r.Context(), r.Body, sourceFile)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "failed to import spreadsheet: "+err.Error())
		return
	}

	resp := &ImportArtistsResponse{
		Success: true,
		Data:    summary,
		Message: fmt.Sprintf("Imported %d of %d artists", summary.Created, summary.Total),
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
