package main

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/selovida/labelops/internal/response"
	"github.com/selovida/labelops/internal/store"
)

type ListPendingSharesResponse = response.APIResponse[[]store.PendingShare]
type PendingShareResponse = response.APIResponse[*store.PendingShare]

type pendingShareInput struct {
	MusicTitle      string  `json:"music_title"`
	ArtistName      string  `json:"artist_name"`
	ParticipantName string  `json:"participant_name"`
	ParticipantRole string  `json:"participant_role"`
	SharePercentage float64 `json:"share_percentage"`
	Status          string  `json:"status"`
	Notes           string  `json:"notes"`
}

// validate enforces the only two hard requirements of the ledger: a title
// and a participant name.
func (in *pendingShareInput) validate() string {
	if in.MusicTitle == "" {
		return "music_title is required"
	}
	if in.ParticipantName == "" {
		return "participant_name is required"
	}
	if in.Status != "" && in.Status != store.PendingShareStatusPending && in.Status != store.PendingShareStatusReceived {
		return "status must be pending or received"
	}
	return ""
}

func (app *application) handleListPendingShares(w http.ResponseWriter, r *http.Request) {
	data, err := app.store.PendingShares.List(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list pending shares: "+err.Error())
		return
	}

	response := &ListPendingSharesResponse{
		Success: true,
		Data:    data,
		Message: "Successfully listed pending shares",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleCreatePendingShare(w http.ResponseWriter, r *http.Request) {
	var input pendingShareInput
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if msg := input.validate(); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	status := input.Status
	if status == "" {
		status = store.PendingShareStatusPending
	}

	share := &store.PendingShare{
		MusicTitle:      input.MusicTitle,
		ArtistName:      input.ArtistName,
		ParticipantName: input.ParticipantName,
		ParticipantRole: input.ParticipantRole,
		SharePercentage: input.SharePercentage,
		Status:          status,
		Notes:           input.Notes,
	}

	if err := app.store.PendingShares.Insert(r.Context(), share); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to create pending share: "+err.Error())
		return
	}

	response := &PendingShareResponse{
		Success: true,
		Data:    share,
		Message: "Pending share created",
	}

	if err := writeJSON(w, http.StatusCreated, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleUpdatePendingShare(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid pending share id")
		return
	}

	var input pendingShareInput
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if msg := input.validate(); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	share := &store.PendingShare{
		ID:              id,
		MusicTitle:      input.MusicTitle,
		ArtistName:      input.ArtistName,
		ParticipantName: input.ParticipantName,
		ParticipantRole: input.ParticipantRole,
		SharePercentage: input.SharePercentage,
		Status:          input.Status,
		Notes:           input.Notes,
	}
	if share.Status == "" {
		share.Status = store.PendingShareStatusPending
	}

	if err := app.store.PendingShares.Update(r.Context(), share); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "pending share not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "failed to update pending share: "+err.Error())
		return
	}

	response := &PendingShareResponse{
		Success: true,
		Data:    share,
		Message: "Pending share updated",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleUpdatePendingShareStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid pending share id")
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if input.Status != store.PendingShareStatusPending && input.Status != store.PendingShareStatusReceived {
		writeJSONError(w, http.StatusBadRequest, "status must be pending or received")
		return
	}

	if err := app.store.PendingShares.UpdateStatus(r.Context(), id, input.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "pending share not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "failed to update status: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, &response.APIResponse[any]{Success: true, Message: "Status updated"})
}

func (app *application) handleDeletePendingShare(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid pending share id")
		return
	}

	if err := app.store.PendingShares.Delete(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "pending share not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "failed to delete pending share: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, &response.APIResponse[any]{Success: true, Message: "Pending share deleted"})
}
