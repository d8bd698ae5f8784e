package main

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/selovida/labelops/internal/response"
	"github.com/selovida/labelops/internal/shares"
	"github.com/selovida/labelops/internal/store"
)

type ListReleasesResponse = response.APIResponse[[]store.Release]
type ReleaseResponse = response.APIResponse[*store.Release]

// ReleaseParticipantsView couples the participant list with the effective
// share status: the manual override when set, otherwise the derived
// tri-state (true / false / null for pending or mixed).
type ReleaseParticipantsView struct {
	ReleaseID    int64                `json:"release_id"`
	Participants []shares.Participant `json:"participants"`
	ShareApplied *bool                `json:"share_applied"`
	Derived      *bool                `json:"derived_share_applied"`
	ManualSet    bool                 `json:"manual_override"`
}

type ReleaseParticipantsResponse = response.APIResponse[ReleaseParticipantsView]

func (app *application) handleListReleases(w http.ResponseWriter, r *http.Request) {
	data, err := app.store.Releases.List(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list releases: "+err.Error())
		return
	}

	response := &ListReleasesResponse{
		Success: true,
		Data:    data,
		Message: "Successfully listed releases",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleCreateRelease(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title       string `json:"title"`
		ArtistID    *int64 `json:"artist_id"`
		ReleaseDate string `json:"release_date"`
	}
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if input.Title == "" {
		writeJSONError(w, http.StatusBadRequest, "title is required")
		return
	}

	release := &store.Release{Title: input.Title, ArtistID: input.ArtistID}
	if input.ReleaseDate != "" {
		date, err := parseTime(input.ReleaseDate)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid release_date format (YYYY-MM-DD expected)")
			return
		}
		release.ReleaseDate = &date
	}

	if err := app.store.Releases.Insert(r.Context(), release); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to create release: "+err.Error())
		return
	}

	response := &ReleaseResponse{
		Success: true,
		Data:    release,
		Message: "Release created",
	}

	if err := writeJSON(w, http.StatusCreated, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleGetReleaseParticipants(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid release id")
		return
	}

	ctx := r.Context()
	release, err := app.store.Releases.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		writeJSONError(w, http.StatusNotFound, "release not found")
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get release: "+err.Error())
		return
	}

	rows, err := app.store.Releases.ListParticipants(ctx, id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list participants: "+err.Error())
		return
	}

	participants := participantsFromRows(rows)
	view := ReleaseParticipantsView{
		ReleaseID:    id,
		Participants: participants,
		ShareApplied: shares.ReleaseShareApplied(release.ShareApplied, participants),
		Derived:      shares.Applied(participants),
		ManualSet:    release.ShareApplied != nil,
	}

	response := &ReleaseParticipantsResponse{
		Success: true,
		Data:    view,
		Message: "Successfully retrieved release participants",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// handleReplaceReleaseParticipants rewrites the whole split. There is no
// per-participant patch and no optimistic-lock check: concurrent editors
// overwrite each other, last write wins.
func (app *application) handleReplaceReleaseParticipants(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid release id")
		return
	}

	var input struct {
		Participants []shares.Participant `json:"participants"`
	}
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := shares.Validate(input.Participants); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	release, err := app.store.Releases.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		writeJSONError(w, http.StatusNotFound, "release not found")
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get release: "+err.Error())
		return
	}

	rows := make([]store.ReleaseParticipant, len(input.Participants))
	for i, p := range input.Participants {
		rows[i] = store.ReleaseParticipant{
			Name:        p.Name,
			Role:        p.Role,
			Percentage:  p.Percentage,
			ShareStatus: string(p.ShareStatus),
		}
	}

	if err := app.store.Releases.ReplaceParticipants(ctx, id, rows); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to save participants: "+err.Error())
		return
	}

	view := ReleaseParticipantsView{
		ReleaseID:    id,
		Participants: input.Participants,
		ShareApplied: shares.ReleaseShareApplied(release.ShareApplied, input.Participants),
		Derived:      shares.Applied(input.Participants),
		ManualSet:    release.ShareApplied != nil,
	}

	response := &ReleaseParticipantsResponse{
		Success: true,
		Data:    view,
		Message: "Participants saved",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// handleSetReleaseShareStatus sets or clears the manual override. Sending
// null reverts the release to the derived status.
func (app *application) handleSetReleaseShareStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid release id")
		return
	}

	var input struct {
		ShareApplied *bool `json:"share_applied"`
	}
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := app.store.Releases.SetShareApplied(r.Context(), id, input.ShareApplied); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "release not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "failed to update share status: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, &response.APIResponse[any]{Success: true, Message: "Share status updated"})
}

func participantsFromRows(rows []store.ReleaseParticipant) []shares.Participant {
	out := make([]shares.Participant, len(rows))
	for i, row := range rows {
		out[i] = shares.Participant{
			Name:        row.Name,
			Role:        row.Role,
			Percentage:  row.Percentage,
			ShareStatus: shares.Status(row.ShareStatus),
		}
	}
	return out
}
