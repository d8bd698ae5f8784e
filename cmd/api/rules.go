package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/selovida/labelops/internal/response"
	"github.com/selovida/labelops/internal/rules"
)

type ListRulesResponse = response.APIResponse[[]rules.Rule]
type RuleResponse = response.APIResponse[*rules.Rule]

// handleListRules returns the evaluation-ordered rule list: builtins minus
// exclusions, then user rules.
func (app *application) handleListRules(w http.ResponseWriter, r *http.Request) {
	active, err := app.engine.ActiveRules(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list rules: "+err.Error())
		return
	}

	response := &ListRulesResponse{
		Success: true,
		Data:    active,
		Message: "Successfully listed categorization rules",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleCreateRule(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Keywords []string `json:"keywords"`
		Category string   `json:"category"`
		Type     string   `json:"type"`
	}
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	var keywords []string
	for _, kw := range input.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		writeJSONError(w, http.StatusBadRequest, "at least one keyword is required")
		return
	}
	if input.Category == "" {
		writeJSONError(w, http.StatusBadRequest, "category is required")
		return
	}
	if !rules.ValidType(rules.TransactionType(input.Type)) {
		writeJSONError(w, http.StatusBadRequest, "type must be receitas, despesas or investimentos")
		return
	}

	rule := rules.Rule{
		ID:       uuid.NewString(),
		Keywords: keywords,
		Category: input.Category,
		Type:     rules.TransactionType(input.Type),
	}

	if err := app.store.Rules.AddUserRule(r.Context(), rule); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to create rule: "+err.Error())
		return
	}

	response := &RuleResponse{
		Success: true,
		Data:    &rule,
		Message: "Rule created",
	}

	if err := writeJSON(w, http.StatusCreated, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// handleDeleteRule removes a user rule, or soft-deletes a builtin by
// recording it in the exclusion list.
func (app *application) handleDeleteRule(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid rule id")
		return
	}

	if isBuiltinRule(id) {
		if err := app.store.Rules.Exclude(r.Context(), id); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to disable builtin rule: "+err.Error())
			return
		}
		writeJSON(w, http.StatusOK, &response.APIResponse[any]{Success: true, Message: "Builtin rule disabled"})
		return
	}

	if err := app.store.Rules.RemoveUserRule(r.Context(), id); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to delete rule: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, &response.APIResponse[any]{Success: true, Message: "Rule deleted"})
}

func (app *application) handleRestoreRule(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if !isBuiltinRule(id) {
		writeJSONError(w, http.StatusBadRequest, "only builtin rules can be restored")
		return
	}

	if err := app.store.Rules.Restore(r.Context(), id); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to restore rule: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, &response.APIResponse[any]{Success: true, Message: "Builtin rule restored"})
}

// handleMatchRule previews which rule a description would resolve to.
// No match is not an error: data is null and the message says so.
func (app *application) handleMatchRule(w http.ResponseWriter, r *http.Request) {
	description := r.URL.Query().Get("description")
	if description == "" {
		writeJSONError(w, http.StatusBadRequest, "description is required")
		return
	}

	rule, err := app.engine.Match(r.Context(), description)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to match rule: "+err.Error())
		return
	}

	message := "No rule matched"
	if rule != nil {
		message = "Matched rule " + rule.ID
	}

	response := &RuleResponse{
		Success: true,
		Data:    rule,
		Message: message,
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func isBuiltinRule(id string) bool {
	for _, r := range rules.BuiltinRules() {
		if r.ID == id {
			return true
		}
	}
	return false
}
