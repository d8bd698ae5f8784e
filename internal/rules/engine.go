package rules

import (
	"context"
	"fmt"
	"strings"
)

// Engine resolves transaction descriptions against the combined rule list:
// builtin rules in fixed order (minus soft-deleted ones), then user rules in
// insertion order. First match wins; there is no scoring or longest-match
// preference.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// ActiveRules assembles the evaluation-ordered rule list.
func (e *Engine) ActiveRules(ctx context.Context) ([]Rule, error) {
	excluded, err := e.store.Exclusions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule exclusions: %w", err)
	}
	skip := make(map[string]struct{}, len(excluded))
	for _, id := range excluded {
		skip[id] = struct{}{}
	}

	var out []Rule
	for _, r := range builtinRules {
		if _, ok := skip[r.ID]; ok {
			continue
		}
		out = append(out, r)
	}

	userRules, err := e.store.ListUserRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load user rules: %w", err)
	}
	out = append(out, userRules...)

	return out, nil
}

// Match returns the first rule whose keyword list contains a case-insensitive
// substring of description. A nil rule with a nil error means no rule
// matched; callers fall back to external classification.
func (e *Engine) Match(ctx context.Context, description string) (*Rule, error) {
	active, err := e.ActiveRules(ctx)
	if err != nil {
		return nil, err
	}

	desc := strings.ToLower(description)
	for i := range active {
		for _, kw := range active[i].Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(desc, strings.ToLower(kw)) {
				return &active[i], nil
			}
		}
	}
	return nil, nil
}
