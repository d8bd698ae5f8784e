// Package shares derives the royalty-split status of a release from its
// participant list. A "share" here is the percentage of a release owed to a
// contributing participant (composer, performer, producer).
package shares

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Status is the per-participant share state. Participants start pending and
// move to applied or not_applied; the field itself permits moving back.
type Status string

const (
	StatusPending    Status = "pending"
	StatusApplied    Status = "applied"
	StatusNotApplied Status = "not_applied"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApplied, StatusNotApplied:
		return true
	}
	return false
}

// Participant is one entry in a release's royalty split.
type Participant struct {
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	Percentage  float64 `json:"percentage"`
	ShareStatus Status  `json:"share_status"`
}

// PercentTolerance absorbs float drift when checking that a split sums to 100.
const PercentTolerance = 0.01

// Applied computes the tri-state reconciliation status of a split:
//
//	true:  every participant applied and percentages sum to 100
//	false: every participant explicitly not applied
//	nil:   anything else, such as pending or mixed statuses, an empty list,
//	       or a complete split whose percentages do not add up
func Applied(participants []Participant) *bool {
	if len(participants) == 0 {
		return nil
	}

	allApplied := true
	allNotApplied := true
	pcts := make([]float64, len(participants))
	for i, p := range participants {
		pcts[i] = p.Percentage
		if p.ShareStatus != StatusApplied {
			allApplied = false
		}
		if p.ShareStatus != StatusNotApplied {
			allNotApplied = false
		}
	}

	if allApplied {
		sum := floats.Sum(pcts)
		if sum > 100-PercentTolerance && sum < 100+PercentTolerance {
			v := true
			return &v
		}
		return nil
	}
	if allNotApplied {
		v := false
		return &v
	}
	return nil
}

// ReleaseShareApplied resolves the effective status: a manually-set override
// on the release always wins over the derived value.
func ReleaseShareApplied(manual *bool, participants []Participant) *bool {
	if manual != nil {
		return manual
	}
	return Applied(participants)
}

// Validate checks a wholesale participant rewrite before it is persisted.
func Validate(participants []Participant) error {
	for i, p := range participants {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("participant %d: name is required", i)
		}
		if p.Percentage < 0 || p.Percentage > 100 {
			return fmt.Errorf("participant %d: percentage must be between 0 and 100", i)
		}
		if !ValidStatus(p.ShareStatus) {
			return fmt.Errorf("participant %d: invalid share status %q", i, p.ShareStatus)
		}
	}
	return nil
}
