package shares

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppliedAllAppliedSumsTo100(t *testing.T) {
	t.Parallel()
	got := Applied([]Participant{
		{Name: "Ana", Percentage: 60, ShareStatus: StatusApplied},
		{Name: "Beto", Percentage: 40, ShareStatus: StatusApplied},
	})
	require.NotNil(t, got)
	require.True(t, *got)
}

func TestAppliedAllAppliedWrongSum(t *testing.T) {
	t.Parallel()
	// Statuses all applied but the split only covers 90%; still unresolved.
	got := Applied([]Participant{
		{Name: "Ana", Percentage: 60, ShareStatus: StatusApplied},
		{Name: "Beto", Percentage: 30, ShareStatus: StatusApplied},
	})
	require.Nil(t, got)
}

func TestAppliedFloatDriftWithinTolerance(t *testing.T) {
	t.Parallel()
	got := Applied([]Participant{
		{Name: "A", Percentage: 33.33, ShareStatus: StatusApplied},
		{Name: "B", Percentage: 33.33, ShareStatus: StatusApplied},
		{Name: "C", Percentage: 33.34, ShareStatus: StatusApplied},
	})
	require.NotNil(t, got)
	require.True(t, *got)
}

func TestAppliedAllNotApplied(t *testing.T) {
	t.Parallel()
	got := Applied([]Participant{
		{Name: "Ana", Percentage: 50, ShareStatus: StatusNotApplied},
		{Name: "Beto", Percentage: 50, ShareStatus: StatusNotApplied},
	})
	require.NotNil(t, got)
	require.False(t, *got)
}

func TestAppliedMixedStatuses(t *testing.T) {
	t.Parallel()
	got := Applied([]Participant{
		{Name: "Ana", Percentage: 50, ShareStatus: StatusApplied},
		{Name: "Beto", Percentage: 50, ShareStatus: StatusPending},
	})
	require.Nil(t, got)
}

func TestAppliedEmptyList(t *testing.T) {
	t.Parallel()
	require.Nil(t, Applied(nil))
	require.Nil(t, Applied([]Participant{}))
}

func TestReleaseShareAppliedManualWins(t *testing.T) {
	t.Parallel()
	parts := []Participant{
		{Name: "Ana", Percentage: 100, ShareStatus: StatusApplied},
	}

	manual := false
	got := ReleaseShareApplied(&manual, parts)
	require.NotNil(t, got)
	require.False(t, *got)

	// Without an override the derived value comes through.
	got = ReleaseShareApplied(nil, parts)
	require.NotNil(t, got)
	require.True(t, *got)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate(nil))
	require.NoError(t, Validate([]Participant{
		{Name: "Ana", Percentage: 100, ShareStatus: StatusPending},
	}))

	require.Error(t, Validate([]Participant{
		{Name: "  ", Percentage: 50, ShareStatus: StatusPending},
	}))
	require.Error(t, Validate([]Participant{
		{Name: "Ana", Percentage: 120, ShareStatus: StatusPending},
	}))
	require.Error(t, Validate([]Participant{
		{Name: "Ana", Percentage: 50, ShareStatus: Status("done")},
	}))
}
