package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

func TestCanTransitionAllowed(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusScheduled, StatusConfirmed},
		{StatusScheduled, StatusCancelled},
		{StatusScheduled, StatusNoShow},
		{StatusScheduled, StatusInProgress},
		{StatusConfirmed, StatusInProgress},
		{StatusConfirmed, StatusCancelled},
		{StatusConfirmed, StatusNoShow},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusCancelled},
	}

	for _, tr := range allowed {
		assert.NoError(t, CanTransition(tr.from, tr.to), "%s → %s", tr.from, tr.to)
	}
}

func TestCanTransitionRejectsEverythingElse(t *testing.T) {
	all := []Status{
		StatusScheduled, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow,
	}

	allowed := map[Status]map[Status]bool{
		StatusScheduled:  {StatusConfirmed: true, StatusCancelled: true, StatusNoShow: true, StatusInProgress: true},
		StatusConfirmed:  {StatusInProgress: true, StatusCancelled: true, StatusNoShow: true},
		StatusInProgress: {StatusCompleted: true, StatusCancelled: true},
	}

	for _, from := range all {
		for _, to := range all {
			if allowed[from][to] {
				continue
			}

			err := CanTransition(from, to)
			assert.True(t, httperr.IsBusiness(err, "invalid_transition"), "%s → %s deveria ser ilegal", from, to)
		}
	}
}

func TestTerminalStatesHaveNoExit(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
		assert.True(t, IsTerminal(s))
	}
	for _, s := range []Status{StatusScheduled, StatusConfirmed, StatusInProgress} {
		assert.False(t, IsTerminal(s))
	}
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusScheduled, InitialStatus())
}

func TestBlockingStatuses(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"scheduled", "confirmed", "in_progress"},
		BlockingStatusStrings(),
	)
}
