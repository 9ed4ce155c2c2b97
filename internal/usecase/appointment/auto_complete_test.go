package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func seedEnded(repo *fakeRepo, status, source string, endedAgo time.Duration) *models.Appointment {
	end := time.Now().Add(-endedAgo)
	return repo.seedAppointment(models.Appointment{
		SalonID:    1,
		StaffID:    10,
		Status:     status,
		Source:     source,
		FinalPrice: 100.0,
		StartTime:  end.Add(-time.Hour),
		EndTime:    end,
	})
}

func TestAutoCompleteSweep(t *testing.T) {
	repo := newFakeRepo()

	ended := seedEnded(repo, "confirmed", "direct", 2*time.Hour)
	inProgress := seedEnded(repo, "in_progress", "direct", time.Hour)
	cancelled := seedEnded(repo, "cancelled", "direct", 3*time.Hour)
	future := repo.seedAppointment(models.Appointment{
		SalonID:   1,
		StaffID:   10,
		Status:    "scheduled",
		Source:    "direct",
		StartTime: time.Now().Add(time.Hour),
		EndTime:   time.Now().Add(2 * time.Hour),
	})

	uc := NewAutoComplete(repo, audit.NewNop())

	count, err := uc.Execute(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 2, count)

	for _, id := range []uint{ended.ID, inProgress.ID} {
		got, err := repo.GetAppointment(context.Background(), 1, id)
		require.NoError(t, err)
		assert.Equal(t, "completed", got.Status)
		assert.NotNil(t, got.CompletedAt)
	}

	// terminal e futuro ficam intocados
	got, _ := repo.GetAppointment(context.Background(), 1, cancelled.ID)
	assert.Equal(t, "cancelled", got.Status)

	got, _ = repo.GetAppointment(context.Background(), 1, future.ID)
	assert.Equal(t, "scheduled", got.Status)
}

func TestAutoCompleteIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	seedEnded(repo, "scheduled", "direct", 2*time.Hour)

	uc := NewAutoComplete(repo, audit.NewNop())
	asOf := time.Now()

	count, err := uc.Execute(context.Background(), asOf)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// segunda passada com o mesmo asOf: nada a fazer
	count, err = uc.Execute(context.Background(), asOf)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAutoCompleteBackfillsMarketplaceCommission(t *testing.T) {
	repo := newFakeRepo()
	ap := seedEnded(repo, "confirmed", "marketplace", 2*time.Hour)

	uc := NewAutoComplete(repo, audit.NewNop())

	_, err := uc.Execute(context.Background(), time.Now())
	require.NoError(t, err)

	got, err := repo.GetAppointment(context.Background(), 1, ap.ID)
	require.NoError(t, err)

	require.NotNil(t, got.Commission)
	assert.InDelta(t, 15.0, *got.Commission, 1e-9)
}

// Se o status mudou entre a leitura e o update, o update condicional
// não grava e a varredura segue em frente.
func TestAutoCompleteSkipsWhenStatusChangedMeanwhile(t *testing.T) {
	repo := newFakeRepo()
	ap := seedEnded(repo, "cancelled", "direct", 2*time.Hour)

	// snapshot da leitura ainda via o agendamento como scheduled
	stale := *ap
	stale.Status = "scheduled"
	repo.endedSnapshot = []models.Appointment{stale}

	uc := NewAutoComplete(repo, audit.NewNop())

	count, err := uc.Execute(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Zero(t, count)

	got, _ := repo.GetAppointment(context.Background(), 1, ap.ID)
	assert.Equal(t, "cancelled", got.Status)
}
