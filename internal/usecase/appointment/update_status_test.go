package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func seedScheduled(repo *fakeRepo, source string, startsIn time.Duration) *models.Appointment {
	start := time.Now().Add(startsIn)
	return repo.seedAppointment(models.Appointment{
		SalonID:    1,
		StaffID:    10,
		Status:     "scheduled",
		Source:     source,
		FinalPrice: 100.0,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
	})
}

func TestUpdateStatusConfirm(t *testing.T) {
	repo := newFakeRepo()
	ap := seedScheduled(repo, "direct", 48*time.Hour)

	uc := NewUpdateStatus(repo, audit.NewNop())

	updated, err := uc.Execute(context.Background(), UpdateStatusInput{
		SalonID:       1,
		ActorID:       10,
		AppointmentID: ap.ID,
		NewStatus:     domain.StatusConfirmed,
	})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", updated.Status)
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	repo := newFakeRepo()
	ap := seedScheduled(repo, "direct", 48*time.Hour)

	uc := NewUpdateStatus(repo, audit.NewNop())

	// scheduled → completed não existe na máquina de estados
	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		SalonID:       1,
		AppointmentID: ap.ID,
		NewStatus:     domain.StatusCompleted,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUpdateStatus(repo, audit.NewNop())

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		SalonID:       1,
		AppointmentID: 999,
		NewStatus:     domain.StatusConfirmed,
	})
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestCancelMarketplaceInsideWindowFails(t *testing.T) {
	repo := newFakeRepo()
	// começa em 2h, janela de 24h → dentro da janela
	ap := seedScheduled(repo, "marketplace", 2*time.Hour)

	uc := NewUpdateStatus(repo, audit.NewNop())

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		SalonID:       1,
		AppointmentID: ap.ID,
		NewStatus:     domain.StatusCancelled,
		Reason:        "imprevisto",
	})
	assert.True(t, httperr.IsBusiness(err, "cancellation_window_expired"))
}

func TestCancelMarketplaceOutsideWindow(t *testing.T) {
	repo := newFakeRepo()
	ap := seedScheduled(repo, "marketplace", 48*time.Hour)

	uc := NewUpdateStatus(repo, audit.NewNop())

	updated, err := uc.Execute(context.Background(), UpdateStatusInput{
		SalonID:       1,
		AppointmentID: ap.ID,
		NewStatus:     domain.StatusCancelled,
		Reason:        "cliente remarcou",
	})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", updated.Status)
	assert.Equal(t, "cliente remarcou", updated.CancelReason)
	assert.NotNil(t, updated.CancelledAt)
}

func TestCancelDirectIgnoresWindow(t *testing.T) {
	repo := newFakeRepo()
	// começa em 2h, mas canal direto não tem janela
	ap := seedScheduled(repo, "direct", 2*time.Hour)

	uc := NewUpdateStatus(repo, audit.NewNop())

	updated, err := uc.Execute(context.Background(), UpdateStatusInput{
		SalonID:       1,
		AppointmentID: ap.ID,
		NewStatus:     domain.StatusCancelled,
	})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", updated.Status)
}

func TestCancelMarketplaceCustomWindow(t *testing.T) {
	repo := newFakeRepo()
	repo.salon.CancellationWindowHours = 2

	// começa em 4h, janela de 2h → fora da janela, pode cancelar
	ap := seedScheduled(repo, "marketplace", 4*time.Hour)

	uc := NewUpdateStatus(repo, audit.NewNop())

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		SalonID:       1,
		AppointmentID: ap.ID,
		NewStatus:     domain.StatusCancelled,
	})
	assert.NoError(t, err)
}

func TestCompleteViaStateMachine(t *testing.T) {
	repo := newFakeRepo()
	ap := seedScheduled(repo, "marketplace", 48*time.Hour)
	ap.Status = "in_progress"
	ap.Commission = nil
	require.NoError(t, repo.UpdateAppointment(context.Background(), ap))

	uc := NewUpdateStatus(repo, audit.NewNop())

	updated, err := uc.Execute(context.Background(), UpdateStatusInput{
		SalonID:       1,
		AppointmentID: ap.ID,
		NewStatus:     domain.StatusCompleted,
	})
	require.NoError(t, err)

	assert.Equal(t, "completed", updated.Status)
	require.NotNil(t, updated.CompletedAt)

	// comissão retroativa de marketplace na conclusão
	require.NotNil(t, updated.Commission)
	assert.InDelta(t, 15.0, *updated.Commission, 1e-9)
}

func TestTerminalStatusIsFrozen(t *testing.T) {
	repo := newFakeRepo()
	ap := seedScheduled(repo, "direct", 48*time.Hour)
	ap.Status = "cancelled"
	require.NoError(t, repo.UpdateAppointment(context.Background(), ap))

	uc := NewUpdateStatus(repo, audit.NewNop())

	for _, next := range []domain.Status{
		domain.StatusScheduled, domain.StatusConfirmed,
		domain.StatusInProgress, domain.StatusCompleted, domain.StatusNoShow,
	} {
		_, err := uc.Execute(context.Background(), UpdateStatusInput{
			SalonID:       1,
			AppointmentID: ap.ID,
			NewStatus:     next,
		})
		assert.True(t, httperr.IsBusiness(err, "invalid_transition"), "cancelled → %s", next)
	}
}
