package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func seedAt(repo *fakeRepo, status string, day string, hm string) *models.Appointment {
	loc, _ := time.LoadLocation("America/Sao_Paulo")
	start, _ := time.ParseInLocation("2006-01-02 15:04", day+" "+hm, loc)

	return repo.seedAppointment(models.Appointment{
		SalonID:          1,
		StaffID:          10,
		ServiceVariantID: 100,
		Status:           status,
		Source:           "direct",
		FinalPrice:       100.0,
		StartTime:        start,
		EndTime:          start.Add(time.Hour),
	})
}

func TestRescheduleToFreeSlot(t *testing.T) {
	repo := newFakeRepo().workAllWeek()
	ap := seedAt(repo, "scheduled", "2030-01-07", "10:00")

	uc := NewReschedule(repo, audit.NewNop())

	updated, err := uc.Execute(context.Background(), RescheduleInput{
		SalonID:       1,
		ActorID:       10,
		AppointmentID: ap.ID,
		Date:          "2030-01-07",
		Time:          "14:00",
	})
	require.NoError(t, err)

	assert.Equal(t, 14, updated.StartTime.Hour())
	assert.Equal(t, 15, updated.EndTime.Hour())
	// status não muda no reagendamento
	assert.Equal(t, "scheduled", updated.Status)
}

func TestRescheduleToOwnSlot(t *testing.T) {
	repo := newFakeRepo().workAllWeek()
	ap := seedAt(repo, "confirmed", "2030-01-07", "10:00")

	uc := NewReschedule(repo, audit.NewNop())

	// mover para o próprio horário não conflita consigo mesmo
	_, err := uc.Execute(context.Background(), RescheduleInput{
		SalonID:       1,
		AppointmentID: ap.ID,
		Date:          "2030-01-07",
		Time:          "10:00",
	})
	assert.NoError(t, err)
}

func TestRescheduleConflictsWithOther(t *testing.T) {
	repo := newFakeRepo().workAllWeek()
	ap := seedAt(repo, "scheduled", "2030-01-07", "10:00")
	seedAt(repo, "confirmed", "2030-01-07", "14:00")

	uc := NewReschedule(repo, audit.NewNop())

	_, err := uc.Execute(context.Background(), RescheduleInput{
		SalonID:       1,
		AppointmentID: ap.ID,
		Date:          "2030-01-07",
		Time:          "14:30",
	})
	assert.True(t, httperr.IsBusiness(err, "slot_conflict"))
}

func TestRescheduleOutsideWorkingHours(t *testing.T) {
	repo := newFakeRepo().workAllWeek()
	ap := seedAt(repo, "scheduled", "2030-01-07", "10:00")

	uc := NewReschedule(repo, audit.NewNop())

	_, err := uc.Execute(context.Background(), RescheduleInput{
		SalonID:       1,
		AppointmentID: ap.ID,
		Date:          "2030-01-07",
		Time:          "18:00",
	})
	assert.True(t, httperr.IsBusiness(err, "staff_unavailable"))
}

func TestRescheduleIllegalStates(t *testing.T) {
	repo := newFakeRepo().workAllWeek()
	uc := NewReschedule(repo, audit.NewNop())

	for _, status := range []string{"in_progress", "completed", "cancelled", "no_show"} {
		ap := seedAt(repo, status, "2030-01-08", "10:00")

		_, err := uc.Execute(context.Background(), RescheduleInput{
			SalonID:       1,
			AppointmentID: ap.ID,
			Date:          "2030-01-09",
			Time:          "10:00",
		})
		assert.True(t, httperr.IsBusiness(err, "illegal_state"), "status %s", status)
	}
}

func TestRescheduleInvalidTime(t *testing.T) {
	repo := newFakeRepo().workAllWeek()
	ap := seedAt(repo, "scheduled", "2030-01-07", "10:00")

	uc := NewReschedule(repo, audit.NewNop())

	_, err := uc.Execute(context.Background(), RescheduleInput{
		SalonID:       1,
		AppointmentID: ap.ID,
		Date:          "2030-01-07",
		Time:          "25:99",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}
