package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type RescheduleInput struct {
	SalonID       uint
	ActorID       uint
	AppointmentID uint

	Date string
	Time string
}

type Reschedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReschedule(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *Reschedule {
	return &Reschedule{
		repo:  repo,
		audit: audit,
	}
}

func (uc *Reschedule) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.SalonID, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// Só agendado ou confirmado pode mudar de horário.
	current := domain.Status(ap.Status)
	if current != domain.StatusScheduled && current != domain.StatusConfirmed {
		return nil, httperr.ErrBusiness("illegal_state")
	}

	newStart, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(salon.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// Duração recalculada a partir do serviço original.
	variant, err := uc.repo.GetVariant(ctx, in.SalonID, ap.ServiceVariantID)
	if err != nil {
		return nil, httperr.ErrBusiness("variant_not_found")
	}

	newEnd := newStart.Add(time.Duration(variant.DurationMin) * time.Minute)
	candidate := domain.NewTimeSlot(newStart, newEnd)

	if err := checkStaffAvailable(ctx, uc.repo, ap.StaffID, candidate); err != nil {
		return nil, err
	}

	// Excluindo o próprio id: mover para o mesmo horário não conflita
	// consigo mesmo.
	if err := checkNoConflict(ctx, uc.repo, ap.StaffID, candidate, ap.ID); err != nil {
		return nil, err
	}

	oldStart := ap.StartTime

	ap.StartTime = newStart
	ap.EndTime = newEnd

	if err := uc.repo.RescheduleAppointment(ctx, ap); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("slot_conflict")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.ActorID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from": oldStart,
			"to":   newStart,
		},
	})

	return ap, nil
}
