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

type UpdateStatusInput struct {
	SalonID       uint
	ActorID       uint
	AppointmentID uint

	NewStatus domain.Status
	Reason    string
}

type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.SalonID, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// Máquina de estados primeiro: transição ilegal falha antes de
	// qualquer regra de negócio.
	if err := domain.CanTransition(domain.Status(ap.Status), in.NewStatus); err != nil {
		return nil, err
	}

	now := timezone.NowIn(salon.Timezone)

	// Janela de cancelamento: só marketplace. O cancelamento precisa
	// acontecer com pelo menos N horas de antecedência do início.
	if in.NewStatus == domain.StatusCancelled &&
		domain.Source(ap.Source) == domain.SourceMarketplace {

		window := salon.CancellationWindowHours
		if window <= 0 {
			window = 24
		}

		deadline := now.Add(time.Duration(window) * time.Hour)
		if ap.StartTime.Before(deadline) {
			return nil, httperr.ErrBusiness("cancellation_window_expired")
		}
	}

	fromStatus := ap.Status

	if err := domain.ApplyTransition(ap, in.NewStatus, in.Reason, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.ActorID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from": fromStatus,
			"to":   ap.Status,
		},
	})

	return ap, nil
}
