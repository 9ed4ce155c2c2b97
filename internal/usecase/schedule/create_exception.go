package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CreateExceptionInput struct {
	SalonID uint
	StaffID uint

	StartTime time.Time
	EndTime   time.Time
	Type      string
	Reason    string
}

type CreateException struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateException(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateException {
	return &CreateException{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateException) Execute(
	ctx context.Context,
	in CreateExceptionInput,
) (*models.ScheduleException, error) {

	if !in.StartTime.Before(in.EndTime) {
		return nil, httperr.ErrBusiness("invalid_exception_interval")
	}

	// Exceções do mesmo profissional não podem se cruzar — teste de
	// sobreposição de verdade, não de igualdade exata de intervalo.
	existing, err := uc.repo.ListExceptionsOverlapping(
		ctx,
		in.StaffID,
		in.StartTime,
		in.EndTime,
	)
	if err != nil {
		return nil, err
	}

	candidate := domain.NewTimeSlot(in.StartTime, in.EndTime)
	for _, ex := range existing {
		if candidate.Overlaps(domain.NewTimeSlot(ex.StartTime, ex.EndTime)) {
			return nil, httperr.ErrBusiness("exception_overlap")
		}
	}

	exType := in.Type
	if exType == "" {
		exType = models.ExceptionTypeBlocked
	}

	ex := &models.ScheduleException{
		SalonID:   in.SalonID,
		StaffID:   in.StaffID,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Type:      exType,
		Reason:    in.Reason,
	}

	if err := uc.repo.CreateException(ctx, ex); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.StaffID,
		Action:   "schedule_exception_created",
		Entity:   "schedule_exception",
		EntityID: &ex.ID,
	})

	return ex, nil
}
