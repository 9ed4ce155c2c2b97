package schedule

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

type DeleteException struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteException(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteException {
	return &DeleteException{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteException) Execute(
	ctx context.Context,
	salonID uint,
	staffID uint,
	exceptionID uint,
) error {

	if err := uc.repo.DeleteException(ctx, salonID, staffID, exceptionID); err != nil {
		return httperr.ErrBusiness("exception_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &staffID,
		Action:   "schedule_exception_deleted",
		Entity:   "schedule_exception",
		EntityID: &exceptionID,
	})

	return nil
}
