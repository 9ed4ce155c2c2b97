package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// checkStaffAvailable valida um único candidato contra a grade semanal
// e as exceções — os mesmos passos 1–3 da geração de slots, sem enumerar.
// Compartilhado por create e reschedule.
func checkStaffAvailable(
	ctx context.Context,
	repo domain.Repository,
	staffID uint,
	candidate domain.TimeSlot,
) error {

	weekday := int(candidate.Start.Weekday())

	ws, err := repo.GetWeeklySchedule(ctx, staffID, weekday)
	if err != nil {
		return httperr.ErrBusiness("staff_unavailable")
	}

	window, ok := domain.WorkingWindow(ws, candidate.Start)
	if !ok {
		return httperr.ErrBusiness("staff_unavailable")
	}

	if candidate.Start.Before(window.Start) || candidate.End.After(window.End) {
		return httperr.ErrBusiness("staff_unavailable")
	}

	exceptions, err := repo.ListExceptionsOverlapping(
		ctx,
		staffID,
		candidate.Start,
		candidate.End,
	)
	if err != nil {
		return err
	}

	if domain.BlockedBy(exceptions, candidate) {
		return httperr.ErrBusiness("staff_unavailable")
	}

	return nil
}

// checkNoConflict roda o detector de conflitos contra os status
// bloqueantes. excludeID ignora o próprio agendamento no reagendamento.
func checkNoConflict(
	ctx context.Context,
	repo domain.Repository,
	staffID uint,
	candidate domain.TimeSlot,
	excludeID uint,
) error {

	existing, err := repo.ListOverlapping(
		ctx,
		staffID,
		candidate.Start,
		candidate.End,
		domain.BlockingStatusStrings(),
		excludeID,
	)
	if err != nil {
		return err
	}

	conflicts := domain.Conflicts(
		existing,
		candidate,
		domain.BlockingStatuses(),
		excludeID,
	)
	if len(conflicts) > 0 {
		return httperr.ErrBusiness("slot_conflict")
	}

	return nil
}
