package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute enumera os slots livres do dia para um profissional e um
// serviço. Sempre recalculado do zero — nada de cache entre chamadas.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.AvailableSlot, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	variant, err := uc.repo.GetVariant(ctx, in.SalonID, in.VariantID)
	if err != nil {
		return nil, httperr.ErrBusiness("variant_not_found")
	}

	// 1. Grade semanal do dia
	weekday := int(in.Date.Weekday())

	ws, err := uc.repo.GetWeeklySchedule(ctx, in.StaffID, weekday)
	if err != nil {
		return []domain.AvailableSlot{}, nil
	}

	// 2. Janela de expediente no fuso do salão
	window, ok := domain.WorkingWindow(ws, in.Date)
	if !ok {
		return []domain.AvailableSlot{}, nil
	}

	// 3. Exceções que cruzam a janela; dia inteiro bloqueado encerra aqui
	exceptions, err := uc.repo.ListExceptionsOverlapping(
		ctx,
		in.StaffID,
		window.Start,
		window.End,
	)
	if err != nil {
		return nil, err
	}

	if domain.FullyBlocked(exceptions, window) {
		return []domain.AvailableSlot{}, nil
	}

	// 4. Agendamentos bloqueantes dentro da janela
	existing, err := uc.repo.ListOverlapping(
		ctx,
		in.StaffID,
		window.Start,
		window.End,
		domain.BlockingStatusStrings(),
		0,
	)
	if err != nil {
		return nil, err
	}

	// 5. Caminha a grade de 15 em 15 minutos enquanto o slot couber na
	// janela. Sobra no fim do expediente não vira slot parcial.
	slotDuration := time.Duration(variant.DurationMin) * time.Minute
	step := domain.SlotStepMinutes * time.Minute
	minStart := timezone.NowIn(salon.Timezone).Add(domain.SlotLeadTime)

	slots := []domain.AvailableSlot{}

	for cur := window.Start; !cur.Add(slotDuration).After(window.End); cur = cur.Add(step) {

		slot := domain.NewTimeSlot(cur, cur.Add(slotDuration))

		// antecedência mínima
		if !slot.Start.After(minStart) {
			continue
		}

		if len(domain.Conflicts(existing, slot, domain.BlockingStatuses(), 0)) > 0 {
			continue
		}

		if domain.BlockedBy(exceptions, slot) {
			continue
		}

		slots = append(slots, domain.AvailableSlot{
			Start:       slot.Start,
			End:         slot.End,
			DurationMin: variant.DurationMin,
		})
	}

	return slots, nil
}
