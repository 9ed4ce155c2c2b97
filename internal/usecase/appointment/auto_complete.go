package appointment

import (
	"context"
	"log"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

// AutoComplete é a varredura periódica que conclui agendamentos cujo
// horário de fim já passou. Transição em massa iniciada pelo sistema:
// não passa pela máquina de estados nem pelo caminho de disponibilidade.
type AutoComplete struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAutoComplete(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AutoComplete {
	return &AutoComplete{
		repo:  repo,
		audit: audit,
	}
}

// Execute devolve quantos agendamentos foram concluídos. Idempotente:
// concluídos saem do filtro de status, então rodar de novo com o mesmo
// asOf não transiciona nada.
func (uc *AutoComplete) Execute(ctx context.Context, asOf time.Time) (int, error) {

	ended, err := uc.repo.ListEndedBefore(
		ctx,
		domain.BlockingStatusStrings(),
		asOf,
	)
	if err != nil {
		return 0, err
	}

	completed := 0

	for _, ap := range ended {

		// Comissão retroativa de marketplace entra junto com a conclusão.
		var commission *float64
		if domain.Source(ap.Source) == domain.SourceMarketplace && ap.Commission == nil {
			v := domain.MarketplaceCommission(ap.FinalPrice)
			commission = &v
		}

		// Update condicionado ao status lido: se alguém cancelou no meio
		// tempo, a varredura não sobrescreve o estado terminal.
		ok, err := uc.repo.CompleteIfStatus(ctx, ap.ID, ap.Status, asOf, commission)
		if err != nil {
			// falha em um agendamento não derruba a varredura
			log.Printf("autocomplete: appointment %d: %v", ap.ID, err)
			continue
		}
		if !ok {
			continue
		}

		completed++

		apID := ap.ID
		uc.audit.Dispatch(audit.Event{
			SalonID:  ap.SalonID,
			Action:   "appointment_auto_completed",
			Entity:   "appointment",
			EntityID: &apID,
		})
	}

	return completed, nil
}
