package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Comissão fixa do marketplace sobre o preço do serviço.
const CommissionRate = 0.15

func MarketplaceCommission(price float64) float64 {
	return price * CommissionRate
}

// ApplyTransition muda o status de um agendamento já validado pela
// máquina de estados e aplica os efeitos colaterais de cada destino.
// A janela de cancelamento NÃO é checada aqui (use case).
func ApplyTransition(
	ap *models.Appointment,
	next Status,
	reason string,
	now time.Time,
) error {

	if err := CanTransition(Status(ap.Status), next); err != nil {
		return err
	}

	ap.Status = string(next)

	switch next {
	case StatusCancelled:
		ap.CancelledAt = &now
		ap.CancelReason = reason

	case StatusCompleted:
		ap.CompletedAt = &now
		applyRetroactiveCommission(ap)
	}

	return nil
}

// ForceComplete é a via privilegiada da varredura automática:
// transição em massa iniciada pelo sistema, sem passar pela máquina
// de estados. Mantida separada de ApplyTransition para a auditoria
// distinguir ação de usuário de ação de sistema.
func ForceComplete(ap *models.Appointment, now time.Time) {
	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	applyRetroactiveCommission(ap)
}

// Agendamentos de marketplace criados sem comissão (legado) ganham a
// comissão no momento da conclusão.
func applyRetroactiveCommission(ap *models.Appointment) {
	if Source(ap.Source) == SourceMarketplace && ap.Commission == nil {
		commission := MarketplaceCommission(ap.FinalPrice)
		ap.Commission = &commission
	}
}
