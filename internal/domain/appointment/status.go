package appointment

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// ===============================
// Appointment Source
// ===============================

type Source string

const (
	SourceDirect      Source = "direct"
	SourceMarketplace Source = "marketplace"
)

// ===============================
// State Machine
// ===============================

// Tabela de transições. Tudo que não está aqui é ilegal:
// nada entra em scheduled, nada sai de completed/cancelled/no_show.
var transitions = map[Status]map[Status]bool{
	StatusScheduled: {
		StatusConfirmed:  true,
		StatusCancelled:  true,
		StatusNoShow:     true,
		StatusInProgress: true,
	},
	StatusConfirmed: {
		StatusInProgress: true,
		StatusCancelled:  true,
		StatusNoShow:     true,
	},
	StatusInProgress: {
		StatusCompleted: true,
		StatusCancelled: true,
	},
}

// CanTransition valida (atual → desejado) sem olhar para o agendamento.
// Regras de negócio (janela de cancelamento etc.) ficam no use case.
func CanTransition(current, next Status) error {
	if allowed, ok := transitions[current]; ok && allowed[next] {
		return nil
	}
	return httperr.ErrBusiness("invalid_transition")
}

func IsTerminal(s Status) bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

func InitialStatus() Status {
	return StatusScheduled
}

// BlockingStatuses são os status que ocupam a agenda do profissional
// para fins de conflito e geração de slots.
func BlockingStatuses() []Status {
	return []Status{StatusScheduled, StatusConfirmed, StatusInProgress}
}

func BlockingStatusStrings() []string {
	blocking := BlockingStatuses()
	out := make([]string, 0, len(blocking))
	for _, s := range blocking {
		out = append(out, string(s))
	}
	return out
}
