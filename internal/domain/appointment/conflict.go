package appointment

import "github.com/BruksfildServices01/salon-scheduler/internal/models"

// ===============================
// Conflict Detection
// ===============================

// Conflicts filtra os agendamentos que ocupam o mesmo intervalo do
// candidato. A query já pré-filtra por profissional/status/intervalo;
// aqui fica a palavra final, sempre via TimeSlot.Overlaps.
// excludeID ignora o próprio agendamento durante reagendamento (0 = nenhum).
func Conflicts(
	existing []models.Appointment,
	candidate TimeSlot,
	blocking []Status,
	excludeID uint,
) []models.Appointment {

	isBlocking := make(map[Status]bool, len(blocking))
	for _, s := range blocking {
		isBlocking[s] = true
	}

	var out []models.Appointment
	for _, ap := range existing {
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		if !isBlocking[Status(ap.Status)] {
			continue
		}
		if candidate.Overlaps(NewTimeSlot(ap.StartTime, ap.EndTime)) {
			out = append(out, ap)
		}
	}

	return out
}
