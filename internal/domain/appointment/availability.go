package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Availability
// ===============================

const (
	// Grade fixa de 15 minutos, independente da duração do serviço.
	// Assim durações diferentes consultam a mesma grade.
	SlotStepMinutes = 15

	// Antecedência mínima para um slot ser ofertado.
	SlotLeadTime = time.Hour
)

type AvailabilityInput struct {
	SalonID   uint
	StaffID   uint
	VariantID uint
	Date      time.Time
}

// AvailableSlot é derivado sob demanda, nunca persistido.
type AvailableSlot struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	DurationMin int       `json:"duration_min"`
}

// WorkingWindow resolve a janela de expediente [início, fim) do dia
// a partir da grade semanal, no fuso do salão (já embutido em date).
// Retorna ok=false quando o dia não é de trabalho.
func WorkingWindow(ws *models.WeeklySchedule, date time.Time) (TimeSlot, bool) {
	if ws == nil || !ws.WorkingDay || ws.StartTime == "" || ws.EndTime == "" {
		return TimeSlot{}, false
	}

	loc := date.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	start := parseHM(ws.StartTime)
	end := parseHM(ws.EndTime)

	if !start.Before(end) {
		return TimeSlot{}, false
	}

	return TimeSlot{Start: start, End: end}, true
}

// FullyBlocked indica que uma única exceção cobre a janela inteira.
// Curto-circuito do dia todo: evita gerar candidatos à toa.
func FullyBlocked(exceptions []models.ScheduleException, window TimeSlot) bool {
	for _, ex := range exceptions {
		if !ex.StartTime.After(window.Start) && !ex.EndTime.Before(window.End) {
			return true
		}
	}
	return false
}

// BlockedBy verifica se o slot cruza alguma exceção.
func BlockedBy(exceptions []models.ScheduleException, slot TimeSlot) bool {
	for _, ex := range exceptions {
		if slot.Overlaps(NewTimeSlot(ex.StartTime, ex.EndTime)) {
			return true
		}
	}
	return false
}
