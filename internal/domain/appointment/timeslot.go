package appointment

import "time"

// ===============================
// Time Slot
// ===============================

// TimeSlot representa o intervalo meio-aberto [Start, End).
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewTimeSlot(start, end time.Time) TimeSlot {
	return TimeSlot{Start: start, End: end}
}

// Overlaps é o único predicado de interseção do sistema.
// Intervalos que apenas se tocam (fim == início) NÃO se sobrepõem.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.Start.Before(other.End) && other.Start.Before(s.End)
}

func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}
