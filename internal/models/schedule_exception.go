package models

import "time"

const (
	ExceptionTypeVacation = "vacation"
	ExceptionTypeBlocked  = "blocked"
)

// Bloqueio avulso (férias, folga) independente da grade semanal.
// Nunca expira sozinho: só sai com delete explícito.
type ScheduleException struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `json:"salon_id"`
	StaffID uint `json:"staff_id"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Type   string `gorm:"size:20;default:'blocked'" json:"type"`
	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
