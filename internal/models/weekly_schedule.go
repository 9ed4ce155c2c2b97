package models

import "time"

// Um registro por (profissional, dia da semana).
// A única escrita suportada é a substituição dos 7 dias de uma vez;
// dia ausente significa "não trabalha", nunca "sem alteração".
type WeeklySchedule struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `json:"salon_id"`
	StaffID uint `json:"staff_id"`

	Weekday int `json:"weekday"`

	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	WorkingDay bool   `json:"working_day"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
