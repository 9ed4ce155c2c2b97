package models

import "time"

type Salon struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	Timezone string `gorm:"size:50;default:'America/Sao_Paulo'" json:"timezone"`

	// Janela mínima (em horas) para cancelar agendamentos de marketplace
	CancellationWindowHours int `gorm:"default:24" json:"cancellation_window_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
