package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID uint  `json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"salon"`

	StaffID uint `json:"staff_id"`
	Staff   User `gorm:"foreignKey:StaffID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceVariantID uint           `json:"service_variant_id"`
	ServiceVariant   ServiceVariant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service_variant"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`
	Source string `gorm:"size:20;default:'direct'" json:"source"`

	// Snapshot do preço do serviço no momento da criação
	FinalPrice float64  `json:"final_price"`
	Commission *float64 `json:"commission"`

	// Referência pública usada pelo canal de marketplace
	PublicRef string `gorm:"size:36;uniqueIndex" json:"public_ref"`

	Notes        string `gorm:"size:255" json:"notes"`
	CancelReason string `gorm:"size:255" json:"cancel_reason"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
