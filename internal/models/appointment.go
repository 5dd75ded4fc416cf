package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Código público usado no fluxo de acompanhamento (sem login).
	TrackingCode string `gorm:"size:36;uniqueIndex;not null" json:"tracking_code"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Intervalo meio-aberto [StartAt, EndAt).
	StartAt time.Time `gorm:"not null;index" json:"start_at"`
	EndAt   time.Time `gorm:"not null" json:"end_at"`

	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CanceledAt  *time.Time `json:"canceled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
