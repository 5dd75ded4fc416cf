package models

import "time"

// TimeOff bloqueia agendamentos no intervalo [StartAt, EndAt),
// independente do horário comercial.
type TimeOff struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StartAt time.Time `gorm:"not null;index" json:"start_at"`
	EndAt   time.Time `gorm:"not null" json:"end_at"`
	Reason  string    `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
