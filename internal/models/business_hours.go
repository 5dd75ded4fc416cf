package models

import "time"

// BusinessHours guarda a janela de atendimento por dia da semana
// (0=domingo .. 6=sábado), em minutos desde a meia-noite local.
type BusinessHours struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Weekday  int  `gorm:"uniqueIndex;not null" json:"weekday"`
	Active   bool `gorm:"default:false" json:"active"`
	StartMin int  `json:"start_min"`
	EndMin   int  `json:"end_min"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
