package models

import "time"

// Cliente simples, sem login. Email é a única chave de dedupe
// (telefone não é único no modelo).
type Customer struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string  `gorm:"size:100;not null" json:"name"`
	Phone string  `gorm:"size:20" json:"phone"`
	Email *string `gorm:"size:100;uniqueIndex" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
