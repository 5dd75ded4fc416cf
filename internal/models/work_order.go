package models

import "time"

// WorkOrder é a OS gerada a partir de um agendamento confirmado.
// No máximo uma por agendamento (appointment_id único).
type WorkOrder struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	Number int  `gorm:"uniqueIndex;not null" json:"number"`

	AppointmentID *uint        `gorm:"uniqueIndex" json:"appointment_id"`
	Appointment   *Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"appointment,omitempty"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"size:500" json:"description"`
	Technician  string `gorm:"size:100" json:"technician"`

	Status string `gorm:"size:20;default:'OPEN'" json:"status"`

	LaborCents int `gorm:"default:0" json:"labor_cents"`
	PartsCents int `gorm:"default:0" json:"parts_cents"`
	TotalCents int `gorm:"default:0" json:"total_cents"`

	Photos []WorkOrderPhoto `json:"photos,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkOrderPhoto referencia uma foto do serviço armazenada no S3.
type WorkOrderPhoto struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	WorkOrderID uint   `gorm:"index;not null" json:"work_order_id"`
	ObjectKey   string `gorm:"size:255;not null" json:"object_key"`
	URL         string `gorm:"size:500" json:"url"`

	CreatedAt time.Time `json:"created_at"`
}
