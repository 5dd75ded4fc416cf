package models

import "time"

// Invoice (nota) é emitida no máximo uma vez por OS (work_order_id único).
type Invoice struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	Number int  `gorm:"uniqueIndex;not null" json:"number"`

	WorkOrderID uint      `gorm:"uniqueIndex;not null" json:"work_order_id"`
	WorkOrder   WorkOrder `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"work_order"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	Status   string     `gorm:"size:20;default:'DRAFT'" json:"status"`
	IssuedAt *time.Time `json:"issued_at"`

	SubtotalCents int `gorm:"default:0" json:"subtotal_cents"`
	DiscountCents int `gorm:"default:0" json:"discount_cents"`
	TotalCents    int `gorm:"default:0" json:"total_cents"`

	Items []InvoiceItem `json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type InvoiceItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	InvoiceID uint `gorm:"index;not null" json:"invoice_id"`

	Description string `gorm:"size:255;not null" json:"description"`
	Qty         int    `gorm:"default:1" json:"qty"`
	UnitCents   int    `gorm:"default:0" json:"unit_cents"`
	TotalCents  int    `gorm:"default:0" json:"total_cents"`
}
