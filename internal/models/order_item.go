package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem is an immutable snapshot of one cart line taken at checkout.
type OrderItem struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	OrderID    uint           `json:"order_id" gorm:"not null;index"`
	ItemID     string         `json:"item_id" gorm:"not null"`
	Name       string         `json:"name" gorm:"not null"`
	UnitPrice  float64        `json:"unit_price" gorm:"not null"`
	Quantity   int            `json:"quantity" gorm:"not null"`
	TotalPrice float64        `json:"total_price" gorm:"not null"`
	ItemType   string         `json:"item_type"` // Subscription, Trial, Add-on
	Timing     string         `json:"timing"`    // lunch, dinner, combo (subscription lines only)
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
