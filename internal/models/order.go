package models

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	OrderNumber   string         `json:"order_number" gorm:"unique;not null"`
	UserID        uint           `json:"user_id" gorm:"not null;index"`
	CustomerName  string         `json:"customer_name" gorm:"not null"`
	CustomerPhone string         `json:"customer_phone"`
	Address       string         `json:"address" gorm:"not null"`
	Items         []OrderItem    `json:"items"`
	TotalAmount   float64        `json:"total_amount" gorm:"not null"`
	Status        string         `json:"status" gorm:"default:'Pending'"`
	RiderPhone    *string        `json:"rider_phone" gorm:"index"`
	Version       int64          `json:"version" gorm:"default:1"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type OrderStatus string

const (
	OrderPending        OrderStatus = "Pending"
	OrderCooking        OrderStatus = "Cooking"
	OrderOutForDelivery OrderStatus = "Out for Delivery"
	OrderCompleted      OrderStatus = "Completed"
)

// ValidStatusTransition reports whether moving an order from one status to
// another is allowed. Completed is terminal here; the admin force-complete
// path deliberately bypasses this guard.
func ValidStatusTransition(from, to OrderStatus) bool {
	switch from {
	case OrderPending:
		return to == OrderCooking
	case OrderCooking:
		return to == OrderOutForDelivery
	case OrderOutForDelivery:
		return to == OrderCooking || to == OrderCompleted
	default:
		return false
	}
}
