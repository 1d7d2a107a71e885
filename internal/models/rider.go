package models

import (
	"time"

	"gorm.io/gorm"
)

type Rider struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	Phone     string         `json:"phone" gorm:"unique;not null"`
	Status    string         `json:"status" gorm:"default:'Offline'"` // Online, Offline
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type RiderStatus string

const (
	RiderOnline  RiderStatus = "Online"
	RiderOffline RiderStatus = "Offline"
)
