package models

import (
	"time"

	"gorm.io/gorm"
)

// MenuItem is an add-on dish sold alongside the subscription plans.
type MenuItem struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Price       float64        `json:"price" gorm:"not null"`
	Image       string         `json:"image"`
	Category    string         `json:"category"`
	IsAvailable bool           `json:"is_available" gorm:"default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// Plan is a subscription meal plan. BaseRate is the per-meal price; the
// quoted price scales with duration and doubles for the lunch+dinner combo.
type Plan struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Slug        string    `json:"slug" gorm:"unique;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	BaseRate    float64   `json:"base_rate" gorm:"not null"`
	Type        string    `json:"type"` // Veg, Mix, Non-Veg
	IsPopular   bool      `json:"is_popular" gorm:"default:false"`
	Features    string    `json:"features" gorm:"type:json"` // JSON array of bullet points
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	TimingLunch  = "lunch"
	TimingDinner = "dinner"
	TimingCombo  = "combo"
)

// PriceFor quotes the plan for a duration in days and a meal timing.
func (p *Plan) PriceFor(durationDays int, timing string) float64 {
	price := p.BaseRate * float64(durationDays)
	if timing == TimingCombo {
		price *= 2
	}
	return price
}

// WeeklyMenu is one day's fixed menu entry shown on the storefront.
type WeeklyMenu struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Day       string    `json:"day" gorm:"not null"`
	Dish      string    `json:"dish" gorm:"not null"`
	Special   string    `json:"special"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
