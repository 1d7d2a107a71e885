package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Email        string         `json:"email" gorm:"unique;not null"`
	Phone        string         `json:"phone"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Role         string         `json:"role" gorm:"default:'customer'"` // admin, customer, rider
	Credits      int            `json:"credits" gorm:"default:0"`
	ActivePlan   string         `json:"active_plan"`
	PlanExpiry   *time.Time     `json:"plan_expiry"`
	Addresses    string         `json:"-" gorm:"type:json"` // JSON array of saved addresses
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleCustomer UserRole = "customer"
	RoleRider    UserRole = "rider"
)

// AddressList decodes the stored JSON address array.
func (u *User) AddressList() []string {
	if u.Addresses == "" {
		return nil
	}
	var addrs []string
	if err := json.Unmarshal([]byte(u.Addresses), &addrs); err != nil {
		return nil
	}
	return addrs
}

// SetAddressList encodes and stores the address array.
func (u *User) SetAddressList(addrs []string) {
	data, err := json.Marshal(addrs)
	if err != nil {
		return
	}
	u.Addresses = string(data)
}

// AddAddress appends a new address, skipping duplicates.
func (u *User) AddAddress(addr string) {
	if addr == "" {
		return
	}
	addrs := u.AddressList()
	for _, a := range addrs {
		if a == addr {
			return
		}
	}
	u.SetAddressList(append(addrs, addr))
}

// HasActivePlan reports whether the user holds a plan that has not expired.
func (u *User) HasActivePlan(now time.Time) bool {
	return u.ActivePlan != "" && u.PlanExpiry != nil && u.PlanExpiry.After(now)
}
