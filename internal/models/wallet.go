package models

import (
	"time"

	"gorm.io/gorm"
)

type Wallet struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"unique;not null"`
	Balance   float64        `json:"balance" gorm:"not null;default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type WalletTransaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Type      string    `json:"type" gorm:"not null"` // topup, debit, refund
	Amount    float64   `json:"amount" gorm:"not null"`
	Reference string    `json:"reference"` // order number for debits and refunds
	CreatedAt time.Time `json:"created_at"`
}

type TransactionType string

const (
	TxnTopUp  TransactionType = "topup"
	TxnDebit  TransactionType = "debit"
	TxnRefund TransactionType = "refund"
)
