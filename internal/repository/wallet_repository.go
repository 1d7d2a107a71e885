package repository

import (
	"errors"

	"github.com/RahulBiswas1704/bowlit-app/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInsufficientBalance is returned when a debit would take a wallet below
// zero. The debit leaves no side effects in that case.
var ErrInsufficientBalance = errors.New("insufficient wallet balance")

type WalletRepository interface {
	GetByUserID(userID uint) (*models.Wallet, error)
	TopUp(userID uint, amount float64) error
	Debit(userID uint, amount float64) error
	Credit(userID uint, amount float64) error
	CreateTransaction(txn *models.WalletTransaction) error
	GetTransactions(userID uint) ([]models.WalletTransaction, error)
}

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) GetByUserID(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Where("user_id = ?", userID).First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Wallets are created lazily; no row means zero balance
			return &models.Wallet{UserID: userID, Balance: 0}, nil
		}
		return nil, err
	}
	return &wallet, nil
}

func (r *walletRepository) TopUp(userID uint, amount float64) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"balance": gorm.Expr("wallets.balance + ?", amount)}),
	}).Create(&models.Wallet{UserID: userID, Balance: amount}).Error
}

// Debit decrements the balance atomically. The conditional WHERE clause is
// what makes concurrent debits safe: the row only changes when the balance
// still covers the amount.
func (r *walletRepository) Debit(userID uint, amount float64) error {
	result := r.db.Model(&models.Wallet{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientBalance
	}
	return nil
}

func (r *walletRepository) Credit(userID uint, amount float64) error {
	result := r.db.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.TopUp(userID, amount)
	}
	return nil
}

func (r *walletRepository) CreateTransaction(txn *models.WalletTransaction) error {
	return r.db.Create(txn).Error
}

func (r *walletRepository) GetTransactions(userID uint) ([]models.WalletTransaction, error) {
	var txns []models.WalletTransaction
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&txns).Error
	return txns, err
}
