package services

import (
	"errors"
	"fmt"

	"github.com/RahulBiswas1704/bowlit-app/internal/models"
	"github.com/RahulBiswas1704/bowlit-app/internal/repository"
)

var ErrInvalidAmount = errors.New("amount must be positive")

type WalletService interface {
	GetBalance(userID uint) (float64, error)
	TopUp(userID uint, amount float64) (float64, error)
	Debit(userID uint, amount float64, reference string) error
	Refund(userID uint, amount float64, reference string) error
	GetTransactions(userID uint) ([]models.WalletTransaction, error)
}

type walletService struct {
	walletRepo repository.WalletRepository
}

func NewWalletService(walletRepo repository.WalletRepository) WalletService {
	return &walletService{walletRepo: walletRepo}
}

func (s *walletService) GetBalance(userID uint) (float64, error) {
	wallet, err := s.walletRepo.GetByUserID(userID)
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

func (s *walletService) TopUp(userID uint, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	if err := s.walletRepo.TopUp(userID, amount); err != nil {
		return 0, fmt.Errorf("failed to top up wallet: %w", err)
	}

	txn := &models.WalletTransaction{
		UserID: userID,
		Type:   string(models.TxnTopUp),
		Amount: amount,
	}
	if err := s.walletRepo.CreateTransaction(txn); err != nil {
		return 0, fmt.Errorf("failed to record top up: %w", err)
	}

	return s.GetBalance(userID)
}

// Debit takes the payment for an order. The conditional decrement in the
// repository guarantees the balance never goes negative; on
// ErrInsufficientBalance nothing has been written.
func (s *walletService) Debit(userID uint, amount float64, reference string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	if err := s.walletRepo.Debit(userID, amount); err != nil {
		return err
	}

	txn := &models.WalletTransaction{
		UserID:    userID,
		Type:      string(models.TxnDebit),
		Amount:    amount,
		Reference: reference,
	}
	return s.walletRepo.CreateTransaction(txn)
}

// Refund reverses an earlier debit. Used as the checkout saga's compensation.
func (s *walletService) Refund(userID uint, amount float64, reference string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	if err := s.walletRepo.Credit(userID, amount); err != nil {
		return err
	}

	txn := &models.WalletTransaction{
		UserID:    userID,
		Type:      string(models.TxnRefund),
		Amount:    amount,
		Reference: reference,
	}
	return s.walletRepo.CreateTransaction(txn)
}

func (s *walletService) GetTransactions(userID uint) ([]models.WalletTransaction, error) {
	return s.walletRepo.GetTransactions(userID)
}
