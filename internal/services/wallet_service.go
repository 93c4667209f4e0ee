package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "recivo/internal/errors"
	"recivo/internal/models"
)

// walletService owns all mutations of User.WalletBalance.
type walletService struct {
	db *gorm.DB
}

// NewWalletService creates a new WalletServicer.
func NewWalletService(db *gorm.DB) WalletServicer {
	return &walletService{db: db}
}

// Credit adds amount to the user's wallet as a single atomic UPDATE.
// Concurrent credits to the same user cannot lose updates because the
// increment happens in the database, not in application code.
func (s *walletService) Credit(tx *gorm.DB, userID string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "credit amount must not be negative")
	}

	res := tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("wallet_balance", gorm.Expr("wallet_balance + ?", amount))
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Debit subtracts amount from the user's wallet. The balance guard is part
// of the UPDATE's WHERE clause, so the balance can never go negative even
// under concurrent debits.
func (s *walletService) Debit(tx *gorm.DB, userID string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "debit amount must not be negative")
	}

	res := tx.Model(&models.User{}).
		Where("id = ? AND wallet_balance >= ?", userID, amount).
		UpdateColumn("wallet_balance", gorm.Expr("wallet_balance - ?", amount))
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		// Distinguish a missing user from an underfunded one.
		var count int64
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return apperrors.ErrUserNotFound
		}
		return apperrors.ErrInsufficientFunds
	}
	return nil
}

// GetBalance returns the user's current wallet balance.
func (s *walletService) GetBalance(userID string) (decimal.Decimal, error) {
	var user models.User
	if err := s.db.Select("wallet_balance").Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, apperrors.ErrUserNotFound
		}
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user.WalletBalance, nil
}
