package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "recivo/internal/errors"
	"recivo/internal/lifecycle"
	"recivo/internal/models"
	"recivo/internal/pagination"
	"recivo/internal/uuid"
)

// commissionRate is the 1% fee taken from both sides of a purchase: the
// buyer pays totalValue plus commission, the seller receives totalValue
// minus commission.
var commissionRate = decimal.New(1, -2)

// tradeService orchestrates the purchase and settlement workflows.
type tradeService struct {
	db            *gorm.DB
	wallet        WalletServicer
	watchlist     WatchlistServicer
	notifications NotificationServicer
}

// NewTradeService creates a new TradeServicer.
func NewTradeService(db *gorm.DB, wallet WalletServicer, watchlist WatchlistServicer, notifications NotificationServicer) TradeServicer {
	return &tradeService{
		db:            db,
		wallet:        wallet,
		watchlist:     watchlist,
		notifications: notifications,
	}
}

// PurchaseSecurity buys a single listed security for an investor. The
// listed→purchased transition is a conditional update, so of two
// concurrent buyers exactly one wins and the other gets ALREADY_PURCHASED.
// All side effects run in one transaction after the winning update.
func (s *tradeService) PurchaseSecurity(investorID, securityID string, method models.PaymentMethod) (*PurchaseResult, error) {
	var security models.Security
	if err := s.db.Where("id = ?", securityID).First(&security).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSecurityNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if security.Status != models.SecurityStatusListed {
		return nil, apperrors.ErrSecurityNotListed
	}
	if method == "" {
		method = models.PaymentMethodWallet
	}

	var result *PurchaseResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		result, txErr = s.purchaseOne(tx, investorID, &security, method)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// purchaseOne performs the full purchase bookkeeping for one security
// inside the given transaction: the state-guarded transition, the audit
// transaction row, the parent receivable transition, the merchant credit,
// and both notifications. The conditional update comes first so a lost
// race produces no side effects at all.
func (s *tradeService) purchaseOne(tx *gorm.DB, investorID string, security *models.Security, method models.PaymentMethod) (*PurchaseResult, error) {
	nextStatus, err := lifecycle.ForSecurity(models.SecurityStatusListed, lifecycle.EventPurchase)
	if err != nil {
		return nil, err
	}
	receivableNext, err := lifecycle.ForReceivable(models.ReceivableStatusListed, lifecycle.EventPurchase)
	if err != nil {
		return nil, err
	}

	commission := security.TotalValue.Mul(commissionRate).Round(2)
	totalAmount := security.TotalValue.Add(commission)

	now := time.Now()
	res := tx.Model(&models.Security{}).
		Where("id = ? AND status = ?", security.ID, models.SecurityStatusListed).
		Updates(map[string]any{
			"status":       nextStatus,
			"purchased_by": investorID,
			"purchased_at": &now,
		})
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrAlreadyPurchased
	}

	transaction := &models.Transaction{
		SecurityID:       security.ID,
		BuyerID:          investorID,
		SellerID:         security.MerchantID,
		Amount:           security.TotalValue,
		CommissionAmount: commission,
		Currency:         security.Currency,
		PaymentMethod:    method,
		Status:           models.TransactionStatusCompleted,
		Reference:        fmt.Sprintf("TXN-%s", uuid.New()),
		GatewayResponse:  `{"result":"approved"}`,
	}
	if err := tx.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := tx.Model(&models.Receivable{}).
		Where("id = ?", security.ReceivableID).
		Update("status", receivableNext).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// The seller's side of the commission: merchant receives value minus fee.
	if err := s.wallet.Credit(tx, security.MerchantID, security.TotalValue.Sub(commission)); err != nil {
		return nil, err
	}

	payload := map[string]any{
		"security_id":    security.ID,
		"transaction_id": transaction.Reference,
		"amount":         security.TotalValue.String(),
		"commission":     commission.String(),
	}
	if err := s.notifications.Notify(tx, security.MerchantID, models.NotificationSecurityPurchased,
		"Security sold",
		fmt.Sprintf("%s was purchased for %s %s (commission %s)", security.Title, security.TotalValue, security.Currency, commission),
		payload); err != nil {
		return nil, err
	}
	if err := s.notifications.Notify(tx, investorID, models.NotificationSecurityPurchased,
		"Purchase confirmed",
		fmt.Sprintf("You purchased %s for %s %s", security.Title, totalAmount, security.Currency),
		payload); err != nil {
		return nil, err
	}

	purchased := *security
	purchased.Status = nextStatus
	purchased.PurchasedBy = &investorID
	purchased.PurchasedAt = &now

	return &PurchaseResult{
		Security:    &purchased,
		Transaction: transaction,
		Commission:  commission,
		TotalAmount: totalAmount,
	}, nil
}

// PurchaseWatchlist buys every still-listed security on the investor's
// watchlist. Items that lose their race or leave the listed state are
// skipped without failing the batch. The watchlist is cleared in full
// afterwards, including entries that were not purchased.
func (s *tradeService) PurchaseWatchlist(investorID string) ([]models.Security, error) {
	entries, err := s.watchlist.GetCurrent(investorID)
	if err != nil {
		return nil, err
	}

	purchased := make([]models.Security, 0, len(entries))
	for _, entry := range entries {
		if entry.Security == nil {
			continue
		}
		security := *entry.Security

		var result *PurchaseResult
		err := s.db.Transaction(func(tx *gorm.DB) error {
			var txErr error
			result, txErr = s.purchaseOne(tx, investorID, &security, models.PaymentMethodWallet)
			return txErr
		})
		if err != nil {
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) && (appErr.Code == apperrors.ErrAlreadyPurchased.Code ||
				appErr.Code == apperrors.ErrInvalidStatusTransition.Code) {
				continue
			}
			return nil, err
		}
		purchased = append(purchased, *result.Security)
	}

	if err := s.watchlist.Clear(investorID); err != nil {
		return nil, err
	}

	return purchased, nil
}

// MarkSecurityPaid settles a purchased security: the merchant confirms the
// underlying receivable was paid, and the investor is credited the full
// value. Commission was already taken at purchase time, so none applies
// here.
func (s *tradeService) MarkSecurityPaid(merchantID, securityID string) (*models.Security, error) {
	var security models.Security
	if err := s.db.Where("id = ? AND merchant_id = ?", securityID, merchantID).First(&security).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSecurityNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	nextStatus, err := lifecycle.ForSecurity(security.Status, lifecycle.EventSettle)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Guard on the settleable statuses so a concurrent settlement
		// cannot credit the investor twice.
		res := tx.Model(&models.Security{}).
			Where("id = ? AND status IN ?", security.ID, lifecycle.SettleableStatuses()).
			Updates(map[string]any{"status": nextStatus, "paid_at": &now})
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidStatusTransition, "security is not awaiting payment")
		}

		payload := map[string]any{
			"security_id": security.ID,
			"amount":      security.TotalValue.String(),
		}

		if security.PurchasedBy != nil {
			if err := s.wallet.Credit(tx, *security.PurchasedBy, security.TotalValue); err != nil {
				return err
			}
			if err := s.notifications.Notify(tx, *security.PurchasedBy, models.NotificationPaymentReceived,
				"Payment received",
				fmt.Sprintf("%s was settled; %s %s has been credited to your wallet", security.Title, security.TotalValue, security.Currency),
				payload); err != nil {
				return err
			}
		}

		return s.notifications.Notify(tx, merchantID, models.NotificationPaymentReceived,
			"Settlement recorded",
			fmt.Sprintf("%s has been marked as paid", security.Title),
			payload)
	})
	if err != nil {
		return nil, err
	}

	security.Status = nextStatus
	security.PaidAt = &now
	return &security, nil
}

// GetInvestorSecurities retrieves the securities an investor owns.
func (s *tradeService) GetInvestorSecurities(investorID string, page pagination.PageRequest) (*pagination.PageResponse[models.Security], error) {
	page.Defaults()

	base := s.db.Model(&models.Security{}).Where("purchased_by = ?", investorID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var securities []models.Security
	if err := base.Scopes(pagination.Paginate(page)).
		Order("purchased_at DESC").
		Find(&securities).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(securities, page.Page, page.PageSize, totalItems)
	return &result, nil
}
