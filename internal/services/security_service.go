package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "recivo/internal/errors"
	"recivo/internal/lifecycle"
	"recivo/internal/models"
	"recivo/internal/pagination"
)

// securityService handles securitization, listing, and marketplace queries.
type securityService struct {
	db            *gorm.DB
	notifications NotificationServicer
}

// NewSecurityService creates a new SecurityServicer.
func NewSecurityService(db *gorm.DB, notifications NotificationServicer) SecurityServicer {
	return &securityService{db: db, notifications: notifications}
}

// SecuritizeReceivable converts a merchant's receivable into a tradeable
// security. The receivable must still be in draft or active state and the
// caller must own it; both the new security and the receivable's status
// change are committed in one transaction.
func (s *securityService) SecuritizeReceivable(merchantID, receivableID string, draft SecurityDraft) (*models.Security, error) {
	if draft.Title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}

	var receivable models.Receivable
	if err := s.db.Where("id = ? AND merchant_id = ?", receivableID, merchantID).First(&receivable).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReceivableNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	nextStatus, err := lifecycle.ForReceivable(receivable.Status, lifecycle.EventSecuritize)
	if err != nil {
		return nil, err
	}

	totalValue := draft.TotalValue
	if totalValue.IsZero() {
		totalValue = receivable.Amount
	}
	if !totalValue.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "total value must be greater than zero")
	}
	riskGrade := draft.RiskGrade
	if riskGrade == "" {
		riskGrade = models.RiskGradeB
	}

	security := &models.Security{
		ReceivableID:   receivable.ID,
		MerchantID:     merchantID,
		Title:          draft.Title,
		Description:    draft.Description,
		TotalValue:     totalValue,
		Currency:       receivable.Currency,
		ExpectedReturn: draft.ExpectedReturn,
		RiskGrade:      riskGrade,
		Duration:       draft.Duration,
		Status:         models.SecurityStatusSecuritized,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(security).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		// Guard on the status read above so a concurrent securitization of
		// the same receivable cannot both succeed.
		res := tx.Model(&models.Receivable{}).
			Where("id = ? AND status = ?", receivable.ID, receivable.Status).
			Update("status", nextStatus)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrReceivableSecuritized
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return security, nil
}

// ListSecurity makes a securitized instrument visible on the marketplace.
func (s *securityService) ListSecurity(merchantID, securityID string) (*models.Security, error) {
	security, err := s.getMerchantSecurity(merchantID, securityID)
	if err != nil {
		return nil, err
	}

	nextStatus, err := lifecycle.ForSecurity(security.Status, lifecycle.EventList)
	if err != nil {
		return nil, err
	}
	receivableNext, err := lifecycle.ForReceivable(models.ReceivableStatusSecuritized, lifecycle.EventList)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Security{}).
			Where("id = ? AND status = ?", security.ID, security.Status).
			Updates(map[string]any{"status": nextStatus, "listed_at": &now})
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidStatusTransition, "security is no longer listable")
		}

		if err := tx.Model(&models.Receivable{}).
			Where("id = ?", security.ReceivableID).
			Update("status", receivableNext).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return s.notifications.Notify(tx, merchantID, models.NotificationSecurityListed,
			"Security listed",
			security.Title+" is now visible on the marketplace",
			map[string]any{"security_id": security.ID})
	})
	if err != nil {
		return nil, err
	}

	security.Status = nextStatus
	security.ListedAt = &now
	return security, nil
}

// CancelSecurity withdraws a not-yet-paid security from the marketplace.
func (s *securityService) CancelSecurity(merchantID, securityID string) (*models.Security, error) {
	security, err := s.getMerchantSecurity(merchantID, securityID)
	if err != nil {
		return nil, err
	}

	nextStatus, err := lifecycle.ForSecurity(security.Status, lifecycle.EventCancel)
	if err != nil {
		return nil, err
	}

	res := s.db.Model(&models.Security{}).
		Where("id = ? AND status = ?", security.ID, security.Status).
		Update("status", nextStatus)
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidStatusTransition, "security status changed concurrently")
	}

	security.Status = nextStatus
	return security, nil
}

// GetMerchantSecurities retrieves a paginated list of a merchant's securities.
func (s *securityService) GetMerchantSecurities(merchantID string, page pagination.PageRequest) (*pagination.PageResponse[models.Security], error) {
	page.Defaults()

	base := s.db.Model(&models.Security{}).Where("merchant_id = ?", merchantID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var securities []models.Security
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&securities).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(securities, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// BrowseMarketplace retrieves listed securities matching the filter.
func (s *securityService) BrowseMarketplace(filter MarketplaceFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Security], error) {
	page.Defaults()

	base := s.db.Model(&models.Security{}).Where("status = ?", models.SecurityStatusListed)
	if filter.RiskGrade != nil {
		base = base.Where("risk_grade = ?", *filter.RiskGrade)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.MinValue != nil {
		base = base.Where("total_value >= ?", *filter.MinValue)
	}
	if filter.MaxValue != nil {
		base = base.Where("total_value <= ?", *filter.MaxValue)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var securities []models.Security
	if err := base.Scopes(pagination.Paginate(page)).
		Order("listed_at DESC").
		Find(&securities).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(securities, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetListedSecurity retrieves a security through the public marketplace
// view. Securities that are not listed behave as not found so their
// existence is never revealed.
func (s *securityService) GetListedSecurity(securityID string) (*models.Security, error) {
	var security models.Security
	if err := s.db.Where("id = ? AND status = ?", securityID, models.SecurityStatusListed).First(&security).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSecurityNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &security, nil
}

func (s *securityService) getMerchantSecurity(merchantID, securityID string) (*models.Security, error) {
	var security models.Security
	if err := s.db.Where("id = ? AND merchant_id = ?", securityID, merchantID).First(&security).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSecurityNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &security, nil
}
