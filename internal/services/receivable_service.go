package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "recivo/internal/errors"
	"recivo/internal/models"
	"recivo/internal/pagination"
)

// receivableService handles receivable business logic.
type receivableService struct {
	db *gorm.DB
}

// NewReceivableService creates a new ReceivableServicer.
func NewReceivableService(db *gorm.DB) ReceivableServicer {
	return &receivableService{db: db}
}

func validateReceivableDraft(draft ReceivableDraft) error {
	if draft.DebtorName == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "debtor name is required")
	}
	if !draft.Amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if draft.DueDate.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "due date is required")
	}
	return nil
}

// CreateReceivable creates a new draft receivable for a merchant.
func (s *receivableService) CreateReceivable(merchantID string, draft ReceivableDraft) (*models.Receivable, error) {
	if err := validateReceivableDraft(draft); err != nil {
		return nil, err
	}

	currency := draft.Currency
	if currency == "" {
		currency = "USD"
	}
	riskLevel := draft.RiskLevel
	if riskLevel == "" {
		riskLevel = models.RiskLevelMedium
	}

	receivable := &models.Receivable{
		MerchantID:  merchantID,
		DebtorName:  draft.DebtorName,
		Amount:      draft.Amount,
		Currency:    currency,
		DueDate:     draft.DueDate,
		Description: draft.Description,
		Category:    draft.Category,
		RiskLevel:   riskLevel,
		Status:      models.ReceivableStatusDraft,
	}

	if err := s.db.Create(receivable).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return receivable, nil
}

// GetMerchantReceivables retrieves a paginated list of a merchant's receivables.
func (s *receivableService) GetMerchantReceivables(merchantID string, page pagination.PageRequest) (*pagination.PageResponse[models.Receivable], error) {
	page.Defaults()

	base := s.db.Model(&models.Receivable{}).Where("merchant_id = ?", merchantID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var receivables []models.Receivable
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&receivables).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(receivables, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetReceivableByID retrieves a receivable owned by the given merchant.
// Another merchant's receivable behaves as not found.
func (s *receivableService) GetReceivableByID(merchantID, receivableID string) (*models.Receivable, error) {
	var receivable models.Receivable
	if err := s.db.Where("id = ? AND merchant_id = ?", receivableID, merchantID).First(&receivable).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReceivableNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &receivable, nil
}

// UpdateReceivable updates the merchant-editable fields of a receivable
// while it is still in a pre-securitization state.
func (s *receivableService) UpdateReceivable(merchantID, receivableID string, draft ReceivableDraft) (*models.Receivable, error) {
	receivable, err := s.GetReceivableByID(merchantID, receivableID)
	if err != nil {
		return nil, err
	}

	if !receivable.Deletable() {
		return nil, apperrors.ErrReceivableSecuritized
	}

	if err := validateReceivableDraft(draft); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"debtor_name": draft.DebtorName,
		"amount":      draft.Amount,
		"due_date":    draft.DueDate,
		"description": draft.Description,
		"category":    draft.Category,
	}
	if draft.Currency != "" {
		updates["currency"] = draft.Currency
	}
	if draft.RiskLevel != "" {
		updates["risk_level"] = draft.RiskLevel
	}

	if err := s.db.Model(receivable).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetReceivableByID(merchantID, receivableID)
}

// DeleteReceivable deletes a receivable that has not been securitized yet.
func (s *receivableService) DeleteReceivable(merchantID, receivableID string) error {
	receivable, err := s.GetReceivableByID(merchantID, receivableID)
	if err != nil {
		return err
	}

	if !receivable.Deletable() {
		return apperrors.ErrReceivableNotDeletable
	}

	if err := s.db.Delete(receivable).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
