package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "recivo/internal/errors"
	"recivo/internal/models"
	"recivo/internal/pagination"
	"recivo/internal/services"
)

// SecurityHandler handles the merchant side of the security lifecycle:
// securitization, listing, settlement, and cancellation.
type SecurityHandler struct {
	securityService services.SecurityServicer
	tradeService    services.TradeServicer
	auditService    services.AuditServicer
}

// NewSecurityHandler creates a new SecurityHandler.
func NewSecurityHandler(securityService services.SecurityServicer, tradeService services.TradeServicer, auditService services.AuditServicer) *SecurityHandler {
	return &SecurityHandler{securityService: securityService, tradeService: tradeService, auditService: auditService}
}

// SecuritizeRequest represents the payload for securitizing a receivable.
type SecuritizeRequest struct {
	ReceivableID   string `json:"receivable_id" binding:"required,uuid"`
	Title          string `json:"title" binding:"required,min=1,max=200"`
	Description    string `json:"description" binding:"max=1000"`
	TotalValue     string `json:"total_value"`
	ExpectedReturn string `json:"expected_return"`
	RiskGrade      string `json:"risk_grade" binding:"omitempty,risk_grade"`
	Duration       string `json:"duration" binding:"max=50"`
}

// SecurityResponse represents a security in the response.
type SecurityResponse struct {
	ID         string                `json:"id"`
	Title      string                `json:"title"`
	TotalValue string                `json:"total_value"`
	Currency   string                `json:"currency"`
	RiskGrade  models.RiskGrade      `json:"risk_grade"`
	Status     models.SecurityStatus `json:"status"`
}

// Securitize handles converting a receivable into a security
// @Summary     Securitize a receivable
// @Description Convert a draft receivable into a tradeable security
// @Tags        securities
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SecuritizeRequest true "Securitization details"
// @Success     201 {object} SecurityResponse "Security created"
// @Failure     400 {object} ErrorResponse "Invalid input or receivable not securitizable"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Merchant role required"
// @Failure     404 {object} ErrorResponse "Receivable not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /securities [post]
func (h *SecurityHandler) Securitize(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SecuritizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	draft := services.SecurityDraft{
		Title:       req.Title,
		Description: req.Description,
		RiskGrade:   models.RiskGrade(req.RiskGrade),
		Duration:    req.Duration,
	}
	if req.TotalValue != "" {
		value, err := decimal.NewFromString(req.TotalValue)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid total_value"))
			return
		}
		draft.TotalValue = value
	}
	if req.ExpectedReturn != "" {
		ret, err := decimal.NewFromString(req.ExpectedReturn)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid expected_return"))
			return
		}
		draft.ExpectedReturn = ret
	}

	security, err := h.securityService.SecuritizeReceivable(userID, req.ReceivableID, draft)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SECURITIZE_RECEIVABLE", "security", security.ID, c.ClientIP(),
		map[string]interface{}{"receivable_id": req.ReceivableID, "title": req.Title})

	c.JSON(http.StatusCreated, gin.H{"security": security})
}

// GetSecurities handles retrieval of the merchant's securities
// @Summary     Get securities
// @Description Get a paginated list of the authenticated merchant's securities
// @Tags        securities
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Security] "Paginated securities"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /securities [get]
func (h *SecurityHandler) GetSecurities(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.securityService.GetMerchantSecurities(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// List handles publishing a security to the marketplace
// @Summary     List a security
// @Description Make a securitized instrument visible on the marketplace
// @Tags        securities
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Security ID"
// @Success     200 {object} SecurityResponse "Listed security"
// @Failure     400 {object} ErrorResponse "Security is not listable"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Security not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /securities/{id}/list [post]
func (h *SecurityHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	securityID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	security, err := h.securityService.ListSecurity(userID, securityID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "LIST_SECURITY", "security", securityID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"security": security})
}

// Settle handles marking a sold security as paid
// @Summary     Settle a security
// @Description Confirm the underlying receivable was paid and credit the investor's wallet
// @Tags        securities
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Security ID"
// @Success     200 {object} SecurityResponse "Settled security"
// @Failure     400 {object} ErrorResponse "Security is not awaiting payment"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Security not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /securities/{id}/settle [post]
func (h *SecurityHandler) Settle(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	securityID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	security, err := h.tradeService.MarkSecurityPaid(userID, securityID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SETTLE_SECURITY", "security", securityID, c.ClientIP(),
		map[string]interface{}{"amount": security.TotalValue.String()})

	c.JSON(http.StatusOK, gin.H{"security": security})
}

// Cancel handles withdrawing a security
// @Summary     Cancel a security
// @Description Withdraw a not-yet-paid security from the marketplace
// @Tags        securities
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Security ID"
// @Success     200 {object} SecurityResponse "Cancelled security"
// @Failure     400 {object} ErrorResponse "Security cannot be cancelled"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Security not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /securities/{id}/cancel [post]
func (h *SecurityHandler) Cancel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	securityID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	security, err := h.securityService.CancelSecurity(userID, securityID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CANCEL_SECURITY", "security", securityID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"security": security})
}
