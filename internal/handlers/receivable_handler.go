package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "recivo/internal/errors"
	"recivo/internal/models"
	"recivo/internal/pagination"
	"recivo/internal/services"
)

// ReceivableHandler handles merchant receivable requests.
type ReceivableHandler struct {
	receivableService services.ReceivableServicer
	auditService      services.AuditServicer
}

// NewReceivableHandler creates a new ReceivableHandler.
func NewReceivableHandler(receivableService services.ReceivableServicer, auditService services.AuditServicer) *ReceivableHandler {
	return &ReceivableHandler{receivableService: receivableService, auditService: auditService}
}

// ReceivableRequest represents the payload for creating or updating a receivable.
type ReceivableRequest struct {
	DebtorName  string `json:"debtor_name" binding:"required,min=1,max=200"`
	Amount      string `json:"amount" binding:"required"`
	Currency    string `json:"currency" binding:"omitempty,iso4217"`
	DueDate     string `json:"due_date" binding:"required"`
	Description string `json:"description" binding:"max=1000"`
	Category    string `json:"category" binding:"max=100"`
	RiskLevel   string `json:"risk_level" binding:"omitempty,risk_level"`
}

// ReceivableResponse represents a receivable in the response.
type ReceivableResponse struct {
	ID         string                  `json:"id"`
	DebtorName string                  `json:"debtor_name"`
	Amount     string                  `json:"amount"`
	Currency   string                  `json:"currency"`
	DueDate    time.Time               `json:"due_date"`
	RiskLevel  models.RiskLevel        `json:"risk_level"`
	Status     models.ReceivableStatus `json:"status"`
}

func (r ReceivableRequest) toDraft() (services.ReceivableDraft, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return services.ReceivableDraft{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid amount")
	}

	dueDate, err := time.Parse(time.RFC3339, r.DueDate)
	if err != nil {
		dueDate, err = time.Parse("2006-01-02", r.DueDate)
		if err != nil {
			return services.ReceivableDraft{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid due_date format")
		}
	}

	return services.ReceivableDraft{
		DebtorName:  r.DebtorName,
		Amount:      amount,
		Currency:    r.Currency,
		DueDate:     dueDate,
		Description: r.Description,
		Category:    r.Category,
		RiskLevel:   models.RiskLevel(r.RiskLevel),
	}, nil
}

// CreateReceivable handles the creation of a new receivable
// @Summary     Create a receivable
// @Description Create a new draft receivable for the authenticated merchant
// @Tags        receivables
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ReceivableRequest true "Receivable details"
// @Success     201 {object} ReceivableResponse "Receivable created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Merchant role required"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /receivables [post]
func (h *ReceivableHandler) CreateReceivable(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	draft, err := req.toDraft()
	if err != nil {
		respondWithError(c, err)
		return
	}

	receivable, err := h.receivableService.CreateReceivable(userID, draft)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_RECEIVABLE", "receivable", receivable.ID, c.ClientIP(),
		map[string]interface{}{"debtor_name": req.DebtorName, "amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"receivable": receivable})
}

// GetReceivables handles the retrieval of the merchant's receivables
// @Summary     Get receivables
// @Description Get a paginated list of the authenticated merchant's receivables
// @Tags        receivables
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Receivable] "Paginated receivables"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /receivables [get]
func (h *ReceivableHandler) GetReceivables(c *gin.Context) {
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

	result, err := h.receivableService.GetMerchantReceivables(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetReceivableByID handles the retrieval of a single receivable
// @Summary     Get receivable by ID
// @Description Get a specific receivable owned by the authenticated merchant
// @Tags        receivables
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Receivable ID"
// @Success     200 {object} ReceivableResponse "Receivable details"
// @Failure     400 {object} ErrorResponse "Invalid receivable ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Receivable not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /receivables/{id} [get]
func (h *ReceivableHandler) GetReceivableByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	receivableID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	receivable, err := h.receivableService.GetReceivableByID(userID, receivableID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"receivable": receivable})
}

// UpdateReceivable handles updating a receivable
// @Summary     Update receivable
// @Description Update a draft receivable owned by the authenticated merchant. Securitized receivables are immutable.
// @Tags        receivables
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Receivable ID"
// @Param       request body ReceivableRequest true "Updated receivable details"
// @Success     200 {object} ReceivableResponse "Updated receivable"
// @Failure     400 {object} ErrorResponse "Invalid input or receivable already securitized"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Receivable not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /receivables/{id} [put]
func (h *ReceivableHandler) UpdateReceivable(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	receivableID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	draft, err := req.toDraft()
	if err != nil {
		respondWithError(c, err)
		return
	}

	receivable, err := h.receivableService.UpdateReceivable(userID, receivableID, draft)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_RECEIVABLE", "receivable", receivableID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"receivable": receivable})
}

// DeleteReceivable handles deleting a receivable
// @Summary     Delete receivable
// @Description Delete a draft receivable owned by the authenticated merchant
// @Tags        receivables
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Receivable ID"
// @Success     204 "Receivable deleted"
// @Failure     400 {object} ErrorResponse "Receivable is not deletable"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Receivable not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /receivables/{id} [delete]
func (h *ReceivableHandler) DeleteReceivable(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	receivableID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.receivableService.DeleteReceivable(userID, receivableID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_RECEIVABLE", "receivable", receivableID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
