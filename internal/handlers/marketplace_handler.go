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

// MarketplaceHandler handles the investor side of the marketplace:
// browsing, purchasing, and the portfolio view.
type MarketplaceHandler struct {
	securityService services.SecurityServicer
	tradeService    services.TradeServicer
	auditService    services.AuditServicer
}

// NewMarketplaceHandler creates a new MarketplaceHandler.
func NewMarketplaceHandler(securityService services.SecurityServicer, tradeService services.TradeServicer, auditService services.AuditServicer) *MarketplaceHandler {
	return &MarketplaceHandler{securityService: securityService, tradeService: tradeService, auditService: auditService}
}

// BrowseRequest represents the marketplace filter query parameters.
type BrowseRequest struct {
	pagination.PageRequest
	RiskGrade string `form:"risk_grade" binding:"omitempty,risk_grade"`
	Search    string `form:"search" binding:"max=200"`
	MinValue  string `form:"min_value"`
	MaxValue  string `form:"max_value"`
}

// PurchaseRequest represents the payload for purchasing a security.
type PurchaseRequest struct {
	PaymentMethod string `json:"payment_method" binding:"omitempty,payment_method"`
}

// Browse handles browsing listed securities
// @Summary     Browse the marketplace
// @Description Get a paginated list of listed securities, optionally filtered by risk grade, value range, or a title/description search
// @Tags        marketplace
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page       query int    false "Page number (default 1)"
// @Param       page_size  query int    false "Items per page (default 20, max 100)"
// @Param       risk_grade query string false "Risk grade filter"
// @Param       search     query string false "Title/description search"
// @Param       min_value  query string false "Minimum total value"
// @Param       max_value  query string false "Maximum total value"
// @Success     200 {object} pagination.PageResponse[models.Security] "Paginated listings"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /marketplace [get]
func (h *MarketplaceHandler) Browse(c *gin.Context) {
	var req BrowseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.MarketplaceFilter{Search: req.Search}
	if req.RiskGrade != "" {
		grade := models.RiskGrade(req.RiskGrade)
		filter.RiskGrade = &grade
	}
	if req.MinValue != "" {
		value, err := decimal.NewFromString(req.MinValue)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid min_value"))
			return
		}
		filter.MinValue = &value
	}
	if req.MaxValue != "" {
		value, err := decimal.NewFromString(req.MaxValue)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid max_value"))
			return
		}
		filter.MaxValue = &value
	}

	result, err := h.securityService.BrowseMarketplace(filter, req.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetListing handles retrieval of a single listed security
// @Summary     Get a marketplace listing
// @Description Get a listed security's details. Securities that are not listed behave as not found.
// @Tags        marketplace
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Security ID"
// @Success     200 {object} SecurityResponse "Listing details"
// @Failure     400 {object} ErrorResponse "Invalid security ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Security not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /marketplace/{id} [get]
func (h *MarketplaceHandler) GetListing(c *gin.Context) {
	securityID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	security, err := h.securityService.GetListedSecurity(securityID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"security": security})
}

// Purchase handles purchasing a single listed security
// @Summary     Purchase a security
// @Description Buy a listed security. The buyer pays the total value plus a 1% commission; the seller is credited the value minus a 1% commission.
// @Tags        marketplace
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string          true  "Security ID"
// @Param       request body PurchaseRequest false "Payment details"
// @Success     200 {object} services.PurchaseResult "Purchase result"
// @Failure     400 {object} ErrorResponse "Security is not available for purchase"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Investor role required"
// @Failure     404 {object} ErrorResponse "Security not found"
// @Failure     409 {object} ErrorResponse "Security already purchased"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /marketplace/{id}/purchase [post]
func (h *MarketplaceHandler) Purchase(c *gin.Context) {
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

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.tradeService.PurchaseSecurity(userID, securityID, models.PaymentMethod(req.PaymentMethod))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "PURCHASE_SECURITY", "security", securityID, c.ClientIP(),
		map[string]interface{}{
			"amount":     result.Transaction.Amount.String(),
			"commission": result.Commission.String(),
			"reference":  result.Transaction.Reference,
		})

	c.JSON(http.StatusOK, result)
}

// PurchaseWatchlist handles buying everything on the investor's watchlist
// @Summary     Purchase the watchlist
// @Description Buy every still-listed security on the authenticated investor's watchlist. Securities that were bought by someone else are skipped. The watchlist is cleared afterwards.
// @Tags        marketplace
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Purchased securities"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Investor role required"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /marketplace/watchlist/purchase [post]
func (h *MarketplaceHandler) PurchaseWatchlist(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	purchased, err := h.tradeService.PurchaseWatchlist(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "PURCHASE_WATCHLIST", "watchlist", userID, c.ClientIP(),
		map[string]interface{}{"purchased_count": len(purchased)})

	c.JSON(http.StatusOK, gin.H{
		"purchased":       purchased,
		"purchased_count": len(purchased),
	})
}

// GetPortfolio handles retrieval of the investor's purchased securities
// @Summary     Get portfolio
// @Description Get a paginated list of securities the authenticated investor owns
// @Tags        marketplace
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Security] "Paginated portfolio"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio [get]
func (h *MarketplaceHandler) GetPortfolio(c *gin.Context) {
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

	result, err := h.tradeService.GetInvestorSecurities(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
