package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "recivo/internal/errors"
	"recivo/internal/services"
)

// WatchlistHandler handles the investor's watchlist.
type WatchlistHandler struct {
	watchlistService services.WatchlistServicer
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(watchlistService services.WatchlistServicer) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService}
}

// AddWatchlistRequest represents the payload for adding a security to the watchlist.
type AddWatchlistRequest struct {
	SecurityID string `json:"security_id" binding:"required,uuid"`
}

// GetWatchlist handles retrieval of the investor's current watchlist
// @Summary     Get watchlist
// @Description Get the authenticated investor's watchlist. Entries whose security is no longer listed are filtered out.
// @Tags        watchlist
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Watchlist entries"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /watchlist [get]
func (h *WatchlistHandler) GetWatchlist(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, err := h.watchlistService.GetCurrent(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"watchlist": entries})
}

// AddToWatchlist handles adding a security to the watchlist
// @Summary     Add to watchlist
// @Description Add a listed security to the authenticated investor's watchlist
// @Tags        watchlist
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddWatchlistRequest true "Security to watch"
// @Success     201 {object} map[string]interface{} "Watchlist entry"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Security not found"
// @Failure     409 {object} ErrorResponse "Security already watchlisted"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /watchlist [post]
func (h *WatchlistHandler) AddToWatchlist(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.watchlistService.Add(userID, req.SecurityID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// RemoveFromWatchlist handles removing a security from the watchlist
// @Summary     Remove from watchlist
// @Description Remove a security from the authenticated investor's watchlist. Removing an absent entry is a no-op.
// @Tags        watchlist
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Security ID"
// @Success     204 "Entry removed"
// @Failure     400 {object} ErrorResponse "Invalid security ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /watchlist/{id} [delete]
func (h *WatchlistHandler) RemoveFromWatchlist(c *gin.Context) {
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

	if err := h.watchlistService.Remove(userID, securityID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ClearWatchlist handles clearing the entire watchlist
// @Summary     Clear watchlist
// @Description Remove every entry from the authenticated investor's watchlist
// @Tags        watchlist
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     204 "Watchlist cleared"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /watchlist [delete]
func (h *WatchlistHandler) ClearWatchlist(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.watchlistService.Clear(userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
