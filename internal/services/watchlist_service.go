package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "recivo/internal/errors"
	"recivo/internal/models"
)

// watchlistService handles an investor's saved-for-later securities.
type watchlistService struct {
	db *gorm.DB
}

// NewWatchlistService creates a new WatchlistServicer.
func NewWatchlistService(db *gorm.DB) WatchlistServicer {
	return &watchlistService{db: db}
}

// Add puts a listed security on the investor's watchlist. Adding the same
// security twice is rejected with a conflict rather than silently ignored.
func (s *watchlistService) Add(investorID, securityID string) (*models.WatchlistEntry, error) {
	var security models.Security
	if err := s.db.Where("id = ? AND status = ?", securityID, models.SecurityStatusListed).First(&security).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSecurityNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var count int64
	if err := s.db.Model(&models.WatchlistEntry{}).
		Where("user_id = ? AND security_id = ?", investorID, securityID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrAlreadyWatchlisted
	}

	entry := &models.WatchlistEntry{UserID: investorID, SecurityID: securityID}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	entry.Security = &security
	return entry, nil
}

// Remove deletes a watchlist entry. Removing an entry that does not exist
// is a no-op.
func (s *watchlistService) Remove(investorID, securityID string) error {
	if err := s.db.Where("user_id = ? AND security_id = ?", investorID, securityID).
		Delete(&models.WatchlistEntry{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Clear deletes every watchlist entry for the investor, stale ones included.
func (s *watchlistService) Clear(investorID string) error {
	if err := s.db.Where("user_id = ?", investorID).
		Delete(&models.WatchlistEntry{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetCurrent returns the investor's watchlist entries whose security is
// still listed. Stale entries stay in the table and are filtered here at
// read time.
func (s *watchlistService) GetCurrent(investorID string) ([]models.WatchlistEntry, error) {
	var entries []models.WatchlistEntry
	if err := s.db.
		Joins("JOIN securities ON securities.id = watchlist_entries.security_id AND securities.status = ?", models.SecurityStatusListed).
		Where("watchlist_entries.user_id = ?", investorID).
		Preload("Security").
		Order("watchlist_entries.created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}
