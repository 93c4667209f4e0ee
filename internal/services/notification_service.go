package services

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	apperrors "recivo/internal/errors"
	"recivo/internal/models"
	"recivo/internal/pagination"
)

// notificationService is the append-only per-user event log.
type notificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new NotificationServicer.
func NewNotificationService(db *gorm.DB) NotificationServicer {
	return &notificationService{db: db}
}

// Notify appends a notification inside the caller's transaction, so a
// rolled-back workflow leaves no orphaned notifications behind.
func (s *notificationService) Notify(tx *gorm.DB, userID string, kind models.NotificationType, title, message string, data map[string]any) error {
	var payload string
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		payload = string(raw)
	}

	notification := &models.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: message,
		Data:    payload,
	}
	if err := tx.Create(notification).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetUserNotifications retrieves the user's notifications, newest first.
func (s *notificationService) GetUserNotifications(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error) {
	page.Defaults()

	base := s.db.Model(&models.Notification{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var notifications []models.Notification
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(notifications, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UnreadCount returns the number of unread notifications for a user.
func (s *notificationService) UnreadCount(userID string) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count, nil
}

// MarkRead flips the read flag on one of the user's notifications. The
// content itself is immutable.
func (s *notificationService) MarkRead(userID, notificationID string) (*models.Notification, error) {
	notification, err := s.getUserNotification(userID, notificationID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(notification).Update("read", true).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	notification.Read = true
	return notification, nil
}

// MarkAllRead flips the read flag on all of the user's notifications.
func (s *notificationService) MarkAllRead(userID string) error {
	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DeleteNotification deletes one of the user's notifications.
func (s *notificationService) DeleteNotification(userID, notificationID string) error {
	notification, err := s.getUserNotification(userID, notificationID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(notification).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ClearNotifications deletes every notification for the user.
func (s *notificationService) ClearNotifications(userID string) error {
	if err := s.db.Where("user_id = ?", userID).
		Delete(&models.Notification{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *notificationService) getUserNotification(userID, notificationID string) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.Where("id = ? AND user_id = ?", notificationID, userID).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &notification, nil
}
