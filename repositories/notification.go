package repositories

import (
	"context"
	"time"

	"github.com/agency-portal/models"
	"gorm.io/gorm"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

// forAudience scopes db to the notifications of the admin inbox or of one client.
// ok is false for a client audience without a client id, which matches nothing.
func forAudience(db *gorm.DB, audience models.Audience, clientID string) (*gorm.DB, bool) {
	db = db.Where("audience = ?", audience)
	if audience == models.AudienceClient {
		if clientID == "" {
			return db, false
		}
		db = db.Where("client_id = ?", clientID)
	}
	return db, true
}

// FindByAudience retrieves notifications newest first. A limit of zero means no limit.
func (r *NotificationRepository) FindByAudience(ctx context.Context, audience models.Audience, clientID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	notifications := []models.Notification{}
	db, ok := forAudience(conn(ctx), audience, clientID)
	if !ok {
		return notifications, nil
	}
	if unreadOnly {
		db = db.Where("is_read = ?", false)
	}
	if limit > 0 {
		db = db.Limit(limit)
	}
	result := db.Order("created_at desc").Find(&notifications)
	return notifications, result.Error
}

func (r *NotificationRepository) FindByID(ctx context.Context, id string) (models.Notification, error) {
	var n models.Notification
	result := conn(ctx).First(&n, "id = ?", id)
	return n, result.Error
}

func (r *NotificationRepository) CountUnread(ctx context.Context, audience models.Audience, clientID string) (int64, error) {
	var count int64
	db, ok := forAudience(conn(ctx).Model(&models.Notification{}), audience, clientID)
	if !ok {
		return 0, nil
	}
	err := db.Where("is_read = ?", false).Count(&count).Error
	return count, err
}

func (r *NotificationRepository) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	result := conn(ctx).Create(&n)
	return n, result.Error
}

// MarkRead flips one unread notification. An already read row is left as is and 0 is returned.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string, at time.Time) (int64, error) {
	result := conn(ctx).Model(&models.Notification{}).
		Where("id = ? AND is_read = ?", id, false).
		Updates(map[string]any{"is_read": true, "read_at": at})
	return result.RowsAffected, result.Error
}

// MarkAllRead flips every unread notification of the audience and returns how many changed
func (r *NotificationRepository) MarkAllRead(ctx context.Context, audience models.Audience, clientID string, at time.Time) (int64, error) {
	db, ok := forAudience(conn(ctx).Model(&models.Notification{}), audience, clientID)
	if !ok {
		return 0, nil
	}
	result := db.Where("is_read = ?", false).
		Updates(map[string]any{"is_read": true, "read_at": at})
	return result.RowsAffected, result.Error
}

func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	return conn(ctx).Delete(&models.Notification{}, "id = ?", id).Error
}
