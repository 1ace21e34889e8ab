package database

import (
	"context"

	"github.com/thereayou/memorylane/internal/models"
	"gorm.io/gorm"
)

func (d *Database) GetNotification(ctx context.Context, id int64) (*models.Notification, error) {
	var notification models.Notification
	if err := d.db.WithContext(ctx).First(&notification, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &notification, nil
}

func (d *Database) ListNotifications(ctx context.Context, userID int64) ([]models.Notification, error) {
	notifications := make([]models.Notification, 0)
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, translate(err)
	}
	return notifications, nil
}

func (d *Database) CountUnreadNotifications(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, translate(err)
	}
	return count, nil
}

func (d *Database) MarkNotificationRead(ctx context.Context, id int64) (*models.Notification, error) {
	var notification models.Notification
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&notification, "id = ?", id).Error; err != nil {
			return err
		}
		notification.IsRead = true
		return tx.Model(&notification).Update("is_read", true).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &notification, nil
}

func (d *Database) MarkAllNotificationsRead(ctx context.Context, userID int64) error {
	err := d.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	return translate(err)
}

func (d *Database) DeleteNotification(ctx context.Context, id int64) error {
	return deleted(d.db.WithContext(ctx).Delete(&models.Notification{}, "id = ?", id))
}
