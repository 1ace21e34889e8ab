package database

import (
	"context"
	"errors"

	"github.com/thereayou/memorylane/internal/models"
	"github.com/thereayou/memorylane/internal/storage"
	"gorm.io/gorm"
)

func (d *Database) CreateFriendRequest(ctx context.Context, userID, friendID int64) (*models.Friend, error) {
	if userID == friendID {
		return nil, storage.ErrInvalid
	}

	friend := &models.Friend{
		UserID:   userID,
		FriendID: friendID,
		Status:   models.FriendStatusPending,
		PairKey:  models.PairKey(userID, friendID),
	}
	var notification models.Notification

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var requester models.User
		if err := tx.First(&requester, "id = ?", userID).Error; err != nil {
			return err
		}
		if err := tx.Select("id").First(&models.User{}, "id = ?", friendID).Error; err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.Friend{}).Where("pair_key = ?", friend.PairKey).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return storage.ErrConflict
		}

		if err := tx.Create(friend).Error; err != nil {
			return err
		}

		notification = models.FriendRequestNotification(friendID, &requester, friend.ID)
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	d.publish(notification)
	return friend, nil
}

func (d *Database) GetFriend(ctx context.Context, id int64) (*models.Friend, error) {
	var friend models.Friend
	if err := d.db.WithContext(ctx).First(&friend, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &friend, nil
}

func (d *Database) AcceptFriendRequest(ctx context.Context, id int64) (*models.Friend, error) {
	var friend models.Friend
	var notification models.Notification

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := resolveRequest(tx, id, models.FriendStatusAccepted, &friend); err != nil {
			return err
		}

		var recipient models.User
		if err := tx.First(&recipient, "id = ?", friend.FriendID).Error; err != nil {
			return err
		}

		notification = models.FriendAcceptedNotification(friend.UserID, &recipient, friend.ID)
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	d.publish(notification)
	return &friend, nil
}

func (d *Database) RejectFriendRequest(ctx context.Context, id int64) (*models.Friend, error) {
	var friend models.Friend
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return resolveRequest(tx, id, models.FriendStatusRejected, &friend)
	})
	if err != nil {
		return nil, translate(err)
	}
	return &friend, nil
}

// resolveRequest moves a pending request to status. The conditional update
// guards against two callers resolving the same request concurrently.
func resolveRequest(tx *gorm.DB, id int64, status models.FriendStatus, friend *models.Friend) error {
	if err := tx.First(friend, "id = ?", id).Error; err != nil {
		return err
	}
	if friend.Status != models.FriendStatusPending {
		return storage.ErrConflict
	}

	result := tx.Model(&models.Friend{}).
		Where("id = ? AND status = ?", id, models.FriendStatusPending).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storage.ErrConflict
	}

	friend.Status = status
	return nil
}

func (d *Database) DeleteFriend(ctx context.Context, id int64) error {
	return deleted(d.db.WithContext(ctx).Delete(&models.Friend{}, "id = ?", id))
}

func (d *Database) FriendshipBetween(ctx context.Context, a, b int64) (*models.Friend, error) {
	var friend models.Friend
	err := d.db.WithContext(ctx).Where("pair_key = ?", models.PairKey(a, b)).First(&friend).Error
	if err != nil {
		return nil, translate(err)
	}
	return &friend, nil
}

func (d *Database) AreFriends(ctx context.Context, a, b int64) (bool, error) {
	friend, err := d.FriendshipBetween(ctx, a, b)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return friend.Status == models.FriendStatusAccepted, nil
}

func (d *Database) ListFriends(ctx context.Context, userID int64) ([]models.Friend, error) {
	friends := make([]models.Friend, 0)
	err := d.db.WithContext(ctx).
		Where("status = ? AND (user_id = ? OR friend_id = ?)", models.FriendStatusAccepted, userID, userID).
		Order("id ASC").
		Find(&friends).Error
	if err != nil {
		return nil, translate(err)
	}
	return friends, nil
}

func (d *Database) ListFriendRequests(ctx context.Context, userID int64) ([]models.Friend, error) {
	requests := make([]models.Friend, 0)
	err := d.db.WithContext(ctx).
		Where("status = ? AND friend_id = ?", models.FriendStatusPending, userID).
		Order("id DESC").
		Find(&requests).Error
	if err != nil {
		return nil, translate(err)
	}
	return requests, nil
}
