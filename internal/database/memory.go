package database

import (
	"context"

	"github.com/thereayou/memorylane/internal/models"
	"gorm.io/gorm"
)

const newestFirst = "date DESC, id DESC"

func (d *Database) CreateMemory(ctx context.Context, in models.NewMemory) (*models.Memory, error) {
	memory := &models.Memory{
		UserID:    in.UserID,
		Title:     in.Title,
		Content:   in.Content,
		Images:    models.StringSlice(in.Images).Clone(),
		Date:      in.Date,
		Location:  in.Location,
		IsPrivate: in.IsPrivate,
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.User{}, "id = ?", in.UserID).Error; err != nil {
			return err
		}
		return tx.Create(memory).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	return memory, nil
}

func (d *Database) GetMemory(ctx context.Context, id int64) (*models.Memory, error) {
	var memory models.Memory
	if err := d.db.WithContext(ctx).First(&memory, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &memory, nil
}

func (d *Database) ListMemoriesByUser(ctx context.Context, userID int64) ([]models.Memory, error) {
	memories := make([]models.Memory, 0)
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(newestFirst).
		Find(&memories).Error
	if err != nil {
		return nil, translate(err)
	}
	return memories, nil
}

func (d *Database) UpdateMemory(ctx context.Context, id int64, patch models.MemoryPatch) (*models.Memory, error) {
	var memory models.Memory
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&memory, "id = ?", id).Error; err != nil {
			return err
		}
		patch.Apply(&memory)
		return tx.Save(&memory).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &memory, nil
}

func (d *Database) DeleteMemory(ctx context.Context, id int64) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Comment{}, "memory_id = ?", id).Error; err != nil {
			return err
		}
		return deleted(tx.Delete(&models.Memory{}, "id = ?", id))
	})
	return translate(err)
}

func (d *Database) AccessibleMemories(ctx context.Context, userID int64) ([]models.Memory, error) {
	db := d.db.WithContext(ctx)

	friendIDs, err := d.acceptedFriendIDs(db, userID)
	if err != nil {
		return nil, translate(err)
	}

	memories := make([]models.Memory, 0)
	query := db.Where("user_id = ?", userID)
	if len(friendIDs) > 0 {
		query = query.Or("user_id IN ? AND is_private = ?", friendIDs, false)
	}
	if err := query.Order(newestFirst).Find(&memories).Error; err != nil {
		return nil, translate(err)
	}

	return memories, nil
}

func (d *Database) GroupMemories(ctx context.Context, groupID int64) ([]models.Memory, error) {
	db := d.db.WithContext(ctx)

	if err := db.Select("id").First(&models.Group{}, "id = ?", groupID).Error; err != nil {
		return nil, translate(err)
	}

	memories := make([]models.Memory, 0)
	members := db.Model(&models.GroupMember{}).Select("user_id").Where("group_id = ?", groupID)
	err := db.
		Where("user_id IN (?) AND is_private = ?", members, false).
		Order(newestFirst).
		Find(&memories).Error
	if err != nil {
		return nil, translate(err)
	}

	return memories, nil
}

func (d *Database) acceptedFriendIDs(db *gorm.DB, userID int64) ([]int64, error) {
	var friends []models.Friend
	err := db.
		Where("status = ? AND (user_id = ? OR friend_id = ?)", models.FriendStatusAccepted, userID, userID).
		Find(&friends).Error
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(friends))
	for _, friend := range friends {
		ids = append(ids, friend.Other(userID))
	}
	return ids, nil
}
