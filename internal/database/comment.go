package database

import (
	"context"

	"github.com/thereayou/memorylane/internal/models"
	"gorm.io/gorm"
)

func (d *Database) CreateComment(ctx context.Context, in models.NewComment) (*models.Comment, error) {
	comment := &models.Comment{
		MemoryID: in.MemoryID,
		UserID:   in.UserID,
		Content:  in.Content,
	}
	var notifications []models.Notification

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var memory models.Memory
		if err := tx.First(&memory, "id = ?", in.MemoryID).Error; err != nil {
			return err
		}
		var author models.User
		if err := tx.First(&author, "id = ?", in.UserID).Error; err != nil {
			return err
		}

		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		if memory.UserID == in.UserID {
			return nil
		}
		notification := models.CommentNotification(memory.UserID, &author, &memory)
		if err := tx.Create(&notification).Error; err != nil {
			return err
		}
		notifications = append(notifications, notification)
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	d.publish(notifications...)
	return comment, nil
}

func (d *Database) GetComment(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	if err := d.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (d *Database) ListComments(ctx context.Context, memoryID int64) ([]models.Comment, error) {
	db := d.db.WithContext(ctx)

	if err := db.Select("id").First(&models.Memory{}, "id = ?", memoryID).Error; err != nil {
		return nil, translate(err)
	}

	comments := make([]models.Comment, 0)
	if err := db.Where("memory_id = ?", memoryID).Order("id ASC").Find(&comments).Error; err != nil {
		return nil, translate(err)
	}
	return comments, nil
}

func (d *Database) UpdateComment(ctx context.Context, id int64, patch models.CommentPatch) (*models.Comment, error) {
	var comment models.Comment
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&comment, "id = ?", id).Error; err != nil {
			return err
		}
		patch.Apply(&comment)
		return tx.Save(&comment).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (d *Database) DeleteComment(ctx context.Context, id int64) error {
	return deleted(d.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id))
}
