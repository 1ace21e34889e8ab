package database

import (
	"context"

	"github.com/thereayou/memorylane/internal/models"
	"github.com/thereayou/memorylane/internal/storage"
	"gorm.io/gorm"
)

func (d *Database) CreateGroup(ctx context.Context, in models.NewGroup) (*models.Group, error) {
	group := &models.Group{
		Name:        in.Name,
		Description: in.Description,
		AvatarURL:   in.AvatarURL,
		CreatedBy:   in.CreatedBy,
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.User{}, "id = ?", in.CreatedBy).Error; err != nil {
			return err
		}
		if err := tx.Create(group).Error; err != nil {
			return err
		}

		admin := models.GroupMember{
			GroupID: group.ID,
			UserID:  in.CreatedBy,
			Role:    models.GroupRoleAdmin,
		}
		return tx.Create(&admin).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	return group, nil
}

func (d *Database) GetGroup(ctx context.Context, id int64) (*models.Group, error) {
	var group models.Group
	if err := d.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &group, nil
}

func (d *Database) UpdateGroup(ctx context.Context, id int64, patch models.GroupPatch) (*models.Group, error) {
	var group models.Group
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&group, "id = ?", id).Error; err != nil {
			return err
		}
		patch.Apply(&group)
		return tx.Save(&group).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &group, nil
}

func (d *Database) DeleteGroup(ctx context.Context, id int64) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.GroupMember{}, "group_id = ?", id).Error; err != nil {
			return err
		}
		return deleted(tx.Delete(&models.Group{}, "id = ?", id))
	})
	return translate(err)
}

func (d *Database) ListGroupsForUser(ctx context.Context, userID int64) ([]models.Group, error) {
	db := d.db.WithContext(ctx)

	groups := make([]models.Group, 0)
	memberships := db.Model(&models.GroupMember{}).Select("group_id").Where("user_id = ?", userID)
	if err := db.Where("id IN (?)", memberships).Order("id ASC").Find(&groups).Error; err != nil {
		return nil, translate(err)
	}
	return groups, nil
}

func (d *Database) AddGroupMember(ctx context.Context, in models.NewGroupMember) (*models.GroupMember, error) {
	role := in.Role
	if role == "" {
		role = models.GroupRoleMember
	}
	if !role.Valid() {
		return nil, storage.ErrInvalid
	}

	member := &models.GroupMember{
		GroupID: in.GroupID,
		UserID:  in.UserID,
		Role:    role,
	}
	var notification models.Notification

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var group models.Group
		if err := tx.First(&group, "id = ?", in.GroupID).Error; err != nil {
			return err
		}
		if err := tx.Select("id").First(&models.User{}, "id = ?", in.UserID).Error; err != nil {
			return err
		}

		var existing int64
		err := tx.Model(&models.GroupMember{}).
			Where("group_id = ? AND user_id = ?", in.GroupID, in.UserID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return storage.ErrConflict
		}

		if err := tx.Create(member).Error; err != nil {
			return err
		}

		notification = models.GroupAddedNotification(in.UserID, &group)
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	d.publish(notification)
	return member, nil
}

func (d *Database) GetGroupMember(ctx context.Context, groupID, userID int64) (*models.GroupMember, error) {
	var member models.GroupMember
	err := d.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&member).Error
	if err != nil {
		return nil, translate(err)
	}
	return &member, nil
}

func (d *Database) ListGroupMembers(ctx context.Context, groupID int64) ([]models.GroupMember, error) {
	db := d.db.WithContext(ctx)

	if err := db.Select("id").First(&models.Group{}, "id = ?", groupID).Error; err != nil {
		return nil, translate(err)
	}

	members := make([]models.GroupMember, 0)
	if err := db.Where("group_id = ?", groupID).Order("id ASC").Find(&members).Error; err != nil {
		return nil, translate(err)
	}
	return members, nil
}

func (d *Database) UpdateGroupMemberRole(ctx context.Context, groupID, userID int64, role models.GroupRole) (*models.GroupMember, error) {
	if !role.Valid() {
		return nil, storage.ErrInvalid
	}

	var member models.GroupMember
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error; err != nil {
			return err
		}
		if member.Role == models.GroupRoleAdmin && role != models.GroupRoleAdmin {
			if err := ensureAnotherAdmin(tx, groupID); err != nil {
				return err
			}
		}

		member.Role = role
		return tx.Model(&member).Update("role", role).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &member, nil
}

func (d *Database) RemoveGroupMember(ctx context.Context, groupID, userID int64) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var member models.GroupMember
		if err := tx.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error; err != nil {
			return err
		}
		if member.Role == models.GroupRoleAdmin {
			if err := ensureAnotherAdmin(tx, groupID); err != nil {
				return err
			}
		}
		return tx.Delete(&member).Error
	})
	return translate(err)
}

func ensureAnotherAdmin(tx *gorm.DB, groupID int64) error {
	var admins int64
	err := tx.Model(&models.GroupMember{}).
		Where("group_id = ? AND role = ?", groupID, models.GroupRoleAdmin).
		Count(&admins).Error
	if err != nil {
		return err
	}
	if admins <= 1 {
		return storage.ErrConflict
	}
	return nil
}
