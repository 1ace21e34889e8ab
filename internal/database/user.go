package database

import (
	"context"
	"strings"

	"github.com/thereayou/memorylane/internal/models"
	"github.com/thereayou/memorylane/internal/storage"
	"gorm.io/gorm"
)

const defaultSearchLimit = 20

// likeEscaper makes LIKE wildcards in a search query match literally, with
// '!' as the ESCAPE character on every driver.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (d *Database) CreateUser(ctx context.Context, in models.NewUser) (*models.User, error) {
	user := &models.User{
		Username:    in.Username,
		Password:    in.Password,
		DisplayName: in.DisplayName,
		Bio:         in.Bio,
		AvatarURL:   in.AvatarURL,
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.User{}).Where("username = ?", in.Username).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return storage.ErrConflict
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	return user, nil
}

func (d *Database) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (d *Database) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (d *Database) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	var user models.User
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}
		patch.Apply(&user)
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (d *Database) SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(query))) + "%"

	users := make([]models.User, 0)
	err := d.db.WithContext(ctx).
		Where("LOWER(username) LIKE ? ESCAPE '!' OR LOWER(display_name) LIKE ? ESCAPE '!'", pattern, pattern).
		Order("username ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, translate(err)
	}
	return users, nil
}
