package models

import (
	"time"
)

type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	MemoryID  int64     `json:"memoryId" gorm:"not null;index"`
	UserID    int64     `json:"userId" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

type NewComment struct {
	MemoryID int64
	UserID   int64
	Content  string
}

type CommentPatch struct {
	Content *string `json:"content" binding:"omitempty,min=1,max=2000"`
}

func (p CommentPatch) Apply(c *Comment) {
	if p.Content != nil {
		c.Content = *p.Content
	}
}
