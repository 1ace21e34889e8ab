package models

import (
	"time"
)

type Memory struct {
	ID        int64       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64       `json:"userId" gorm:"not null;index"`
	Title     string      `json:"title" gorm:"not null;size:200"`
	Content   string      `json:"content" gorm:"type:text;not null"`
	Images    StringSlice `json:"images"`
	Date      time.Time   `json:"date" gorm:"not null;index"`
	Location  *string     `json:"location" gorm:"size:255"`
	IsPrivate bool        `json:"isPrivate" gorm:"not null"`
	CreatedAt time.Time   `json:"createdAt"`
}

type NewMemory struct {
	UserID    int64
	Title     string
	Content   string
	Images    []string
	Date      time.Time
	Location  *string
	IsPrivate bool
}

type MemoryPatch struct {
	Title     *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Content   *string    `json:"content"`
	Images    *[]string  `json:"images" binding:"omitempty,max=20,dive,max=500"`
	Date      *time.Time `json:"date"`
	Location  *string    `json:"location" binding:"omitempty,max=255"`
	IsPrivate *bool      `json:"isPrivate"`
}

// Apply merges the set fields of p into m. An empty Location clears it.
func (p MemoryPatch) Apply(m *Memory) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Content != nil {
		m.Content = *p.Content
	}
	if p.Images != nil {
		m.Images = StringSlice(*p.Images).Clone()
	}
	if p.Date != nil {
		m.Date = *p.Date
	}
	if p.Location != nil {
		if *p.Location == "" {
			m.Location = nil
		} else {
			location := *p.Location
			m.Location = &location
		}
	}
	if p.IsPrivate != nil {
		m.IsPrivate = *p.IsPrivate
	}
}

// VisibleTo reports whether viewer may read m given whether viewer is an
// accepted friend of the owner.
func (m *Memory) VisibleTo(viewerID int64, isFriend bool) bool {
	if m.UserID == viewerID {
		return true
	}
	return isFriend && !m.IsPrivate
}
