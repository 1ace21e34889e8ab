package dto

import (
	"time"

	"github.com/thereayou/memorylane/internal/models"
)

type CreateMemoryRequest struct {
	Title     string    `json:"title" binding:"required,max=200"`
	Content   string    `json:"content" binding:"required"`
	Images    []string  `json:"images" binding:"max=20,dive,max=500"`
	Date      time.Time `json:"date" binding:"required"`
	Location  *string   `json:"location" binding:"omitempty,max=255"`
	IsPrivate bool      `json:"isPrivate"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

type CalendarDay struct {
	Date     string          `json:"date"`
	InMonth  bool            `json:"inMonth"`
	Label    string          `json:"label"`
	Memories []models.Memory `json:"memories"`
}

type CalendarResponse struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []CalendarDay `json:"days"`
}
