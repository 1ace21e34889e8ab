package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/memorylane/internal/calendar"
	"github.com/thereayou/memorylane/internal/handlers/dto"
	"github.com/thereayou/memorylane/internal/middleware"
	"github.com/thereayou/memorylane/internal/models"
	"github.com/thereayou/memorylane/internal/storage"
)

const dayLayout = "2006-01-02"

type MemoryHandler struct {
	store storage.Storage
	now   func() time.Time
}

func NewMemoryHandler(store storage.Storage) *MemoryHandler {
	return &MemoryHandler{store: store, now: time.Now}
}

// ListAccessible returns the caller's feed: own memories plus friends'
// public ones.
func (h *MemoryHandler) ListAccessible(c *gin.Context) {
	memories, err := h.store.AccessibleMemories(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, memories)
}

func (h *MemoryHandler) ListMine(c *gin.Context) {
	memories, err := h.store.ListMemoriesByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, memories)
}

// Calendar lays the caller's accessible memories over the 6x7 month grid.
func (h *MemoryHandler) Calendar(c *gin.Context) {
	now := h.now().UTC()
	year, month := now.Year(), int(now.Month())

	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 9999 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		year = parsed
	}
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
			return
		}
		month = parsed
	}

	memories, err := h.store.AccessibleMemories(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildCalendar(year, time.Month(month), memories, now))
}

func buildCalendar(year int, month time.Month, memories []models.Memory, now time.Time) dto.CalendarResponse {
	byDay := make(map[string][]models.Memory)
	for _, memory := range memories {
		key := memory.Date.UTC().Format(dayLayout)
		byDay[key] = append(byDay[key], memory)
	}

	days := calendar.Days(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
	resp := dto.CalendarResponse{Year: year, Month: int(month), Days: make([]dto.CalendarDay, 0, len(days))}
	for _, day := range days {
		key := day.Format(dayLayout)
		onDay := byDay[key]
		if onDay == nil {
			onDay = []models.Memory{}
		}
		resp.Days = append(resp.Days, dto.CalendarDay{
			Date:     key,
			InMonth:  day.Month() == month,
			Label:    calendar.FormatRelative(day, now),
			Memories: onDay,
		})
	}
	return resp
}

func (h *MemoryHandler) Create(c *gin.Context) {
	var req dto.CreateMemoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	memory, err := h.store.CreateMemory(c.Request.Context(), models.NewMemory{
		UserID:    middleware.UserID(c),
		Title:     req.Title,
		Content:   req.Content,
		Images:    req.Images,
		Date:      req.Date,
		Location:  req.Location,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, memory)
}

func (h *MemoryHandler) Get(c *gin.Context) {
	memory, ok := h.viewable(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, memory)
}

func (h *MemoryHandler) Update(c *gin.Context) {
	memory, ok := h.owned(c)
	if !ok {
		return
	}

	var patch models.MemoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := h.store.UpdateMemory(c.Request.Context(), memory.ID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *MemoryHandler) Delete(c *gin.Context) {
	memory, ok := h.owned(c)
	if !ok {
		return
	}

	if err := h.store.DeleteMemory(c.Request.Context(), memory.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MemoryHandler) ListComments(c *gin.Context) {
	memory, ok := h.viewable(c)
	if !ok {
		return
	}

	comments, err := h.store.ListComments(c.Request.Context(), memory.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *MemoryHandler) CreateComment(c *gin.Context) {
	memory, ok := h.viewable(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	comment, err := h.store.CreateComment(c.Request.Context(), models.NewComment{
		MemoryID: memory.ID,
		UserID:   middleware.UserID(c),
		Content:  req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// viewable loads the :id memory and checks the caller may read it.
func (h *MemoryHandler) viewable(c *gin.Context) (*models.Memory, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}

	memory, err := h.store.GetMemory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	visible, err := canView(c.Request.Context(), h.store, middleware.UserID(c), memory)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if !visible {
		respondError(c, errForbidden)
		return nil, false
	}
	return memory, true
}

func (h *MemoryHandler) owned(c *gin.Context) (*models.Memory, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}

	memory, err := h.store.GetMemory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if memory.UserID != middleware.UserID(c) {
		respondError(c, errForbidden)
		return nil, false
	}
	return memory, true
}

func canView(ctx context.Context, store storage.FriendStore, viewerID int64, memory *models.Memory) (bool, error) {
	if memory.UserID == viewerID {
		return true, nil
	}
	if memory.IsPrivate {
		return false, nil
	}
	friends, err := store.AreFriends(ctx, viewerID, memory.UserID)
	if err != nil {
		return false, err
	}
	return memory.VisibleTo(viewerID, friends), nil
}
