package storage

import (
	"sort"

	"github.com/thereayou/memorylane/internal/models"
)

// SortMemoriesNewestFirst orders by event date descending, then id
// descending so that equal dates keep a stable order.
func SortMemoriesNewestFirst(memories []models.Memory) {
	sort.SliceStable(memories, func(i, j int) bool {
		if !memories[i].Date.Equal(memories[j].Date) {
			return memories[i].Date.After(memories[j].Date)
		}
		return memories[i].ID > memories[j].ID
	})
}
