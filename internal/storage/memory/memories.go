package memory

import (
	"context"

	"github.com/thereayou/memorylane/internal/models"
	"github.com/thereayou/memorylane/internal/storage"
)

func (s *Store) CreateMemory(ctx context.Context, in models.NewMemory) (*models.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[in.UserID]; !ok {
		return nil, storage.ErrNotFound
	}

	s.seq.memory++
	memory := cloneMemory(models.Memory{
		ID:        s.seq.memory,
		UserID:    in.UserID,
		Title:     in.Title,
		Content:   in.Content,
		Images:    models.StringSlice(in.Images),
		Date:      in.Date,
		Location:  in.Location,
		IsPrivate: in.IsPrivate,
		CreatedAt: s.now(),
	})
	s.memories[memory.ID] = memory

	out := cloneMemory(memory)
	return &out, nil
}

func (s *Store) GetMemory(ctx context.Context, id int64) (*models.Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	memory, ok := s.memories[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := cloneMemory(memory)
	return &out, nil
}

func (s *Store) ListMemoriesByUser(ctx context.Context, userID int64) ([]models.Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filterMemoriesLocked(func(m models.Memory) bool {
		return m.UserID == userID
	}), nil
}

func (s *Store) UpdateMemory(ctx context.Context, id int64, patch models.MemoryPatch) (*models.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memory, ok := s.memories[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	memory = cloneMemory(memory)
	patch.Apply(&memory)
	s.memories[id] = memory

	out := cloneMemory(memory)
	return &out, nil
}

func (s *Store) DeleteMemory(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.memories[id]; !ok {
		return storage.ErrNotFound
	}
	for commentID, comment := range s.comments {
		if comment.MemoryID == id {
			delete(s.comments, commentID)
		}
	}
	delete(s.memories, id)

	return nil
}

func (s *Store) AccessibleMemories(ctx context.Context, userID int64) ([]models.Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	friendIDs := make(map[int64]struct{})
	for _, friend := range s.friends {
		if friend.Status == models.FriendStatusAccepted && friend.Involves(userID) {
			friendIDs[friend.Other(userID)] = struct{}{}
		}
	}

	return s.filterMemoriesLocked(func(m models.Memory) bool {
		if m.UserID == userID {
			return true
		}
		_, isFriend := friendIDs[m.UserID]
		return isFriend && !m.IsPrivate
	}), nil
}

func (s *Store) GroupMemories(ctx context.Context, groupID int64) ([]models.Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.groups[groupID]; !ok {
		return nil, storage.ErrNotFound
	}

	memberIDs := make(map[int64]struct{})
	for key := range s.members {
		if key.groupID == groupID {
			memberIDs[key.userID] = struct{}{}
		}
	}

	return s.filterMemoriesLocked(func(m models.Memory) bool {
		_, isMember := memberIDs[m.UserID]
		return isMember && !m.IsPrivate
	}), nil
}

func (s *Store) filterMemoriesLocked(keep func(models.Memory) bool) []models.Memory {
	memories := make([]models.Memory, 0)
	for _, memory := range s.memories {
		if keep(memory) {
			memories = append(memories, cloneMemory(memory))
		}
	}
	storage.SortMemoriesNewestFirst(memories)
	return memories
}
