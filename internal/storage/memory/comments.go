package memory

import (
	"context"
	"sort"

	"github.com/thereayou/memorylane/internal/models"
	"github.com/thereayou/memorylane/internal/storage"
)

func (s *Store) CreateComment(ctx context.Context, in models.NewComment) (*models.Comment, error) {
	s.mu.Lock()
	memory, ok := s.memories[in.MemoryID]
	if !ok {
		s.mu.Unlock()
		return nil, storage.ErrNotFound
	}
	author, ok := s.users[in.UserID]
	if !ok {
		s.mu.Unlock()
		return nil, storage.ErrNotFound
	}

	s.seq.comment++
	comment := models.Comment{
		ID:        s.seq.comment,
		MemoryID:  in.MemoryID,
		UserID:    in.UserID,
		Content:   in.Content,
		CreatedAt: s.now(),
	}
	s.comments[comment.ID] = comment

	var notifications []models.Notification
	if memory.UserID != in.UserID {
		notifications = append(notifications,
			s.insertNotificationLocked(models.CommentNotification(memory.UserID, &author, &memory)))
	}
	s.mu.Unlock()

	s.publish(notifications...)
	return &comment, nil
}

func (s *Store) GetComment(ctx context.Context, id int64) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comment, ok := s.comments[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &comment, nil
}

func (s *Store) ListComments(ctx context.Context, memoryID int64) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.memories[memoryID]; !ok {
		return nil, storage.ErrNotFound
	}

	comments := make([]models.Comment, 0)
	for _, comment := range s.comments {
		if comment.MemoryID == memoryID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })

	return comments, nil
}

func (s *Store) UpdateComment(ctx context.Context, id int64, patch models.CommentPatch) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, ok := s.comments[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	patch.Apply(&comment)
	s.comments[id] = comment

	return &comment, nil
}

func (s *Store) DeleteComment(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}
