package memory

import (
	"context"
	"sort"

	"github.com/thereayou/memorylane/internal/models"
	"github.com/thereayou/memorylane/internal/storage"
)

func (s *Store) GetNotification(ctx context.Context, id int64) (*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notification, ok := s.notifications[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := cloneNotification(notification)
	return &out, nil
}

func (s *Store) ListNotifications(ctx context.Context, userID int64) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notifications := make([]models.Notification, 0)
	for _, notification := range s.notifications {
		if notification.UserID == userID {
			notifications = append(notifications, cloneNotification(notification))
		}
	}
	sort.Slice(notifications, func(i, j int) bool { return notifications[i].ID > notifications[j].ID })

	return notifications, nil
}

func (s *Store) CountUnreadNotifications(ctx context.Context, userID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, notification := range s.notifications {
		if notification.UserID == userID && !notification.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *Store) MarkNotificationRead(ctx context.Context, id int64) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notification, ok := s.notifications[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	notification.IsRead = true
	s.notifications[id] = notification

	out := cloneNotification(notification)
	return &out, nil
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, notification := range s.notifications {
		if notification.UserID == userID && !notification.IsRead {
			notification.IsRead = true
			s.notifications[id] = notification
		}
	}
	return nil
}

func (s *Store) DeleteNotification(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notifications[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.notifications, id)
	return nil
}
