package memory

import (
	"context"
	"errors"
	"sort"

	"github.com/thereayou/memorylane/internal/models"
	"github.com/thereayou/memorylane/internal/storage"
)

func (s *Store) CreateFriendRequest(ctx context.Context, userID, friendID int64) (*models.Friend, error) {
	if userID == friendID {
		return nil, storage.ErrInvalid
	}

	s.mu.Lock()
	requester, ok := s.users[userID]
	if !ok {
		s.mu.Unlock()
		return nil, storage.ErrNotFound
	}
	if _, ok := s.users[friendID]; !ok {
		s.mu.Unlock()
		return nil, storage.ErrNotFound
	}

	pair := models.PairKey(userID, friendID)
	if _, exists := s.friendPairs[pair]; exists {
		s.mu.Unlock()
		return nil, storage.ErrConflict
	}

	s.seq.friend++
	friend := models.Friend{
		ID:        s.seq.friend,
		UserID:    userID,
		FriendID:  friendID,
		Status:    models.FriendStatusPending,
		PairKey:   pair,
		CreatedAt: s.now(),
	}
	s.friends[friend.ID] = friend
	s.friendPairs[pair] = friend.ID

	notification := s.insertNotificationLocked(models.FriendRequestNotification(friendID, &requester, friend.ID))
	s.mu.Unlock()

	s.publish(notification)
	return &friend, nil
}

func (s *Store) GetFriend(ctx context.Context, id int64) (*models.Friend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	friend, ok := s.friends[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &friend, nil
}

func (s *Store) AcceptFriendRequest(ctx context.Context, id int64) (*models.Friend, error) {
	s.mu.Lock()
	friend, err := s.resolveRequestLocked(id, models.FriendStatusAccepted)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	recipient := s.users[friend.FriendID]
	notification := s.insertNotificationLocked(models.FriendAcceptedNotification(friend.UserID, &recipient, friend.ID))
	s.mu.Unlock()

	s.publish(notification)
	return &friend, nil
}

func (s *Store) RejectFriendRequest(ctx context.Context, id int64) (*models.Friend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	friend, err := s.resolveRequestLocked(id, models.FriendStatusRejected)
	if err != nil {
		return nil, err
	}
	return &friend, nil
}

func (s *Store) resolveRequestLocked(id int64, status models.FriendStatus) (models.Friend, error) {
	friend, ok := s.friends[id]
	if !ok {
		return models.Friend{}, storage.ErrNotFound
	}
	if friend.Status != models.FriendStatusPending {
		return models.Friend{}, storage.ErrConflict
	}
	friend.Status = status
	s.friends[id] = friend
	return friend, nil
}

func (s *Store) DeleteFriend(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	friend, ok := s.friends[id]
	if !ok {
		return storage.ErrNotFound
	}
	delete(s.friendPairs, friend.PairKey)
	delete(s.friends, id)

	return nil
}

func (s *Store) FriendshipBetween(ctx context.Context, a, b int64) (*models.Friend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.friendPairs[models.PairKey(a, b)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	friend := s.friends[id]
	return &friend, nil
}

func (s *Store) AreFriends(ctx context.Context, a, b int64) (bool, error) {
	friend, err := s.FriendshipBetween(ctx, a, b)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return friend.Status == models.FriendStatusAccepted, nil
}

func (s *Store) ListFriends(ctx context.Context, userID int64) ([]models.Friend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	friends := make([]models.Friend, 0)
	for _, friend := range s.friends {
		if friend.Status == models.FriendStatusAccepted && friend.Involves(userID) {
			friends = append(friends, friend)
		}
	}
	sort.Slice(friends, func(i, j int) bool { return friends[i].ID < friends[j].ID })

	return friends, nil
}

func (s *Store) ListFriendRequests(ctx context.Context, userID int64) ([]models.Friend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	requests := make([]models.Friend, 0)
	for _, friend := range s.friends {
		if friend.Status == models.FriendStatusPending && friend.FriendID == userID {
			requests = append(requests, friend)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].ID > requests[j].ID })

	return requests, nil
}
