package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/thereayou/memorylane/internal/models"
	"github.com/thereayou/memorylane/internal/storage"
)

const defaultSearchLimit = 20

func (s *Store) CreateUser(ctx context.Context, in models.NewUser) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.userByUsernameLocked(in.Username); ok {
		return nil, storage.ErrConflict
	}

	s.seq.user++
	user := models.User{
		ID:          s.seq.user,
		Username:    in.Username,
		Password:    in.Password,
		DisplayName: in.DisplayName,
		Bio:         in.Bio,
		AvatarURL:   in.AvatarURL,
		CreatedAt:   s.now(),
	}
	s.users[user.ID] = user

	return &user, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.userByUsernameLocked(username)
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &user, nil
}

func (s *Store) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	patch.Apply(&user)
	s.users[id] = user

	return &user, nil
}

func (s *Store) SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	needle := strings.ToLower(strings.TrimSpace(query))

	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0)
	for _, user := range s.users {
		if needle == "" ||
			strings.Contains(strings.ToLower(user.Username), needle) ||
			strings.Contains(strings.ToLower(user.DisplayName), needle) {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	if len(users) > limit {
		users = users[:limit]
	}

	return users, nil
}

func (s *Store) userByUsernameLocked(username string) (models.User, bool) {
	for _, user := range s.users {
		if user.Username == username {
			return user, true
		}
	}
	return models.User{}, false
}
