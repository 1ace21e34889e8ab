package memory

import (
	"context"
	"sort"

	"github.com/thereayou/memorylane/internal/models"
	"github.com/thereayou/memorylane/internal/storage"
)

func (s *Store) CreateGroup(ctx context.Context, in models.NewGroup) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[in.CreatedBy]; !ok {
		return nil, storage.ErrNotFound
	}

	now := s.now()
	s.seq.group++
	group := cloneGroup(models.Group{
		ID:          s.seq.group,
		Name:        in.Name,
		Description: in.Description,
		AvatarURL:   in.AvatarURL,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
	})
	s.groups[group.ID] = group

	s.seq.member++
	s.members[memberKey{groupID: group.ID, userID: in.CreatedBy}] = models.GroupMember{
		ID:       s.seq.member,
		GroupID:  group.ID,
		UserID:   in.CreatedBy,
		Role:     models.GroupRoleAdmin,
		JoinedAt: now,
	}

	out := cloneGroup(group)
	return &out, nil
}

func (s *Store) GetGroup(ctx context.Context, id int64) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groups[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := cloneGroup(group)
	return &out, nil
}

func (s *Store) UpdateGroup(ctx context.Context, id int64, patch models.GroupPatch) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	group = cloneGroup(group)
	patch.Apply(&group)
	s.groups[id] = group

	out := cloneGroup(group)
	return &out, nil
}

func (s *Store) DeleteGroup(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[id]; !ok {
		return storage.ErrNotFound
	}
	for key := range s.members {
		if key.groupID == id {
			delete(s.members, key)
		}
	}
	delete(s.groups, id)

	return nil
}

func (s *Store) ListGroupsForUser(ctx context.Context, userID int64) ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]models.Group, 0)
	for key := range s.members {
		if key.userID != userID {
			continue
		}
		if group, ok := s.groups[key.groupID]; ok {
			groups = append(groups, cloneGroup(group))
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })

	return groups, nil
}

func (s *Store) AddGroupMember(ctx context.Context, in models.NewGroupMember) (*models.GroupMember, error) {
	role := in.Role
	if role == "" {
		role = models.GroupRoleMember
	}
	if !role.Valid() {
		return nil, storage.ErrInvalid
	}

	s.mu.Lock()
	group, ok := s.groups[in.GroupID]
	if !ok {
		s.mu.Unlock()
		return nil, storage.ErrNotFound
	}
	if _, ok := s.users[in.UserID]; !ok {
		s.mu.Unlock()
		return nil, storage.ErrNotFound
	}

	key := memberKey{groupID: in.GroupID, userID: in.UserID}
	if _, exists := s.members[key]; exists {
		s.mu.Unlock()
		return nil, storage.ErrConflict
	}

	s.seq.member++
	member := models.GroupMember{
		ID:       s.seq.member,
		GroupID:  in.GroupID,
		UserID:   in.UserID,
		Role:     role,
		JoinedAt: s.now(),
	}
	s.members[key] = member

	notification := s.insertNotificationLocked(models.GroupAddedNotification(in.UserID, &group))
	s.mu.Unlock()

	s.publish(notification)
	return &member, nil
}

func (s *Store) GetGroupMember(ctx context.Context, groupID, userID int64) (*models.GroupMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	member, ok := s.members[memberKey{groupID: groupID, userID: userID}]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &member, nil
}

func (s *Store) ListGroupMembers(ctx context.Context, groupID int64) ([]models.GroupMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.groups[groupID]; !ok {
		return nil, storage.ErrNotFound
	}

	members := make([]models.GroupMember, 0)
	for key, member := range s.members {
		if key.groupID == groupID {
			members = append(members, member)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })

	return members, nil
}

func (s *Store) UpdateGroupMemberRole(ctx context.Context, groupID, userID int64, role models.GroupRole) (*models.GroupMember, error) {
	if !role.Valid() {
		return nil, storage.ErrInvalid
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := memberKey{groupID: groupID, userID: userID}
	member, ok := s.members[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if member.Role == models.GroupRoleAdmin && role != models.GroupRoleAdmin && s.adminCountLocked(groupID) == 1 {
		return nil, storage.ErrConflict
	}
	member.Role = role
	s.members[key] = member

	return &member, nil
}

func (s *Store) RemoveGroupMember(ctx context.Context, groupID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memberKey{groupID: groupID, userID: userID}
	member, ok := s.members[key]
	if !ok {
		return storage.ErrNotFound
	}
	if member.Role == models.GroupRoleAdmin && s.adminCountLocked(groupID) == 1 {
		return storage.ErrConflict
	}
	delete(s.members, key)

	return nil
}

func (s *Store) adminCountLocked(groupID int64) int {
	count := 0
	for key, member := range s.members {
		if key.groupID == groupID && member.Role == models.GroupRoleAdmin {
			count++
		}
	}
	return count
}
