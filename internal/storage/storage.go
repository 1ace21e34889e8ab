// Package storage defines the data access contract shared by every backing
// store: keyed CRUD over the MemoryLane entities, the visibility queries, and
// the mutations that also emit notifications.
package storage

import (
	"context"
	"errors"

	"github.com/thereayou/memorylane/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record conflicts with existing state")
	ErrInvalid  = errors.New("invalid argument")
)

// Publisher receives notifications after they have been stored.
type Publisher interface {
	Publish(n models.Notification)
}

type PublisherFunc func(n models.Notification)

func (f PublisherFunc) Publish(n models.Notification) {
	f(n)
}

type Storage interface {
	UserStore
	MemoryStore
	FriendStore
	GroupStore
	NotificationStore
	CommentStore
}

type UserStore interface {
	CreateUser(ctx context.Context, in models.NewUser) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error)
}

type MemoryStore interface {
	CreateMemory(ctx context.Context, in models.NewMemory) (*models.Memory, error)
	GetMemory(ctx context.Context, id int64) (*models.Memory, error)
	ListMemoriesByUser(ctx context.Context, userID int64) ([]models.Memory, error)
	UpdateMemory(ctx context.Context, id int64, patch models.MemoryPatch) (*models.Memory, error)
	// DeleteMemory removes the memory together with its comments.
	DeleteMemory(ctx context.Context, id int64) error
	// AccessibleMemories returns the user's own memories and the public
	// memories of accepted friends, newest event date first.
	AccessibleMemories(ctx context.Context, userID int64) ([]models.Memory, error)
	// GroupMemories returns public memories authored by current members of
	// the group, newest event date first.
	GroupMemories(ctx context.Context, groupID int64) ([]models.Memory, error)
}

type FriendStore interface {
	// CreateFriendRequest fails with ErrConflict when a record already exists
	// for the pair in either direction. It notifies friendID.
	CreateFriendRequest(ctx context.Context, userID, friendID int64) (*models.Friend, error)
	GetFriend(ctx context.Context, id int64) (*models.Friend, error)
	// AcceptFriendRequest notifies the original requester.
	AcceptFriendRequest(ctx context.Context, id int64) (*models.Friend, error)
	RejectFriendRequest(ctx context.Context, id int64) (*models.Friend, error)
	DeleteFriend(ctx context.Context, id int64) error
	FriendshipBetween(ctx context.Context, a, b int64) (*models.Friend, error)
	AreFriends(ctx context.Context, a, b int64) (bool, error)
	ListFriends(ctx context.Context, userID int64) ([]models.Friend, error)
	ListFriendRequests(ctx context.Context, userID int64) ([]models.Friend, error)
}

type GroupStore interface {
	// CreateGroup stores the group and makes its creator an admin member as
	// one unit.
	CreateGroup(ctx context.Context, in models.NewGroup) (*models.Group, error)
	GetGroup(ctx context.Context, id int64) (*models.Group, error)
	UpdateGroup(ctx context.Context, id int64, patch models.GroupPatch) (*models.Group, error)
	// DeleteGroup removes the group together with its memberships.
	DeleteGroup(ctx context.Context, id int64) error
	ListGroupsForUser(ctx context.Context, userID int64) ([]models.Group, error)

	AddGroupMember(ctx context.Context, in models.NewGroupMember) (*models.GroupMember, error)
	GetGroupMember(ctx context.Context, groupID, userID int64) (*models.GroupMember, error)
	ListGroupMembers(ctx context.Context, groupID int64) ([]models.GroupMember, error)
	UpdateGroupMemberRole(ctx context.Context, groupID, userID int64, role models.GroupRole) (*models.GroupMember, error)
	RemoveGroupMember(ctx context.Context, groupID, userID int64) error
}

type NotificationStore interface {
	GetNotification(ctx context.Context, id int64) (*models.Notification, error)
	ListNotifications(ctx context.Context, userID int64) ([]models.Notification, error)
	CountUnreadNotifications(ctx context.Context, userID int64) (int64, error)
	MarkNotificationRead(ctx context.Context, id int64) (*models.Notification, error)
	MarkAllNotificationsRead(ctx context.Context, userID int64) error
	DeleteNotification(ctx context.Context, id int64) error
}

type CommentStore interface {
	// CreateComment notifies the memory owner unless the owner wrote it.
	CreateComment(ctx context.Context, in models.NewComment) (*models.Comment, error)
	GetComment(ctx context.Context, id int64) (*models.Comment, error)
	ListComments(ctx context.Context, memoryID int64) ([]models.Comment, error)
	UpdateComment(ctx context.Context, id int64, patch models.CommentPatch) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}
