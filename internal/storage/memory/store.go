// Package memory is a process-local storage.Storage. All state lives in maps
// guarded by a single RWMutex; every operation, including the multi-record
// ones, runs under one lock acquisition so no reader observes a partial
// write.
package memory

import (
	"sync"
	"time"

	"github.com/thereayou/memorylane/internal/models"
	"github.com/thereayou/memorylane/internal/storage"
)

type memberKey struct {
	groupID int64
	userID  int64
}

type sequences struct {
	user, memory, friend, group, member, notification, comment int64
}

type Store struct {
	mu        sync.RWMutex
	seq       sequences
	publisher storage.Publisher
	now       func() time.Time

	users         map[int64]models.User
	memories      map[int64]models.Memory
	friends       map[int64]models.Friend
	friendPairs   map[string]int64
	groups        map[int64]models.Group
	members       map[memberKey]models.GroupMember
	notifications map[int64]models.Notification
	comments      map[int64]models.Comment
}

var _ storage.Storage = (*Store)(nil)

type Option func(*Store)

func WithPublisher(p storage.Publisher) Option {
	return func(s *Store) {
		s.publisher = p
	}
}

// WithClock overrides the time source used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		now:           time.Now,
		users:         make(map[int64]models.User),
		memories:      make(map[int64]models.Memory),
		friends:       make(map[int64]models.Friend),
		friendPairs:   make(map[string]int64),
		groups:        make(map[int64]models.Group),
		members:       make(map[memberKey]models.GroupMember),
		notifications: make(map[int64]models.Notification),
		comments:      make(map[int64]models.Comment),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) publish(notifications ...models.Notification) {
	if s.publisher == nil {
		return
	}
	for _, n := range notifications {
		s.publisher.Publish(cloneNotification(n))
	}
}

func (s *Store) insertNotificationLocked(n models.Notification) models.Notification {
	s.seq.notification++
	n.ID = s.seq.notification
	n.IsRead = false
	n.CreatedAt = s.now()
	s.notifications[n.ID] = cloneNotification(n)
	return n
}

func cloneMemory(m models.Memory) models.Memory {
	m.Images = m.Images.Clone()
	if m.Location != nil {
		location := *m.Location
		m.Location = &location
	}
	return m
}

func cloneGroup(g models.Group) models.Group {
	if g.AvatarURL != nil {
		avatar := *g.AvatarURL
		g.AvatarURL = &avatar
	}
	return g
}

func cloneNotification(n models.Notification) models.Notification {
	if n.RelatedID != nil {
		related := *n.RelatedID
		n.RelatedID = &related
	}
	return n
}
