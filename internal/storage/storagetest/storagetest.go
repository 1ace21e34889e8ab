// Package storagetest holds the behavioural checks every storage.Storage
// backing must pass. Backings call Run from their own tests.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/thereayou/memorylane/internal/models"
	"github.com/thereayou/memorylane/internal/storage"
)

// Factory returns a fresh, empty store that publishes to pub.
type Factory func(t *testing.T, pub storage.Publisher) storage.Storage

// Recorder is a storage.Publisher that remembers what it was given.
type Recorder struct {
	mu            sync.Mutex
	notifications []models.Notification
}

func (r *Recorder) Publish(n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

func (r *Recorder) For(userID int64) []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Notification, 0)
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func Run(t *testing.T, factory Factory) {
	t.Helper()

	tests := []struct {
		name string
		run  func(t *testing.T, s storage.Storage, rec *Recorder)
	}{
		{name: "users", run: testUsers},
		{name: "search matches wildcards literally", run: testSearchLiteral},
		{name: "memory crud", run: testMemoryCRUD},
		{name: "friend requests", run: testFriendRequests},
		{name: "accept friend request", run: testAcceptFriendRequest},
		{name: "reject and remove friend", run: testRejectAndRemove},
		{name: "accessible memories", run: testAccessibleMemories},
		{name: "delete memory cascades comments", run: testDeleteMemoryCascade},
		{name: "comments notify owner", run: testCommentNotifications},
		{name: "groups", run: testGroups},
		{name: "group members", run: testGroupMembers},
		{name: "group memories", run: testGroupMemories},
		{name: "notifications", run: testNotifications},
		{name: "missing ids", run: testMissingIDs},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			rec := &Recorder{}
			testCase.run(t, factory(t, rec), rec)
		})
	}
}

var seq struct {
	mu sync.Mutex
	n  int
}

func newUser(t *testing.T, s storage.Storage, name string) *models.User {
	t.Helper()

	seq.mu.Lock()
	seq.n++
	username := fmt.Sprintf("%s_%d", name, seq.n)
	seq.mu.Unlock()

	user, err := s.CreateUser(context.Background(), models.NewUser{
		Username:    username,
		Password:    "hash",
		DisplayName: name,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s) error = %v", username, err)
	}
	return user
}

func newMemory(t *testing.T, s storage.Storage, owner *models.User, title string, date time.Time, private bool) *models.Memory {
	t.Helper()

	memory, err := s.CreateMemory(context.Background(), models.NewMemory{
		UserID:    owner.ID,
		Title:     title,
		Content:   "content of " + title,
		Images:    []string{"/uploads/" + title + ".jpg"},
		Date:      date,
		IsPrivate: private,
	})
	if err != nil {
		t.Fatalf("CreateMemory(%s) error = %v", title, err)
	}
	return memory
}

func befriend(t *testing.T, s storage.Storage, a, b *models.User) *models.Friend {
	t.Helper()

	ctx := context.Background()
	request, err := s.CreateFriendRequest(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("CreateFriendRequest() error = %v", err)
	}
	accepted, err := s.AcceptFriendRequest(ctx, request.ID)
	if err != nil {
		t.Fatalf("AcceptFriendRequest() error = %v", err)
	}
	return accepted
}

func wantErr(t *testing.T, op string, err, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("%s error = %v, want %v", op, err, want)
	}
}

func day(n int) time.Time {
	return time.Date(2024, time.March, n, 12, 0, 0, 0, time.UTC)
}

func memoryIDs(memories []models.Memory) []int64 {
	ids := make([]int64, 0, len(memories))
	for _, m := range memories {
		ids = append(ids, m.ID)
	}
	return ids
}

func equalIDs(got, want []int64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func strPtr(s string) *string {
	return &s
}
