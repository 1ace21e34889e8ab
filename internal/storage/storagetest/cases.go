package storagetest

import (
	"context"
	"testing"

	"github.com/thereayou/memorylane/internal/models"
	"github.com/thereayou/memorylane/internal/storage"
)

func testUsers(t *testing.T, s storage.Storage, _ *Recorder) {
	ctx := context.Background()

	user, err := s.CreateUser(ctx, models.NewUser{Username: "ada", Password: "hash", DisplayName: "Ada Lovelace"})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if user.ID == 0 {
		t.Fatal("CreateUser() returned zero id")
	}

	_, err = s.CreateUser(ctx, models.NewUser{Username: "ada", Password: "x", DisplayName: "Other"})
	wantErr(t, "CreateUser(duplicate)", err, storage.ErrConflict)

	second, err := s.CreateUser(ctx, models.NewUser{Username: "grace", Password: "hash", DisplayName: "Grace Hopper"})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if second.ID == user.ID {
		t.Fatalf("ids collide: %d", second.ID)
	}

	byName, err := s.GetUserByUsername(ctx, "ada")
	if err != nil || byName.ID != user.ID {
		t.Fatalf("GetUserByUsername() = %v, %v; want id %d", byName, err, user.ID)
	}

	updated, err := s.UpdateUser(ctx, user.ID, models.UserPatch{Bio: strPtr("mathematician")})
	if err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}
	if updated.Bio != "mathematician" || updated.DisplayName != "Ada Lovelace" {
		t.Fatalf("UpdateUser() = %+v, want merged bio and untouched display name", updated)
	}

	found, err := s.SearchUsers(ctx, "HOPP", 10)
	if err != nil {
		t.Fatalf("SearchUsers() error = %v", err)
	}
	if len(found) != 1 || found[0].ID != second.ID {
		t.Fatalf("SearchUsers() = %+v, want only grace", found)
	}
}

func testSearchLiteral(t *testing.T, s storage.Storage, _ *Recorder) {
	ctx := context.Background()

	underscored, err := s.CreateUser(ctx, models.NewUser{Username: "ada_l", Password: "hash", DisplayName: "Ada"})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	for _, name := range []string{"grace", "bang"} {
		if _, err := s.CreateUser(ctx, models.NewUser{Username: name, Password: "hash", DisplayName: name + "!"}); err != nil {
			t.Fatalf("CreateUser(%s) error = %v", name, err)
		}
	}

	tests := []struct {
		query string
		want  int
	}{
		{query: "_", want: 1},
		{query: "%", want: 0},
		{query: "a%a", want: 0},
		{query: "!", want: 2},
	}

	for _, testCase := range tests {
		found, err := s.SearchUsers(ctx, testCase.query, 10)
		if err != nil {
			t.Fatalf("SearchUsers(%q) error = %v", testCase.query, err)
		}
		if len(found) != testCase.want {
			t.Fatalf("SearchUsers(%q) returned %d users, want %d", testCase.query, len(found), testCase.want)
		}
		if testCase.query == "_" && found[0].ID != underscored.ID {
			t.Fatalf("SearchUsers(%q) = %+v, want ada_l", testCase.query, found)
		}
	}
}

func testMemoryCRUD(t *testing.T, s storage.Storage, _ *Recorder) {
	ctx := context.Background()
	owner := newUser(t, s, "owner")

	memory := newMemory(t, s, owner, "beach", day(3), false)
	got, err := s.GetMemory(ctx, memory.ID)
	if err != nil {
		t.Fatalf("GetMemory() error = %v", err)
	}
	if got.Title != "beach" || len(got.Images) != 1 || !got.Date.Equal(day(3)) {
		t.Fatalf("GetMemory() = %+v", got)
	}

	updated, err := s.UpdateMemory(ctx, memory.ID, models.MemoryPatch{
		Location:  strPtr("Lisbon"),
		IsPrivate: func() *bool { b := true; return &b }(),
	})
	if err != nil {
		t.Fatalf("UpdateMemory() error = %v", err)
	}
	if updated.Title != "beach" || updated.Location == nil || *updated.Location != "Lisbon" || !updated.IsPrivate {
		t.Fatalf("UpdateMemory() = %+v, want shallow merge", updated)
	}

	_, err = s.CreateMemory(ctx, models.NewMemory{UserID: owner.ID + 1000, Title: "x", Date: day(1)})
	wantErr(t, "CreateMemory(missing owner)", err, storage.ErrNotFound)

	newMemory(t, s, owner, "older", day(1), true)
	mine, err := s.ListMemoriesByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListMemoriesByUser() error = %v", err)
	}
	if len(mine) != 2 || mine[0].ID != memory.ID {
		t.Fatalf("ListMemoriesByUser() = %v, want newest first", memoryIDs(mine))
	}
}

func testFriendRequests(t *testing.T, s storage.Storage, rec *Recorder) {
	ctx := context.Background()
	alice := newUser(t, s, "alice")
	bob := newUser(t, s, "bob")

	_, err := s.CreateFriendRequest(ctx, alice.ID, alice.ID)
	wantErr(t, "CreateFriendRequest(self)", err, storage.ErrInvalid)

	_, err = s.CreateFriendRequest(ctx, alice.ID, bob.ID+1000)
	wantErr(t, "CreateFriendRequest(missing user)", err, storage.ErrNotFound)

	request, err := s.CreateFriendRequest(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("CreateFriendRequest() error = %v", err)
	}
	if request.Status != models.FriendStatusPending || request.UserID != alice.ID || request.FriendID != bob.ID {
		t.Fatalf("CreateFriendRequest() = %+v", request)
	}

	_, err = s.CreateFriendRequest(ctx, alice.ID, bob.ID)
	wantErr(t, "CreateFriendRequest(same direction)", err, storage.ErrConflict)
	_, err = s.CreateFriendRequest(ctx, bob.ID, alice.ID)
	wantErr(t, "CreateFriendRequest(reverse direction)", err, storage.ErrConflict)

	stored, err := s.ListNotifications(ctx, bob.ID)
	if err != nil {
		t.Fatalf("ListNotifications() error = %v", err)
	}
	if len(stored) != 1 || stored[0].Type != models.NotificationTypeFriendRequest {
		t.Fatalf("bob notifications = %+v, want one friend_request", stored)
	}
	if stored[0].RelatedID == nil || *stored[0].RelatedID != request.ID {
		t.Fatalf("notification related id = %v, want %d", stored[0].RelatedID, request.ID)
	}
	if published := rec.For(bob.ID); len(published) != 1 {
		t.Fatalf("published to bob = %d, want 1", len(published))
	}

	pending, err := s.ListFriendRequests(ctx, bob.ID)
	if err != nil || len(pending) != 1 || pending[0].ID != request.ID {
		t.Fatalf("ListFriendRequests() = %+v, %v", pending, err)
	}
	between, err := s.FriendshipBetween(ctx, bob.ID, alice.ID)
	if err != nil || between.ID != request.ID {
		t.Fatalf("FriendshipBetween() = %+v, %v", between, err)
	}
	if ok, _ := s.AreFriends(ctx, alice.ID, bob.ID); ok {
		t.Fatal("AreFriends() = true for a pending request")
	}
}

func testAcceptFriendRequest(t *testing.T, s storage.Storage, rec *Recorder) {
	ctx := context.Background()
	alice := newUser(t, s, "alice")
	bob := newUser(t, s, "bob")

	request, err := s.CreateFriendRequest(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("CreateFriendRequest() error = %v", err)
	}

	accepted, err := s.AcceptFriendRequest(ctx, request.ID)
	if err != nil {
		t.Fatalf("AcceptFriendRequest() error = %v", err)
	}
	if accepted.Status != models.FriendStatusAccepted {
		t.Fatalf("status = %s, want accepted", accepted.Status)
	}

	stored, _ := s.GetFriend(ctx, request.ID)
	if stored.Status != models.FriendStatusAccepted {
		t.Fatalf("stored status = %s, want accepted", stored.Status)
	}

	notifications, err := s.ListNotifications(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListNotifications() error = %v", err)
	}
	if len(notifications) != 1 || notifications[0].Type != models.NotificationTypeFriendAccepted {
		t.Fatalf("alice notifications = %+v, want exactly one friend_accepted", notifications)
	}
	if len(rec.For(alice.ID)) != 1 {
		t.Fatalf("published to alice = %d, want 1", len(rec.For(alice.ID)))
	}

	_, err = s.AcceptFriendRequest(ctx, request.ID)
	wantErr(t, "AcceptFriendRequest(again)", err, storage.ErrConflict)
	_, err = s.AcceptFriendRequest(ctx, request.ID+1000)
	wantErr(t, "AcceptFriendRequest(missing)", err, storage.ErrNotFound)

	if ok, _ := s.AreFriends(ctx, bob.ID, alice.ID); !ok {
		t.Fatal("AreFriends() = false after accept")
	}
	for _, user := range []*models.User{alice, bob} {
		friends, err := s.ListFriends(ctx, user.ID)
		if err != nil || len(friends) != 1 {
			t.Fatalf("ListFriends(%d) = %+v, %v", user.ID, friends, err)
		}
	}
}

func testRejectAndRemove(t *testing.T, s storage.Storage, rec *Recorder) {
	ctx := context.Background()
	alice := newUser(t, s, "alice")
	bob := newUser(t, s, "bob")

	request, err := s.CreateFriendRequest(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("CreateFriendRequest() error = %v", err)
	}
	rejected, err := s.RejectFriendRequest(ctx, request.ID)
	if err != nil || rejected.Status != models.FriendStatusRejected {
		t.Fatalf("RejectFriendRequest() = %+v, %v", rejected, err)
	}
	if len(rec.For(alice.ID)) != 0 {
		t.Fatal("rejection notified the requester")
	}

	_, err = s.CreateFriendRequest(ctx, alice.ID, bob.ID)
	wantErr(t, "CreateFriendRequest(after reject)", err, storage.ErrConflict)

	if err := s.DeleteFriend(ctx, request.ID); err != nil {
		t.Fatalf("DeleteFriend() error = %v", err)
	}
	wantErr(t, "DeleteFriend(again)", s.DeleteFriend(ctx, request.ID), storage.ErrNotFound)

	if _, err := s.CreateFriendRequest(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("CreateFriendRequest(after delete) error = %v", err)
	}
}

func testAccessibleMemories(t *testing.T, s storage.Storage, _ *Recorder) {
	ctx := context.Background()
	me := newUser(t, s, "me")
	friend := newUser(t, s, "friend")
	pending := newUser(t, s, "pending")
	stranger := newUser(t, s, "stranger")

	befriend(t, s, friend, me)
	if _, err := s.CreateFriendRequest(ctx, me.ID, pending.ID); err != nil {
		t.Fatalf("CreateFriendRequest() error = %v", err)
	}

	ownPrivate := newMemory(t, s, me, "own-private", day(1), true)
	ownPublic := newMemory(t, s, me, "own-public", day(5), false)
	friendPublic := newMemory(t, s, friend, "friend-public", day(3), false)
	newMemory(t, s, friend, "friend-private", day(4), true)
	newMemory(t, s, pending, "pending-public", day(6), false)
	newMemory(t, s, stranger, "stranger-public", day(7), false)
	sameDay := newMemory(t, s, friend, "friend-same-day", day(5), false)

	got, err := s.AccessibleMemories(ctx, me.ID)
	if err != nil {
		t.Fatalf("AccessibleMemories() error = %v", err)
	}

	want := []int64{sameDay.ID, ownPublic.ID, friendPublic.ID, ownPrivate.ID}
	if !equalIDs(memoryIDs(got), want) {
		t.Fatalf("AccessibleMemories() = %v, want %v", memoryIDs(got), want)
	}

	for _, memory := range got {
		if memory.UserID == me.ID {
			continue
		}
		if memory.IsPrivate {
			t.Fatalf("private memory %d of user %d leaked", memory.ID, memory.UserID)
		}
		if ok, _ := s.AreFriends(ctx, me.ID, memory.UserID); !ok {
			t.Fatalf("memory %d of non-friend %d leaked", memory.ID, memory.UserID)
		}
	}
}

func testDeleteMemoryCascade(t *testing.T, s storage.Storage, _ *Recorder) {
	ctx := context.Background()
	owner := newUser(t, s, "owner")
	other := newUser(t, s, "other")

	doomed := newMemory(t, s, owner, "doomed", day(1), false)
	kept := newMemory(t, s, owner, "kept", day(2), false)

	var doomedComments []int64
	for _, author := range []*models.User{owner, other} {
		comment, err := s.CreateComment(ctx, models.NewComment{MemoryID: doomed.ID, UserID: author.ID, Content: "nice"})
		if err != nil {
			t.Fatalf("CreateComment() error = %v", err)
		}
		doomedComments = append(doomedComments, comment.ID)
	}
	survivor, err := s.CreateComment(ctx, models.NewComment{MemoryID: kept.ID, UserID: other.ID, Content: "keep"})
	if err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}

	if err := s.DeleteMemory(ctx, doomed.ID); err != nil {
		t.Fatalf("DeleteMemory() error = %v", err)
	}

	_, err = s.GetMemory(ctx, doomed.ID)
	wantErr(t, "GetMemory(deleted)", err, storage.ErrNotFound)
	for _, id := range doomedComments {
		_, err := s.GetComment(ctx, id)
		wantErr(t, "GetComment(cascaded)", err, storage.ErrNotFound)
	}
	if _, err := s.GetComment(ctx, survivor.ID); err != nil {
		t.Fatalf("GetComment(survivor) error = %v", err)
	}
	wantErr(t, "DeleteMemory(again)", s.DeleteMemory(ctx, doomed.ID), storage.ErrNotFound)
}

func testCommentNotifications(t *testing.T, s storage.Storage, rec *Recorder) {
	ctx := context.Background()
	owner := newUser(t, s, "owner")
	visitor := newUser(t, s, "visitor")
	memory := newMemory(t, s, owner, "picnic", day(2), false)

	if _, err := s.CreateComment(ctx, models.NewComment{MemoryID: memory.ID, UserID: owner.ID, Content: "mine"}); err != nil {
		t.Fatalf("CreateComment(owner) error = %v", err)
	}
	if n, _ := s.CountUnreadNotifications(ctx, owner.ID); n != 0 {
		t.Fatalf("self comment produced %d notifications", n)
	}

	if _, err := s.CreateComment(ctx, models.NewComment{MemoryID: memory.ID, UserID: visitor.ID, Content: "lovely"}); err != nil {
		t.Fatalf("CreateComment(visitor) error = %v", err)
	}
	notifications, _ := s.ListNotifications(ctx, owner.ID)
	if len(notifications) != 1 || notifications[0].Type != models.NotificationTypeComment {
		t.Fatalf("owner notifications = %+v, want one comment", notifications)
	}
	if notifications[0].RelatedID == nil || *notifications[0].RelatedID != memory.ID {
		t.Fatalf("related id = %v, want memory %d", notifications[0].RelatedID, memory.ID)
	}
	if len(rec.For(owner.ID)) != 1 {
		t.Fatalf("published to owner = %d, want 1", len(rec.For(owner.ID)))
	}

	comments, err := s.ListComments(ctx, memory.ID)
	if err != nil || len(comments) != 2 || comments[0].UserID != owner.ID {
		t.Fatalf("ListComments() = %+v, %v; want oldest first", comments, err)
	}

	_, err = s.CreateComment(ctx, models.NewComment{MemoryID: memory.ID + 1000, UserID: visitor.ID, Content: "x"})
	wantErr(t, "CreateComment(missing memory)", err, storage.ErrNotFound)

	updated, err := s.UpdateComment(ctx, comments[1].ID, models.CommentPatch{Content: strPtr("edited")})
	if err != nil || updated.Content != "edited" || updated.MemoryID != memory.ID {
		t.Fatalf("UpdateComment() = %+v, %v", updated, err)
	}
}

func testGroups(t *testing.T, s storage.Storage, _ *Recorder) {
	ctx := context.Background()
	creator := newUser(t, s, "creator")

	group, err := s.CreateGroup(ctx, models.NewGroup{Name: "Family", Description: "us", CreatedBy: creator.ID})
	if err != nil {
		t.Fatalf("CreateGroup() error = %v", err)
	}

	member, err := s.GetGroupMember(ctx, group.ID, creator.ID)
	if err != nil {
		t.Fatalf("GetGroupMember(creator) error = %v", err)
	}
	if member.Role != models.GroupRoleAdmin {
		t.Fatalf("creator role = %s, want admin", member.Role)
	}

	_, err = s.CreateGroup(ctx, models.NewGroup{Name: "Ghost", CreatedBy: creator.ID + 1000})
	wantErr(t, "CreateGroup(missing creator)", err, storage.ErrNotFound)

	updated, err := s.UpdateGroup(ctx, group.ID, models.GroupPatch{Name: strPtr("Clan")})
	if err != nil || updated.Name != "Clan" || updated.Description != "us" {
		t.Fatalf("UpdateGroup() = %+v, %v", updated, err)
	}

	groups, err := s.ListGroupsForUser(ctx, creator.ID)
	if err != nil || len(groups) != 1 || groups[0].ID != group.ID {
		t.Fatalf("ListGroupsForUser() = %+v, %v", groups, err)
	}

	if err := s.DeleteGroup(ctx, group.ID); err != nil {
		t.Fatalf("DeleteGroup() error = %v", err)
	}
	_, err = s.GetGroup(ctx, group.ID)
	wantErr(t, "GetGroup(deleted)", err, storage.ErrNotFound)
	_, err = s.GetGroupMember(ctx, group.ID, creator.ID)
	wantErr(t, "GetGroupMember(cascaded)", err, storage.ErrNotFound)
	if groups, _ := s.ListGroupsForUser(ctx, creator.ID); len(groups) != 0 {
		t.Fatalf("ListGroupsForUser() after delete = %+v", groups)
	}
}

func testGroupMembers(t *testing.T, s storage.Storage, rec *Recorder) {
	ctx := context.Background()
	admin := newUser(t, s, "admin")
	joiner := newUser(t, s, "joiner")

	group, err := s.CreateGroup(ctx, models.NewGroup{Name: "Hikers", CreatedBy: admin.ID})
	if err != nil {
		t.Fatalf("CreateGroup() error = %v", err)
	}

	member, err := s.AddGroupMember(ctx, models.NewGroupMember{GroupID: group.ID, UserID: joiner.ID})
	if err != nil {
		t.Fatalf("AddGroupMember() error = %v", err)
	}
	if member.Role != models.GroupRoleMember {
		t.Fatalf("default role = %s, want member", member.Role)
	}
	if published := rec.For(joiner.ID); len(published) != 1 || published[0].Type != models.NotificationTypeGroupAdded {
		t.Fatalf("published to joiner = %+v, want one group_added", published)
	}

	_, err = s.AddGroupMember(ctx, models.NewGroupMember{GroupID: group.ID, UserID: joiner.ID})
	wantErr(t, "AddGroupMember(duplicate)", err, storage.ErrConflict)
	_, err = s.AddGroupMember(ctx, models.NewGroupMember{GroupID: group.ID, UserID: joiner.ID, Role: "owner"})
	wantErr(t, "AddGroupMember(bad role)", err, storage.ErrInvalid)

	members, err := s.ListGroupMembers(ctx, group.ID)
	if err != nil || len(members) != 2 {
		t.Fatalf("ListGroupMembers() = %+v, %v", members, err)
	}

	_, err = s.UpdateGroupMemberRole(ctx, group.ID, admin.ID, models.GroupRoleMember)
	wantErr(t, "demote last admin", err, storage.ErrConflict)
	wantErr(t, "remove last admin", s.RemoveGroupMember(ctx, group.ID, admin.ID), storage.ErrConflict)

	promoted, err := s.UpdateGroupMemberRole(ctx, group.ID, joiner.ID, models.GroupRoleAdmin)
	if err != nil || promoted.Role != models.GroupRoleAdmin {
		t.Fatalf("UpdateGroupMemberRole() = %+v, %v", promoted, err)
	}
	if err := s.RemoveGroupMember(ctx, group.ID, admin.ID); err != nil {
		t.Fatalf("RemoveGroupMember() error = %v", err)
	}
	wantErr(t, "RemoveGroupMember(again)", s.RemoveGroupMember(ctx, group.ID, admin.ID), storage.ErrNotFound)
}

func testGroupMemories(t *testing.T, s storage.Storage, _ *Recorder) {
	ctx := context.Background()
	admin := newUser(t, s, "admin")
	member := newUser(t, s, "member")
	outsider := newUser(t, s, "outsider")

	group, err := s.CreateGroup(ctx, models.NewGroup{Name: "Trip", CreatedBy: admin.ID})
	if err != nil {
		t.Fatalf("CreateGroup() error = %v", err)
	}
	if _, err := s.AddGroupMember(ctx, models.NewGroupMember{GroupID: group.ID, UserID: member.ID}); err != nil {
		t.Fatalf("AddGroupMember() error = %v", err)
	}

	adminPublic := newMemory(t, s, admin, "admin-public", day(2), false)
	memberPublic := newMemory(t, s, member, "member-public", day(9), false)
	newMemory(t, s, member, "member-private", day(10), true)
	newMemory(t, s, outsider, "outsider-public", day(11), false)

	got, err := s.GroupMemories(ctx, group.ID)
	if err != nil {
		t.Fatalf("GroupMemories() error = %v", err)
	}
	want := []int64{memberPublic.ID, adminPublic.ID}
	if !equalIDs(memoryIDs(got), want) {
		t.Fatalf("GroupMemories() = %v, want %v", memoryIDs(got), want)
	}

	_, err = s.GroupMemories(ctx, group.ID+1000)
	wantErr(t, "GroupMemories(missing)", err, storage.ErrNotFound)
}

func testNotifications(t *testing.T, s storage.Storage, _ *Recorder) {
	ctx := context.Background()
	alice := newUser(t, s, "alice")
	bob := newUser(t, s, "bob")
	carol := newUser(t, s, "carol")

	for _, sender := range []*models.User{alice, carol} {
		if _, err := s.CreateFriendRequest(ctx, sender.ID, bob.ID); err != nil {
			t.Fatalf("CreateFriendRequest() error = %v", err)
		}
	}

	notifications, err := s.ListNotifications(ctx, bob.ID)
	if err != nil || len(notifications) != 2 {
		t.Fatalf("ListNotifications() = %+v, %v", notifications, err)
	}
	if notifications[0].ID < notifications[1].ID {
		t.Fatalf("ListNotifications() not newest first: %d, %d", notifications[0].ID, notifications[1].ID)
	}

	read, err := s.MarkNotificationRead(ctx, notifications[0].ID)
	if err != nil || !read.IsRead {
		t.Fatalf("MarkNotificationRead() = %+v, %v", read, err)
	}
	if n, _ := s.CountUnreadNotifications(ctx, bob.ID); n != 1 {
		t.Fatalf("unread = %d, want 1", n)
	}

	if err := s.MarkAllNotificationsRead(ctx, bob.ID); err != nil {
		t.Fatalf("MarkAllNotificationsRead() error = %v", err)
	}
	if n, _ := s.CountUnreadNotifications(ctx, bob.ID); n != 0 {
		t.Fatalf("unread after read-all = %d, want 0", n)
	}

	if err := s.DeleteNotification(ctx, notifications[1].ID); err != nil {
		t.Fatalf("DeleteNotification() error = %v", err)
	}
	_, err = s.GetNotification(ctx, notifications[1].ID)
	wantErr(t, "GetNotification(deleted)", err, storage.ErrNotFound)
}

func testMissingIDs(t *testing.T, s storage.Storage, _ *Recorder) {
	ctx := context.Background()
	const missing = int64(424242)

	checks := []struct {
		name string
		err  error
	}{
		{"GetUser", func() error { _, err := s.GetUser(ctx, missing); return err }()},
		{"UpdateUser", func() error { _, err := s.UpdateUser(ctx, missing, models.UserPatch{}); return err }()},
		{"UpdateMemory", func() error { _, err := s.UpdateMemory(ctx, missing, models.MemoryPatch{}); return err }()},
		{"UpdateGroup", func() error { _, err := s.UpdateGroup(ctx, missing, models.GroupPatch{}); return err }()},
		{"UpdateComment", func() error { _, err := s.UpdateComment(ctx, missing, models.CommentPatch{}); return err }()},
		{"DeleteGroup", s.DeleteGroup(ctx, missing)},
		{"DeleteComment", s.DeleteComment(ctx, missing)},
		{"DeleteNotification", s.DeleteNotification(ctx, missing)},
		{"RejectFriendRequest", func() error { _, err := s.RejectFriendRequest(ctx, missing); return err }()},
		{"MarkNotificationRead", func() error { _, err := s.MarkNotificationRead(ctx, missing); return err }()},
		{"ListComments", func() error { _, err := s.ListComments(ctx, missing); return err }()},
		{"ListGroupMembers", func() error { _, err := s.ListGroupMembers(ctx, missing); return err }()},
		{"FriendshipBetween", func() error { _, err := s.FriendshipBetween(ctx, missing, missing+1); return err }()},
	}

	for _, check := range checks {
		wantErr(t, check.name, check.err, storage.ErrNotFound)
	}
}
