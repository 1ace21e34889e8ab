package models

import (
	"fmt"
	"time"
)

type NotificationType string

const (
	NotificationTypeFriendRequest  NotificationType = "friend_request"
	NotificationTypeFriendAccepted NotificationType = "friend_accepted"
	NotificationTypeComment        NotificationType = "comment"
	NotificationTypeGroupAdded     NotificationType = "group_added"
)

type Notification struct {
	ID        int64            `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64            `json:"userId" gorm:"not null;index"` // addressee
	Type      NotificationType `json:"type" gorm:"not null;size:30"`
	Content   string           `json:"content" gorm:"not null;size:500"`
	RelatedID *int64           `json:"relatedId"`
	IsRead    bool             `json:"isRead" gorm:"not null;index"`
	CreatedAt time.Time        `json:"createdAt" gorm:"index"`
}

func FriendRequestNotification(to int64, from *User, requestID int64) Notification {
	return Notification{
		UserID:    to,
		Type:      NotificationTypeFriendRequest,
		Content:   fmt.Sprintf("%s sent you a friend request", from.DisplayName),
		RelatedID: &requestID,
	}
}

func FriendAcceptedNotification(to int64, by *User, requestID int64) Notification {
	return Notification{
		UserID:    to,
		Type:      NotificationTypeFriendAccepted,
		Content:   fmt.Sprintf("%s accepted your friend request", by.DisplayName),
		RelatedID: &requestID,
	}
}

func CommentNotification(to int64, by *User, memory *Memory) Notification {
	memoryID := memory.ID
	return Notification{
		UserID:    to,
		Type:      NotificationTypeComment,
		Content:   fmt.Sprintf("%s commented on your memory \"%s\"", by.DisplayName, memory.Title),
		RelatedID: &memoryID,
	}
}

func GroupAddedNotification(to int64, group *Group) Notification {
	groupID := group.ID
	return Notification{
		UserID:    to,
		Type:      NotificationTypeGroupAdded,
		Content:   fmt.Sprintf("You were added to the group \"%s\"", group.Name),
		RelatedID: &groupID,
	}
}
