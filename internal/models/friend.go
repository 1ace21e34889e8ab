package models

import (
	"fmt"
	"time"
)

type FriendStatus string

const (
	FriendStatusPending  FriendStatus = "pending"
	FriendStatusAccepted FriendStatus = "accepted"
	FriendStatusRejected FriendStatus = "rejected"
)

// Friend is a directed request from UserID to FriendID. PairKey is the same
// for both orderings of the pair, so at most one record exists per pair.
type Friend struct {
	ID        int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64        `json:"userId" gorm:"not null;index"`
	FriendID  int64        `json:"friendId" gorm:"not null;index"`
	Status    FriendStatus `json:"status" gorm:"not null;size:20"`
	PairKey   string       `json:"-" gorm:"uniqueIndex;not null;size:64"`
	CreatedAt time.Time    `json:"createdAt"`
}

func PairKey(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// Other returns the id of the party that is not userID.
func (f *Friend) Other(userID int64) int64 {
	if f.UserID == userID {
		return f.FriendID
	}
	return f.UserID
}

func (f *Friend) Involves(userID int64) bool {
	return f.UserID == userID || f.FriendID == userID
}
