package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Friend request statuses. The status set leaves room for additional terminal
// states ("declined", "withdrawn") but no transition to them exists yet.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
)

type FriendRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID    primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	RecipientID primitive.ObjectID `bson:"recipient_id" json:"recipient_id"`
	Status      string             `bson:"status" json:"status"`
	PairKey     string             `bson:"pair_key" json:"-"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// FriendPairKey returns the canonical key for the unordered pair {a, b}.
// A unique index on this key guarantees at most one request per pair
// regardless of direction.
func FriendPairKey(a, b primitive.ObjectID) string {
	ah, bh := a.Hex(), b.Hex()
	if bh < ah {
		ah, bh = bh, ah
	}
	return ah + ":" + bh
}

// IncomingFriendRequest is a pending request annotated with the sender's
// public profile fields.
type IncomingFriendRequest struct {
	FriendRequest
	Sender FriendInfo `json:"sender"`
}

// OutgoingFriendRequest is a request the user sent, annotated with the
// recipient's public profile fields.
type OutgoingFriendRequest struct {
	FriendRequest
	Recipient FriendInfo `json:"recipient"`
}

// FriendRequestsOverview is the combined listing a user sees on their
// requests page: requests awaiting their answer, and requests they sent that
// became friendships.
type FriendRequestsOverview struct {
	Incoming         []IncomingFriendRequest `json:"incoming"`
	AcceptedOutgoing []OutgoingFriendRequest `json:"accepted_outgoing"`
}
