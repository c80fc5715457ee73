package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is an append-only record telling a user that one of their
// friends changed their display name.
type Notification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID    primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	RecipientID primitive.ObjectID `bson:"recipient_id" json:"recipient_id"`
	Message     string             `bson:"message" json:"message"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// NotificationView is a notification annotated with the sender's display
// name and avatar for rendering.
type NotificationView struct {
	Notification
	SenderName string `json:"sender_name"`
	SenderPic  string `json:"sender_pic"`
}
