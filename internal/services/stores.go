package services

import (
	"context"

	"github.com/adilzhan-b/lingualink/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the persistence contract the services need for users. Each
// operation is individually atomic; no multi-document transactions are used.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) error
	AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	GetFriendIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
	FindRecommended(ctx context.Context, userID primitive.ObjectID, friendIDs []primitive.ObjectID) ([]models.User, error)
}

// FriendRequestStore is the persistence contract for friend requests.
type FriendRequestStore interface {
	CreateRequest(ctx context.Context, req *models.FriendRequest) (*models.FriendRequest, error)
	GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error)
	FindByPair(ctx context.Context, a, b primitive.ObjectID) (*models.FriendRequest, error)
	AcceptRequest(ctx context.Context, id primitive.ObjectID) error
	GetPendingByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.FriendRequest, error)
	GetPendingBySender(ctx context.Context, senderID primitive.ObjectID) ([]models.FriendRequest, error)
	GetAcceptedBySender(ctx context.Context, senderID primitive.ObjectID) ([]models.FriendRequest, error)
	GetAllAccepted(ctx context.Context) ([]models.FriendRequest, error)
}

// NotificationStore is the persistence contract for notifications.
type NotificationStore interface {
	InsertMany(ctx context.Context, notifs []models.Notification) error
	GetByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.Notification, error)
}
