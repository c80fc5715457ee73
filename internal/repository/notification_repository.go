package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/adilzhan-b/lingualink/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		collection: db.Collection("notifications"),
	}
}

// InsertMany writes a batch of notifications in one bulk operation. A failure
// is reported as a single aggregate error; delivery is best-effort and the
// batch is not retried per item.
func (r *NotificationRepository) InsertMany(ctx context.Context, notifs []models.Notification) error {
	if len(notifs) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(notifs))
	for i := range notifs {
		notifs[i].CreatedAt = now
		docs = append(docs, notifs[i])
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		logrus.WithError(err).Error("Failed to insert notification batch")
		return fmt.Errorf("failed to insert %d notifications: %v", len(notifs), err)
	}
	return nil
}

// GetByRecipient returns the user's notifications, newest first.
func (r *NotificationRepository) GetByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"recipient_id": recipientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %v", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %v", err)
	}
	return notifications, nil
}
