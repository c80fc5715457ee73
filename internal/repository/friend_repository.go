package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adilzhan-b/lingualink/internal/models"
	"github.com/adilzhan-b/lingualink/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FriendRepository handles database operations on friend requests.
type FriendRepository struct {
	collection *mongo.Collection
}

func NewFriendRepository(db *mongo.Database) *FriendRepository {
	return &FriendRepository{
		collection: db.Collection("friend_requests"),
	}
}

// CreateRequest inserts a new pending friend request. The unique index on
// pair_key rejects a second request for the same pair in either direction;
// that violation surfaces as ErrDuplicateRequest.
func (r *FriendRepository) CreateRequest(ctx context.Context, req *models.FriendRequest) (*models.FriendRequest, error) {
	req.Status = models.StatusPending
	req.PairKey = models.FriendPairKey(req.SenderID, req.RecipientID)
	req.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.ErrDuplicateRequest
		}
		return nil, fmt.Errorf("failed to create friend request: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	req.ID = insertedID

	return req, nil
}

// GetRequestByID retrieves a single friend request.
func (r *FriendRepository) GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find friend request: %v", err)
	}
	return &request, nil
}

// FindByPair returns the request between two users in either direction, or
// nil when none exists.
func (r *FriendRepository) FindByPair(ctx context.Context, a, b primitive.ObjectID) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.collection.FindOne(ctx, bson.M{"pair_key": models.FriendPairKey(a, b)}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up friend request pair: %v", err)
	}
	return &request, nil
}

// AcceptRequest flips the request status to accepted. The $set is idempotent,
// so repeating it on an already-accepted request is a no-op.
func (r *FriendRepository) AcceptRequest(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": models.StatusAccepted}},
	)
	if err != nil {
		return fmt.Errorf("failed to accept friend request: %v", err)
	}
	return nil
}

// GetPendingByRecipient returns requests awaiting the user's answer.
func (r *FriendRepository) GetPendingByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.FriendRequest, error) {
	return r.find(ctx, bson.M{"recipient_id": recipientID, "status": models.StatusPending})
}

// GetPendingBySender returns requests the user sent that are still unanswered.
func (r *FriendRepository) GetPendingBySender(ctx context.Context, senderID primitive.ObjectID) ([]models.FriendRequest, error) {
	return r.find(ctx, bson.M{"sender_id": senderID, "status": models.StatusPending})
}

// GetAcceptedBySender returns requests the user sent that became friendships.
func (r *FriendRepository) GetAcceptedBySender(ctx context.Context, senderID primitive.ObjectID) ([]models.FriendRequest, error) {
	return r.find(ctx, bson.M{"sender_id": senderID, "status": models.StatusAccepted})
}

// GetAllAccepted returns every accepted request. Used by the reconciliation
// job to recompute friend lists.
func (r *FriendRepository) GetAllAccepted(ctx context.Context) ([]models.FriendRequest, error) {
	return r.find(ctx, bson.M{"status": models.StatusAccepted})
}

func (r *FriendRepository) find(ctx context.Context, filter bson.M) ([]models.FriendRequest, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find friend requests: %v", err)
	}
	defer cursor.Close(ctx)

	var requests []models.FriendRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode friend requests: %v", err)
	}
	return requests, nil
}
