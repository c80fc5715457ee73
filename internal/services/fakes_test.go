package services

import (
	"context"
	"sort"
	"time"

	"github.com/adilzhan-b/lingualink/internal/models"
	"github.com/adilzhan-b/lingualink/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory store fakes mirroring the repository semantics: idempotent
// $addToSet, unique pair key, newest-first notification reads.

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserStore) addUser(user *models.User) *models.User {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return f.addUser(user), nil
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *user
	copied.Friends = append([]primitive.ObjectID(nil), user.Friends...)
	return &copied, nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) error {
	user, ok := f.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "full_name":
			user.FullName = value.(string)
		case "bio":
			user.Bio = value.(string)
		case "profile_pic":
			user.ProfilePic = value.(string)
		case "native_language":
			user.NativeLanguage = value.(string)
		case "learning_language":
			user.LearningLanguage = value.(string)
		case "location":
			user.Location = value.(string)
		case "is_onboarded":
			user.IsOnboarded = value.(bool)
		case "updated_at":
			user.UpdatedAt = value.(time.Time)
		}
	}
	return nil
}

func (f *fakeUserStore) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if !user.HasFriend(friendID) {
		user.Friends = append(user.Friends, friendID)
	}
	return nil
}

func (f *fakeUserStore) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	var users []models.User
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (f *fakeUserStore) GetFriendIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return append([]primitive.ObjectID(nil), user.Friends...), nil
}

func (f *fakeUserStore) FindRecommended(ctx context.Context, userID primitive.ObjectID, friendIDs []primitive.ObjectID) ([]models.User, error) {
	excluded := map[primitive.ObjectID]bool{userID: true}
	for _, id := range friendIDs {
		excluded[id] = true
	}

	var users []models.User
	for _, user := range f.users {
		if !excluded[user.ID] && user.IsOnboarded {
			users = append(users, *user)
		}
	}
	return users, nil
}

type fakeFriendRequestStore struct {
	requests map[primitive.ObjectID]*models.FriendRequest
	byPair   map[string]primitive.ObjectID
}

func newFakeFriendRequestStore() *fakeFriendRequestStore {
	return &fakeFriendRequestStore{
		requests: make(map[primitive.ObjectID]*models.FriendRequest),
		byPair:   make(map[string]primitive.ObjectID),
	}
}

func (f *fakeFriendRequestStore) CreateRequest(ctx context.Context, req *models.FriendRequest) (*models.FriendRequest, error) {
	key := models.FriendPairKey(req.SenderID, req.RecipientID)
	if _, exists := f.byPair[key]; exists {
		return nil, apperrors.ErrDuplicateRequest
	}

	req.ID = primitive.NewObjectID()
	req.Status = models.StatusPending
	req.PairKey = key
	req.CreatedAt = time.Now()

	f.requests[req.ID] = req
	f.byPair[key] = req.ID
	return req, nil
}

func (f *fakeFriendRequestStore) GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (f *fakeFriendRequestStore) FindByPair(ctx context.Context, a, b primitive.ObjectID) (*models.FriendRequest, error) {
	id, ok := f.byPair[models.FriendPairKey(a, b)]
	if !ok {
		return nil, nil
	}
	copied := *f.requests[id]
	return &copied, nil
}

func (f *fakeFriendRequestStore) AcceptRequest(ctx context.Context, id primitive.ObjectID) error {
	req, ok := f.requests[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	req.Status = models.StatusAccepted
	return nil
}

func (f *fakeFriendRequestStore) GetPendingByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.FriendRequest, error) {
	return f.filter(func(r *models.FriendRequest) bool {
		return r.RecipientID == recipientID && r.Status == models.StatusPending
	}), nil
}

func (f *fakeFriendRequestStore) GetPendingBySender(ctx context.Context, senderID primitive.ObjectID) ([]models.FriendRequest, error) {
	return f.filter(func(r *models.FriendRequest) bool {
		return r.SenderID == senderID && r.Status == models.StatusPending
	}), nil
}

func (f *fakeFriendRequestStore) GetAcceptedBySender(ctx context.Context, senderID primitive.ObjectID) ([]models.FriendRequest, error) {
	return f.filter(func(r *models.FriendRequest) bool {
		return r.SenderID == senderID && r.Status == models.StatusAccepted
	}), nil
}

func (f *fakeFriendRequestStore) GetAllAccepted(ctx context.Context) ([]models.FriendRequest, error) {
	return f.filter(func(r *models.FriendRequest) bool {
		return r.Status == models.StatusAccepted
	}), nil
}

func (f *fakeFriendRequestStore) filter(keep func(*models.FriendRequest) bool) []models.FriendRequest {
	var out []models.FriendRequest
	for _, req := range f.requests {
		if keep(req) {
			out = append(out, *req)
		}
	}
	return out
}

type fakeNotificationStore struct {
	notifications []models.Notification
	insertErr     error
	clock         time.Time
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{clock: time.Now()}
}

func (f *fakeNotificationStore) InsertMany(ctx context.Context, notifs []models.Notification) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	for i := range notifs {
		f.clock = f.clock.Add(time.Millisecond)
		notifs[i].ID = primitive.NewObjectID()
		notifs[i].CreatedAt = f.clock
		f.notifications = append(f.notifications, notifs[i])
	}
	return nil
}

func (f *fakeNotificationStore) GetByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
