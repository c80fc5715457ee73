package services

import (
	"context"
	"fmt"

	"github.com/adilzhan-b/lingualink/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationService fans a name-change event out to the changed user's
// friends and serves the notification feed. Notifications are append-only;
// nothing is emitted for friend-request events.
type NotificationService struct {
	repo  NotificationStore
	users UserStore
}

func NewNotificationService(repo NotificationStore, users UserStore) *NotificationService {
	return &NotificationService{
		repo:  repo,
		users: users,
	}
}

// NotifyNameChange creates one notification per friend the user had at the
// moment of the change. The whole batch goes in as one bulk insert; a failure
// is reported as one aggregate error and delivery stays best-effort.
func (s *NotificationService) NotifyNameChange(ctx context.Context, user *models.User, oldName, newName string) error {
	if len(user.Friends) == 0 {
		return nil
	}

	message := fmt.Sprintf("%s has changed their name to %s", oldName, newName)
	notifs := make([]models.Notification, 0, len(user.Friends))
	for _, friendID := range user.Friends {
		notifs = append(notifs, models.Notification{
			SenderID:    user.ID,
			RecipientID: friendID,
			Message:     message,
		})
	}

	if err := s.repo.InsertMany(ctx, notifs); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"userID": user.ID.Hex(),
		"count":  len(notifs),
	}).Info("Name change notifications sent")
	return nil
}

// GetUserNotifications returns the user's notifications newest first, each
// annotated with the sender's display name and avatar.
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.NotificationView, error) {
	notifs, err := s.repo.GetByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}

	senderIDs := make([]primitive.ObjectID, 0, len(notifs))
	seen := make(map[primitive.ObjectID]bool, len(notifs))
	for _, n := range notifs {
		if !seen[n.SenderID] {
			seen[n.SenderID] = true
			senderIDs = append(senderIDs, n.SenderID)
		}
	}

	senders, err := s.users.GetUsersByIDs(ctx, senderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load notification senders: %v", err)
	}
	byID := make(map[primitive.ObjectID]models.User, len(senders))
	for i := range senders {
		byID[senders[i].ID] = senders[i]
	}

	views := make([]models.NotificationView, 0, len(notifs))
	for _, n := range notifs {
		sender := byID[n.SenderID]
		views = append(views, models.NotificationView{
			Notification: n,
			SenderName:   sender.FullName,
			SenderPic:    sender.ProfilePic,
		})
	}
	return views, nil
}
