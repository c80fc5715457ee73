package services

import (
	"context"
	"errors"
	"testing"

	"github.com/adilzhan-b/lingualink/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserNotifications_NewestFirstWithSenderInfo(t *testing.T) {
	users := newFakeUserStore()
	notifs := newFakeNotificationStore()
	svc := NewNotificationService(notifs, users)

	ana := users.addUser(&models.User{FullName: "Anya", ProfilePic: "ana.png"})
	ben := users.addUser(&models.User{FullName: "Ben"})

	require.NoError(t, notifs.InsertMany(context.Background(), []models.Notification{
		{SenderID: ana.ID, RecipientID: ben.ID, Message: "Ana has changed their name to Anya"},
	}))
	require.NoError(t, notifs.InsertMany(context.Background(), []models.Notification{
		{SenderID: ana.ID, RecipientID: ben.ID, Message: "Anya has changed their name to Anna"},
	}))

	views, err := svc.GetUserNotifications(context.Background(), ben.ID)
	require.NoError(t, err)

	require.Len(t, views, 2)
	assert.Equal(t, "Anya has changed their name to Anna", views[0].Message, "newest first")
	assert.Equal(t, "Anya", views[0].SenderName)
	assert.Equal(t, "ana.png", views[0].SenderPic)
}

func TestNotifyNameChange_BulkFailureIsOneAggregateError(t *testing.T) {
	users := newFakeUserStore()
	notifs := newFakeNotificationStore()
	svc := NewNotificationService(notifs, users)

	ana := users.addUser(&models.User{FullName: "Ana"})
	ben := users.addUser(&models.User{FullName: "Ben"})
	require.NoError(t, users.AddFriend(context.Background(), ana.ID, ben.ID))

	notifs.insertErr = errors.New("write concern failure")

	current, err := users.GetUserByID(context.Background(), ana.ID)
	require.NoError(t, err)

	err = svc.NotifyNameChange(context.Background(), current, "Ana", "Anya")
	require.Error(t, err)
	assert.Empty(t, notifs.notifications)
}

func TestNotifyNameChange_NoFriendsIsNoop(t *testing.T) {
	users := newFakeUserStore()
	notifs := newFakeNotificationStore()
	svc := NewNotificationService(notifs, users)

	ana := users.addUser(&models.User{FullName: "Ana"})

	require.NoError(t, svc.NotifyNameChange(context.Background(), users.users[ana.ID], "Ana", "Anya"))
	assert.Empty(t, notifs.notifications)
}
