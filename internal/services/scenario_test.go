package services

import (
	"context"
	"testing"

	"github.com/adilzhan-b/lingualink/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full flow: request, accept, rename, notification.
func TestFriendshipLifecycle(t *testing.T) {
	ctx := context.Background()

	users := newFakeUserStore()
	requests := newFakeFriendRequestStore()
	notifs := newFakeNotificationStore()

	notificationService := NewNotificationService(notifs, users)
	userService := NewUserService(users, notificationService)
	friendService := NewFriendService(requests, users)

	ana := users.addUser(&models.User{FullName: "Ana", IsOnboarded: true})
	ben := users.addUser(&models.User{FullName: "Ben", IsOnboarded: true})

	// Ben shows up in Ana's recommendations until they are friends.
	recommended, err := userService.GetRecommendedUsers(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, recommended, 1)
	assert.Equal(t, ben.ID, recommended[0].ID)

	req, err := friendService.SendFriendRequest(ctx, ana.ID, ben.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, req.Status)

	require.NoError(t, friendService.AcceptFriendRequest(ctx, ben.ID, req.ID))
	assert.True(t, users.users[ana.ID].HasFriend(ben.ID))
	assert.True(t, users.users[ben.ID].HasFriend(ana.ID))

	recommended, err = userService.GetRecommendedUsers(ctx, ana.ID)
	require.NoError(t, err)
	assert.Empty(t, recommended, "friends drop out of recommendations")

	// Renaming Ana notifies Ben exactly once.
	upd := models.ProfileUpdate{
		FullName:         "Anya",
		Bio:              "hola",
		NativeLanguage:   "spanish",
		LearningLanguage: "japanese",
		Location:         "Madrid",
	}
	_, err = userService.UpdateProfile(ctx, ana.ID, upd)
	require.NoError(t, err)

	views, err := notificationService.GetUserNotifications(ctx, ben.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Contains(t, views[0].Message, "Ana")
	assert.Contains(t, views[0].Message, "Anya")
	assert.Equal(t, "Anya", views[0].SenderName)
}
