package services

import (
	"context"
	"testing"

	"github.com/adilzhan-b/lingualink/internal/models"
	"github.com/adilzhan-b/lingualink/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newUserFixture() (*UserService, *fakeUserStore, *fakeNotificationStore) {
	users := newFakeUserStore()
	notifs := newFakeNotificationStore()
	notifier := NewNotificationService(notifs, users)
	return NewUserService(users, notifier), users, notifs
}

func fullProfile(name string) models.ProfileUpdate {
	return models.ProfileUpdate{
		FullName:         name,
		Bio:              "Learning languages",
		NativeLanguage:   "spanish",
		LearningLanguage: "japanese",
		Location:         "Madrid",
	}
}

func TestUpdateProfile_MissingFields(t *testing.T) {
	svc, users, _ := newUserFixture()
	ana := users.addUser(&models.User{FullName: "Ana"})

	_, err := svc.UpdateProfile(context.Background(), ana.ID, models.ProfileUpdate{
		FullName: "Ana",
		Location: "Madrid",
	})

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"bio", "native_language", "learning_language"}, verr.MissingFields)
}

func TestUpdateProfile_AvatarOptional(t *testing.T) {
	svc, users, _ := newUserFixture()
	ana := users.addUser(&models.User{FullName: "Ana", ProfilePic: "old.png"})

	updated, err := svc.UpdateProfile(context.Background(), ana.ID, fullProfile("Ana"))

	require.NoError(t, err)
	assert.Equal(t, "old.png", updated.ProfilePic, "empty avatar must not overwrite the stored one")
}

func TestUpdateProfile_NotFound(t *testing.T) {
	svc, _, _ := newUserFixture()

	_, err := svc.UpdateProfile(context.Background(), primitive.NewObjectID(), fullProfile("Ana"))

	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateProfile_NameChangeFansOutToAllFriends(t *testing.T) {
	svc, users, notifs := newUserFixture()
	ana := users.addUser(&models.User{FullName: "Ana"})
	friends := make([]primitive.ObjectID, 0, 3)
	for _, name := range []string{"Ben", "Cleo", "Dan"} {
		friend := users.addUser(&models.User{FullName: name})
		friends = append(friends, friend.ID)
		require.NoError(t, users.AddFriend(context.Background(), ana.ID, friend.ID))
	}

	_, err := svc.UpdateProfile(context.Background(), ana.ID, fullProfile("Anya"))
	require.NoError(t, err)

	require.Len(t, notifs.notifications, 3, "one notification per friend")
	seen := make(map[primitive.ObjectID]bool)
	for _, n := range notifs.notifications {
		assert.Equal(t, ana.ID, n.SenderID)
		assert.Contains(t, friends, n.RecipientID)
		assert.Contains(t, n.Message, "Ana")
		assert.Contains(t, n.Message, "Anya")
		assert.False(t, seen[n.RecipientID], "no friend notified twice")
		seen[n.RecipientID] = true
	}
}

func TestUpdateProfile_UnchangedNameNoFanout(t *testing.T) {
	svc, users, notifs := newUserFixture()
	ana := users.addUser(&models.User{FullName: "Ana"})
	ben := users.addUser(&models.User{FullName: "Ben"})
	require.NoError(t, users.AddFriend(context.Background(), ana.ID, ben.ID))

	_, err := svc.UpdateProfile(context.Background(), ana.ID, fullProfile("Ana"))

	require.NoError(t, err)
	assert.Empty(t, notifs.notifications)
}

func TestUpdateProfile_NoFriendsNoFanout(t *testing.T) {
	svc, users, notifs := newUserFixture()
	ana := users.addUser(&models.User{FullName: "Ana"})

	_, err := svc.UpdateProfile(context.Background(), ana.ID, fullProfile("Anya"))

	require.NoError(t, err)
	assert.Empty(t, notifs.notifications)
}

func TestUpdateProfile_PersistsFields(t *testing.T) {
	svc, users, _ := newUserFixture()
	ana := users.addUser(&models.User{FullName: "Ana"})

	upd := fullProfile("Anya")
	upd.ProfilePic = "new.png"
	updated, err := svc.UpdateProfile(context.Background(), ana.ID, upd)
	require.NoError(t, err)

	assert.Equal(t, "Anya", updated.FullName)
	assert.Equal(t, "new.png", updated.ProfilePic)

	stored := users.users[ana.ID]
	assert.Equal(t, "Anya", stored.FullName)
	assert.Equal(t, "japanese", stored.LearningLanguage)
	assert.Equal(t, "Madrid", stored.Location)
}

func TestGetRecommendedUsers_Exclusions(t *testing.T) {
	svc, users, _ := newUserFixture()
	ana := users.addUser(&models.User{FullName: "Ana", IsOnboarded: true})
	friend := users.addUser(&models.User{FullName: "Ben", IsOnboarded: true})
	stranger := users.addUser(&models.User{FullName: "Cleo", IsOnboarded: true})
	users.addUser(&models.User{FullName: "Dan", IsOnboarded: false})
	require.NoError(t, users.AddFriend(context.Background(), ana.ID, friend.ID))

	recommended, err := svc.GetRecommendedUsers(context.Background(), ana.ID)
	require.NoError(t, err)

	require.Len(t, recommended, 1)
	assert.Equal(t, stranger.ID, recommended[0].ID, "only onboarded non-friends are recommended")
}

func TestOnboardUser_SetsFlag(t *testing.T) {
	svc, users, _ := newUserFixture()
	ana := users.addUser(&models.User{FullName: "Ana"})

	updated, err := svc.OnboardUser(context.Background(), ana.ID, fullProfile("Ana"))

	require.NoError(t, err)
	assert.True(t, updated.IsOnboarded)
	assert.True(t, users.users[ana.ID].IsOnboarded)
}

func TestGetFriends_ReturnsProjections(t *testing.T) {
	svc, users, _ := newUserFixture()
	ana := users.addUser(&models.User{FullName: "Ana"})
	ben := users.addUser(&models.User{
		FullName:         "Ben",
		ProfilePic:       "ben.png",
		NativeLanguage:   "german",
		LearningLanguage: "spanish",
	})
	require.NoError(t, users.AddFriend(context.Background(), ana.ID, ben.ID))

	friends, err := svc.GetFriends(context.Background(), ana.ID)
	require.NoError(t, err)

	require.Len(t, friends, 1)
	assert.Equal(t, "Ben", friends[0].FullName)
	assert.Equal(t, "ben.png", friends[0].ProfilePic)
	assert.Equal(t, "german", friends[0].NativeLanguage)
}

func TestRegisterUser_MissingFields(t *testing.T) {
	svc, _, _ := newUserFixture()

	_, err := svc.RegisterUser(context.Background(), "", "ana@example.com", "")

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"full_name", "password"}, verr.MissingFields)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _, _ := newUserFixture()

	created, err := svc.RegisterUser(context.Background(), "Ana", "ana@example.com", "secret123")
	require.NoError(t, err)
	assert.False(t, created.IsOnboarded, "new users start unonboarded")

	user, err := svc.AuthenticateUser(context.Background(), "ana@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.AuthenticateUser(context.Background(), "ana@example.com", "wrong")
	require.Error(t, err)
}
