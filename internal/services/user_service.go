package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/adilzhan-b/lingualink/internal/models"
	"github.com/adilzhan-b/lingualink/pkg/apperrors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// NameChangeNotifier receives the fanout trigger when a profile update
// changes the display name.
type NameChangeNotifier interface {
	NotifyNameChange(ctx context.Context, user *models.User, oldName, newName string) error
}

// UserService encapsulates profile, recommendation and friend-list logic.
type UserService struct {
	repo     UserStore
	notifier NameChangeNotifier
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo UserStore, notifier NameChangeNotifier) *UserService {
	return &UserService{
		repo:     repo,
		notifier: notifier,
	}
}

// RegisterUser creates a new account with a hashed password.
func (s *UserService) RegisterUser(ctx context.Context, fullName, email, password string) (*models.User, error) {
	var missing []string
	if fullName == "" {
		missing = append(missing, "full_name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, &apperrors.ValidationError{MissingFields: missing}
	}

	if !emailRegex.MatchString(email) {
		return nil, fmt.Errorf("invalid email format")
	}

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email already in use")
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		FullName:       fullName,
		Email:          email,
		HashedPassword: string(hashedPwd),
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %v", err)
	}

	logrus.WithField("userID", created.ID.Hex()).Info("User registered")
	return created, nil
}

// AuthenticateUser verifies the email and password and returns the user.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	return user, nil
}

// OnboardUser completes registration with the full profile and makes the user
// visible in recommendations.
func (s *UserService) OnboardUser(ctx context.Context, userID primitive.ObjectID, upd models.ProfileUpdate) (*models.User, error) {
	user, err := s.applyProfile(ctx, userID, upd, map[string]interface{}{"is_onboarded": true})
	if err != nil {
		return nil, err
	}
	user.IsOnboarded = true
	return user, nil
}

// UpdateProfile validates and persists a profile update. When the display
// name changes and the user has friends, every current friend gets a
// notification carrying the old and new name. The old name and the friend set
// are captured from the stored record before it is overwritten; the fanout
// runs only after the update is persisted.
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, upd models.ProfileUpdate) (*models.User, error) {
	return s.applyProfile(ctx, userID, upd, nil)
}

func (s *UserService) applyProfile(ctx context.Context, userID primitive.ObjectID, upd models.ProfileUpdate, extra map[string]interface{}) (*models.User, error) {
	if missing := upd.MissingFields(); len(missing) > 0 {
		return nil, &apperrors.ValidationError{MissingFields: missing}
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	oldName := user.FullName
	nameChanged := upd.FullName != oldName

	fields := map[string]interface{}{
		"full_name":         upd.FullName,
		"bio":               upd.Bio,
		"native_language":   upd.NativeLanguage,
		"learning_language": upd.LearningLanguage,
		"location":          upd.Location,
	}
	if upd.ProfilePic != "" {
		fields["profile_pic"] = upd.ProfilePic
	}
	for k, v := range extra {
		fields[k] = v
	}

	if err := s.repo.UpdateProfile(ctx, userID, fields); err != nil {
		return nil, err
	}

	if nameChanged && len(user.Friends) > 0 {
		if err := s.notifier.NotifyNameChange(ctx, user, oldName, upd.FullName); err != nil {
			return nil, err
		}
	}

	user.FullName = upd.FullName
	user.Bio = upd.Bio
	user.NativeLanguage = upd.NativeLanguage
	user.LearningLanguage = upd.LearningLanguage
	user.Location = upd.Location
	if upd.ProfilePic != "" {
		user.ProfilePic = upd.ProfilePic
	}

	logrus.WithField("userID", userID.Hex()).Info("Profile updated")
	return user, nil
}

// GetRecommendedUsers returns onboarded users who are neither the requester
// nor already their friends. Order is store-native; no pagination.
func (s *UserService) GetRecommendedUsers(ctx context.Context, userID primitive.ObjectID) ([]models.User, error) {
	friendIDs, err := s.repo.GetFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.repo.FindRecommended(ctx, userID, friendIDs)
}

// GetFriends returns the user's friends as friend-card projections.
func (s *UserService) GetFriends(ctx context.Context, userID primitive.ObjectID) ([]models.FriendInfo, error) {
	friendIDs, err := s.repo.GetFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(friendIDs) == 0 {
		return []models.FriendInfo{}, nil
	}

	users, err := s.repo.GetUsersByIDs(ctx, friendIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load friends: %v", err)
	}

	friends := make([]models.FriendInfo, 0, len(users))
	for i := range users {
		friends = append(friends, users[i].ToFriendInfo())
	}
	return friends, nil
}
