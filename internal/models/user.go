package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered member of the language exchange platform.
type User struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	FullName         string               `bson:"full_name" json:"full_name"`
	Email            string               `bson:"email" json:"email"`
	HashedPassword   string               `bson:"hashed_password" json:"-"`
	Bio              string               `bson:"bio" json:"bio"`
	ProfilePic       string               `bson:"profile_pic" json:"profile_pic"`
	NativeLanguage   string               `bson:"native_language" json:"native_language"`
	LearningLanguage string               `bson:"learning_language" json:"learning_language"`
	Location         string               `bson:"location" json:"location"`
	IsOnboarded      bool                 `bson:"is_onboarded" json:"is_onboarded"`
	Friends          []primitive.ObjectID `bson:"friends,omitempty" json:"friends,omitempty"`
	CreatedAt        time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time            `bson:"updated_at" json:"updated_at"`
}

// FriendInfo is the subset of profile fields shown on friend cards and
// attached to friend requests.
type FriendInfo struct {
	ID               primitive.ObjectID `json:"id"`
	FullName         string             `json:"full_name"`
	ProfilePic       string             `json:"profile_pic"`
	NativeLanguage   string             `json:"native_language"`
	LearningLanguage string             `json:"learning_language"`
}

// ToFriendInfo projects the user onto its friend-card fields.
func (u *User) ToFriendInfo() FriendInfo {
	return FriendInfo{
		ID:               u.ID,
		FullName:         u.FullName,
		ProfilePic:       u.ProfilePic,
		NativeLanguage:   u.NativeLanguage,
		LearningLanguage: u.LearningLanguage,
	}
}

// HasFriend reports whether id is already in the user's friend set.
func (u *User) HasFriend(id primitive.ObjectID) bool {
	for _, f := range u.Friends {
		if f == id {
			return true
		}
	}
	return false
}

// ProfileUpdate carries the payload of a profile update. Every field except
// ProfilePic is required.
type ProfileUpdate struct {
	FullName         string `json:"full_name"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"native_language"`
	LearningLanguage string `json:"learning_language"`
	Location         string `json:"location"`
	ProfilePic       string `json:"profile_pic,omitempty"`
}

// MissingFields returns the names of required fields left empty, in a fixed
// order so clients can render them directly.
func (p *ProfileUpdate) MissingFields() []string {
	var missing []string
	if p.FullName == "" {
		missing = append(missing, "full_name")
	}
	if p.Bio == "" {
		missing = append(missing, "bio")
	}
	if p.NativeLanguage == "" {
		missing = append(missing, "native_language")
	}
	if p.LearningLanguage == "" {
		missing = append(missing, "learning_language")
	}
	if p.Location == "" {
		missing = append(missing, "location")
	}
	return missing
}
