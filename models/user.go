package models

import "time"

type User struct {
	UserID    string    `json:"userid" bson:"userid"`
	Email     string    `json:"email" bson:"email"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty" bson:"avatarurl,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdat"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedat"`

	Itineraries []Itinerary `json:"itineraries,omitempty" bson:"-"`
}

// UserPublic is the profile shape embedded in itinerary responses.
type UserPublic struct {
	UserID string `json:"userid" bson:"userid"`
	Email  string `json:"email" bson:"email"`
	Name   string `json:"name,omitempty" bson:"name,omitempty"`
}
