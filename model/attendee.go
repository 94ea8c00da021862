package model

import "go.mongodb.org/mongo-driver/bson/primitive"

type NotificationPreferences struct {
	Email bool `json:"email" bson:"email"`
	Sms   bool `json:"sms" bson:"sms"`
	Push  bool `json:"push" bson:"push"`
}

type Attendee struct {
	Id                 primitive.ObjectID      `json:"_id" bson:"_id"`
	UserId             primitive.ObjectID      `json:"user_id" bson:"user_id"`
	Name               string                  `json:"name" bson:"name"`
	Email              string                  `json:"email" bson:"email"`
	Phone              string                  `json:"phone" bson:"phone"`
	ExposRegistered    []primitive.ObjectID    `json:"expos_registered" bson:"expos_registered"`
	SessionsRegistered []primitive.ObjectID    `json:"sessions_registered" bson:"sessions_registered"`
	BookmarkedSessions []primitive.ObjectID    `json:"bookmarked_sessions" bson:"bookmarked_sessions"`
	Preferences        NotificationPreferences `json:"notification_preferences" bson:"notification_preferences"`
}
