package model

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	RoleOrganizer = "organizer"
	RoleExhibitor = "exhibitor"
	RoleAttendee  = "attendee"
)

type UserData struct {
	Id             primitive.ObjectID `json:"_id" bson:"_id"`
	Login          string             `json:"login" bson:"login,omitempty"`
	Name           string             `json:"name" bson:"name,omitempty"`
	Email          string             `json:"email" bson:"email,omitempty"`
	Phone          string             `json:"phone" bson:"phone,omitempty"`
	HashedPassword string             `json:"password_hash" bson:"password_hash,omitempty"`
	Role           string             `json:"role" bson:"role,omitempty"`
}
