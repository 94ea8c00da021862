package model

import "go.mongodb.org/mongo-driver/bson/primitive"

type Session struct {
	Id              primitive.ObjectID `json:"_id" bson:"_id"`
	ExpoId          primitive.ObjectID `json:"expo_id" bson:"expo_id"`
	SessionName     string             `json:"session_name" bson:"session_name"`
	Description     string             `json:"description" bson:"description"`
	Day             uint               `json:"day" bson:"day"`
	StartTime       string             `json:"start_time" bson:"start_time"`
	EndTime         string             `json:"end_time" bson:"end_time"`
	Floor           string             `json:"floor" bson:"floor"`
	Capacity        uint               `json:"capacity" bson:"capacity"`
	RegisteredCount uint               `json:"registered_count" bson:"registered_count"`
}
