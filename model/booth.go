package model

import "go.mongodb.org/mongo-driver/bson/primitive"

type Booth struct {
	Id          primitive.ObjectID `json:"_id" bson:"_id"`
	BoothNumber string             `json:"booth_number" bson:"booth_number"`
	ExpoId      primitive.ObjectID `json:"expo_id" bson:"expo_id"`
	Floor       string             `json:"floor" bson:"floor"`
	IsBooked    bool               `json:"is_booked" bson:"is_booked"`
	AssignedTo  string             `json:"assigned_to" bson:"assigned_to"`
}
