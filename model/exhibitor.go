package model

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// Exhibitor is a company's request to occupy a booth at an expo.
type Exhibitor struct {
	Id                 primitive.ObjectID `json:"_id" bson:"_id"`
	UserId             primitive.ObjectID `json:"user_id" bson:"user_id"`
	ExpoId             primitive.ObjectID `json:"expo_id" bson:"expo_id"`
	BoothId            primitive.ObjectID `json:"booth_id" bson:"booth_id"`
	CompanyId          primitive.ObjectID `json:"company_id" bson:"company_id"`
	ProductName        string             `json:"product_name" bson:"product_name"`
	ProductDescription string             `json:"product_description" bson:"product_description"`
	Status             string             `json:"status" bson:"status"`
}
