package model

import "go.mongodb.org/mongo-driver/bson/primitive"

type Expo struct {
	Id               primitive.ObjectID   `json:"_id" bson:"_id"`
	ExpoName         string               `json:"expo_name" bson:"expo_name"`
	Description      string               `json:"description" bson:"description"`
	StartDate        string               `json:"start_date" bson:"start_date"`
	EndDate          string               `json:"end_date" bson:"end_date"`
	Venue            string               `json:"venue" bson:"venue"`
	OrganizerContact string               `json:"organizer_contact" bson:"organizer_contact"`
	TotalBooths      uint                 `json:"total_booths" bson:"total_booths"`
	Booths           []primitive.ObjectID `json:"booths" bson:"booths"`
}
