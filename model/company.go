package model

import "go.mongodb.org/mongo-driver/bson/primitive"

type Company struct {
	Id           primitive.ObjectID `json:"_id" bson:"_id"`
	UserId       primitive.ObjectID `json:"user_id" bson:"user_id"`
	CompanyName  string             `json:"company_name" bson:"company_name"`
	Description  string             `json:"description" bson:"description"`
	ContactEmail string             `json:"contact_email" bson:"contact_email"`
	ContactPhone string             `json:"contact_phone" bson:"contact_phone"`
	DocumentRef  string             `json:"document_ref" bson:"document_ref"`
}
