package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"expo-webapp/model"
)

func (m *Mongo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.UserData, error) {
	var user model.UserData
	err := m.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (m *Mongo) GetUserByLogin(ctx context.Context, login string) (*model.UserData, error) {
	var user model.UserData
	err := m.users.FindOne(ctx, bson.M{"login": login}).Decode(&user)
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}
