package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"expo-webapp/service"
)

// Mongo implements the service store interfaces on MongoDB. All guarded
// mutations are single UpdateOne calls whose filter carries the guard, so
// the database serializes check and write.
type Mongo struct {
	client *mongo.Client

	users      *mongo.Collection
	attendees  *mongo.Collection
	expos      *mongo.Collection
	booths     *mongo.Collection
	sessions   *mongo.Collection
	exhibitors *mongo.Collection
	companies  *mongo.Collection
}

var _ service.CatalogStore = (*Mongo)(nil)
var _ service.IdentityStore = (*Mongo)(nil)

func Connect(ctx context.Context, connString, dbName string) (*Mongo, error) {
	clientOptions := options.Client().ApplyURI(connString)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to the db: %v", err)
	}

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		return nil, fmt.Errorf("db is not available: %v", err)
	}

	db := client.Database(dbName)
	return &Mongo{
		client:     client,
		users:      db.Collection("users"),
		attendees:  db.Collection("attendees"),
		expos:      db.Collection("expos"),
		booths:     db.Collection("booths"),
		sessions:   db.Collection("sessions"),
		exhibitors: db.Collection("exhibitors"),
		companies:  db.Collection("companies"),
	}, nil
}

// EnsureIndexes creates the unique indexes the registration invariants
// lean on: global booth numbers, one attendee record and one company per
// user, unique logins.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		collection *mongo.Collection
		key        string
	}{
		{m.booths, "booth_number"},
		{m.attendees, "user_id"},
		{m.companies, "user_id"},
		{m.users, "login"},
	}
	for _, idx := range indexes {
		_, err := idx.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: idx.key, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("cannot create index on %v.%v: %v", idx.collection.Name(), idx.key, err)
		}
	}
	return nil
}

func (m *Mongo) Disconnect(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// translateErr maps driver errors onto the sentinels the service layer
// matches against.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if err == mongo.ErrNoDocuments {
		return service.ErrNoDocument
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", service.ErrDuplicate, err)
	}
	return err
}
