package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"expo-webapp/model"
)

func (m *Mongo) InsertExpo(ctx context.Context, expo *model.Expo) error {
	_, err := m.expos.InsertOne(ctx, expo)
	return translateErr(err)
}

func (m *Mongo) GetExpo(ctx context.Context, id primitive.ObjectID) (*model.Expo, error) {
	var expo model.Expo
	err := m.expos.FindOne(ctx, bson.M{"_id": id}).Decode(&expo)
	if err != nil {
		return nil, translateErr(err)
	}
	return &expo, nil
}

func (m *Mongo) ListExpos(ctx context.Context) ([]model.Expo, error) {
	return m.findExpos(ctx, bson.M{})
}

func (m *Mongo) ListExposByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Expo, error) {
	return m.findExpos(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (m *Mongo) findExpos(ctx context.Context, filter bson.M) ([]model.Expo, error) {
	cur, err := m.expos.Find(ctx, filter)
	if err != nil {
		return nil, translateErr(err)
	}
	expos := []model.Expo{}
	if err := cur.All(ctx, &expos); err != nil {
		return nil, translateErr(err)
	}
	return expos, nil
}

func (m *Mongo) SetExpoBooths(ctx context.Context, expoID primitive.ObjectID, booths []primitive.ObjectID) error {
	_, err := m.expos.UpdateOne(ctx,
		bson.M{"_id": expoID},
		bson.M{"$set": bson.M{"booths": booths}})
	return translateErr(err)
}

func (m *Mongo) DeleteExpo(ctx context.Context, id primitive.ObjectID) error {
	if _, err := m.booths.DeleteMany(ctx, bson.M{"expo_id": id}); err != nil {
		return translateErr(err)
	}
	if _, err := m.sessions.DeleteMany(ctx, bson.M{"expo_id": id}); err != nil {
		return translateErr(err)
	}
	_, err := m.expos.DeleteOne(ctx, bson.M{"_id": id})
	return translateErr(err)
}

func (m *Mongo) InsertBooth(ctx context.Context, booth *model.Booth) error {
	_, err := m.booths.InsertOne(ctx, booth)
	return translateErr(err)
}

func (m *Mongo) GetBooth(ctx context.Context, id primitive.ObjectID) (*model.Booth, error) {
	var booth model.Booth
	err := m.booths.FindOne(ctx, bson.M{"_id": id}).Decode(&booth)
	if err != nil {
		return nil, translateErr(err)
	}
	return &booth, nil
}

func (m *Mongo) ListBoothsByExpo(ctx context.Context, expoID primitive.ObjectID) ([]model.Booth, error) {
	cur, err := m.booths.Find(ctx, bson.M{"expo_id": expoID})
	if err != nil {
		return nil, translateErr(err)
	}
	booths := []model.Booth{}
	if err := cur.All(ctx, &booths); err != nil {
		return nil, translateErr(err)
	}
	return booths, nil
}

func (m *Mongo) SetBoothBooked(ctx context.Context, boothID primitive.ObjectID, booked bool, assignedTo string) error {
	_, err := m.booths.UpdateOne(ctx,
		bson.M{"_id": boothID},
		bson.M{"$set": bson.M{"is_booked": booked, "assigned_to": assignedTo}})
	return translateErr(err)
}

func (m *Mongo) InsertSession(ctx context.Context, session *model.Session) error {
	_, err := m.sessions.InsertOne(ctx, session)
	return translateErr(err)
}

func (m *Mongo) GetSession(ctx context.Context, id primitive.ObjectID) (*model.Session, error) {
	var session model.Session
	err := m.sessions.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		return nil, translateErr(err)
	}
	return &session, nil
}

func (m *Mongo) ListSessionsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Session, error) {
	return m.findSessions(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (m *Mongo) ListSessionsByExpoIDs(ctx context.Context, expoIDs []primitive.ObjectID) ([]model.Session, error) {
	return m.findSessions(ctx, bson.M{"expo_id": bson.M{"$in": expoIDs}})
}

func (m *Mongo) ListSessionsExcludingExpoIDs(ctx context.Context, expoIDs []primitive.ObjectID) ([]model.Session, error) {
	return m.findSessions(ctx, bson.M{"expo_id": bson.M{"$nin": expoIDs}})
}

func (m *Mongo) findSessions(ctx context.Context, filter bson.M) ([]model.Session, error) {
	cur, err := m.sessions.Find(ctx, filter)
	if err != nil {
		return nil, translateErr(err)
	}
	sessions := []model.Session{}
	if err := cur.All(ctx, &sessions); err != nil {
		return nil, translateErr(err)
	}
	return sessions, nil
}

// ReserveSessionSeat bumps the registrant counter only while it is below
// capacity. The comparison runs inside the update filter, so two callers
// racing for the last seat cannot both win.
func (m *Mongo) ReserveSessionSeat(ctx context.Context, sessionID primitive.ObjectID) (bool, error) {
	res, err := m.sessions.UpdateOne(ctx,
		bson.M{
			"_id":   sessionID,
			"$expr": bson.M{"$lt": bson.A{"$registered_count", "$capacity"}},
		},
		bson.M{"$inc": bson.M{"registered_count": 1}})
	if err != nil {
		return false, translateErr(err)
	}
	return res.ModifiedCount == 1, nil
}

func (m *Mongo) ReleaseSessionSeat(ctx context.Context, sessionID primitive.ObjectID) error {
	_, err := m.sessions.UpdateOne(ctx,
		bson.M{"_id": sessionID, "registered_count": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"registered_count": -1}})
	return translateErr(err)
}

func (m *Mongo) GetAttendeeByUser(ctx context.Context, userID primitive.ObjectID) (*model.Attendee, error) {
	var attendee model.Attendee
	err := m.attendees.FindOne(ctx, bson.M{"user_id": userID}).Decode(&attendee)
	if err != nil {
		return nil, translateErr(err)
	}
	return &attendee, nil
}

func (m *Mongo) InsertAttendee(ctx context.Context, attendee *model.Attendee) error {
	_, err := m.attendees.InsertOne(ctx, attendee)
	return translateErr(err)
}

func (m *Mongo) AddExpoRegistration(ctx context.Context, attendeeID, expoID primitive.ObjectID) (bool, error) {
	return m.addToAttendeeSet(ctx, attendeeID, "expos_registered", expoID)
}

func (m *Mongo) AddSessionRegistration(ctx context.Context, attendeeID, sessionID primitive.ObjectID) (bool, error) {
	return m.addToAttendeeSet(ctx, attendeeID, "sessions_registered", sessionID)
}

func (m *Mongo) AddBookmark(ctx context.Context, attendeeID, sessionID primitive.ObjectID) (bool, error) {
	return m.addToAttendeeSet(ctx, attendeeID, "bookmarked_sessions", sessionID)
}

// addToAttendeeSet appends id to one of the attendee's registration sets
// only if it is not present yet. The $ne guard in the filter makes
// duplicate detection and append one atomic operation.
func (m *Mongo) addToAttendeeSet(ctx context.Context, attendeeID primitive.ObjectID, field string, id primitive.ObjectID) (bool, error) {
	res, err := m.attendees.UpdateOne(ctx,
		bson.M{"_id": attendeeID, field: bson.M{"$ne": id}},
		bson.M{"$addToSet": bson.M{field: id}})
	if err != nil {
		return false, translateErr(err)
	}
	return res.ModifiedCount == 1, nil
}

func (m *Mongo) SetNotificationPreferences(ctx context.Context, attendeeID primitive.ObjectID, prefs model.NotificationPreferences) error {
	_, err := m.attendees.UpdateOne(ctx,
		bson.M{"_id": attendeeID},
		bson.M{"$set": bson.M{"notification_preferences": prefs}})
	return translateErr(err)
}

func (m *Mongo) InsertExhibitor(ctx context.Context, exhibitor *model.Exhibitor) error {
	_, err := m.exhibitors.InsertOne(ctx, exhibitor)
	return translateErr(err)
}

func (m *Mongo) GetExhibitor(ctx context.Context, id primitive.ObjectID) (*model.Exhibitor, error) {
	var exhibitor model.Exhibitor
	err := m.exhibitors.FindOne(ctx, bson.M{"_id": id}).Decode(&exhibitor)
	if err != nil {
		return nil, translateErr(err)
	}
	return &exhibitor, nil
}

func (m *Mongo) ListExhibitorsByExpo(ctx context.Context, expoID primitive.ObjectID) ([]model.Exhibitor, error) {
	cur, err := m.exhibitors.Find(ctx, bson.M{"expo_id": expoID})
	if err != nil {
		return nil, translateErr(err)
	}
	exhibitors := []model.Exhibitor{}
	if err := cur.All(ctx, &exhibitors); err != nil {
		return nil, translateErr(err)
	}
	return exhibitors, nil
}

func (m *Mongo) HasOpenBoothRequest(ctx context.Context, userID, expoID primitive.ObjectID) (bool, error) {
	count, err := m.exhibitors.CountDocuments(ctx, bson.M{
		"user_id": userID,
		"expo_id": expoID,
		"status":  bson.M{"$ne": model.RequestRejected},
	})
	if err != nil {
		return false, translateErr(err)
	}
	return count > 0, nil
}

func (m *Mongo) SetExhibitorStatus(ctx context.Context, id primitive.ObjectID, from, to string) (bool, error) {
	res, err := m.exhibitors.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to}})
	if err != nil {
		return false, translateErr(err)
	}
	return res.ModifiedCount == 1, nil
}

func (m *Mongo) InsertCompany(ctx context.Context, company *model.Company) error {
	_, err := m.companies.InsertOne(ctx, company)
	return translateErr(err)
}

func (m *Mongo) GetCompany(ctx context.Context, id primitive.ObjectID) (*model.Company, error) {
	var company model.Company
	err := m.companies.FindOne(ctx, bson.M{"_id": id}).Decode(&company)
	if err != nil {
		return nil, translateErr(err)
	}
	return &company, nil
}

func (m *Mongo) GetCompanyByUser(ctx context.Context, userID primitive.ObjectID) (*model.Company, error) {
	var company model.Company
	err := m.companies.FindOne(ctx, bson.M{"user_id": userID}).Decode(&company)
	if err != nil {
		return nil, translateErr(err)
	}
	return &company, nil
}
