package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"expo-webapp/model"
)

// ErrNoDocument is returned by stores when a lookup matches nothing.
var ErrNoDocument = errors.New("no matching document")

// ErrDuplicate is returned by stores when an insert violates a unique
// constraint (booth number, attendee user id, company user id).
var ErrDuplicate = errors.New("duplicate key")

type IdentityStore interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.UserData, error)
	GetUserByLogin(ctx context.Context, login string) (*model.UserData, error)
}

// CatalogStore is the persistence boundary for expos, booths, sessions,
// attendees, exhibitor requests and companies. Methods returning
// (bool, error) are conditional mutations: the bool reports whether the
// guard held and the write happened. Every check-then-act invariant of the
// service is pushed into one of these guarded calls so that two concurrent
// requests cannot both pass a check the other already invalidated.
type CatalogStore interface {
	InsertExpo(ctx context.Context, expo *model.Expo) error
	GetExpo(ctx context.Context, id primitive.ObjectID) (*model.Expo, error)
	ListExpos(ctx context.Context) ([]model.Expo, error)
	ListExposByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Expo, error)
	SetExpoBooths(ctx context.Context, expoID primitive.ObjectID, booths []primitive.ObjectID) error
	// DeleteExpo removes the expo and cascades to its booths and sessions.
	DeleteExpo(ctx context.Context, id primitive.ObjectID) error

	InsertBooth(ctx context.Context, booth *model.Booth) error
	GetBooth(ctx context.Context, id primitive.ObjectID) (*model.Booth, error)
	ListBoothsByExpo(ctx context.Context, expoID primitive.ObjectID) ([]model.Booth, error)
	SetBoothBooked(ctx context.Context, boothID primitive.ObjectID, booked bool, assignedTo string) error

	InsertSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id primitive.ObjectID) (*model.Session, error)
	ListSessionsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Session, error)
	ListSessionsByExpoIDs(ctx context.Context, expoIDs []primitive.ObjectID) ([]model.Session, error)
	ListSessionsExcludingExpoIDs(ctx context.Context, expoIDs []primitive.ObjectID) ([]model.Session, error)
	// ReserveSessionSeat increments the session's registrant counter only
	// while it is below capacity.
	ReserveSessionSeat(ctx context.Context, sessionID primitive.ObjectID) (bool, error)
	ReleaseSessionSeat(ctx context.Context, sessionID primitive.ObjectID) error

	GetAttendeeByUser(ctx context.Context, userID primitive.ObjectID) (*model.Attendee, error)
	InsertAttendee(ctx context.Context, attendee *model.Attendee) error
	// AddExpoRegistration appends expoID to the attendee's registered set
	// only if it is not already present.
	AddExpoRegistration(ctx context.Context, attendeeID, expoID primitive.ObjectID) (bool, error)
	AddSessionRegistration(ctx context.Context, attendeeID, sessionID primitive.ObjectID) (bool, error)
	AddBookmark(ctx context.Context, attendeeID, sessionID primitive.ObjectID) (bool, error)
	SetNotificationPreferences(ctx context.Context, attendeeID primitive.ObjectID, prefs model.NotificationPreferences) error

	InsertExhibitor(ctx context.Context, exhibitor *model.Exhibitor) error
	GetExhibitor(ctx context.Context, id primitive.ObjectID) (*model.Exhibitor, error)
	ListExhibitorsByExpo(ctx context.Context, expoID primitive.ObjectID) ([]model.Exhibitor, error)
	// HasOpenBoothRequest reports whether the user already has a pending or
	// accepted request for the expo.
	HasOpenBoothRequest(ctx context.Context, userID, expoID primitive.ObjectID) (bool, error)
	// SetExhibitorStatus transitions the request from one status to another
	// only if it currently holds the expected status.
	SetExhibitorStatus(ctx context.Context, id primitive.ObjectID, from, to string) (bool, error)

	InsertCompany(ctx context.Context, company *model.Company) error
	GetCompany(ctx context.Context, id primitive.ObjectID) (*model.Company, error)
	GetCompanyByUser(ctx context.Context, userID primitive.ObjectID) (*model.Company, error)
}
