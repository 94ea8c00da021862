package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"expo-webapp/model"
	"expo-webapp/notification"
)

// RegistrationService enforces the registration and booking invariants:
// at-most-once expo/session registration and bookmarks per attendee,
// session registrant counts capped at capacity, booth numbers unique, and
// exhibitor request state kept in step with booth bookings.
type RegistrationService struct {
	users    IdentityStore
	catalog  CatalogStore
	notifier notification.Dispatcher
}

func NewRegistrationService(users IdentityStore, catalog CatalogStore, notifier notification.Dispatcher) *RegistrationService {
	return &RegistrationService{
		users:    users,
		catalog:  catalog,
		notifier: notifier,
	}
}

// SessionView is the denormalized session projection returned alongside a
// successful session registration or bookmark.
type SessionView struct {
	Id       primitive.ObjectID `json:"id"`
	Name     string             `json:"name"`
	ExpoName string             `json:"expo,omitempty"`
}

func parseID(name, hex string) (primitive.ObjectID, error) {
	if strings.TrimSpace(hex) == "" {
		return primitive.NilObjectID, errInvalidInput("%v is required", name)
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, errInvalidID("malformed %v: %v", name, hex)
	}
	return id, nil
}

// RegisterForExpo appends the expo to the attendee's registered set,
// creating the attendee record from the user profile on first contact.
func (s *RegistrationService) RegisterForExpo(ctx context.Context, userIDHex, expoIDHex string) (*model.Attendee, error) {
	userID, err := parseID("user id", userIDHex)
	if err != nil {
		return nil, err
	}
	expoID, err := parseID("expo id", expoIDHex)
	if err != nil {
		return nil, err
	}

	expo, err := s.catalog.GetExpo(ctx, expoID)
	if errors.Is(err, ErrNoDocument) {
		return nil, errNotFound("expo %v not found", expoIDHex)
	}
	if err != nil {
		return nil, errDependency(err, "failed to read expo")
	}

	attendee, err := s.ensureAttendee(ctx, userID)
	if err != nil {
		return nil, err
	}

	added, err := s.catalog.AddExpoRegistration(ctx, attendee.Id, expo.Id)
	if err != nil {
		return nil, errDependency(err, "failed to update expo registrations")
	}
	if !added {
		return nil, errConflict("already registered for expo %v", expo.ExpoName)
	}

	attendee.ExposRegistered = append(attendee.ExposRegistered, expo.Id)
	return attendee, nil
}

// RegisterForSession reserves a seat on the session, then appends it to the
// attendee's registered set. The seat reservation is a conditional counter
// increment at the store, so the registrant count can never pass capacity
// even under concurrent callers; a reservation is released again when the
// attendee turns out to be registered already.
func (s *RegistrationService) RegisterForSession(ctx context.Context, userIDHex, sessionIDHex string) (*model.Attendee, *SessionView, error) {
	userID, err := parseID("user id", userIDHex)
	if err != nil {
		return nil, nil, err
	}
	sessionID, err := parseID("session id", sessionIDHex)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.catalog.GetSession(ctx, sessionID)
	if errors.Is(err, ErrNoDocument) {
		return nil, nil, errNotFound("session %v not found", sessionIDHex)
	}
	if err != nil {
		return nil, nil, errDependency(err, "failed to read session")
	}

	attendee, err := s.ensureAttendee(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	for _, registered := range attendee.SessionsRegistered {
		if registered == session.Id {
			return nil, nil, errConflict("already registered for session %v", session.SessionName)
		}
	}

	reserved, err := s.catalog.ReserveSessionSeat(ctx, session.Id)
	if err != nil {
		return nil, nil, errDependency(err, "failed to reserve session seat")
	}
	if !reserved {
		return nil, nil, errConflict("session %v is full", session.SessionName)
	}

	added, err := s.catalog.AddSessionRegistration(ctx, attendee.Id, session.Id)
	if err != nil || !added {
		if releaseErr := s.catalog.ReleaseSessionSeat(ctx, session.Id); releaseErr != nil {
			return nil, nil, errPartialFailure(releaseErr,
				"session seat reserved but registration failed and the seat could not be released")
		}
		if err != nil {
			return nil, nil, errDependency(err, "failed to update session registrations")
		}
		return nil, nil, errConflict("already registered for session %v", session.SessionName)
	}

	attendee.SessionsRegistered = append(attendee.SessionsRegistered, session.Id)

	view := &SessionView{Id: session.Id, Name: session.SessionName}
	expo, err := s.catalog.GetExpo(ctx, session.ExpoId)
	if err == nil {
		view.ExpoName = expo.ExpoName
	}
	return attendee, view, nil
}

// BookmarkSession requires an existing attendee record: unlike
// registration, bookmarking never creates one.
func (s *RegistrationService) BookmarkSession(ctx context.Context, userIDHex, sessionIDHex string) (*SessionView, error) {
	userID, err := parseID("user id", userIDHex)
	if err != nil {
		return nil, err
	}
	sessionID, err := parseID("session id", sessionIDHex)
	if err != nil {
		return nil, err
	}

	session, err := s.catalog.GetSession(ctx, sessionID)
	if errors.Is(err, ErrNoDocument) {
		return nil, errNotFound("session %v not found", sessionIDHex)
	}
	if err != nil {
		return nil, errDependency(err, "failed to read session")
	}

	attendee, err := s.catalog.GetAttendeeByUser(ctx, userID)
	if errors.Is(err, ErrNoDocument) {
		return nil, errNotFound("no attendee record for user %v", userIDHex)
	}
	if err != nil {
		return nil, errDependency(err, "failed to read attendee")
	}

	added, err := s.catalog.AddBookmark(ctx, attendee.Id, session.Id)
	if err != nil {
		return nil, errDependency(err, "failed to update bookmarks")
	}
	if !added {
		return nil, errConflict("session %v is already bookmarked", session.SessionName)
	}

	return &SessionView{Id: session.Id, Name: session.SessionName}, nil
}

// UpdateNotificationPreferences replaces the attendee's preference flags.
func (s *RegistrationService) UpdateNotificationPreferences(ctx context.Context, userIDHex string, prefs model.NotificationPreferences) (*model.NotificationPreferences, error) {
	userID, err := parseID("user id", userIDHex)
	if err != nil {
		return nil, err
	}

	attendee, err := s.catalog.GetAttendeeByUser(ctx, userID)
	if errors.Is(err, ErrNoDocument) {
		return nil, errNotFound("no attendee record for user %v", userIDHex)
	}
	if err != nil {
		return nil, errDependency(err, "failed to read attendee")
	}

	if err := s.catalog.SetNotificationPreferences(ctx, attendee.Id, prefs); err != nil {
		return nil, errDependency(err, "failed to update notification preferences")
	}
	return &prefs, nil
}

// ensureAttendee returns the attendee record for the user, creating it from
// the user's profile fields when none exists yet. Only users with the
// attendee role get a record.
func (s *RegistrationService) ensureAttendee(ctx context.Context, userID primitive.ObjectID) (*model.Attendee, error) {
	attendee, err := s.catalog.GetAttendeeByUser(ctx, userID)
	if err == nil {
		return attendee, nil
	}
	if !errors.Is(err, ErrNoDocument) {
		return nil, errDependency(err, "failed to read attendee")
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, ErrNoDocument) {
		return nil, errNotFound("user %v not found", userID.Hex())
	}
	if err != nil {
		return nil, errDependency(err, "failed to read user")
	}
	if user.Role != model.RoleAttendee {
		return nil, errNotFound("user %v is not an attendee", userID.Hex())
	}

	attendee = &model.Attendee{
		Id:                 primitive.NewObjectID(),
		UserId:             user.Id,
		Name:               user.Name,
		Email:              user.Email,
		Phone:              user.Phone,
		ExposRegistered:    []primitive.ObjectID{},
		SessionsRegistered: []primitive.ObjectID{},
		BookmarkedSessions: []primitive.ObjectID{},
		Preferences:        model.NotificationPreferences{Email: true},
	}

	err = s.catalog.InsertAttendee(ctx, attendee)
	if errors.Is(err, ErrDuplicate) {
		// Lost the race against a concurrent first registration.
		attendee, err = s.catalog.GetAttendeeByUser(ctx, userID)
		if err != nil {
			return nil, errDependency(err, "failed to read attendee")
		}
		return attendee, nil
	}
	if err != nil {
		return nil, errDependency(err, "failed to create attendee")
	}
	return attendee, nil
}
