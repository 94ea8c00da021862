package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"expo-webapp/memstore"
	"expo-webapp/model"
	"expo-webapp/notification"
	"expo-webapp/service"
)

type fakeDispatcher struct {
	mu               sync.Mutex
	contactExchanges []notification.ContactExchange
	otps             []string
}

func (d *fakeDispatcher) SendContactExchange(ctx context.Context, msg notification.ContactExchange) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.contactExchanges = append(d.contactExchanges, msg)
}

func (d *fakeDispatcher) SendOTP(ctx context.Context, to string, code string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.otps = append(d.otps, code)
}

func newService(t *testing.T) (*service.RegistrationService, *memstore.Store, *fakeDispatcher) {
	t.Helper()
	store := memstore.New()
	dispatcher := &fakeDispatcher{}
	return service.NewRegistrationService(store, store, dispatcher), store, dispatcher
}

func seedAttendeeUser(store *memstore.Store, name string) string {
	user := model.UserData{
		Id:    primitive.NewObjectID(),
		Login: name,
		Name:  name,
		Email: name + "@example.com",
		Phone: "5550001234",
		Role:  model.RoleAttendee,
	}
	store.AddUser(user)
	return user.Id.Hex()
}

func seedExpo(t *testing.T, store *memstore.Store, name string) *model.Expo {
	t.Helper()
	expo := &model.Expo{
		Id:               primitive.NewObjectID(),
		ExpoName:         name,
		Description:      "expo for tests",
		StartDate:        "2026-09-01",
		EndDate:          "2026-09-03",
		Venue:            "Hall A",
		OrganizerContact: "1234567890",
		TotalBooths:      1,
		Booths:           []primitive.ObjectID{},
	}
	require.NoError(t, store.InsertExpo(context.Background(), expo))
	return expo
}

func seedSession(t *testing.T, store *memstore.Store, expoID primitive.ObjectID, name string, capacity uint) *model.Session {
	t.Helper()
	session := &model.Session{
		Id:          primitive.NewObjectID(),
		ExpoId:      expoID,
		SessionName: name,
		Day:         1,
		StartTime:   "10:00",
		EndTime:     "11:00",
		Capacity:    capacity,
	}
	require.NoError(t, store.InsertSession(context.Background(), session))
	return session
}

func TestRegisterForExpoTwice(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()
	userID := seedAttendeeUser(store, "alice")
	expo := seedExpo(t, store, "Tech Expo")

	attendee, err := svc.RegisterForExpo(ctx, userID, expo.Id.Hex())
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{expo.Id}, attendee.ExposRegistered)

	_, err = svc.RegisterForExpo(ctx, userID, expo.Id.Hex())
	require.Error(t, err)
	assert.Equal(t, service.KindConflict, service.KindOf(err))

	userObjID, _ := primitive.ObjectIDFromHex(userID)
	stored, err := store.GetAttendeeByUser(ctx, userObjID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{expo.Id}, stored.ExposRegistered, "expo must appear exactly once")
}

func TestRegisterForExpoCreatesAttendeeLazily(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()
	userID := seedAttendeeUser(store, "bob")
	expo := seedExpo(t, store, "Maker Fair")

	userObjID, _ := primitive.ObjectIDFromHex(userID)
	_, err := store.GetAttendeeByUser(ctx, userObjID)
	require.ErrorIs(t, err, service.ErrNoDocument)

	attendee, err := svc.RegisterForExpo(ctx, userID, expo.Id.Hex())
	require.NoError(t, err)
	assert.Equal(t, "bob", attendee.Name)
	assert.Equal(t, "bob@example.com", attendee.Email)
	assert.Equal(t, userObjID, attendee.UserId)
}

func TestRegisterForExpoErrors(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()
	userID := seedAttendeeUser(store, "carol")
	expo := seedExpo(t, store, "Auto Expo")

	tests := []struct {
		description string
		userID      string
		expoID      string
		wantKind    service.Kind
	}{
		{"malformed expo id", userID, "abc", service.KindInvalidID},
		{"empty expo id", userID, "", service.KindInvalidInput},
		{"expo not found", userID, primitive.NewObjectID().Hex(), service.KindNotFound},
		{"user not found", primitive.NewObjectID().Hex(), expo.Id.Hex(), service.KindNotFound},
		{"malformed user id", "zzz", expo.Id.Hex(), service.KindInvalidID},
	}

	for _, test := range tests {
		_, err := svc.RegisterForExpo(ctx, test.userID, test.expoID)
		require.Errorf(t, err, test.description)
		assert.Equalf(t, test.wantKind, service.KindOf(err), test.description)
	}
}

func TestRegisterForExpoNonAttendeeUser(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()
	expo := seedExpo(t, store, "Trade Show")

	organizer := model.UserData{Id: primitive.NewObjectID(), Login: "org", Role: model.RoleOrganizer}
	store.AddUser(organizer)

	_, err := svc.RegisterForExpo(ctx, organizer.Id.Hex(), expo.Id.Hex())
	require.Error(t, err)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
}

func TestRegisterForSessionReturnsExpoName(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()
	userID := seedAttendeeUser(store, "dave")
	expo := seedExpo(t, store, "Tech Expo")
	session := seedSession(t, store, expo.Id, "Keynote", 10)

	attendee, view, err := svc.RegisterForSession(ctx, userID, session.Id.Hex())
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{session.Id}, attendee.SessionsRegistered)
	assert.Equal(t, "Keynote", view.Name)
	assert.Equal(t, "Tech Expo", view.ExpoName)
}

func TestRegisterForSessionTwice(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()
	userID := seedAttendeeUser(store, "erin")
	expo := seedExpo(t, store, "Expo")
	session := seedSession(t, store, expo.Id, "Workshop", 5)

	_, _, err := svc.RegisterForSession(ctx, userID, session.Id.Hex())
	require.NoError(t, err)

	_, _, err = svc.RegisterForSession(ctx, userID, session.Id.Hex())
	require.Error(t, err)
	assert.Equal(t, service.KindConflict, service.KindOf(err))

	stored, err := store.GetSession(ctx, session.Id)
	require.NoError(t, err)
	assert.Equal(t, uint(1), stored.RegisteredCount, "duplicate attempt must not consume a seat")
}

func TestSessionCapacityEnforced(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()
	expo := seedExpo(t, store, "Expo")
	session := seedSession(t, store, expo.Id, "Panel", 2)

	for i := 0; i < 2; i++ {
		userID := seedAttendeeUser(store, fmt.Sprintf("user%d", i))
		_, _, err := svc.RegisterForSession(ctx, userID, session.Id.Hex())
		require.NoError(t, err)
	}

	lateUser := seedAttendeeUser(store, "late")
	_, _, err := svc.RegisterForSession(ctx, lateUser, session.Id.Hex())
	require.Error(t, err)
	assert.Equal(t, service.KindConflict, service.KindOf(err))
	assert.Contains(t, err.Error(), "full")

	stored, err := store.GetSession(ctx, session.Id)
	require.NoError(t, err)
	assert.Equal(t, uint(2), stored.RegisteredCount)
}

func TestSessionCapacityUnderConcurrency(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()
	expo := seedExpo(t, store, "Expo")
	session := seedSession(t, store, expo.Id, "Hot Talk", 5)

	userIDs := make([]string, 20)
	for i := range userIDs {
		userIDs[i] = seedAttendeeUser(store, fmt.Sprintf("racer%d", i))
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for _, userID := range userIDs {
		userID := userID
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := svc.RegisterForSession(ctx, userID, session.Id.Hex()); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, successes)

	stored, err := store.GetSession(ctx, session.Id)
	require.NoError(t, err)
	assert.Equal(t, uint(5), stored.RegisteredCount, "registrant count must never exceed capacity")
}

func TestBookmarkRequiresExistingAttendee(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()
	userID := seedAttendeeUser(store, "frank")
	expo := seedExpo(t, store, "Expo")
	session := seedSession(t, store, expo.Id, "Talk", 10)

	// No attendee record yet: bookmarking must not create one.
	_, err := svc.BookmarkSession(ctx, userID, session.Id.Hex())
	require.Error(t, err)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))

	_, err = svc.RegisterForExpo(ctx, userID, expo.Id.Hex())
	require.NoError(t, err)

	view, err := svc.BookmarkSession(ctx, userID, session.Id.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Talk", view.Name)

	_, err = svc.BookmarkSession(ctx, userID, session.Id.Hex())
	require.Error(t, err)
	assert.Equal(t, service.KindConflict, service.KindOf(err))

	userObjID, _ := primitive.ObjectIDFromHex(userID)
	stored, err := store.GetAttendeeByUser(ctx, userObjID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{session.Id}, stored.BookmarkedSessions)
}

func TestUpdateNotificationPreferences(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()
	userID := seedAttendeeUser(store, "grace")
	expo := seedExpo(t, store, "Expo")

	_, err := svc.UpdateNotificationPreferences(ctx, userID, model.NotificationPreferences{Sms: true})
	require.Error(t, err)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))

	_, err = svc.RegisterForExpo(ctx, userID, expo.Id.Hex())
	require.NoError(t, err)

	prefs, err := svc.UpdateNotificationPreferences(ctx, userID, model.NotificationPreferences{Email: true, Sms: true})
	require.NoError(t, err)
	assert.True(t, prefs.Sms)

	userObjID, _ := primitive.ObjectIDFromHex(userID)
	stored, err := store.GetAttendeeByUser(ctx, userObjID)
	require.NoError(t, err)
	assert.True(t, stored.Preferences.Sms)
}
