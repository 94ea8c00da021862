package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"expo-webapp/handlers"
	"expo-webapp/memstore"
	"expo-webapp/model"
	"expo-webapp/router"
	"expo-webapp/service"
)

const testSecret = "test-secret"

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) (*fiber.App, *memstore.Store) {
	t.Helper()
	t.Setenv("SIGN", testSecret)

	store := memstore.New()
	svc := service.NewRegistrationService(store, store, nil)
	handler := handlers.NewHandler(svc, store, nil)

	app := fiber.New()
	router.SetupRoutes(app, handler)
	return app, store
}

func seedUser(store *memstore.Store, login, role string) model.UserData {
	user := model.UserData{
		Id:    primitive.NewObjectID(),
		Login: login,
		Name:  login,
		Email: login + "@example.com",
		Role:  role,
	}
	store.AddUser(user)
	return user
}

func tokenFor(t *testing.T, user model.UserData) string {
	t.Helper()
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = user.Login
	claims["userId"] = user.Id.Hex()
	claims["role"] = user.Role
	claims["exp"] = time.Now().Add(time.Hour).Unix()

	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, app *fiber.App, method, route, token string, body []byte) (*http.Response, envelope) {
	t.Helper()
	req, err := http.NewRequest(method, route, bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	// GET views return raw JSON without the envelope; tolerate both.
	_ = json.NewDecoder(res.Body).Decode(&env)
	return res, env
}

func createExpoBody(name string, totalBooths uint) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"expo_name":         name,
		"description":       "expo for handler tests",
		"start_date":        "2026-09-01",
		"end_date":          "2026-09-03",
		"venue":             "Hall B",
		"organizer_contact": "1234567890",
		"total_booths":      totalBooths,
	})
	return body
}

func TestLogin(t *testing.T) {
	app, store := newTestApp(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("opensesame"), bcrypt.DefaultCost)
	require.NoError(t, err)
	store.AddUser(model.UserData{
		Id:             primitive.NewObjectID(),
		Login:          "organizer1",
		HashedPassword: string(hash),
		Role:           model.RoleOrganizer,
	})

	tests := []struct {
		description  string
		bodyinput    []byte
		expectedCode int
	}{
		{"unknown user", []byte(`{"login":"ghost","password":"whatever"}`), 401},
		{"wrong password", []byte(`{"login":"organizer1","password":"nope"}`), 401},
		{"valid credentials", []byte(`{"login":"organizer1","password":"opensesame"}`), 200},
	}

	for _, test := range tests {
		res, env := doRequest(t, app, "POST", "/login", "", test.bodyinput)
		assert.Equalf(t, test.expectedCode, res.StatusCode, test.description)
		if test.expectedCode == 200 {
			assert.NotEmptyf(t, env.Data, test.description)
		}
	}
}

func TestAuthRequired(t *testing.T) {
	app, _ := newTestApp(t)

	res, _ := doRequest(t, app, "GET", "/expo", "", nil)
	assert.Equal(t, 400, res.StatusCode, "missing JWT")

	res, _ = doRequest(t, app, "GET", "/expo", "garbage-token", nil)
	assert.Equal(t, 401, res.StatusCode, "malformed JWT")
}

func TestCreateExpoEndpoint(t *testing.T) {
	app, store := newTestApp(t)
	organizer := seedUser(store, "boss", model.RoleOrganizer)
	attendee := seedUser(store, "guest", model.RoleAttendee)

	res, env := doRequest(t, app, "POST", "/expo", tokenFor(t, organizer), createExpoBody("Tech Expo", 3))
	require.Equal(t, 201, res.StatusCode)

	var expo model.Expo
	require.NoError(t, json.Unmarshal(env.Data, &expo))
	assert.Len(t, expo.Booths, 3)

	booths, err := store.ListBoothsByExpo(context.Background(), expo.Id)
	require.NoError(t, err)
	require.Len(t, booths, 3)
	for _, booth := range booths {
		assert.Equal(t, expo.Id, booth.ExpoId)
	}

	// Only organizers may create expos.
	res, _ = doRequest(t, app, "POST", "/expo", tokenFor(t, attendee), createExpoBody("Fan Expo", 2))
	assert.Equal(t, 401, res.StatusCode)

	// Validation failures are client errors.
	res, _ = doRequest(t, app, "POST", "/expo", tokenFor(t, organizer), createExpoBody("Bad Expo", 0))
	assert.Equal(t, 400, res.StatusCode)
}

func TestRegisterForExpoEndpoint(t *testing.T) {
	app, store := newTestApp(t)
	organizer := seedUser(store, "boss", model.RoleOrganizer)
	attendee := seedUser(store, "guest", model.RoleAttendee)

	res, env := doRequest(t, app, "POST", "/expo", tokenFor(t, organizer), createExpoBody("Tech Expo", 1))
	require.Equal(t, 201, res.StatusCode)
	var expo model.Expo
	require.NoError(t, json.Unmarshal(env.Data, &expo))

	route := fmt.Sprintf("/expo/%v/register", expo.Id.Hex())
	res, _ = doRequest(t, app, "POST", route, tokenFor(t, attendee), nil)
	assert.Equal(t, 200, res.StatusCode)

	res, _ = doRequest(t, app, "POST", route, tokenFor(t, attendee), nil)
	assert.Equal(t, 409, res.StatusCode, "second registration is a conflict")

	res, _ = doRequest(t, app, "POST", "/expo/abc/register", tokenFor(t, attendee), nil)
	assert.Equal(t, 400, res.StatusCode, "malformed id is a bad request, not a 404")

	res, _ = doRequest(t, app, "POST",
		fmt.Sprintf("/expo/%v/register", primitive.NewObjectID().Hex()), tokenFor(t, attendee), nil)
	assert.Equal(t, 404, res.StatusCode)
}

func TestSessionCapacityEndpoint(t *testing.T) {
	app, store := newTestApp(t)
	organizer := seedUser(store, "boss", model.RoleOrganizer)
	attendeeX := seedUser(store, "attendee-x", model.RoleAttendee)
	attendeeY := seedUser(store, "attendee-y", model.RoleAttendee)

	res, env := doRequest(t, app, "POST", "/expo", tokenFor(t, organizer), createExpoBody("Tech Expo", 1))
	require.Equal(t, 201, res.StatusCode)
	var expo model.Expo
	require.NoError(t, json.Unmarshal(env.Data, &expo))

	sessionBody, _ := json.Marshal(map[string]interface{}{
		"session_name": "Tiny Workshop",
		"description":  "one seat only",
		"day":          1,
		"start_time":   "10:00",
		"end_time":     "11:00",
		"capacity":     1,
	})
	res, env = doRequest(t, app, "POST",
		fmt.Sprintf("/expo/%v/session", expo.Id.Hex()), tokenFor(t, organizer), sessionBody)
	require.Equal(t, 201, res.StatusCode)
	var session model.Session
	require.NoError(t, json.Unmarshal(env.Data, &session))

	route := fmt.Sprintf("/session/%v/register", session.Id.Hex())
	res, _ = doRequest(t, app, "POST", route, tokenFor(t, attendeeX), nil)
	assert.Equal(t, 200, res.StatusCode)

	res, env = doRequest(t, app, "POST", route, tokenFor(t, attendeeY), nil)
	assert.Equal(t, 409, res.StatusCode)
	assert.Contains(t, string(env.Data), "full")
}

func TestBookmarkEndpoint(t *testing.T) {
	app, store := newTestApp(t)
	organizer := seedUser(store, "boss", model.RoleOrganizer)
	attendee := seedUser(store, "guest", model.RoleAttendee)

	res, env := doRequest(t, app, "POST", "/expo", tokenFor(t, organizer), createExpoBody("Tech Expo", 1))
	require.Equal(t, 201, res.StatusCode)
	var expo model.Expo
	require.NoError(t, json.Unmarshal(env.Data, &expo))

	sessionBody, _ := json.Marshal(map[string]interface{}{
		"session_name": "Deep Dive",
		"day":          1,
		"start_time":   "13:00",
		"end_time":     "14:00",
		"capacity":     20,
	})
	res, env = doRequest(t, app, "POST",
		fmt.Sprintf("/expo/%v/session", expo.Id.Hex()), tokenFor(t, organizer), sessionBody)
	require.Equal(t, 201, res.StatusCode)
	var session model.Session
	require.NoError(t, json.Unmarshal(env.Data, &session))

	route := fmt.Sprintf("/session/%v/bookmark", session.Id.Hex())

	// No attendee record yet: bookmarking does not create one.
	res, _ = doRequest(t, app, "POST", route, tokenFor(t, attendee), nil)
	assert.Equal(t, 404, res.StatusCode)

	res, _ = doRequest(t, app, "POST",
		fmt.Sprintf("/expo/%v/register", expo.Id.Hex()), tokenFor(t, attendee), nil)
	require.Equal(t, 200, res.StatusCode)

	res, _ = doRequest(t, app, "POST", route, tokenFor(t, attendee), nil)
	assert.Equal(t, 200, res.StatusCode)

	res, _ = doRequest(t, app, "POST", route, tokenFor(t, attendee), nil)
	assert.Equal(t, 409, res.StatusCode)
}
