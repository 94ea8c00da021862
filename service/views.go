package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"expo-webapp/model"
)

// Schedule is the read-only aggregate of everything an attendee signed up
// for.
type Schedule struct {
	EventsRegistered   []model.Expo    `json:"events_registered"`
	SessionsRegistered []model.Session `json:"sessions_registered"`
	BookmarkedSessions []model.Session `json:"bookmarked_sessions"`
}

// SessionWithExpo is a session with its parent expo populated.
type SessionWithExpo struct {
	Session model.Session `json:"session"`
	Expo    model.Expo    `json:"expo"`
}

func (s *RegistrationService) attendeeForView(ctx context.Context, userIDHex string) (*model.Attendee, error) {
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
	return attendee, nil
}

// GetUserSchedule returns registered expos, registered sessions and
// bookmarked sessions for the attendee.
func (s *RegistrationService) GetUserSchedule(ctx context.Context, userIDHex string) (*Schedule, error) {
	attendee, err := s.attendeeForView(ctx, userIDHex)
	if err != nil {
		return nil, err
	}

	expos, err := s.catalog.ListExposByIDs(ctx, attendee.ExposRegistered)
	if err != nil {
		return nil, errDependency(err, "failed to read registered expos")
	}
	registered, err := s.catalog.ListSessionsByIDs(ctx, attendee.SessionsRegistered)
	if err != nil {
		return nil, errDependency(err, "failed to read registered sessions")
	}
	bookmarked, err := s.catalog.ListSessionsByIDs(ctx, attendee.BookmarkedSessions)
	if err != nil {
		return nil, errDependency(err, "failed to read bookmarked sessions")
	}

	return &Schedule{
		EventsRegistered:   expos,
		SessionsRegistered: registered,
		BookmarkedSessions: bookmarked,
	}, nil
}

// ListUnregisteredSessions returns sessions belonging to expos the attendee
// has not registered for.
func (s *RegistrationService) ListUnregisteredSessions(ctx context.Context, userIDHex string) ([]model.Session, error) {
	attendee, err := s.attendeeForView(ctx, userIDHex)
	if err != nil {
		return nil, err
	}

	sessions, err := s.catalog.ListSessionsExcludingExpoIDs(ctx, attendee.ExposRegistered)
	if err != nil {
		return nil, errDependency(err, "failed to read sessions")
	}
	return sessions, nil
}

// ListRegisteredSchedule returns sessions belonging to expos the attendee
// has registered for, each with its expo populated.
func (s *RegistrationService) ListRegisteredSchedule(ctx context.Context, userIDHex string) ([]SessionWithExpo, error) {
	attendee, err := s.attendeeForView(ctx, userIDHex)
	if err != nil {
		return nil, err
	}

	sessions, err := s.catalog.ListSessionsByExpoIDs(ctx, attendee.ExposRegistered)
	if err != nil {
		return nil, errDependency(err, "failed to read sessions")
	}
	expos, err := s.catalog.ListExposByIDs(ctx, attendee.ExposRegistered)
	if err != nil {
		return nil, errDependency(err, "failed to read expos")
	}

	exposByID := make(map[primitive.ObjectID]model.Expo, len(expos))
	for _, expo := range expos {
		exposByID[expo.Id] = expo
	}

	schedule := make([]SessionWithExpo, 0, len(sessions))
	for _, session := range sessions {
		schedule = append(schedule, SessionWithExpo{
			Session: session,
			Expo:    exposByID[session.ExpoId],
		})
	}
	return schedule, nil
}
