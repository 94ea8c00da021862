package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/flowchartsman/retry"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"expo-webapp/model"
)

const expoDateLayout = "2006-01-02"
const sessionTimeLayout = "15:04"

// boothNumberAttempts bounds the regeneration loop when a random booth
// number collides with the store's unique index.
const boothNumberAttempts = 10

var contactRegexp = regexp.MustCompile(`^[0-9]{10}$`)

type CreateExpoInput struct {
	ExpoName         string `json:"expo_name"`
	Description      string `json:"description"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	Venue            string `json:"venue"`
	OrganizerContact string `json:"organizer_contact"`
	TotalBooths      uint   `json:"total_booths"`
}

type CreateSessionInput struct {
	ExpoId      string `json:"expo_id"`
	SessionName string `json:"session_name"`
	Description string `json:"description"`
	Day         uint   `json:"day"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Floor       string `json:"floor"`
	Capacity    uint   `json:"capacity"`
}

// CreateExpo creates the expo record and generates exactly TotalBooths
// booth records linked back onto it. Booth numbers are random 4-digit
// strings; uniqueness is guaranteed by the store's unique index plus
// regeneration on collision. If booth generation fails the expo is deleted
// again so no half-built expo remains visible.
func (s *RegistrationService) CreateExpo(ctx context.Context, in CreateExpoInput) (*model.Expo, error) {
	if err := validateExpoInput(in); err != nil {
		return nil, err
	}

	expo := &model.Expo{
		Id:               primitive.NewObjectID(),
		ExpoName:         strings.TrimSpace(in.ExpoName),
		Description:      strings.TrimSpace(in.Description),
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		Venue:            strings.TrimSpace(in.Venue),
		OrganizerContact: in.OrganizerContact,
		TotalBooths:      in.TotalBooths,
		Booths:           []primitive.ObjectID{},
	}

	if err := s.catalog.InsertExpo(ctx, expo); err != nil {
		return nil, errDependency(err, "failed to create expo")
	}

	boothIDs, err := s.generateBooths(ctx, expo.Id, in.TotalBooths)
	if err == nil {
		err = s.catalog.SetExpoBooths(ctx, expo.Id, boothIDs)
	}
	if err != nil {
		if deleteErr := s.catalog.DeleteExpo(ctx, expo.Id); deleteErr != nil {
			return nil, errPartialFailure(deleteErr,
				fmt.Sprintf("booth generation failed and expo %v could not be removed", expo.Id.Hex()))
		}
		return nil, errDependency(err, "failed to generate booths")
	}

	expo.Booths = boothIDs
	return expo, nil
}

func (s *RegistrationService) generateBooths(ctx context.Context, expoID primitive.ObjectID, total uint) ([]primitive.ObjectID, error) {
	boothIDs := make([]primitive.ObjectID, 0, total)
	retrier := retry.NewRetrier(boothNumberAttempts, 0, 0)

	for i := uint(0); i < total; i++ {
		booth := model.Booth{
			Id:     primitive.NewObjectID(),
			ExpoId: expoID,
		}
		err := retrier.Run(func() error {
			booth.BoothNumber = randomBoothNumber()
			insertErr := s.catalog.InsertBooth(ctx, &booth)
			if insertErr != nil && !errors.Is(insertErr, ErrDuplicate) {
				return retry.Stop(insertErr)
			}
			return insertErr
		})
		if err != nil {
			return nil, err
		}
		boothIDs = append(boothIDs, booth.Id)
	}

	return boothIDs, nil
}

func randomBoothNumber() string {
	return fmt.Sprint(1000 + rand.Intn(9000))
}

// CreateSession adds a session to an existing expo.
func (s *RegistrationService) CreateSession(ctx context.Context, in CreateSessionInput) (*model.Session, error) {
	expoID, err := parseID("expo id", in.ExpoId)
	if err != nil {
		return nil, err
	}
	if err := validateSessionInput(in); err != nil {
		return nil, err
	}

	_, err = s.catalog.GetExpo(ctx, expoID)
	if errors.Is(err, ErrNoDocument) {
		return nil, errNotFound("expo %v not found", in.ExpoId)
	}
	if err != nil {
		return nil, errDependency(err, "failed to read expo")
	}

	session := &model.Session{
		Id:          primitive.NewObjectID(),
		ExpoId:      expoID,
		SessionName: strings.TrimSpace(in.SessionName),
		Description: strings.TrimSpace(in.Description),
		Day:         in.Day,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Floor:       in.Floor,
		Capacity:    in.Capacity,
	}
	if err := s.catalog.InsertSession(ctx, session); err != nil {
		return nil, errDependency(err, "failed to create session")
	}
	return session, nil
}

// ListExpos returns all expos.
func (s *RegistrationService) ListExpos(ctx context.Context) ([]model.Expo, error) {
	expos, err := s.catalog.ListExpos(ctx)
	if err != nil {
		return nil, errDependency(err, "failed to read expos")
	}
	return expos, nil
}

// GetExpoWithBooths returns an expo together with its booth records.
func (s *RegistrationService) GetExpoWithBooths(ctx context.Context, expoIDHex string) (*model.Expo, []model.Booth, error) {
	expoID, err := parseID("expo id", expoIDHex)
	if err != nil {
		return nil, nil, err
	}

	expo, err := s.catalog.GetExpo(ctx, expoID)
	if errors.Is(err, ErrNoDocument) {
		return nil, nil, errNotFound("expo %v not found", expoIDHex)
	}
	if err != nil {
		return nil, nil, errDependency(err, "failed to read expo")
	}

	booths, err := s.catalog.ListBoothsByExpo(ctx, expoID)
	if err != nil {
		return nil, nil, errDependency(err, "failed to read booths")
	}
	return expo, booths, nil
}

// ListExpoSessions returns the sessions scheduled for an expo.
func (s *RegistrationService) ListExpoSessions(ctx context.Context, expoIDHex string) ([]model.Session, error) {
	expoID, err := parseID("expo id", expoIDHex)
	if err != nil {
		return nil, err
	}

	_, err = s.catalog.GetExpo(ctx, expoID)
	if errors.Is(err, ErrNoDocument) {
		return nil, errNotFound("expo %v not found", expoIDHex)
	}
	if err != nil {
		return nil, errDependency(err, "failed to read expo")
	}

	sessions, err := s.catalog.ListSessionsByExpoIDs(ctx, []primitive.ObjectID{expoID})
	if err != nil {
		return nil, errDependency(err, "failed to read sessions")
	}
	return sessions, nil
}

// DeleteExpo removes the expo together with its booths and sessions.
func (s *RegistrationService) DeleteExpo(ctx context.Context, expoIDHex string) error {
	expoID, err := parseID("expo id", expoIDHex)
	if err != nil {
		return err
	}

	_, err = s.catalog.GetExpo(ctx, expoID)
	if errors.Is(err, ErrNoDocument) {
		return errNotFound("expo %v not found", expoIDHex)
	}
	if err != nil {
		return errDependency(err, "failed to read expo")
	}

	if err := s.catalog.DeleteExpo(ctx, expoID); err != nil {
		return errDependency(err, "failed to delete expo")
	}
	return nil
}

func validateExpoInput(in CreateExpoInput) error {
	if len(strings.TrimSpace(in.ExpoName)) < 2 {
		return errInvalidInput("expo name is too short")
	}
	if strings.TrimSpace(in.Description) == "" {
		return errInvalidInput("expo description is required")
	}
	if strings.TrimSpace(in.Venue) == "" {
		return errInvalidInput("expo venue is required")
	}
	start, err := time.Parse(expoDateLayout, in.StartDate)
	if err != nil {
		return errInvalidInput("start date must be in format %v", expoDateLayout)
	}
	end, err := time.Parse(expoDateLayout, in.EndDate)
	if err != nil {
		return errInvalidInput("end date must be in format %v", expoDateLayout)
	}
	if end.Before(start) {
		return errInvalidInput("expo cannot end before it starts")
	}
	if !contactRegexp.MatchString(in.OrganizerContact) {
		return errInvalidInput("organizer contact must be exactly 10 digits")
	}
	if in.TotalBooths < 1 {
		return errInvalidInput("expo must have at least one booth")
	}
	return nil
}

func validateSessionInput(in CreateSessionInput) error {
	if len(strings.TrimSpace(in.SessionName)) < 2 {
		return errInvalidInput("session name is too short")
	}
	if in.Day < 1 {
		return errInvalidInput("session day must be 1 or greater")
	}
	if in.Capacity < 1 {
		return errInvalidInput("session capacity must be 1 or greater")
	}
	if _, err := time.Parse(sessionTimeLayout, in.StartTime); err != nil {
		return errInvalidInput("start time must be in format %v", sessionTimeLayout)
	}
	if _, err := time.Parse(sessionTimeLayout, in.EndTime); err != nil {
		return errInvalidInput("end time must be in format %v", sessionTimeLayout)
	}
	return nil
}
