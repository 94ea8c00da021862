// Package memstore is an in-memory implementation of the service store
// interfaces. It backs the tests and local runs without a Mongo instance,
// with the same guarded-update semantics as the mongo-backed store: every
// conditional mutation holds the store lock for its full check-and-write.
package memstore

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"expo-webapp/model"
	"expo-webapp/service"
)

var _ service.CatalogStore = (*Store)(nil)
var _ service.IdentityStore = (*Store)(nil)

type Store struct {
	mu sync.Mutex

	users          map[primitive.ObjectID]model.UserData
	attendees      map[primitive.ObjectID]model.Attendee
	attendeeByUser map[primitive.ObjectID]primitive.ObjectID
	expos          map[primitive.ObjectID]model.Expo
	booths         map[primitive.ObjectID]model.Booth
	boothNumbers   map[string]primitive.ObjectID
	sessions       map[primitive.ObjectID]model.Session
	exhibitors     map[primitive.ObjectID]model.Exhibitor
	companies      map[primitive.ObjectID]model.Company
	companyByUser  map[primitive.ObjectID]primitive.ObjectID
}

func New() *Store {
	return &Store{
		users:          make(map[primitive.ObjectID]model.UserData),
		attendees:      make(map[primitive.ObjectID]model.Attendee),
		attendeeByUser: make(map[primitive.ObjectID]primitive.ObjectID),
		expos:          make(map[primitive.ObjectID]model.Expo),
		booths:         make(map[primitive.ObjectID]model.Booth),
		boothNumbers:   make(map[string]primitive.ObjectID),
		sessions:       make(map[primitive.ObjectID]model.Session),
		exhibitors:     make(map[primitive.ObjectID]model.Exhibitor),
		companies:      make(map[primitive.ObjectID]model.Company),
		companyByUser:  make(map[primitive.ObjectID]primitive.ObjectID),
	}
}

// AddUser seeds an account into the identity store.
func (s *Store) AddUser(user model.UserData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Id] = user
}

func (s *Store) GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.UserData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, service.ErrNoDocument
	}
	return &user, nil
}

func (s *Store) GetUserByLogin(ctx context.Context, login string) (*model.UserData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Login == login {
			user := user
			return &user, nil
		}
	}
	return nil, service.ErrNoDocument
}

func (s *Store) InsertExpo(ctx context.Context, expo *model.Expo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expos[expo.Id] = copyExpo(*expo)
	return nil
}

func (s *Store) GetExpo(ctx context.Context, id primitive.ObjectID) (*model.Expo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expo, ok := s.expos[id]
	if !ok {
		return nil, service.ErrNoDocument
	}
	expo = copyExpo(expo)
	return &expo, nil
}

func (s *Store) ListExpos(ctx context.Context) ([]model.Expo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expos := make([]model.Expo, 0, len(s.expos))
	for _, expo := range s.expos {
		expos = append(expos, copyExpo(expo))
	}
	return expos, nil
}

func (s *Store) ListExposByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Expo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expos := make([]model.Expo, 0, len(ids))
	for _, id := range ids {
		if expo, ok := s.expos[id]; ok {
			expos = append(expos, copyExpo(expo))
		}
	}
	return expos, nil
}

func (s *Store) SetExpoBooths(ctx context.Context, expoID primitive.ObjectID, booths []primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	expo, ok := s.expos[expoID]
	if !ok {
		return service.ErrNoDocument
	}
	expo.Booths = append([]primitive.ObjectID{}, booths...)
	s.expos[expoID] = expo
	return nil
}

func (s *Store) DeleteExpo(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.expos, id)
	for boothID, booth := range s.booths {
		if booth.ExpoId == id {
			delete(s.boothNumbers, booth.BoothNumber)
			delete(s.booths, boothID)
		}
	}
	for sessionID, session := range s.sessions {
		if session.ExpoId == id {
			delete(s.sessions, sessionID)
		}
	}
	return nil
}

func (s *Store) InsertBooth(ctx context.Context, booth *model.Booth) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.boothNumbers[booth.BoothNumber]; taken {
		return service.ErrDuplicate
	}
	s.boothNumbers[booth.BoothNumber] = booth.Id
	s.booths[booth.Id] = *booth
	return nil
}

func (s *Store) GetBooth(ctx context.Context, id primitive.ObjectID) (*model.Booth, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	booth, ok := s.booths[id]
	if !ok {
		return nil, service.ErrNoDocument
	}
	return &booth, nil
}

func (s *Store) ListBoothsByExpo(ctx context.Context, expoID primitive.ObjectID) ([]model.Booth, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	booths := []model.Booth{}
	for _, booth := range s.booths {
		if booth.ExpoId == expoID {
			booths = append(booths, booth)
		}
	}
	return booths, nil
}

func (s *Store) SetBoothBooked(ctx context.Context, boothID primitive.ObjectID, booked bool, assignedTo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	booth, ok := s.booths[boothID]
	if !ok {
		return service.ErrNoDocument
	}
	booth.IsBooked = booked
	booth.AssignedTo = assignedTo
	s.booths[boothID] = booth
	return nil
}

func (s *Store) InsertSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Id] = *session
	return nil
}

func (s *Store) GetSession(ctx context.Context, id primitive.ObjectID) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, service.ErrNoDocument
	}
	return &session, nil
}

func (s *Store) ListSessionsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions := make([]model.Session, 0, len(ids))
	for _, id := range ids {
		if session, ok := s.sessions[id]; ok {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

func (s *Store) ListSessionsByExpoIDs(ctx context.Context, expoIDs []primitive.ObjectID) ([]model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions := []model.Session{}
	for _, session := range s.sessions {
		if containsID(expoIDs, session.ExpoId) {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

func (s *Store) ListSessionsExcludingExpoIDs(ctx context.Context, expoIDs []primitive.ObjectID) ([]model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions := []model.Session{}
	for _, session := range s.sessions {
		if !containsID(expoIDs, session.ExpoId) {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

func (s *Store) ReserveSessionSeat(ctx context.Context, sessionID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return false, service.ErrNoDocument
	}
	if session.RegisteredCount >= session.Capacity {
		return false, nil
	}
	session.RegisteredCount++
	s.sessions[sessionID] = session
	return true, nil
}

func (s *Store) ReleaseSessionSeat(ctx context.Context, sessionID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return service.ErrNoDocument
	}
	if session.RegisteredCount > 0 {
		session.RegisteredCount--
		s.sessions[sessionID] = session
	}
	return nil
}

func (s *Store) GetAttendeeByUser(ctx context.Context, userID primitive.ObjectID) (*model.Attendee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attendeeID, ok := s.attendeeByUser[userID]
	if !ok {
		return nil, service.ErrNoDocument
	}
	attendee := copyAttendee(s.attendees[attendeeID])
	return &attendee, nil
}

func (s *Store) InsertAttendee(ctx context.Context, attendee *model.Attendee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.attendeeByUser[attendee.UserId]; exists {
		return service.ErrDuplicate
	}
	s.attendees[attendee.Id] = copyAttendee(*attendee)
	s.attendeeByUser[attendee.UserId] = attendee.Id
	return nil
}

func (s *Store) AddExpoRegistration(ctx context.Context, attendeeID, expoID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attendee, ok := s.attendees[attendeeID]
	if !ok {
		return false, service.ErrNoDocument
	}
	if containsID(attendee.ExposRegistered, expoID) {
		return false, nil
	}
	attendee.ExposRegistered = append(attendee.ExposRegistered, expoID)
	s.attendees[attendeeID] = attendee
	return true, nil
}

func (s *Store) AddSessionRegistration(ctx context.Context, attendeeID, sessionID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attendee, ok := s.attendees[attendeeID]
	if !ok {
		return false, service.ErrNoDocument
	}
	if containsID(attendee.SessionsRegistered, sessionID) {
		return false, nil
	}
	attendee.SessionsRegistered = append(attendee.SessionsRegistered, sessionID)
	s.attendees[attendeeID] = attendee
	return true, nil
}

func (s *Store) AddBookmark(ctx context.Context, attendeeID, sessionID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attendee, ok := s.attendees[attendeeID]
	if !ok {
		return false, service.ErrNoDocument
	}
	if containsID(attendee.BookmarkedSessions, sessionID) {
		return false, nil
	}
	attendee.BookmarkedSessions = append(attendee.BookmarkedSessions, sessionID)
	s.attendees[attendeeID] = attendee
	return true, nil
}

func (s *Store) SetNotificationPreferences(ctx context.Context, attendeeID primitive.ObjectID, prefs model.NotificationPreferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	attendee, ok := s.attendees[attendeeID]
	if !ok {
		return service.ErrNoDocument
	}
	attendee.Preferences = prefs
	s.attendees[attendeeID] = attendee
	return nil
}

func (s *Store) InsertExhibitor(ctx context.Context, exhibitor *model.Exhibitor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exhibitors[exhibitor.Id] = *exhibitor
	return nil
}

func (s *Store) GetExhibitor(ctx context.Context, id primitive.ObjectID) (*model.Exhibitor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exhibitor, ok := s.exhibitors[id]
	if !ok {
		return nil, service.ErrNoDocument
	}
	return &exhibitor, nil
}

func (s *Store) ListExhibitorsByExpo(ctx context.Context, expoID primitive.ObjectID) ([]model.Exhibitor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exhibitors := []model.Exhibitor{}
	for _, exhibitor := range s.exhibitors {
		if exhibitor.ExpoId == expoID {
			exhibitors = append(exhibitors, exhibitor)
		}
	}
	return exhibitors, nil
}

func (s *Store) HasOpenBoothRequest(ctx context.Context, userID, expoID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, exhibitor := range s.exhibitors {
		if exhibitor.UserId == userID && exhibitor.ExpoId == expoID && exhibitor.Status != model.RequestRejected {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) SetExhibitorStatus(ctx context.Context, id primitive.ObjectID, from, to string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exhibitor, ok := s.exhibitors[id]
	if !ok {
		return false, service.ErrNoDocument
	}
	if exhibitor.Status != from {
		return false, nil
	}
	exhibitor.Status = to
	s.exhibitors[id] = exhibitor
	return true, nil
}

func (s *Store) InsertCompany(ctx context.Context, company *model.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.companyByUser[company.UserId]; exists {
		return service.ErrDuplicate
	}
	s.companies[company.Id] = *company
	s.companyByUser[company.UserId] = company.Id
	return nil
}

func (s *Store) GetCompany(ctx context.Context, id primitive.ObjectID) (*model.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	company, ok := s.companies[id]
	if !ok {
		return nil, service.ErrNoDocument
	}
	return &company, nil
}

func (s *Store) GetCompanyByUser(ctx context.Context, userID primitive.ObjectID) (*model.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	companyID, ok := s.companyByUser[userID]
	if !ok {
		return nil, service.ErrNoDocument
	}
	company := s.companies[companyID]
	return &company, nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func copyExpo(expo model.Expo) model.Expo {
	expo.Booths = append([]primitive.ObjectID{}, expo.Booths...)
	return expo
}

func copyAttendee(attendee model.Attendee) model.Attendee {
	attendee.ExposRegistered = append([]primitive.ObjectID{}, attendee.ExposRegistered...)
	attendee.SessionsRegistered = append([]primitive.ObjectID{}, attendee.SessionsRegistered...)
	attendee.BookmarkedSessions = append([]primitive.ObjectID{}, attendee.BookmarkedSessions...)
	return attendee
}
