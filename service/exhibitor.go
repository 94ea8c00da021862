package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"expo-webapp/model"
	"expo-webapp/notification"
)

var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type CompanyInput struct {
	CompanyName  string `json:"company_name"`
	Description  string `json:"description"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	DocumentRef  string `json:"document_ref"`
}

type BoothRequestInput struct {
	ExpoId             string `json:"expo_id"`
	BoothId            string `json:"booth_id"`
	ProductName        string `json:"product_name"`
	ProductDescription string `json:"product_description"`
}

// RegisterCompany creates the exhibitor's company profile. Each user gets
// at most one company.
func (s *RegistrationService) RegisterCompany(ctx context.Context, userIDHex string, in CompanyInput) (*model.Company, error) {
	userID, err := parseID("user id", userIDHex)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(in.CompanyName)) < 2 {
		return nil, errInvalidInput("company name is too short")
	}
	if !emailRegexp.MatchString(in.ContactEmail) {
		return nil, errInvalidInput("company contact email is not valid")
	}
	if !contactRegexp.MatchString(in.ContactPhone) {
		return nil, errInvalidInput("company contact phone must be exactly 10 digits")
	}

	company := &model.Company{
		Id:           primitive.NewObjectID(),
		UserId:       userID,
		CompanyName:  strings.TrimSpace(in.CompanyName),
		Description:  strings.TrimSpace(in.Description),
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		DocumentRef:  in.DocumentRef,
	}

	err = s.catalog.InsertCompany(ctx, company)
	if errors.Is(err, ErrDuplicate) {
		return nil, errConflict("user %v already has a registered company", userIDHex)
	}
	if err != nil {
		return nil, errDependency(err, "failed to create company")
	}
	return company, nil
}

// GetCompanyByUser returns the caller's company profile.
func (s *RegistrationService) GetCompanyByUser(ctx context.Context, userIDHex string) (*model.Company, error) {
	userID, err := parseID("user id", userIDHex)
	if err != nil {
		return nil, err
	}
	company, err := s.catalog.GetCompanyByUser(ctx, userID)
	if errors.Is(err, ErrNoDocument) {
		return nil, errNotFound("no company registered for user %v", userIDHex)
	}
	if err != nil {
		return nil, errDependency(err, "failed to read company")
	}
	return company, nil
}

// RequestBooth files a pending booth request for the exhibitor's company.
// The booth must belong to the expo and still be free, and the user may
// have only one open request per expo.
func (s *RegistrationService) RequestBooth(ctx context.Context, userIDHex string, in BoothRequestInput) (*model.Exhibitor, error) {
	userID, err := parseID("user id", userIDHex)
	if err != nil {
		return nil, err
	}
	expoID, err := parseID("expo id", in.ExpoId)
	if err != nil {
		return nil, err
	}
	boothID, err := parseID("booth id", in.BoothId)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(in.ProductName)) < 2 {
		return nil, errInvalidInput("product name is too short")
	}

	_, err = s.catalog.GetExpo(ctx, expoID)
	if errors.Is(err, ErrNoDocument) {
		return nil, errNotFound("expo %v not found", in.ExpoId)
	}
	if err != nil {
		return nil, errDependency(err, "failed to read expo")
	}

	booth, err := s.catalog.GetBooth(ctx, boothID)
	if errors.Is(err, ErrNoDocument) {
		return nil, errNotFound("booth %v not found", in.BoothId)
	}
	if err != nil {
		return nil, errDependency(err, "failed to read booth")
	}
	if booth.ExpoId != expoID {
		return nil, errInvalidInput("booth %v does not belong to expo %v", in.BoothId, in.ExpoId)
	}
	if booth.IsBooked {
		return nil, errConflict("booth %v is already booked", booth.BoothNumber)
	}

	company, err := s.catalog.GetCompanyByUser(ctx, userID)
	if errors.Is(err, ErrNoDocument) {
		return nil, errNotFound("no company registered for user %v, register a company first", userIDHex)
	}
	if err != nil {
		return nil, errDependency(err, "failed to read company")
	}

	open, err := s.catalog.HasOpenBoothRequest(ctx, userID, expoID)
	if err != nil {
		return nil, errDependency(err, "failed to read booth requests")
	}
	if open {
		return nil, errConflict("user %v already has an open booth request for expo %v", userIDHex, in.ExpoId)
	}

	request := &model.Exhibitor{
		Id:                 primitive.NewObjectID(),
		UserId:             userID,
		ExpoId:             expoID,
		BoothId:            boothID,
		CompanyId:          company.Id,
		ProductName:        strings.TrimSpace(in.ProductName),
		ProductDescription: strings.TrimSpace(in.ProductDescription),
		Status:             model.RequestPending,
	}
	if err := s.catalog.InsertExhibitor(ctx, request); err != nil {
		return nil, errDependency(err, "failed to create booth request")
	}
	return request, nil
}

// ListBoothRequests returns all requests filed against an expo.
func (s *RegistrationService) ListBoothRequests(ctx context.Context, expoIDHex string) ([]model.Exhibitor, error) {
	expoID, err := parseID("expo id", expoIDHex)
	if err != nil {
		return nil, err
	}
	requests, err := s.catalog.ListExhibitorsByExpo(ctx, expoID)
	if err != nil {
		return nil, errDependency(err, "failed to read booth requests")
	}
	return requests, nil
}

// AcceptExhibitorRequest moves a pending request to accepted and books the
// linked booth in the same operation, then mails the organizer's contact to
// the company. Accepting a request that is no longer pending is a conflict.
func (s *RegistrationService) AcceptExhibitorRequest(ctx context.Context, requestIDHex string) (*model.Exhibitor, error) {
	request, err := s.getRequest(ctx, requestIDHex)
	if err != nil {
		return nil, err
	}

	company, err := s.catalog.GetCompany(ctx, request.CompanyId)
	if errors.Is(err, ErrNoDocument) {
		return nil, errNotFound("company %v not found", request.CompanyId.Hex())
	}
	if err != nil {
		return nil, errDependency(err, "failed to read company")
	}

	moved, err := s.catalog.SetExhibitorStatus(ctx, request.Id, model.RequestPending, model.RequestAccepted)
	if err != nil {
		return nil, errDependency(err, "failed to update booth request")
	}
	if !moved {
		return nil, errConflict("booth request %v was already reviewed", requestIDHex)
	}

	if err := s.catalog.SetBoothBooked(ctx, request.BoothId, true, company.CompanyName); err != nil {
		// Roll the request back so booth and request state stay in step.
		if _, revertErr := s.catalog.SetExhibitorStatus(ctx, request.Id, model.RequestAccepted, model.RequestPending); revertErr != nil {
			return nil, errPartialFailure(revertErr,
				"request accepted but booking the booth failed and the request could not be reverted")
		}
		return nil, errDependency(err, "failed to book the booth")
	}

	request.Status = model.RequestAccepted
	s.sendContactExchange(ctx, request, company)
	return request, nil
}

// RejectExhibitorRequest moves a pending request to rejected. The booth was
// never booked for a pending request, so no booth write is needed.
func (s *RegistrationService) RejectExhibitorRequest(ctx context.Context, requestIDHex string) (*model.Exhibitor, error) {
	request, err := s.getRequest(ctx, requestIDHex)
	if err != nil {
		return nil, err
	}

	moved, err := s.catalog.SetExhibitorStatus(ctx, request.Id, model.RequestPending, model.RequestRejected)
	if err != nil {
		return nil, errDependency(err, "failed to update booth request")
	}
	if !moved {
		return nil, errConflict("booth request %v was already reviewed", requestIDHex)
	}

	request.Status = model.RequestRejected
	return request, nil
}

func (s *RegistrationService) getRequest(ctx context.Context, requestIDHex string) (*model.Exhibitor, error) {
	requestID, err := parseID("request id", requestIDHex)
	if err != nil {
		return nil, err
	}
	request, err := s.catalog.GetExhibitor(ctx, requestID)
	if errors.Is(err, ErrNoDocument) {
		return nil, errNotFound("booth request %v not found", requestIDHex)
	}
	if err != nil {
		return nil, errDependency(err, "failed to read booth request")
	}
	return request, nil
}

func (s *RegistrationService) sendContactExchange(ctx context.Context, request *model.Exhibitor, company *model.Company) {
	if s.notifier == nil {
		return
	}

	msg := notification.ContactExchange{
		To:          company.ContactEmail,
		CompanyName: company.CompanyName,
	}
	if expo, err := s.catalog.GetExpo(ctx, request.ExpoId); err == nil {
		msg.ExpoName = expo.ExpoName
		msg.OrganizerContact = expo.OrganizerContact
	}
	if booth, err := s.catalog.GetBooth(ctx, request.BoothId); err == nil {
		msg.BoothNumber = booth.BoothNumber
	}
	s.notifier.SendContactExchange(ctx, msg)
}
