package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"expo-webapp/errors"
	"expo-webapp/service"
)

func (h *Handler) RegisterCompany(c *fiber.Ctx) error {
	if !isExhibitorRole(c) {
		return errors.RaisePermissionsError(c, "only exhibitor can perform this operation")
	}

	in := new(service.CompanyInput)
	if jsonErr := c.BodyParser(in); jsonErr != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unacceptable company parameters: %v", jsonErr))
	}

	company, err := h.registration.RegisterCompany(c.Context(), userIdFromToken(c), *in)
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "company registered",
		"data":    company})
}

func (h *Handler) GetCompany(c *fiber.Ctx) error {
	company, err := h.registration.GetCompanyByUser(c.Context(), userIdFromToken(c))
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	companyJson, jsonErr := json.MarshalIndent(company, "", "	")
	if jsonErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("json serialization error: %v", jsonErr))
	}

	return c.SendString(string(companyJson))
}

func (h *Handler) RequestBooth(c *fiber.Ctx) error {
	if !isExhibitorRole(c) {
		return errors.RaisePermissionsError(c, "only exhibitor can perform this operation")
	}

	in := new(service.BoothRequestInput)
	if jsonErr := c.BodyParser(in); jsonErr != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unacceptable booth request parameters: %v", jsonErr))
	}
	in.ExpoId = c.Params("expoId")
	in.BoothId = c.Params("boothId")

	request, err := h.registration.RequestBooth(c.Context(), userIdFromToken(c), *in)
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "booth request filed",
		"data":    request})
}

func (h *Handler) GetExpoRequests(c *fiber.Ctx) error {
	if !isOrganizerRole(c) {
		return errors.RaisePermissionsError(c, "only organizer can perform this operation")
	}

	requests, err := h.registration.ListBoothRequests(c.Context(), c.Params("expoId"))
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	requestsJson, jsonErr := json.MarshalIndent(requests, "", "	")
	if jsonErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("json serialization error: %v", jsonErr))
	}

	return c.SendString(string(requestsJson))
}

func (h *Handler) AcceptRequest(c *fiber.Ctx) error {
	if !isOrganizerRole(c) {
		return errors.RaisePermissionsError(c, "only organizer can perform this operation")
	}

	request, err := h.registration.AcceptExhibitorRequest(c.Context(), c.Params("requestId"))
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "booth request accepted",
		"data":    request})
}

func (h *Handler) RejectRequest(c *fiber.Ctx) error {
	if !isOrganizerRole(c) {
		return errors.RaisePermissionsError(c, "only organizer can perform this operation")
	}

	request, err := h.registration.RejectExhibitorRequest(c.Context(), c.Params("requestId"))
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "booth request rejected",
		"data":    request})
}
