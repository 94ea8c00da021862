package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"expo-webapp/errors"
	"expo-webapp/service"
)

func (h *Handler) CreateExpo(c *fiber.Ctx) error {
	if !isOrganizerRole(c) {
		return errors.RaisePermissionsError(c, "only organizer can perform this operation")
	}

	in := new(service.CreateExpoInput)
	if jsonErr := c.BodyParser(in); jsonErr != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unacceptable expo parameters: %v", jsonErr))
	}

	expo, err := h.registration.CreateExpo(c.Context(), *in)
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "expo created",
		"data":    expo})
}

func (h *Handler) GetExpos(c *fiber.Ctx) error {
	expos, err := h.registration.ListExpos(c.Context())
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	exposJson, jsonErr := json.MarshalIndent(expos, "", "	")
	if jsonErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("json serialization error: %v", jsonErr))
	}

	return c.SendString(string(exposJson))
}

func (h *Handler) GetExpo(c *fiber.Ctx) error {
	expo, booths, err := h.registration.GetExpoWithBooths(c.Context(), c.Params("expoId"))
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	expoJson, jsonErr := json.MarshalIndent(fiber.Map{"expo": expo, "booths": booths}, "", "	")
	if jsonErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("json serialization error: %v", jsonErr))
	}

	return c.SendString(string(expoJson))
}

func (h *Handler) DeleteExpo(c *fiber.Ctx) error {
	if !isOrganizerRole(c) {
		return errors.RaisePermissionsError(c, "only organizer can perform this operation")
	}

	if err := h.registration.DeleteExpo(c.Context(), c.Params("expoId")); err != nil {
		return errors.RaiseServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "entity deleted",
		"data":    fmt.Sprintf("expo with id %v was deleted", c.Params("expoId"))})
}

func (h *Handler) CreateSession(c *fiber.Ctx) error {
	if !isOrganizerRole(c) {
		return errors.RaisePermissionsError(c, "only organizer can perform this operation")
	}

	in := new(service.CreateSessionInput)
	if jsonErr := c.BodyParser(in); jsonErr != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unacceptable session parameters: %v", jsonErr))
	}
	in.ExpoId = c.Params("expoId")

	session, err := h.registration.CreateSession(c.Context(), *in)
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "session created",
		"data":    session})
}

func (h *Handler) GetExpoSessions(c *fiber.Ctx) error {
	sessions, err := h.registration.ListExpoSessions(c.Context(), c.Params("expoId"))
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	sessionsJson, jsonErr := json.MarshalIndent(sessions, "", "	")
	if jsonErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("json serialization error: %v", jsonErr))
	}

	return c.SendString(string(sessionsJson))
}
