package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"expo-webapp/errors"
	"expo-webapp/model"
)

func (h *Handler) RegisterForExpo(c *fiber.Ctx) error {
	attendee, err := h.registration.RegisterForExpo(c.Context(), userIdFromToken(c), c.Params("expoId"))
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "registered for expo",
		"data":    attendee})
}

func (h *Handler) RegisterForSession(c *fiber.Ctx) error {
	attendee, session, err := h.registration.RegisterForSession(c.Context(), userIdFromToken(c), c.Params("sessionId"))
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "registered for session",
		"data": fiber.Map{
			"attendee": attendee,
			"session":  session}})
}

func (h *Handler) BookmarkSession(c *fiber.Ctx) error {
	session, err := h.registration.BookmarkSession(c.Context(), userIdFromToken(c), c.Params("sessionId"))
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "session bookmarked",
		"data":    session})
}

func (h *Handler) UpdatePreferences(c *fiber.Ctx) error {
	prefs := new(model.NotificationPreferences)
	if jsonErr := c.BodyParser(prefs); jsonErr != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unacceptable notification preferences: %v", jsonErr))
	}

	updated, err := h.registration.UpdateNotificationPreferences(c.Context(), userIdFromToken(c), *prefs)
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "notification preferences updated",
		"data":    updated})
}

func (h *Handler) GetSchedule(c *fiber.Ctx) error {
	schedule, err := h.registration.GetUserSchedule(c.Context(), userIdFromToken(c))
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	scheduleJson, jsonErr := json.MarshalIndent(schedule, "", "	")
	if jsonErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("json serialization error: %v", jsonErr))
	}

	return c.SendString(string(scheduleJson))
}

func (h *Handler) GetUnregisteredSessions(c *fiber.Ctx) error {
	sessions, err := h.registration.ListUnregisteredSessions(c.Context(), userIdFromToken(c))
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	sessionsJson, jsonErr := json.MarshalIndent(sessions, "", "	")
	if jsonErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("json serialization error: %v", jsonErr))
	}

	return c.SendString(string(sessionsJson))
}

func (h *Handler) GetRegisteredSchedule(c *fiber.Ctx) error {
	schedule, err := h.registration.ListRegisteredSchedule(c.Context(), userIdFromToken(c))
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	scheduleJson, jsonErr := json.MarshalIndent(schedule, "", "	")
	if jsonErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("json serialization error: %v", jsonErr))
	}

	return c.SendString(string(scheduleJson))
}
