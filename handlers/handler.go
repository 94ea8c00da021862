package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"expo-webapp/model"
	"expo-webapp/notification"
	"expo-webapp/service"
)

type Handler struct {
	registration *service.RegistrationService
	users        service.IdentityStore
	notifier     notification.Dispatcher
}

func NewHandler(registration *service.RegistrationService, users service.IdentityStore, notifier notification.Dispatcher) *Handler {
	return &Handler{
		registration: registration,
		users:        users,
		notifier:     notifier,
	}
}

func tokenClaims(c *fiber.Ctx) jwt.MapClaims {
	token := c.Locals("identity").(*jwt.Token)
	return token.Claims.(jwt.MapClaims)
}

func roleFromToken(c *fiber.Ctx) string {
	role, _ := tokenClaims(c)["role"].(string)
	return role
}

func userIdFromToken(c *fiber.Ctx) string {
	userId, _ := tokenClaims(c)["userId"].(string)
	return userId
}

func isOrganizerRole(c *fiber.Ctx) bool {
	return roleFromToken(c) == model.RoleOrganizer
}

func isExhibitorRole(c *fiber.Ctx) bool {
	return roleFromToken(c) == model.RoleExhibitor
}
