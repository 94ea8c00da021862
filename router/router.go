package router

import (
	"expo-webapp/handlers"
	"expo-webapp/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App, h *handlers.Handler) {
	api := app.Group("/", logger.New())

	//Login
	login := api.Group("/login")
	login.Post("/", h.Login)

	authorized := api.Group("/", middleware.Authorize())

	//Expo
	expo := authorized.Group("/expo")
	expo.Get("/", h.GetExpos)
	expo.Get("/:expoId", h.GetExpo)
	expo.Post("/", h.CreateExpo)
	expo.Delete("/:expoId", h.DeleteExpo)
	expo.Post("/:expoId/session", h.CreateSession)
	expo.Get("/:expoId/session", h.GetExpoSessions)
	expo.Post("/:expoId/register", h.RegisterForExpo)
	expo.Get("/:expoId/requests", h.GetExpoRequests)
	expo.Post("/:expoId/booth/:boothId/request", h.RequestBooth)

	//Session
	session := authorized.Group("/session")
	session.Post("/:sessionId/register", h.RegisterForSession)
	session.Post("/:sessionId/bookmark", h.BookmarkSession)

	//Attendee
	attendee := authorized.Group("/attendee")
	attendee.Get("/schedule", h.GetSchedule)
	attendee.Get("/sessions/unregistered", h.GetUnregisteredSessions)
	attendee.Get("/sessions/registered", h.GetRegisteredSchedule)
	attendee.Patch("/preferences", h.UpdatePreferences)

	//Company
	company := authorized.Group("/company")
	company.Post("/", h.RegisterCompany)
	company.Get("/", h.GetCompany)

	//Exhibitor requests
	request := authorized.Group("/request")
	request.Patch("/:requestId/accept", h.AcceptRequest)
	request.Patch("/:requestId/reject", h.RejectRequest)
}
