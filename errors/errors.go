package errors

import (
	"github.com/gofiber/fiber/v2"

	"expo-webapp/service"
)

func RaiseError(context *fiber.Ctx, status int, message string, data string) error {
	return context.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"data":    data})
}

func RaisePermissionsError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusUnauthorized, "lack of permissions", data)
}

func RaiseInternalServerError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusInternalServerError, "internal error", data)
}

func RaiseBadRequestError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusBadRequest, "bad request", data)
}

func RaiseNotFoundError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusNotFound, "resource not found", data)
}

func RaiseConflictError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusConflict, "conflict", data)
}

// RaiseServiceError maps a service failure kind onto the matching status
// code and envelope.
func RaiseServiceError(context *fiber.Ctx, err error) error {
	switch service.KindOf(err) {
	case service.KindInvalidInput, service.KindInvalidID:
		return RaiseBadRequestError(context, err.Error())
	case service.KindNotFound:
		return RaiseNotFoundError(context, err.Error())
	case service.KindConflict:
		return RaiseConflictError(context, err.Error())
	default:
		return RaiseInternalServerError(context, err.Error())
	}
}
