package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"expo-webapp/config"
	"expo-webapp/notification"
	"expo-webapp/service"
)

func isPasswordHashCorrect(dbHash, pass string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(dbHash), []byte(pass))
	return err == nil
}

func (h *Handler) Login(c *fiber.Ctx) error {
	type Credentials struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}

	var creds = new(Credentials)

	if err := c.BodyParser(&creds); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Error on login request when parse credentials",
			"data":    nil})
	}

	user, geterr := h.users.GetUserByLogin(c.Context(), creds.Login)
	if errors.Is(geterr, service.ErrNoDocument) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid login or password",
			"data":    nil})
	}
	if geterr != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Error on login request when comparing user data",
			"data":    nil})
	}

	if !isPasswordHashCorrect(user.HashedPassword, creds.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid login or password",
			"data":    nil})
	}

	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = user.Login
	claims["userId"] = user.Id.Hex()
	claims["exp"] = time.Now().Add(time.Hour * 8).Unix()
	claims["role"] = user.Role

	sign, enverr := config.GetSecret("SIGN")
	if enverr != nil {
		log.Error().Err(enverr).Msg("signing secret is not configured")
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	t, err := token.SignedString([]byte(sign))
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	// Sign-in alert, fire-and-forget.
	if h.notifier != nil && user.Email != "" {
		go h.notifier.SendOTP(context.Background(), user.Email, notification.GenerateOTP())
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Success login", "data": t})
}
