package notification

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ContactExchange carries everything the accepted exhibitor needs to reach
// the organizer after a booth request is approved.
type ContactExchange struct {
	To               string
	ExpoName         string
	BoothNumber      string
	CompanyName      string
	OrganizerContact string
}

// Dispatcher is fire-and-forget: implementations log delivery failures and
// never surface them to the operation that triggered the message.
type Dispatcher interface {
	SendContactExchange(ctx context.Context, msg ContactExchange)
	SendOTP(ctx context.Context, to string, code string)
}

// GenerateOTP generates a 6-digit one-time code.
func GenerateOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

// LogDispatcher writes outbound mail to the log instead of an SMTP relay.
// Delivery transport is owned by an external collaborator; this keeps the
// message contract visible in every environment.
type LogDispatcher struct{}

func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

func (d *LogDispatcher) SendContactExchange(ctx context.Context, msg ContactExchange) {
	log.Info().
		Str("message_id", uuid.NewString()).
		Str("to", msg.To).
		Str("expo", msg.ExpoName).
		Str("booth", msg.BoothNumber).
		Str("company", msg.CompanyName).
		Str("organizer_contact", msg.OrganizerContact).
		Msg("contact exchange mail dispatched")
}

func (d *LogDispatcher) SendOTP(ctx context.Context, to string, code string) {
	log.Info().
		Str("message_id", uuid.NewString()).
		Str("to", to).
		Str("code", code).
		Msg("otp mail dispatched")
}
