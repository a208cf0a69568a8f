package emergency

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/matricare/matricare/internal/platform/sms"
)

// DefaultMessage is sent when the user taps the emergency button.
const DefaultMessage = "Emergency: please contact this user immediately."

// ContactSource resolves a user's configured alert recipients.
type ContactSource interface {
	EmergencyContacts(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type Service struct {
	contacts        ContactSource
	dispatcher      sms.Dispatcher
	fallbackNumbers []string
	logger          zerolog.Logger
}

// NewService builds the manual-alert service. fallbackNumbers are used
// when the user has no contacts configured; the slice may be empty.
func NewService(contacts ContactSource, dispatcher sms.Dispatcher, fallbackNumbers []string, logger zerolog.Logger) *Service {
	return &Service{
		contacts:        contacts,
		dispatcher:      dispatcher,
		fallbackNumbers: fallbackNumbers,
		logger:          logger,
	}
}

// Trigger sends the emergency SMS to the user's contacts. Delivery
// results are returned per recipient; a failed delivery is reported, not
// raised as an error.
func (s *Service) Trigger(ctx context.Context, userID uuid.UUID) ([]sms.DeliveryResult, error) {
	numbers, err := s.contacts.EmergencyContacts(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(numbers) == 0 {
		numbers = s.fallbackNumbers
	}
	if len(numbers) == 0 {
		s.logger.Warn().Str("user_id", userID.String()).Msg("emergency trigger with no contacts configured")
		return nil, nil
	}

	s.logger.Info().Str("user_id", userID.String()).Int("recipients", len(numbers)).Msg("emergency alert triggered")
	results := s.dispatcher.Send(ctx, numbers, DefaultMessage)
	for _, res := range results {
		if !res.Delivered {
			s.logger.Error().Str("recipient", res.Recipient).Str("error", res.Error).Msg("emergency sms not delivered")
		}
	}
	return results, nil
}
