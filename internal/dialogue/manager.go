package dialogue

import (
	"context"
	"fmt"

	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/config"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/intent"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/observability"
)

const retryMessage = "Sorry, something went wrong on our side. Please try again."

// Manager routes one utterance to exactly one agent: the booking agent, the
// food agent, or the front desk. Entity presence overrides the stated intent
// label, so "unknown" with booking dates still reaches the booking agent.
type Manager struct {
	store     HotelStore
	frontDesk FrontDesk
	hotel     config.HotelConfig
	logger    *observability.Logger
}

func New(store HotelStore, frontDesk FrontDesk, hotel config.HotelConfig, logger *observability.Logger) *Manager {
	return &Manager{
		store:     store,
		frontDesk: frontDesk,
		hotel:     hotel,
		logger:    logger,
	}
}

// Resolve produces the reply text for one call turn. It never returns an
// error: data-store failures become a user-facing retry message and the
// front desk has a canned fallback, so the caller always hears something.
func (m *Manager) Resolve(ctx context.Context, transcript string, res intent.Result, callerID string) string {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "intent", Value: res.Intent},
		observability.Field{Key: "caller", Value: callerID},
	)

	switch {
	case res.Intent == intent.IntentFood || res.Entities.HasFoodDetails():
		return m.handleFood(ctx, res.Entities, callerID)
	case res.Intent == intent.IntentBooking || res.Entities.HasBookingDetails():
		return m.handleBooking(ctx, res.Entities, callerID)
	default:
		return m.handleInquiry(ctx, transcript)
	}
}

func (m *Manager) handleInquiry(ctx context.Context, transcript string) string {
	reply, err := m.frontDesk.Reply(ctx, transcript)
	if err != nil {
		m.logger.Error(ctx, "front desk reply failed, using canned fallback", err)
		return fmt.Sprintf("I can help with room bookings and food orders at %s. What would you like to do?", m.hotel.Name)
	}
	return reply
}

// amount renders a price the way the hotel speaks it: currency symbol, whole
// units only.
func (m *Manager) amount(v float64) string {
	return fmt.Sprintf("%s%d", m.hotel.CurrencySymbol, int64(v))
}
