package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/config"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/intent"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/store"
)

func (m *Manager) handleFood(ctx context.Context, ents intent.Entities, callerID string) string {
	if len(ents.FoodItems) == 0 {
		return m.renderMenu(ctx)
	}

	bookings, err := m.store.GetRecentBookings(ctx, callerID)
	if err != nil {
		return retryMessage
	}
	if len(bookings) == 0 {
		return "I could not find a booking under your number. Please tell me your room number so I can deliver the order."
	}
	booking := bookings[0]

	// Quantity applies uniformly to every item in the order.
	quantity := ents.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	var orderedLines []string
	var unknownItems []string
	var total float64
	for _, item := range ents.FoodItems {
		unitPrice, err := m.store.GetFoodPrice(ctx, item)
		if errors.Is(err, store.ErrNotFound) {
			if m.hotel.UnknownItemPolicy == config.UnknownItemFallback {
				unitPrice = m.hotel.FallbackItemPrice
			} else {
				unknownItems = append(unknownItems, item)
				continue
			}
		} else if err != nil {
			return retryMessage
		}

		lineTotal := unitPrice * float64(quantity)
		if _, err := m.store.PlaceOrder(ctx, booking.ID, booking.RoomNumber, item, quantity, lineTotal); err != nil {
			return retryMessage
		}
		total += lineTotal
		orderedLines = append(orderedLines, fmt.Sprintf("%dx %s", quantity, item))
	}

	if len(orderedLines) == 0 {
		return fmt.Sprintf("Sorry, we do not have %s on our menu. %s",
			strings.Join(unknownItems, ", "), m.renderMenu(ctx))
	}

	reply := fmt.Sprintf("Ordered %s for room %s. Total: %s. It will arrive soon.",
		strings.Join(orderedLines, ", "), booking.RoomNumber, m.amount(total))
	if len(unknownItems) > 0 {
		reply += fmt.Sprintf(" We do not have %s on our menu.", strings.Join(unknownItems, ", "))
	}
	return reply
}

func (m *Manager) renderMenu(ctx context.Context) string {
	menu, err := m.store.GetFoodMenu(ctx)
	if err != nil {
		return retryMessage
	}
	if len(menu) == 0 {
		return "The menu is currently unavailable."
	}
	var lines []string
	for _, item := range menu {
		lines = append(lines, fmt.Sprintf("%s %s", item.ItemName, m.amount(item.Price)))
	}
	return "Our menu: " + strings.Join(lines, ". ") + "."
}
