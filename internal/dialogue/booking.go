package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/intent"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/store"
)

const dateLayout = "2006-01-02"

func (m *Manager) handleBooking(ctx context.Context, ents intent.Entities, callerID string) string {
	rooms, err := m.store.GetAvailableRooms(ctx, ents.RoomType)
	if err != nil {
		return retryMessage
	}
	if len(rooms) == 0 {
		if ents.RoomType != "" {
			return fmt.Sprintf("Sorry, no %s rooms are available right now.", ents.RoomType)
		}
		return "Sorry, no rooms are available right now."
	}

	if ents.GuestName != "" && ents.CheckIn != "" && ents.CheckOut != "" {
		return m.bookRoom(ctx, rooms[0], ents, callerID)
	}

	return m.promptForMissing(rooms, ents)
}

func (m *Manager) bookRoom(ctx context.Context, room store.Room, ents intent.Entities, callerID string) string {
	checkIn, err := time.Parse(dateLayout, ents.CheckIn)
	if err != nil {
		return "I could not understand the check-in date. Could you say it again, for example June first twenty twenty five?"
	}
	checkOut, err := time.Parse(dateLayout, ents.CheckOut)
	if err != nil {
		return "I could not understand the check-out date. Could you say it again?"
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights <= 0 {
		return "The check-out date must be after the check-in date. Could you give me the dates again?"
	}

	total := room.Price * float64(nights)
	booking, err := m.store.ReserveRoomAndBook(ctx, store.ReserveRoomParams{
		RoomID:      room.ID,
		UserPhone:   callerID,
		UserName:    ents.GuestName,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		TotalAmount: total,
	})
	if errors.Is(err, store.ErrRoomUnavailable) {
		return "That room was just taken. Please try again and I will find you another one."
	}
	if err != nil {
		return retryMessage
	}

	return fmt.Sprintf("Room %s booked for %s from %s to %s. Total: %s.",
		booking.RoomNumber, ents.GuestName, ents.CheckIn, ents.CheckOut, m.amount(total))
}

// promptForMissing lists up to 3 sample rooms and names the missing fields in
// a fixed order: name, check-in date, check-out date.
func (m *Manager) promptForMissing(rooms []store.Room, ents intent.Entities) string {
	var missing []string
	if ents.GuestName == "" {
		missing = append(missing, "your name")
	}
	if ents.CheckIn == "" {
		missing = append(missing, "check-in date")
	}
	if ents.CheckOut == "" {
		missing = append(missing, "check-out date")
	}

	samples := rooms
	if len(samples) > 3 {
		samples = samples[:3]
	}
	var descriptions []string
	for _, r := range samples {
		descriptions = append(descriptions, fmt.Sprintf("%s(%s,%s)", r.RoomNumber, r.RoomType, m.amount(r.Price)))
	}

	return fmt.Sprintf("We have: %s. Please provide %s to complete booking.",
		strings.Join(descriptions, ", "), strings.Join(missing, ", "))
}
