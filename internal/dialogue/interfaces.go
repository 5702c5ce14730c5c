package dialogue

import (
	"context"

	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/store"
)

// HotelStore defines the database operations required by the dialogue agents
type HotelStore interface {
	GetAvailableRooms(ctx context.Context, roomType string) ([]store.Room, error)
	ReserveRoomAndBook(ctx context.Context, params store.ReserveRoomParams) (store.Booking, error)
	GetRecentBookings(ctx context.Context, userPhone string) ([]store.Booking, error)
	GetFoodMenu(ctx context.Context) ([]store.FoodMenuItem, error)
	GetFoodPrice(ctx context.Context, itemName string) (float64, error)
	PlaceOrder(ctx context.Context, bookingID int64, roomNumber, foodItem string, quantity int, price float64) (store.Order, error)
}

// FrontDesk produces a free-form reply for turns no tool-backed agent claims
type FrontDesk interface {
	Reply(ctx context.Context, transcript string) (string, error)
}
