package store

import (
	"context"
	"fmt"
)

type Order struct {
	ID         int64   `db:"id"`
	BookingID  int64   `db:"booking_id"`
	RoomNumber string  `db:"room_number"`
	FoodItem   string  `db:"food_item"`
	Quantity   int     `db:"quantity"`
	Price      float64 `db:"price"` // line total, not unit price
	Status     string  `db:"status"`
}

const sqlPlaceOrder = `
INSERT INTO orders (booking_id, room_number, food_item, quantity, price, status)
VALUES ($1, $2, $3, $4, $5, 'ordered')
RETURNING id, booking_id, room_number, food_item, quantity, price, status`

// PlaceOrder records one order row for one menu item.
func (s *Store) PlaceOrder(ctx context.Context, bookingID int64, roomNumber, foodItem string, quantity int, price float64) (Order, error) {
	var order Order
	err := s.db.GetContext(ctx, &order, sqlPlaceOrder, bookingID, roomNumber, foodItem, quantity, price)
	if err != nil {
		s.logger.Error(ctx, "failed to place order", err)
		return Order{}, fmt.Errorf("failed to place order: %w", err)
	}
	return order, nil
}
