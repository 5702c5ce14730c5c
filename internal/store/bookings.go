package store

import (
	"context"
	"fmt"
	"time"
)

type Booking struct {
	ID          int64     `db:"id"`
	RoomID      int64     `db:"room_id"`
	UserPhone   string    `db:"user_phone"`
	UserName    string    `db:"user_name"`
	CheckIn     time.Time `db:"check_in_date"`
	CheckOut    time.Time `db:"check_out_date"`
	TotalAmount float64   `db:"total_amount"`
	Status      string    `db:"status"`

	// RoomNumber is populated on reads that join against rooms.
	RoomNumber string `db:"room_number"`
}

const sqlGetRecentBookingsByPhone = `
SELECT b.id, b.room_id, b.user_phone, b.user_name, b.check_in_date, b.check_out_date,
       b.total_amount, b.status, r.room_number
FROM bookings b
JOIN rooms r ON r.id = b.room_id
WHERE b.user_phone = $1
ORDER BY b.id DESC`

// GetRecentBookings returns the caller's bookings, most recent first.
func (s *Store) GetRecentBookings(ctx context.Context, userPhone string) ([]Booking, error) {
	var bookings []Booking
	err := s.db.SelectContext(ctx, &bookings, sqlGetRecentBookingsByPhone, userPhone)
	if err != nil {
		s.logger.Error(ctx, "failed to get bookings by phone", err)
		return nil, fmt.Errorf("failed to get bookings by phone: %w", err)
	}
	return bookings, nil
}
