package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type Room struct {
	ID          int64   `db:"id"`
	RoomNumber  string  `db:"room_number"`
	RoomType    string  `db:"room_type"`
	Price       float64 `db:"price"`
	IsAvailable bool    `db:"is_available"`
}

const sqlGetAvailableRooms = `
SELECT id, room_number, room_type, price, is_available
FROM rooms
WHERE is_available = TRUE
ORDER BY id`

const sqlGetAvailableRoomsByType = `
SELECT id, room_number, room_type, price, is_available
FROM rooms
WHERE is_available = TRUE AND room_type = $1
ORDER BY id`

// GetAvailableRooms lists available rooms, optionally filtered by room type.
// Order is deterministic so the booking agent's "first available" pick is too.
func (s *Store) GetAvailableRooms(ctx context.Context, roomType string) ([]Room, error) {
	var rooms []Room
	var err error
	if roomType == "" {
		err = s.db.SelectContext(ctx, &rooms, sqlGetAvailableRooms)
	} else {
		err = s.db.SelectContext(ctx, &rooms, sqlGetAvailableRoomsByType, roomType)
	}
	if err != nil {
		s.logger.Error(ctx, "failed to get available rooms", err)
		return nil, fmt.Errorf("failed to get available rooms: %w", err)
	}
	return rooms, nil
}

// ReserveRoomParams carries everything needed to commit a booking.
type ReserveRoomParams struct {
	RoomID      int64
	UserPhone   string
	UserName    string
	CheckIn     time.Time
	CheckOut    time.Time
	TotalAmount float64
}

const sqlLockRoomForUpdate = `
SELECT id, room_number, room_type, price, is_available
FROM rooms
WHERE id = $1
FOR UPDATE`

const sqlInsertBooking = `
INSERT INTO bookings (room_id, user_phone, user_name, check_in_date, check_out_date, total_amount, status)
VALUES ($1, $2, $3, $4, $5, $6, 'confirmed')
RETURNING id, room_id, user_phone, user_name, check_in_date, check_out_date, total_amount, status`

const sqlMarkRoomUnavailable = `
UPDATE rooms SET is_available = FALSE WHERE id = $1`

// ReserveRoomAndBook reserves a room and records the booking as one atomic
// unit. The row lock makes the availability check, the booking insert, and
// the availability flip a single critical section, so two concurrent callers
// cannot both book the last available room.
func (s *Store) ReserveRoomAndBook(ctx context.Context, params ReserveRoomParams) (Booking, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.Error(ctx, "failed to begin booking transaction", err)
		return Booking{}, fmt.Errorf("failed to begin booking transaction: %w", err)
	}
	defer tx.Rollback()

	var room Room
	if err := tx.GetContext(ctx, &room, sqlLockRoomForUpdate, params.RoomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Booking{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to lock room", err)
		return Booking{}, fmt.Errorf("failed to lock room: %w", err)
	}
	if !room.IsAvailable {
		return Booking{}, ErrRoomUnavailable
	}

	var booking Booking
	err = tx.GetContext(ctx, &booking, sqlInsertBooking,
		params.RoomID, params.UserPhone, params.UserName,
		params.CheckIn, params.CheckOut, params.TotalAmount)
	if err != nil {
		s.logger.Error(ctx, "failed to insert booking", err)
		return Booking{}, fmt.Errorf("failed to insert booking: %w", err)
	}

	if _, err := tx.ExecContext(ctx, sqlMarkRoomUnavailable, params.RoomID); err != nil {
		s.logger.Error(ctx, "failed to mark room unavailable", err)
		return Booking{}, fmt.Errorf("failed to mark room unavailable: %w", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error(ctx, "failed to commit booking transaction", err)
		return Booking{}, fmt.Errorf("failed to commit booking transaction: %w", err)
	}
	booking.RoomNumber = room.RoomNumber
	return booking, nil
}
