package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type FoodMenuItem struct {
	ID       int64   `db:"id"`
	ItemName string  `db:"item_name"`
	Price    float64 `db:"price"`
}

const sqlGetFoodMenu = `
SELECT id, item_name, price FROM food_menu ORDER BY id`

// GetFoodMenu returns the full menu.
func (s *Store) GetFoodMenu(ctx context.Context) ([]FoodMenuItem, error) {
	var items []FoodMenuItem
	if err := s.db.SelectContext(ctx, &items, sqlGetFoodMenu); err != nil {
		s.logger.Error(ctx, "failed to get food menu", err)
		return nil, fmt.Errorf("failed to get food menu: %w", err)
	}
	return items, nil
}

const sqlGetFoodPrice = `
SELECT price FROM food_menu WHERE LOWER(item_name) = LOWER($1)`

// GetFoodPrice returns the unit price of a menu item, or ErrNotFound when the
// item is not on the menu.
func (s *Store) GetFoodPrice(ctx context.Context, itemName string) (float64, error) {
	var price float64
	err := s.db.GetContext(ctx, &price, sqlGetFoodPrice, itemName)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		s.logger.Error(ctx, "failed to get food price", err)
		return 0, fmt.Errorf("failed to get food price: %w", err)
	}
	return price, nil
}
