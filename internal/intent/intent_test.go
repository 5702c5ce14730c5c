package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		expected Result
	}{
		{
			name: "booking with flat date keys",
			raw:  `{"intent": "booking", "entities": {"room_type": "deluxe", "guest_name": "Priya", "check_in": "2026-09-01", "check_out": "2026-09-03"}}`,
			expected: Result{
				Intent: IntentBooking,
				Entities: Entities{
					RoomType:  "deluxe",
					GuestName: "Priya",
					CheckIn:   "2026-09-01",
					CheckOut:  "2026-09-03",
				},
			},
		},
		{
			name: "booking with nested dates object",
			raw:  `{"intent": "booking", "entities": {"guest_name": "Ravi", "dates": {"check_in": "2026-09-10", "check_out": "2026-09-12"}}}`,
			expected: Result{
				Intent: IntentBooking,
				Entities: Entities{
					GuestName: "Ravi",
					CheckIn:   "2026-09-10",
					CheckOut:  "2026-09-12",
				},
			},
		},
		{
			name: "food order inside markdown code fence",
			raw:  "```json\n{\"intent\": \"food\", \"entities\": {\"food_items\": [\"pizza\", \"coke\"], \"quantity\": 2}}\n```",
			expected: Result{
				Intent: IntentFood,
				Entities: Entities{
					FoodItems: []string{"pizza", "coke"},
					Quantity:  2,
				},
			},
		},
		{
			name: "single food item as bare string",
			raw:  `{"intent": "food", "entities": {"food_items": "sandwich"}}`,
			expected: Result{
				Intent:   IntentFood,
				Entities: Entities{FoodItems: []string{"sandwich"}},
			},
		},
		{
			name: "quantity as string",
			raw:  `{"intent": "food", "entities": {"food_items": ["tea"], "quantity": "3"}}`,
			expected: Result{
				Intent:   IntentFood,
				Entities: Entities{FoodItems: []string{"tea"}, Quantity: 3},
			},
		},
		{
			name:     "uppercase intent is normalized",
			raw:      `{"intent": "INQUIRY", "entities": {}}`,
			expected: Result{Intent: IntentInquiry},
		},
		{
			name:     "missing intent defaults to unknown",
			raw:      `{"entities": {"room_type": "suite"}}`,
			expected: Result{Intent: IntentUnknown, Entities: Entities{RoomType: "suite"}},
		},
		{
			name:     "entity values are trimmed",
			raw:      `{"intent": "booking", "entities": {"guest_name": "  Asha  "}}`,
			expected: Result{Intent: IntentBooking, Entities: Entities{GuestName: "Asha"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, res)
		})
	}
}

func TestParseInvalidJSON(t *testing.T) {
	t.Parallel()

	res, err := Parse("I'm sorry, I can't help with that.")
	assert.Error(t, err)
	assert.Equal(t, Unknown(), res)
}

func TestHasBookingDetails(t *testing.T) {
	t.Parallel()

	assert.False(t, Entities{}.HasBookingDetails())
	assert.True(t, Entities{RoomType: "deluxe"}.HasBookingDetails())
	assert.True(t, Entities{CheckIn: "2026-09-01"}.HasBookingDetails())
	assert.False(t, Entities{FoodItems: []string{"pizza"}}.HasBookingDetails())
}

func TestHasFoodDetails(t *testing.T) {
	t.Parallel()

	assert.False(t, Entities{}.HasFoodDetails())
	assert.True(t, Entities{FoodItems: []string{"pizza"}}.HasFoodDetails())
}
