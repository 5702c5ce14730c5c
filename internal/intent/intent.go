package intent

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Known intent labels. The vocabulary is open: anything else is treated the
// same as IntentUnknown by the dialogue layer.
const (
	IntentBooking = "booking"
	IntentFood    = "food"
	IntentInquiry = "inquiry"
	IntentUnknown = "unknown"
)

// Entities carries whatever the extractor pulled out of the utterance.
// All fields are optional.
type Entities struct {
	RoomType  string   `json:"room_type,omitempty"`
	GuestName string   `json:"guest_name,omitempty"`
	CheckIn   string   `json:"check_in,omitempty"`
	CheckOut  string   `json:"check_out,omitempty"`
	FoodItems []string `json:"food_items,omitempty"`
	Quantity  int      `json:"quantity,omitempty"`
}

// Result is the outcome of intent extraction for one utterance.
type Result struct {
	Intent   string   `json:"intent"`
	Entities Entities `json:"entities"`
}

// Unknown is the degraded extraction result used whenever the provider fails
// or returns something unparseable.
func Unknown() Result {
	return Result{Intent: IntentUnknown}
}

// HasBookingDetails reports whether any booking-shaped entity was extracted.
func (e Entities) HasBookingDetails() bool {
	return e.RoomType != "" || e.GuestName != "" || e.CheckIn != "" || e.CheckOut != ""
}

// HasFoodDetails reports whether any food item was extracted.
func (e Entities) HasFoodDetails() bool {
	return len(e.FoodItems) > 0
}

// rawResult mirrors the JSON shape the model is prompted to return. Entity
// values come back in inconsistent types (quantity as string or number,
// food_items as string or array), so everything decodes through interface{}.
type rawResult struct {
	Intent   string                 `json:"intent"`
	Entities map[string]interface{} `json:"entities"`
}

// Parse decodes a model response into a Result. The decode is tolerant: it
// strips markdown code fences, accepts nested or flat date keys, and coerces
// mistyped entity values. A nil error does not imply every entity was present.
func Parse(raw string) (Result, error) {
	cleaned := stripCodeFence(raw)

	var r rawResult
	if err := json.Unmarshal([]byte(cleaned), &r); err != nil {
		return Unknown(), err
	}

	res := Result{Intent: strings.ToLower(strings.TrimSpace(r.Intent))}
	if res.Intent == "" {
		res.Intent = IntentUnknown
	}

	res.Entities.RoomType = asString(r.Entities["room_type"])
	res.Entities.GuestName = asString(r.Entities["guest_name"])
	res.Entities.CheckIn = asString(r.Entities["check_in"])
	res.Entities.CheckOut = asString(r.Entities["check_out"])
	if dates, ok := r.Entities["dates"].(map[string]interface{}); ok {
		if v := asString(dates["check_in"]); v != "" {
			res.Entities.CheckIn = v
		}
		if v := asString(dates["check_out"]); v != "" {
			res.Entities.CheckOut = v
		}
	}
	res.Entities.FoodItems = asStringSlice(r.Entities["food_items"])
	res.Entities.Quantity = asInt(r.Entities["quantity"])

	return res, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func asStringSlice(v interface{}) []string {
	switch t := v.(type) {
	case []interface{}:
		var out []string
		for _, item := range t {
			if s := asString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}
		}
	}
	return nil
}

func asInt(v interface{}) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return 0
}
