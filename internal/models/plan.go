package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Text keeps the textual form of any JSON scalar: "3" and 3 both decode
// to "3", null decodes to "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		*t = Text(b)
	}
	return nil
}

func (t Text) String() string { return string(t) }

type PlanRequest struct {
	Destination string `json:"destination"`
	Duration    Text   `json:"duration"`
	Preferences string `json:"preferences"`
}

type PlanResponse struct {
	TravelPlan   string          `json:"travel_plan"`
	WeatherInfo  json.RawMessage `json:"weather_info"`
	LocationInfo LocationInfo    `json:"location_info"`
}

// PlanEvent announces a generated plan. It carries no plan text and no
// weather body.
type PlanEvent struct {
	ID          string    `json:"id"`
	Destination string    `json:"destination"`
	Duration    string    `json:"duration"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	GeneratedAt time.Time `json:"generated_at"`
}
