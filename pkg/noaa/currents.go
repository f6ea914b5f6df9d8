package noaa

import (
	"encoding/json"
	"fmt"
	"time"
)

// CurrentPrediction holds a single current event: a flood or ebb peak, or a
// slack between them.
type CurrentPrediction struct {
	// Local time of the current event.
	Time Time `json:"Time"`
	// Signed major-axis velocity in cm/s. Flood is positive, ebb is
	// negative, slack is at or near zero.
	Velocity float64 `json:"Velocity_Major"`
	// Flood, ebb, or slack.
	Type Flow `json:"Type"`
}

var _ json.Unmarshaler = new(Flow)

// CurrentPredictions is a time series of CurrentPrediction, sorted ascending
// by time. NOAA data usually alternates flood/ebb with a slack between, but
// the curve engines never rely on that; occasional irregularities in the
// live feed degrade gracefully.
type CurrentPredictions []CurrentPrediction

// Sorted reports whether the series is ascending by time.
func (p CurrentPredictions) Sorted() bool {
	for i := 1; i < len(p); i++ {
		if time.Time(p[i].Time).Before(time.Time(p[i-1].Time)) {
			return false
		}
	}
	return true
}

// Flow encodes the phase of a current event.
type Flow uint

const (
	Flood Flow = iota
	Ebb
	Slack
)

func (f Flow) Valid() bool {
	return f == Flood || f == Ebb || f == Slack
}

// Peak reports whether the event is a velocity extremum. Slack is the only
// non-peak flow.
func (f Flow) Peak() bool {
	return f == Flood || f == Ebb
}

func (f *Flow) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("flow %q not a string: %w", buf, err)
	}
	switch s {
	case "flood":
		*f = Flood
	case "ebb":
		*f = Ebb
	case "slack":
		*f = Slack
	default:
		return fmt.Errorf("invalid flow type %q", s)
	}
	return nil
}

func (f Flow) MarshalJSON() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("invalid flow type %d", f)
	}
	return json.Marshal(f.String())
}

func (f Flow) String() string {
	switch f {
	case Flood:
		return "flood"
	case Ebb:
		return "ebb"
	case Slack:
		return "slack"
	default:
		return "invalid"
	}
}

func (p CurrentPrediction) String() string {
	return fmt.Sprintf("{t: %s, v: %f, type: %s}",
		time.Time(p.Time).Format(time.RFC822),
		p.Velocity,
		p.Type.String())
}
