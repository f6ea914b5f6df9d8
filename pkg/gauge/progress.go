package gauge

import (
	"fmt"
	"time"

	"github.com/spencer-p/tidewatch/pkg/noaa"
	"github.com/spencer-p/tidewatch/pkg/timetricks"
)

// WaterLevel is a tide gauge reading: a transient view model built fresh
// per query and never persisted.
type WaterLevel struct {
	// Time is the instant this reading describes.
	Time time.Time `json:"time"`
	// Height is the interpolated water level in meters.
	Height float64 `json:"height"`
	// Fraction positions the level between the bracketing extrema on a
	// 0 (low) to 1 (high) scale.
	Fraction float64 `json:"fraction"`
	// Next is the upcoming tide event strictly after Time.
	Next noaa.Prediction `json:"next"`
}

func (wl *WaterLevel) String() string {
	return fmt.Sprintf("%.2f m, %s in %s",
		wl.Height,
		tideName(wl.Next.Type),
		timetricks.Countdown(wl.Time, time.Time(wl.Next.Time)))
}

// Current is a current gauge reading, the flood/ebb counterpart of
// WaterLevel.
type Current struct {
	// Time is the instant this reading describes.
	Time time.Time `json:"time"`
	// Velocity is the interpolated signed velocity in cm/s, flood
	// positive.
	Velocity float64 `json:"velocity"`
	// Fraction positions the flow on a 0 (max ebb) to 1 (max flood)
	// gauge.
	Fraction float64 `json:"fraction"`
	// Next is the upcoming current event strictly after Time, slacks
	// included.
	Next noaa.CurrentPrediction `json:"next"`
}

func (c *Current) String() string {
	return fmt.Sprintf("%.1f cm/s, %s in %s",
		c.Velocity,
		flowName(c.Next.Type),
		timetricks.Countdown(c.Time, time.Time(c.Next.Time)))
}

func tideName(t noaa.Tide) string {
	switch t {
	case noaa.HighTide:
		return "high tide"
	case noaa.LowTide:
		return "low tide"
	default:
		return "unknown"
	}
}

func flowName(f noaa.Flow) string {
	switch f {
	case noaa.Flood:
		return "max flood"
	case noaa.Ebb:
		return "max ebb"
	case noaa.Slack:
		return "slack"
	default:
		return "unknown"
	}
}
