// Package gauge turns raw curve evaluations into view models for gauges and
// countdown UI: an instantaneous value, a normalized 0..1 fraction, and the
// next upcoming event. Every function takes the query instant explicitly
// and never touches the wall clock, so results are deterministic.
package gauge

import (
	"math"
	"sort"
	"time"

	"github.com/spencer-p/tidewatch/pkg/noaa"
	"github.com/spencer-p/tidewatch/pkg/noaa/splines"
)

// WaterLevelAt composes a tide gauge reading at time t. ok is false when t
// is outside the prediction window or fewer than two predictions exist;
// callers must treat that as "unknown", not as zero.
func WaterLevelAt(preds noaa.Predictions, t time.Time) (WaterLevel, bool) {
	height, ok := splines.CurvesBetween(preds).Eval(t)
	if !ok {
		return WaterLevel{}, false
	}

	next := indexOfFirstTideAfter(preds, t)
	if next <= 0 {
		// Unreachable while the spline is defined, which requires a
		// bracketing pair.
		return WaterLevel{}, false
	}
	prev := preds[next-1]

	lo := math.Min(float64(prev.Height), float64(preds[next].Height))
	hi := math.Max(float64(prev.Height), float64(preds[next].Height))
	fraction := 0.5
	if hi > lo {
		fraction = clamp01((height - lo) / (hi - lo))
	}

	return WaterLevel{
		Time:     t,
		Height:   height,
		Fraction: fraction,
		Next:     preds[next],
	}, true
}

// CurrentAt composes a current gauge reading at time t using the canonical
// Hermite curve.
func CurrentAt(preds noaa.CurrentPredictions, t time.Time) (Current, bool) {
	return CurrentAtWith(splines.Hermite, preds, t)
}

// CurrentAtWith is CurrentAt with an explicit curve strategy.
//
// The fraction is a flood-ebb gauge: 0 at max ebb, 1 at max flood, moving
// linearly in TIME between the peaks on either side of t. Slack events do
// not define the span — a slack between two peaks would otherwise dominate
// the bar — but the literal Next event does include slacks, so a user
// approaching one sees "slack in 12m" rather than the far-away next peak.
func CurrentAtWith(strategy splines.Strategy, preds noaa.CurrentPredictions, t time.Time) (Current, bool) {
	velocity, ok := splines.CurrentCurvesWith(strategy, preds).Eval(t)
	if !ok {
		return Current{}, false
	}

	next := indexOfFirstCurrentAfter(preds, t)
	if next <= 0 {
		return Current{}, false
	}

	nextPk := nextPeakAfter(preds, t)
	if nextPk < 0 {
		// End of the data window: no peak to aim the gauge at.
		return Current{}, false
	}

	// With no preceding peak (a window opening on slack), the span degrades
	// to begin at the first event.
	spanStart := time.Time(preds[0].Time)
	if prevPk := lastPeakAtOrBefore(preds, t); prevPk >= 0 {
		spanStart = time.Time(preds[prevPk].Time)
	}

	spanEnd := time.Time(preds[nextPk].Time)
	f := 1.0
	if span := spanEnd.Sub(spanStart); span > 0 {
		f = clamp01(float64(t.Sub(spanStart)) / float64(span))
	}
	if preds[nextPk].Type == noaa.Ebb {
		// Drain toward ebb, fill toward flood.
		f = 1 - f
	}

	return Current{
		Time:     t,
		Velocity: velocity,
		Fraction: f,
		Next:     preds[next],
	}, true
}

// indexOfFirstTideAfter returns the index of the first prediction strictly
// after t, or -1 if there is none.
func indexOfFirstTideAfter(preds noaa.Predictions, t time.Time) int {
	i := sort.Search(len(preds), func(i int) bool {
		return time.Time(preds[i].Time).After(t)
	})
	if i >= len(preds) {
		return -1
	}
	return i
}

// indexOfFirstCurrentAfter is indexOfFirstTideAfter for the current series.
func indexOfFirstCurrentAfter(preds noaa.CurrentPredictions, t time.Time) int {
	i := sort.Search(len(preds), func(i int) bool {
		return time.Time(preds[i].Time).After(t)
	})
	if i >= len(preds) {
		return -1
	}
	return i
}

// nextPeakAfter finds the first flood or ebb strictly after t, skipping
// slacks, or -1.
func nextPeakAfter(preds noaa.CurrentPredictions, t time.Time) int {
	for i := range preds {
		if preds[i].Type.Peak() && time.Time(preds[i].Time).After(t) {
			return i
		}
	}
	return -1
}

// lastPeakAtOrBefore finds the last flood or ebb at or before t, skipping
// slacks, or -1.
func lastPeakAtOrBefore(preds noaa.CurrentPredictions, t time.Time) int {
	for i := len(preds) - 1; i >= 0; i-- {
		if preds[i].Type.Peak() && !time.Time(preds[i].Time).After(t) {
			return i
		}
	}
	return -1
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
