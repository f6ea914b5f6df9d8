package splines

import (
	"math"
	"time"

	"github.com/spencer-p/tidewatch/pkg/noaa"
)

// Strategy selects the interpolation shape for current curves. Hermite is
// the canonical choice; the others are retained so they can be compared
// under the same tests.
type Strategy int

const (
	// Hermite fits a cubic Hermite segment between every pair of events,
	// with tangents chosen per node (see slopes). It is the only strategy
	// with C1 continuity across the whole series.
	Hermite Strategy = iota
	// Cosine fits a raised cosine between every pair of events, flat at
	// both ends of every segment.
	Cosine
	// SineAnchors fits raised cosines through the flood/ebb peaks only,
	// ignoring slack events entirely.
	SineAnchors
)

func (s Strategy) Valid() bool {
	return s == Hermite || s == Cosine || s == SineAnchors
}

func (s Strategy) String() string {
	switch s {
	case Hermite:
		return "hermite"
	case Cosine:
		return "cosine"
	case SineAnchors:
		return "sine-anchors"
	default:
		return "invalid"
	}
}

// CurrentCurve links a current event to the next one. Velocities are signed
// cm/s, tangents cm/s per second. Defined on [Start, End).
type CurrentCurve struct {
	Start, End time.Time
	v1, v2     float64
	m1, m2     float64
	form       Strategy
}

// A CurrentSpline is a slice of current curves linked together.
type CurrentSpline []CurrentCurve

// CurrentCurvesBetween links NOAA current predictions with the canonical
// Hermite strategy. The input must be sorted ascending by time.
func CurrentCurvesBetween(preds noaa.CurrentPredictions) CurrentSpline {
	return CurrentCurvesWith(Hermite, preds)
}

// CurrentCurvesWith links current predictions using the given strategy.
func CurrentCurvesWith(strategy Strategy, preds noaa.CurrentPredictions) CurrentSpline {
	if strategy == SineAnchors {
		preds = peaksOnly(preds)
	}
	if len(preds) < 2 {
		return nil
	}

	m := slopes(preds)

	var curves []CurrentCurve
	for i := 0; i < len(preds)-1; {
		j := i + 1
		for j < len(preds) && preds[j].Time.Unix() == preds[i].Time.Unix() {
			j++
		}
		if j == len(preds) {
			break
		}
		curves = append(curves, CurrentCurve{
			Start: time.Time(preds[i].Time),
			End:   time.Time(preds[j].Time),
			v1:    preds[i].Velocity,
			v2:    preds[j].Velocity,
			m1:    m[i],
			m2:    m[j],
			form:  strategy,
		})
		i = j
	}
	return curves
}

// Eval interpolates the velocity at t, scanning forward for the curve that
// brackets it. ok is false if t falls outside every curve.
func (s CurrentSpline) Eval(t time.Time) (float64, bool) {
	for _, c := range s {
		if v, ok := c.Eval(t); ok {
			return v, true
		}
	}
	return 0, false
}

// Eval computes the velocity at t. Hermite segments use the standard cubic
// basis with tangents scaled by the segment duration:
//
//	h00 = 2p^3 - 3p^2 + 1    h01 = -2p^3 + 3p^2
//	h10 = p^3 - 2p^2 + p     h11 = p^3 - p^2
//	v(p) = h00*v1 + h10*dt*m1 + h01*v2 + h11*dt*m2
func (c CurrentCurve) Eval(t time.Time) (float64, bool) {
	if t.Before(c.Start) || !t.Before(c.End) {
		return 0, false
	}
	dt := xrel(c.Start, c.End)
	p := xrel(c.Start, t) / dt

	if c.form != Hermite {
		return c.v1 + (c.v2-c.v1)*(1-math.Cos(math.Pi*p))/2, true
	}

	p2 := p * p
	p3 := p2 * p
	h00 := 2*p3 - 3*p2 + 1
	h10 := p3 - 2*p2 + p
	h01 := -2*p3 + 3*p2
	h11 := p3 - p2
	return h00*c.v1 + h10*dt*c.m1 + h01*c.v2 + h11*dt*c.m2, true
}

// slopes assigns a tangent to every node. Peaks are flat. A slack node gets
// the chord slope between its nearest peaks on either side, so the curve
// crosses zero near the slack at a natural rate instead of notching; with a
// peak on only one side it falls back to the one-sided difference to that
// peak, and with no peak at all to the adjacent node.
func slopes(preds noaa.CurrentPredictions) []float64 {
	m := make([]float64, len(preds))
	for i := range preds {
		if preds[i].Type.Peak() {
			// Flat at every flood and ebb maximum.
			m[i] = 0
			continue
		}
		prev := prevPeak(preds, i)
		next := nextPeak(preds, i)
		switch {
		case prev >= 0 && next >= 0:
			m[i] = chord(preds[prev], preds[next])
		case prev >= 0:
			m[i] = chord(preds[prev], preds[i])
		case next >= 0:
			m[i] = chord(preds[i], preds[next])
		case i > 0:
			m[i] = chord(preds[i-1], preds[i])
		case i+1 < len(preds):
			m[i] = chord(preds[i], preds[i+1])
		}
	}
	return m
}

// chord is the finite difference between two events, zero if they share a
// timestamp.
func chord(a, b noaa.CurrentPrediction) float64 {
	dt := float64(b.Time.Unix() - a.Time.Unix())
	if dt == 0 {
		return 0
	}
	return (b.Velocity - a.Velocity) / dt
}

func prevPeak(preds noaa.CurrentPredictions, i int) int {
	for j := i - 1; j >= 0; j-- {
		if preds[j].Type.Peak() {
			return j
		}
	}
	return -1
}

func nextPeak(preds noaa.CurrentPredictions, i int) int {
	for j := i + 1; j < len(preds); j++ {
		if preds[j].Type.Peak() {
			return j
		}
	}
	return -1
}

func peaksOnly(preds noaa.CurrentPredictions) noaa.CurrentPredictions {
	peaks := make(noaa.CurrentPredictions, 0, len(preds))
	for _, p := range preds {
		if p.Type.Peak() {
			peaks = append(peaks, p)
		}
	}
	return peaks
}
