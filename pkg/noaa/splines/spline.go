// Package splines finds continuous curves of tide and current from single
// prediction points. The curves are defined only strictly inside the time
// range of the events they were built from; outside it every evaluation
// reports absence rather than extrapolating.
package splines

import (
	"math"
	"time"

	"github.com/spencer-p/tidewatch/pkg/noaa"
)

// Curve links a tide event to the next one with a raised cosine, so the
// water level approaches each extremum with zero slope. It is defined on
// [Start, End).
type Curve struct {
	Start, End time.Time
	h1, h2     float64
}

// A Spline is a slice of curves linked together to form a full picture.
type Spline []Curve

// CurvesBetween identifies curves to link NOAA tide predictions. The input
// must be sorted ascending by time. Pairs of predictions with equal
// timestamps produce no curve; the first prediction of such a run anchors
// the surrounding curves.
func CurvesBetween(preds noaa.Predictions) Spline {
	if len(preds) < 2 {
		return nil
	}

	var curves []Curve
	for i := 0; i < len(preds)-1; {
		j := i + 1
		for j < len(preds) && preds[j].Time.Unix() == preds[i].Time.Unix() {
			j++
		}
		if j == len(preds) {
			break
		}
		curves = append(curves, Curve{
			Start: time.Time(preds[i].Time),
			End:   time.Time(preds[j].Time),
			h1:    float64(preds[i].Height),
			h2:    float64(preds[j].Height),
		})
		i = j
	}
	return curves
}

// Eval interpolates the water level at t, scanning forward for the curve
// that brackets it. ok is false if t falls outside every curve.
func (s Spline) Eval(t time.Time) (float64, bool) {
	for _, c := range s {
		if v, ok := c.Eval(t); ok {
			return v, true
		}
	}
	return 0, false
}

// Eval computes the raised-cosine height at t, which eases out of one
// extremum and into the next:
//
//	h(phase) = h1 + (h2-h1) * (1 - cos(pi*phase)) / 2
//
// The curve passes exactly through both anchors and has zero slope at each.
func (c Curve) Eval(t time.Time) (float64, bool) {
	if t.Before(c.Start) || !t.Before(c.End) {
		return 0, false
	}
	phase := xrel(c.Start, t) / xrel(c.Start, c.End)
	return c.h1 + (c.h2-c.h1)*(1-math.Cos(math.Pi*phase))/2, true
}

// Discrete samples n evenly spaced heights across the whole spline. The
// final sample lands on the last anchor, where the spline is undefined, and
// is clamped to that anchor's height.
func Discrete(spline Spline, n int) []float64 {
	if len(spline) < 1 || n < 2 {
		return nil
	}
	start := spline[0].Start
	end := spline[len(spline)-1].End
	step := time.Duration(float64(end.Sub(start)) / float64(n-1))

	result := make([]float64, n)
	for i := range result {
		v, ok := spline.Eval(start.Add(step * time.Duration(i)))
		if !ok {
			v = spline[len(spline)-1].h2
		}
		result[i] = v
	}
	return result
}

// xrel computes an x coordinate for t that is relative to origin.
// This reduces large floating point errors by moving x coordinates closer to
// the "origin" (just the start of a particular curve).
func xrel(origin time.Time, t time.Time) float64 {
	return float64(t.Unix() - origin.Unix())
}
