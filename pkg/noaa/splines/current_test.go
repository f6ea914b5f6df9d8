package splines

import (
	"math"
	"testing"
	"time"

	"github.com/spencer-p/tidewatch/pkg/noaa"
)

func flow(at time.Time, v float64, kind noaa.Flow) noaa.CurrentPrediction {
	return noaa.CurrentPrediction{
		Time:     noaa.Time(at),
		Velocity: v,
		Type:     kind,
	}
}

// tidalCycle is one flood-ebb cycle with slacks, the shape NOAA current
// predictions normally take.
func tidalCycle() noaa.CurrentPredictions {
	return noaa.CurrentPredictions{
		flow(t0, 0, noaa.Slack),
		flow(t0.Add(3*time.Hour), 160.7, noaa.Flood),
		flow(t0.Add(6*time.Hour), 0, noaa.Slack),
		flow(t0.Add(9*time.Hour), -169.3, noaa.Ebb),
	}
}

func TestCurrentUndefinedOutsideWindow(t *testing.T) {
	for _, strategy := range []Strategy{Hermite, Cosine, SineAnchors} {
		t.Run(strategy.String(), func(t *testing.T) {
			spl := CurrentCurvesWith(strategy, tidalCycle())
			last := t0.Add(9 * time.Hour)
			if strategy == SineAnchors {
				// Peaks only; the window shrinks to [flood, ebb).
				if _, ok := spl.Eval(t0.Add(time.Hour)); ok {
					t.Errorf("Eval before first peak defined")
				}
			}
			if _, ok := spl.Eval(t0.Add(-time.Second)); ok {
				t.Errorf("Eval before first event defined")
			}
			if _, ok := spl.Eval(last); ok {
				t.Errorf("Eval at last event defined")
			}
			if _, ok := spl.Eval(last.Add(time.Hour)); ok {
				t.Errorf("Eval after last event defined")
			}
		})
	}
}

func TestCurrentExactAtAnchors(t *testing.T) {
	preds := tidalCycle()
	spl := CurrentCurvesBetween(preds)

	for _, p := range preds[:len(preds)-1] {
		got, ok := spl.Eval(time.Time(p.Time))
		if !ok {
			t.Fatalf("Eval at anchor %s undefined", p)
		}
		if want := p.Velocity; math.Abs(got-want) > 1e-9 {
			t.Errorf("Eval at anchor %s = %f, want %f", p, got, want)
		}
	}
}

func TestCurrentRisingTowardFlood(t *testing.T) {
	spl := CurrentCurvesBetween(tidalCycle())

	at := t0.Add(90 * time.Minute)
	v, ok := spl.Eval(at)
	if !ok {
		t.Fatal("Eval mid-rise undefined")
	}
	if v <= 0 || v >= 160.7 {
		t.Errorf("mid-rise velocity %f not strictly between slack and flood", v)
	}
	if d := deriveCurrent(t, spl, at); d <= 0 {
		t.Errorf("mid-rise slope %g not positive", d)
	}
}

func TestCurrentFlatAtPeaks(t *testing.T) {
	spl := CurrentCurvesBetween(tidalCycle())

	for _, peak := range []time.Time{t0.Add(3 * time.Hour)} {
		d := deriveCurrent(t, spl, peak)
		if tol := 1e-3; math.Abs(d) > tol {
			t.Errorf("slope at peak %v = %g, want 0", peak, d)
		}
	}
}

func TestCurrentContinuousAtNodes(t *testing.T) {
	preds := tidalCycle()
	spl := CurrentCurvesBetween(preds)

	// Interior nodes only; the outermost anchors have one side undefined.
	for _, p := range preds[1 : len(preds)-1] {
		at := time.Time(p.Time)

		here, ok := spl.Eval(at)
		if !ok {
			t.Fatalf("Eval at node %s undefined", p)
		}
		leftOf, ok := spl.Eval(at.Add(-time.Second))
		if !ok {
			t.Fatalf("Eval left of node %s undefined", p)
		}
		rightOf, ok := spl.Eval(at.Add(time.Second))
		if !ok {
			t.Fatalf("Eval right of node %s undefined", p)
		}

		if diff := math.Abs(here - leftOf); diff > 0.1 {
			t.Errorf("value jump approaching node %s: %g", p, diff)
		}
		leftSlope := here - leftOf
		rightSlope := rightOf - here
		if diff := math.Abs(leftSlope - rightSlope); diff > 1e-4 {
			t.Errorf("slope kink at node %s: left %g, right %g", p, leftSlope, rightSlope)
		}
	}
}

func TestCurrentSlackSlopeFromPeakChord(t *testing.T) {
	preds := tidalCycle()
	m := slopes(preds)

	if m[1] != 0 || m[3] != 0 {
		t.Errorf("peak slopes not flat: %v", m)
	}

	// Interior slack: chord between the flood and ebb peaks.
	wantMid := (-169.3 - 160.7) / (6 * time.Hour).Seconds()
	if math.Abs(m[2]-wantMid) > 1e-12 {
		t.Errorf("interior slack slope = %g, want %g", m[2], wantMid)
	}

	// Leading slack: one peak available, one-sided difference to it.
	wantLead := (160.7 - 0) / (3 * time.Hour).Seconds()
	if math.Abs(m[0]-wantLead) > 1e-12 {
		t.Errorf("leading slack slope = %g, want %g", m[0], wantLead)
	}
}

func TestCurrentSlopeFallbacks(t *testing.T) {
	table := []struct {
		name  string
		preds noaa.CurrentPredictions
		want  []float64
	}{{
		// Two consecutive peaks with no slack between them never trip
		// the slack logic at all.
		name: "peaks without slack",
		preds: noaa.CurrentPredictions{
			flow(t0, 100, noaa.Flood),
			flow(t0.Add(6*time.Hour), -120, noaa.Ebb),
		},
		want: []float64{0, 0},
	}, {
		// All slack: nothing to chord over, adjacent differences.
		name: "all slack",
		preds: noaa.CurrentPredictions{
			flow(t0, 1, noaa.Slack),
			flow(t0.Add(time.Hour), 3, noaa.Slack),
		},
		want: []float64{
			2 / time.Hour.Seconds(),
			2 / time.Hour.Seconds(),
		},
	}, {
		// A slack duplicated on a peak's timestamp must not divide by
		// zero.
		name: "slack duplicating a peak",
		preds: noaa.CurrentPredictions{
			flow(t0, 100, noaa.Flood),
			flow(t0, 0, noaa.Slack),
		},
		want: []float64{0, 0},
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got := slopes(tc.preds)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d slopes, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if math.Abs(got[i]-tc.want[i]) > 1e-12 {
					t.Errorf("slope %d = %g, want %g", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestCurrentZeroDurationSegmentSkipped(t *testing.T) {
	preds := noaa.CurrentPredictions{
		flow(t0, 0, noaa.Slack),
		flow(t0.Add(3*time.Hour), 160.7, noaa.Flood),
		flow(t0.Add(3*time.Hour), 150.0, noaa.Flood),
		flow(t0.Add(6*time.Hour), 0, noaa.Slack),
	}
	spl := CurrentCurvesBetween(preds)
	if got, want := len(spl), 2; got != want {
		t.Fatalf("got %d curves, want %d", got, want)
	}
	got, ok := spl.Eval(t0.Add(3 * time.Hour))
	if !ok {
		t.Fatal("Eval at duplicated anchor undefined")
	}
	if want := 160.7; math.Abs(got-want) > 1e-9 {
		t.Errorf("Eval at duplicated anchor = %f, want %f", got, want)
	}
}

func TestCurrentStrategiesShareAnchors(t *testing.T) {
	preds := tidalCycle()
	at := time.Time(preds[1].Time) // flood peak, interior for all strategies

	for _, strategy := range []Strategy{Hermite, Cosine, SineAnchors} {
		t.Run(strategy.String(), func(t *testing.T) {
			got, ok := CurrentCurvesWith(strategy, preds).Eval(at)
			if !ok {
				t.Fatal("Eval at flood anchor undefined")
			}
			if want := 160.7; math.Abs(got-want) > 1e-9 {
				t.Errorf("Eval at flood anchor = %f, want %f", got, want)
			}
		})
	}
}

func TestCurrentSineAnchorsNeedsTwoPeaks(t *testing.T) {
	preds := noaa.CurrentPredictions{
		flow(t0, 0, noaa.Slack),
		flow(t0.Add(3*time.Hour), 160.7, noaa.Flood),
		flow(t0.Add(6*time.Hour), 0, noaa.Slack),
	}
	if spl := CurrentCurvesWith(SineAnchors, preds); spl != nil {
		t.Errorf("got %d curves from a single peak", len(spl))
	}
}

func deriveCurrent(t *testing.T, spl CurrentSpline, at time.Time) float64 {
	t.Helper()
	const h = time.Second
	lo, ok1 := spl.Eval(at.Add(-h))
	hi, ok2 := spl.Eval(at.Add(h))
	if !ok1 || !ok2 {
		t.Fatalf("cannot derive at %v: curve undefined", at)
	}
	return (hi - lo) / (2 * h.Seconds())
}
