package noaa

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseCurrentPrediction(t *testing.T) {
	table := []struct {
		input string
		want  CurrentPrediction
	}{{
		input: `{"Time":"2020-10-20 02:17", "Velocity_Major":160.7, "Type":"flood"}`,
		want: CurrentPrediction{
			Time:     Time(time.Date(2020, time.October, 20, 2, 17, 0, 0, time.Local)),
			Velocity: 160.7,
			Type:     Flood,
		},
	}, {
		input: `{"Time":"2020-10-20 08:02", "Velocity_Major":-169.3, "Type":"ebb"}`,
		want: CurrentPrediction{
			Time:     Time(time.Date(2020, time.October, 20, 8, 2, 0, 0, time.Local)),
			Velocity: -169.3,
			Type:     Ebb,
		},
	}, {
		input: `{"Time":"2020-10-20 05:11", "Velocity_Major":0, "Type":"slack"}`,
		want: CurrentPrediction{
			Time: Time(time.Date(2020, time.October, 20, 5, 11, 0, 0, time.Local)),
			Type: Slack,
		},
	}}

	for _, test := range table {
		t.Run(test.input, func(t *testing.T) {
			var got CurrentPrediction
			if err := json.Unmarshal([]byte(test.input), &got); err != nil {
				t.Errorf("unexpected error: %+v", err)
			}

			gotstr := fmt.Sprintf("%s", got)
			wantstr := fmt.Sprintf("%s", test.want)
			if diff := cmp.Diff(gotstr, wantstr); diff != "" {
				t.Errorf("incorrect parse (-got,+want): %s", diff)
			}
		})
	}
}

func TestParseCurrentPredictionErrors(t *testing.T) {
	var got CurrentPrediction
	input := `{"Time":"2020-10-20 02:17", "Velocity_Major":160.7, "Type":"rising"}`
	if err := json.Unmarshal([]byte(input), &got); err == nil {
		t.Errorf("parsed garbage: %s", got)
	}
}

func TestFlowPeak(t *testing.T) {
	table := []struct {
		flow Flow
		want bool
	}{
		{Flood, true},
		{Ebb, true},
		{Slack, false},
	}
	for _, tc := range table {
		if got := tc.flow.Peak(); got != tc.want {
			t.Errorf("%s.Peak() = %v, want %v", tc.flow, got, tc.want)
		}
	}
}
