package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/spencer-p/tidewatch/pkg/noaa"
	"github.com/spencer-p/tidewatch/pkg/noaa/splines"
)

type Config struct {
	Datafile string        `default:"predictions.json"`
	Step     time.Duration `default:"1h"`
}

// hourly prints the interpolated water level and current velocity across a
// station document at a fixed step, for eyeballing curve shapes against
// real NOAA fixtures.
func main() {
	var env Config
	if err := envconfig.Process("", &env); err != nil {
		log.Fatal(err.Error())
	}

	f, err := os.Open(env.Datafile)
	if err != nil {
		log.Fatalf("Failed to open station document: %v", err)
	}
	doc, err := noaa.ReadDocument(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to read station document: %v", err)
	}

	tides := splines.CurvesBetween(doc.Tides)
	currents := splines.CurrentCurvesBetween(doc.Currents)

	start, end, ok := window(doc)
	if !ok {
		log.Fatal("Not enough predictions to build a curve")
	}

	fmt.Println("time\theight (m)\tvelocity (cm/s)")
	for t := start; t.Before(end); t = t.Add(env.Step) {
		fmt.Printf("%s\t%s\t%s\n",
			t.Format("01/02 15:04"),
			cell(tides.Eval(t)),
			cell(currents.Eval(t)))
	}
}

// window spans the earliest and latest event across both series.
func window(doc *noaa.Document) (start, end time.Time, ok bool) {
	grow := func(first, last time.Time) {
		if !ok {
			start, end, ok = first, last, true
			return
		}
		if first.Before(start) {
			start = first
		}
		if last.After(end) {
			end = last
		}
	}
	if n := len(doc.Tides); n >= 2 {
		grow(time.Time(doc.Tides[0].Time), time.Time(doc.Tides[n-1].Time))
	}
	if n := len(doc.Currents); n >= 2 {
		grow(time.Time(doc.Currents[0].Time), time.Time(doc.Currents[n-1].Time))
	}
	return start, end, ok
}

func cell(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}
