package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/spencer-p/tidewatch/pkg/cache"
	"github.com/spencer-p/tidewatch/pkg/gauge"
	"github.com/spencer-p/tidewatch/pkg/metrics"
	"github.com/spencer-p/tidewatch/pkg/noaa"
	"github.com/spencer-p/tidewatch/pkg/noaa/splines"

	"github.com/gorilla/mux"
)

const cacheTTL = 1 * time.Minute

// Register installs the gauge endpoints on r, serving readings over the
// station document doc. The document is read-only from here on; the engine
// underneath holds no state at all.
func Register(r *mux.Router, doc *noaa.Document) {
	r.Handle("/api/v1/waterlevel", makeServeWaterLevel(doc))
	r.Handle("/api/v1/current", makeServeCurrent(doc))
}

// queryTime pulls the explicit query instant from the t parameter (epoch
// seconds). Without one the receive time is used; either way the engine
// only ever sees an explicit instant.
func queryTime(r *http.Request) (time.Time, bool, error) {
	raw := r.FormValue("t")
	if raw == "" {
		return time.Now(), false, nil
	}
	unix, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("bad query time %q: %w", raw, err)
	}
	return time.Unix(unix, 0), true, nil
}

func makeServeWaterLevel(doc *noaa.Document) http.Handler {
	// Explicit-time requests are immutable and worth caching briefly.
	timeCache := cache.NewTimed(cacheTTL)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL)

		t, explicit, err := queryTime(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		key := fmt.Sprintf("%s %s", r.Method, r.URL)
		if explicit {
			if cached, ok := timeCache.Get(key); ok {
				serveJSONBytes(w, cached)
				return
			}
		}

		reading, ok := gauge.WaterLevelAt(doc.Tides, t)
		metrics.CountReading("waterlevel", ok)
		if !ok {
			// Outside the forecast window; expected, not an error.
			http.Error(w, "no data", http.StatusNotFound)
			return
		}

		body, err := json.Marshal(&reading)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			log.Printf("Failed to encode water level: %+v", err)
			return
		}
		if explicit {
			timeCache.Set(key, body)
		}
		serveJSONBytes(w, body)
	})
}

func makeServeCurrent(doc *noaa.Document) http.Handler {
	timeCache := cache.NewTimed(cacheTTL)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL)

		t, explicit, err := queryTime(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		strategy, err := parseStrategy(r.FormValue("strategy"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		key := fmt.Sprintf("%s %s", r.Method, r.URL)
		if explicit {
			if cached, ok := timeCache.Get(key); ok {
				serveJSONBytes(w, cached)
				return
			}
		}

		reading, ok := gauge.CurrentAtWith(strategy, doc.Currents, t)
		metrics.CountReading("current", ok)
		if !ok {
			http.Error(w, "no data", http.StatusNotFound)
			return
		}

		body, err := json.Marshal(&reading)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			log.Printf("Failed to encode current: %+v", err)
			return
		}
		if explicit {
			timeCache.Set(key, body)
		}
		serveJSONBytes(w, body)
	})
}

func parseStrategy(raw string) (splines.Strategy, error) {
	switch raw {
	case "", splines.Hermite.String():
		return splines.Hermite, nil
	case splines.Cosine.String():
		return splines.Cosine, nil
	case splines.SineAnchors.String():
		return splines.SineAnchors, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q", raw)
	}
}

func serveJSONBytes(w http.ResponseWriter, body []byte) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
