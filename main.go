package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spencer-p/tidewatch/pkg/handlers"
	"github.com/spencer-p/tidewatch/pkg/metrics"
	"github.com/spencer-p/tidewatch/pkg/noaa"
)

type Config struct {
	Port     string `default:"8080"`
	Prefix   string `default:"/"`
	Datafile string `default:"predictions.json"`
}

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
	log.Printf("Loaded station %d: %d tide and %d current predictions",
		doc.Station, len(doc.Tides), len(doc.Currents))

	r := mux.NewRouter().StrictSlash(true)
	s := r.PathPrefix(env.Prefix).Subrouter()
	handlers.Register(s, doc)
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Handler:      metrics.LatencyHandler(r),
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	log.Printf("Listening and serving on %s%s", srv.Addr, env.Prefix)
	log.Fatal(srv.ListenAndServe())
}
