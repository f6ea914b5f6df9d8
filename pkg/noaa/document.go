package noaa

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// NOAAResult is the envelope the NOAA tide prediction endpoint returns.
type NOAAResult struct {
	Predictions Predictions `json:"predictions"`
}

// Document is a snapshot of one station's predictions as supplied to this
// process by whatever fetched and validated them. Both series are required
// to be sorted ascending by time; ReadDocument enforces it so the curve
// engines never have to.
type Document struct {
	Station  int                `json:"station"`
	Tides    Predictions        `json:"predictions"`
	Currents CurrentPredictions `json:"current_predictions"`
}

var errUnsorted = errors.New("prediction series not sorted by time")

// ReadDocument decodes and validates a station document.
func ReadDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding station document: %w", err)
	}
	if !doc.Tides.Sorted() {
		return nil, fmt.Errorf("tide series: %w", errUnsorted)
	}
	if !doc.Currents.Sorted() {
		return nil, fmt.Errorf("current series: %w", errUnsorted)
	}
	return &doc, nil
}
