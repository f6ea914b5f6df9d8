// Package noaa models typed tide and current predictions in the shapes NOAA
// publishes them. Tide predictions are sparse high/low water events with a
// height in meters; current predictions are flood/ebb/slack events with a
// signed major-axis velocity in cm/s, flood positive. The package decodes
// the wire formats and nothing more — collaborators hand the curve engines
// already-sorted slices of these events.
package noaa
