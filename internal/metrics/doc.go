// Package metrics defines the Prometheus collectors for the resolution
// pipeline: validation outcomes, per-service resolution counts and
// durations, and container registry gauges.
//
// The package only records; it does not expose an HTTP endpoint. An
// embedding program that wants scraping registers the collectors on its own
// registry via NewWithRegistry and serves them however it serves the rest
// of its telemetry.
package metrics
