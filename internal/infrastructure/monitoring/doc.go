// Package monitoring provides Prometheus metrics for the dashboard:
// HTTP request counters and latency histograms, per-operation
// filesystem counters and durations, session gauges, and uptime.
package monitoring
