// Package metrics records collector progress in a private Prometheus
// registry and can expose it on /metrics while a long run is in progress.
package metrics
