// Package server provides the HTTP serving layer: the dashboard server with
// request instrumentation and graceful shutdown, Kubernetes-style health
// probes (/healthz, /readyz), and a dedicated Prometheus metrics server on
// its own port.
package server
