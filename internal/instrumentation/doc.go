// Package instrumentation provides OpenTelemetry-based observability for the
// tomat service.
//
// The Provider wires up a meter provider (Prometheus, OTLP, or stdout
// exporters) and an optional tracer provider, configured through environment
// variables (see DefaultConfig). The Metrics recorder exposes typed helpers
// for the metrics the service emits:
//
//   - http_requests_total / http_request_duration_seconds
//   - active_sessions
//   - discord_api_operations_total / discord_api_operation_duration_seconds
//   - oauth_auth_total / oauth_code_exchange_total
//
// All recorder methods are safe to call on a zero-value Metrics, which acts
// as a no-op recorder when instrumentation is disabled.
package instrumentation
