// Package server provides the MCP server context and the operational HTTP
// surfaces around it.
//
// ServerContext manages Google API clients (Gmail, Calendar, Chat) with lazy
// initialization and caching, keyed by account name, plus the recurrence
// projector built on the Calendar client. It also carries the metrics and
// audit-logging hooks tool handlers are wrapped with.
//
// MetricsServer serves Prometheus metrics on a dedicated port, isolated from
// the MCP traffic. HealthChecker provides /healthz, /readyz and
// /healthz/detailed endpoints for Kubernetes probes on the streamable HTTP
// transport.
package server
