/*
Package observability turns resolver lifecycle hooks into Prometheus
metrics and structured log records.

Hooks from several sources can be merged with Combine and passed to
searchexpr.WithLifecycleHooks.
*/
package observability
