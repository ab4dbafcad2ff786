// Package metrics exposes Prometheus instruments for the sync service.
//
// The instruments answer the operational questions the counters in run
// records cannot: is the schedule firing, how long do runs take, is the
// identity hash colliding, and are calendar calls failing. Everything is
// registered on a private registry so the /metrics endpoint only serves
// rinksync series.
package metrics
