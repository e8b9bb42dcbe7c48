// Package telemetry builds the zerolog loggers and Prometheus metrics used
// by animwrap tools.
//
// [Metrics] satisfies wrapper.Observer, so a view can report every run:
//
//	m := telemetry.NewMetrics(telemetry.MetricsConfig{Namespace: "animwrap"})
//	view := wrapper.NewView(wrapper.Options{Observer: m})
//	go m.Serve(ctx, ":9090")
package telemetry
