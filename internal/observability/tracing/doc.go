// Package tracing wires OpenTelemetry: a tracer provider for the process, a
// tracer for spans and an HTTP middleware that starts server spans.
//
//	shutdown := tracing.Init(1.0)
//	defer shutdown(context.Background())
//
//	ctx, span := tracing.GetTracer().Start(ctx, "fallback.resolve")
//	defer span.End()
package tracing
