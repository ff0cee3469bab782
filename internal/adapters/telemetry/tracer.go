package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/zsb/internal/core/ports"
)

// InstrumentationName names the tracer of a zsb run.
const InstrumentationName = "zsb"

// OTelTracer implements ports.Tracer using OpenTelemetry.
type OTelTracer struct {
	tracer   trace.Tracer
	renderer ports.Renderer
}

// NewOTelTracer creates a tracer on provider. Span output is streamed to renderer when it is not nil.
func NewOTelTracer(provider trace.TracerProvider, renderer ports.Renderer) *OTelTracer {
	return &OTelTracer{
		tracer:   provider.Tracer(InstrumentationName),
		renderer: renderer,
	}
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	ctx, span := t.tracer.Start(ctx, name)

	var batcher *BatchProcessor
	if t.renderer != nil {
		spanID := span.SpanContext().SpanID().String()
		batcher = NewBatchProcessor(0, 0, func(data []byte) {
			t.renderer.OnTaskLog(spanID, data)
		})
	}

	return ctx, &OTelSpan{span: span, batcher: batcher}
}

// EmitPlan records the planned targets on the current span and announces them to the renderer.
func (t *OTelTracer) EmitPlan(ctx context.Context, names []string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(attribute.StringSlice("targets", names)))
	}

	if t.renderer != nil {
		t.renderer.OnPlanEmit(names)
	}
}

// OTelSpan implements ports.Span using OpenTelemetry.
type OTelSpan struct {
	span    trace.Span
	batcher *BatchProcessor
}

// End flushes buffered output and completes the span.
func (s *OTelSpan) End() {
	if s.batcher != nil {
		_ = s.batcher.Close()
	}
	s.span.End()
}

// RecordError records err and marks the span as failed.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}

// Write streams output through the batcher, or records it as a span event without a renderer.
func (s *OTelSpan) Write(p []byte) (int, error) {
	if s.batcher != nil {
		return s.batcher.Write(p)
	}
	s.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(p))))
	return len(p), nil
}
