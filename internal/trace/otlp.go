package trace

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const tracerName = "aishowcase/widgets"

// OTLPExporter ships finished showcase sessions to an OTLP collector. The
// session becomes the root span, each mounted widget a child of it, and
// each modal transition a child of its widget. Interactions are point in
// time, so they become events on the widget span.
type OTLPExporter struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
}

// NewOTLPExporter returns nil, nil when OTEL_EXPORTER_OTLP_ENDPOINT is unset.
func NewOTLPExporter(ctx context.Context) (*OTLPExporter, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return nil, nil
	}
	exp, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	name := os.Getenv("OTEL_SERVICE_NAME")
	if name == "" {
		name = "aishowcase"
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceNameKey.String(name))),
	)
	return newOTLPExporter(provider), nil
}

func newOTLPExporter(provider *sdktrace.TracerProvider) *OTLPExporter {
	return &OTLPExporter{provider: provider, tracer: provider.Tracer(tracerName)}
}

// ExportTrace sends a completed session. The recorder's trace id is kept so
// the collector view lines up with the in-app trace view.
func (e *OTLPExporter) ExportTrace(ctx context.Context, t *Trace) error {
	if e == nil || t.RootSpan == nil {
		return nil
	}
	traceID, err := hexToTraceID(t.ID)
	if err != nil {
		return err
	}
	ctx = oteltrace.ContextWithRemoteSpanContext(ctx, oteltrace.NewSpanContext(oteltrace.SpanContextConfig{
		TraceID:    traceID,
		TraceFlags: oteltrace.FlagsSampled,
	}))
	e.exportSpan(ctx, t.RootSpan)
	return nil
}

func (e *OTLPExporter) exportSpan(ctx context.Context, span *Span) {
	ctx, out := e.tracer.Start(ctx, span.Name,
		oteltrace.WithTimestamp(span.StartTime),
		oteltrace.WithSpanKind(oteltrace.SpanKindInternal),
		oteltrace.WithAttributes(widgetAttributes(span.Attributes)...),
	)
	if phase, ok := span.Attributes[AttrSettled]; ok {
		out.AddEvent("settled",
			oteltrace.WithTimestamp(span.StartTime.Add(span.Duration)),
			oteltrace.WithAttributes(attribute.String("modal.phase", phase)))
	}
	for _, child := range span.Children {
		if isInteraction(child) {
			out.AddEvent(child.Attributes[AttrAction],
				oteltrace.WithTimestamp(child.StartTime),
				oteltrace.WithAttributes(widgetAttributes(child.Attributes)...))
			continue
		}
		e.exportSpan(ctx, child)
	}
	out.End(oteltrace.WithTimestamp(span.StartTime.Add(span.Duration)))
}

func isInteraction(s *Span) bool {
	_, ok := s.Attributes[AttrAction]
	return ok && len(s.Children) == 0
}

// widgetAttributes types the recorder's string attributes. Keys without a
// dedicated mapping land under showcase.*. The result is sorted by key.
func widgetAttributes(in map[string]string) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(in))
	for k, v := range in {
		switch k {
		case AttrWidgetID:
			out = append(out, attribute.String("widget.id", v))
		case AttrWidgetKind:
			out = append(out, attribute.String("widget.kind", v))
		case AttrPhase:
			out = append(out, attribute.String("modal.phase", v))
		case AttrSettled:
			out = append(out, attribute.String("modal.phase.settled", v))
		case AttrIndex:
			if n, err := strconv.Atoi(v); err == nil {
				out = append(out, attribute.Int("carousel.index", n))
			} else {
				out = append(out, attribute.String("carousel.index", v))
			}
		case AttrValue:
			out = append(out, attribute.String("tabs.value", v))
		case AttrAction:
			out = append(out, attribute.String("widget.action", v))
		default:
			out = append(out, attribute.String("showcase."+k, v))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func hexToTraceID(s string) (oteltrace.TraceID, error) {
	var id oteltrace.TraceID
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("trace id %q: %w", s, err)
	}
	if len(b) != len(id) {
		return id, fmt.Errorf("trace id %q: want %d bytes, got %d", s, len(id), len(b))
	}
	copy(id[:], b)
	return id, nil
}

// Shutdown flushes batched spans.
func (e *OTLPExporter) Shutdown(ctx context.Context) error {
	if e == nil {
		return nil
	}
	return e.provider.Shutdown(ctx)
}
