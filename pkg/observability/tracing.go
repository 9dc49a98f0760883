package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/ajitpratap0/mcp-core-go/pkg/protocol"
)

// InstrumentationName names the tracer used by this module
const InstrumentationName = "github.com/ajitpratap0/mcp-core-go"

// Span attribute keys
const (
	AttrMessageKind = attribute.Key("mcp.message.kind")
	AttrMethod      = attribute.Key("mcp.method")
	AttrErrorCode   = attribute.Key("mcp.error.code")
	AttrBatchSize   = attribute.Key("mcp.batch.size")
)

// TracingConfig configures an SDK tracer provider
type TracingConfig struct {
	ServiceName    string
	ServiceVersion string

	// Exporter receives finished spans. Nil records spans without exporting them.
	Exporter sdktrace.SpanExporter

	// SampleRate is the fraction of traces sampled, 0.0 to 1.0
	SampleRate float64
	// AlwaysSample lists methods that are always sampled
	AlwaysSample []string
	// NeverSample lists methods that are never sampled
	NeverSample []string

	// ResourceAttributes are added to the service resource
	ResourceAttributes map[string]string
}

// NewTracerProvider builds an SDK tracer provider from config.
// Exporter bootstrapping is left to the caller; any sdktrace.SpanExporter works.
func NewTracerProvider(config TracingConfig) (*sdktrace.TracerProvider, error) {
	if config.ServiceName == "" {
		return nil, fmt.Errorf("service name is required")
	}
	if config.SampleRate < 0 || config.SampleRate > 1 {
		return nil, fmt.Errorf("sample rate %v out of range [0, 1]", config.SampleRate)
	}

	attrs := []attribute.KeyValue{
		semconv.ServiceName(config.ServiceName),
	}
	if config.ServiceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersion(config.ServiceVersion))
	}
	for k, v := range config.ResourceAttributes {
		attrs = append(attrs, attribute.String(k, v))
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewWithAttributes(semconv.SchemaURL, attrs...)),
		sdktrace.WithSampler(sdktrace.ParentBased(newSampler(config))),
	}
	if config.Exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(config.Exporter))
	}
	return sdktrace.NewTracerProvider(opts...), nil
}

func newSampler(config TracingConfig) sdktrace.Sampler {
	if len(config.AlwaysSample) > 0 || len(config.NeverSample) > 0 {
		return &methodSampler{
			fallback:     rateSampler(config.SampleRate),
			alwaysSample: makeStringSet(config.AlwaysSample),
			neverSample:  makeStringSet(config.NeverSample),
		}
	}
	return rateSampler(config.SampleRate)
}

func rateSampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	}
	return sdktrace.TraceIDRatioBased(rate)
}

// methodSampler overrides the fallback sampler for listed methods.
// The method is read from the mcp.method start attribute.
type methodSampler struct {
	fallback     sdktrace.Sampler
	alwaysSample map[string]struct{}
	neverSample  map[string]struct{}
}

func (s *methodSampler) ShouldSample(params sdktrace.SamplingParameters) sdktrace.SamplingResult {
	for _, attr := range params.Attributes {
		if attr.Key != AttrMethod {
			continue
		}
		method := attr.Value.AsString()
		if _, ok := s.alwaysSample[method]; ok {
			return sdktrace.SamplingResult{
				Decision:   sdktrace.RecordAndSample,
				Tracestate: trace.SpanContextFromContext(params.ParentContext).TraceState(),
			}
		}
		if _, ok := s.neverSample[method]; ok {
			return sdktrace.SamplingResult{
				Decision:   sdktrace.Drop,
				Tracestate: trace.SpanContextFromContext(params.ParentContext).TraceState(),
			}
		}
		break
	}
	return s.fallback.ShouldSample(params)
}

func (s *methodSampler) Description() string {
	return fmt.Sprintf("MethodSampler{fallback=%s}", s.fallback.Description())
}

func makeStringSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

// Tracer starts codec spans
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a tracer from tp. A nil tp uses the global provider.
func NewTracer(tp trace.TracerProvider) *Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Tracer{tracer: tp.Tracer(InstrumentationName)}
}

// StartSpan starts a span with the given name and options
func (t *Tracer) StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, opts...)
}

// StartMessageSpan starts a span for an encode or decode of a message with
// the given method. An empty method is not recorded.
func (t *Tracer) StartMessageSpan(ctx context.Context, operation, method string) (context.Context, trace.Span) {
	opts := []trace.SpanStartOption{trace.WithSpanKind(trace.SpanKindInternal)}
	if method != "" {
		opts = append(opts, trace.WithAttributes(AttrMethod.String(method)))
	}
	return t.tracer.Start(ctx, "mcp."+operation, opts...)
}

// SetMessage records the kind and method of a message on the span in ctx
func (t *Tracer) SetMessage(ctx context.Context, kind protocol.MessageKind, method string) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(AttrMessageKind.String(string(kind)))
	if method != "" {
		span.SetAttributes(AttrMethod.String(method))
	}
}

// RecordError records err on the span in ctx and marks the span failed
func (t *Tracer) RecordError(ctx context.Context, err error, opts ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if err == nil || !span.IsRecording() {
		return
	}
	span.RecordError(err, opts...)
	span.SetStatus(codes.Error, err.Error())
}
