package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const defaultServiceName = "sebango-service"

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

type otelInstruments struct {
	ctx              context.Context
	requests         metric.Int64Counter
	requestLatencyMs metric.Float64Histogram
	rosterLoads      metric.Int64Counter
	rosterErrors     metric.Int64Counter
	rosterLatencyMs  metric.Float64Histogram
	drillQuestions   metric.Int64Counter
	drillFallbacks   metric.Int64Counter
	drillAttempts    metric.Int64Histogram
	drillAnswers     metric.Int64Counter
	lineupDecodes    metric.Int64Counter
	lineupSkipped    metric.Int64Counter
	pollerCycles     metric.Int64Counter
	pollerErrors     metric.Int64Counter
	pollerLatencyMs  metric.Float64Histogram
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

// instrumentBuilder creates instruments on one meter and keeps the first error.
type instrumentBuilder struct {
	meter metric.Meter
	err   error
}

func (b *instrumentBuilder) counter(name string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name)
	if err != nil && b.err == nil {
		b.err = err
	}
	return c
}

func (b *instrumentBuilder) histogram(name string) metric.Float64Histogram {
	h, err := b.meter.Float64Histogram(name)
	if err != nil && b.err == nil {
		b.err = err
	}
	return h
}

func (b *instrumentBuilder) intHistogram(name string) metric.Int64Histogram {
	h, err := b.meter.Int64Histogram(name)
	if err != nil && b.err == nil {
		b.err = err
	}
	return h
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	b := &instrumentBuilder{meter: provider.Meter(defaultServiceName)}

	inst := &otelInstruments{
		ctx:              context.Background(),
		requests:         b.counter("http_requests_total"),
		requestLatencyMs: b.histogram("http_request_duration_ms"),
		rosterLoads:      b.counter("roster_loads_total"),
		rosterErrors:     b.counter("roster_load_errors_total"),
		rosterLatencyMs:  b.histogram("roster_load_duration_ms"),
		drillQuestions:   b.counter("drill_questions_total"),
		drillFallbacks:   b.counter("drill_fallbacks_total"),
		drillAttempts:    b.intHistogram("drill_attempts"),
		drillAnswers:     b.counter("drill_answers_total"),
		lineupDecodes:    b.counter("lineup_decodes_total"),
		lineupSkipped:    b.counter("lineup_tokens_skipped_total"),
		pollerCycles:     b.counter("poller_cycles_total"),
		pollerErrors:     b.counter("poller_errors_total"),
		pollerLatencyMs:  b.histogram("poller_cycle_duration_ms"),
	}
	if b.err != nil {
		return nil, b.err
	}
	return inst, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	}
	o.recordCounter(o.requests, 1, attrs...)
	o.recordHistogram(o.requestLatencyMs, float64(duration.Milliseconds()), attrs...)
}

func (o *otelInstruments) recordRosterLoad(source string, year int, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrSource, source),
		attribute.Int(AttrYear, year),
	}
	o.recordCounter(o.rosterLoads, 1, attrs...)
	o.recordHistogram(o.rosterLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.rosterErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordDrillQuestion(attempts int, fallback bool) {
	if o == nil {
		return
	}
	o.recordCounter(o.drillQuestions, 1, attribute.Bool(AttrFallback, fallback))
	o.drillAttempts.Record(o.ctx, int64(attempts))
	if fallback {
		o.recordCounter(o.drillFallbacks, 1)
	}
}

func (o *otelInstruments) recordDrillAnswer(correct bool) {
	if o == nil {
		return
	}
	o.recordCounter(o.drillAnswers, 1, attribute.Bool(AttrCorrect, correct))
}

func (o *otelInstruments) recordLineupDecode(restored bool, skipped int) {
	if o == nil {
		return
	}
	o.recordCounter(o.lineupDecodes, 1, attribute.Bool(AttrRestored, restored))
	if skipped > 0 {
		o.recordCounter(o.lineupSkipped, int64(skipped))
	}
}

func (o *otelInstruments) recordPoller(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.recordCounter(o.pollerCycles, 1)
	o.recordHistogram(o.pollerLatencyMs, float64(duration.Milliseconds()))
	if err != nil {
		o.recordCounter(o.pollerErrors, 1)
	}
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
