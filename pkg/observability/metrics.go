// Package observability provides Prometheus metrics and OpenTelemetry tracing
// for the message codec.
package observability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ajitpratap0/mcp-core-go/pkg/protocol"
)

// MetricsConfig configures codec metrics
type MetricsConfig struct {
	// Namespace is the Prometheus namespace (default: mcp)
	Namespace string
	// Subsystem is the Prometheus subsystem (default: codec)
	Subsystem string
	// DurationBuckets are the histogram buckets for decode latency
	DurationBuckets []float64
	// ConstLabels are added to every metric
	ConstLabels prometheus.Labels
}

// Metrics records codec activity. A nil *Metrics records nothing, so callers
// need not check whether metrics are enabled.
type Metrics struct {
	decoded        *prometheus.CounterVec
	encoded        *prometheus.CounterVec
	decodeErrors   *prometheus.CounterVec
	decodeDuration prometheus.Histogram
}

// NewMetrics creates the codec metrics and registers them on reg.
// Collectors already registered under the same names are reused.
func NewMetrics(reg prometheus.Registerer, config MetricsConfig) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if config.Namespace == "" {
		config.Namespace = "mcp"
	}
	if config.Subsystem == "" {
		config.Subsystem = "codec"
	}
	if len(config.DurationBuckets) == 0 {
		config.DurationBuckets = []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05}
	}

	opts := func(name, help string) prometheus.Opts {
		return prometheus.Opts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}
	}

	m := &Metrics{}
	var err error

	if m.decoded, err = registerCounterVec(reg, opts("messages_decoded_total", "Messages decoded, by kind."), "kind"); err != nil {
		return nil, err
	}
	if m.encoded, err = registerCounterVec(reg, opts("messages_encoded_total", "Messages encoded, by kind."), "kind"); err != nil {
		return nil, err
	}
	if m.decodeErrors, err = registerCounterVec(reg, opts("decode_errors_total", "Frames that failed to decode, by JSON-RPC error code."), "code"); err != nil {
		return nil, err
	}

	hist := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   config.Namespace,
		Subsystem:   config.Subsystem,
		Name:        "decode_duration_seconds",
		Help:        "Time spent decoding a single frame.",
		ConstLabels: config.ConstLabels,
		Buckets:     config.DurationBuckets,
	})
	if err := reg.Register(hist); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(prometheus.Histogram)
		if !ok {
			return nil, err
		}
		hist = existing
	}
	m.decodeDuration = hist

	return m, nil
}

func registerCounterVec(reg prometheus.Registerer, opts prometheus.Opts, label string) (*prometheus.CounterVec, error) {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts(opts), []string{label})
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		return existing, nil
	}
	return vec, nil
}

// ObserveDecoded records a successfully decoded message
func (m *Metrics) ObserveDecoded(kind protocol.MessageKind, took time.Duration) {
	if m == nil {
		return
	}
	m.decoded.WithLabelValues(string(kind)).Inc()
	m.decodeDuration.Observe(took.Seconds())
}

// ObserveDecodeError records a frame that could not be decoded
func (m *Metrics) ObserveDecodeError(code protocol.ErrorCode, took time.Duration) {
	if m == nil {
		return
	}
	m.decodeErrors.WithLabelValues(strconv.Itoa(int(code))).Inc()
	m.decodeDuration.Observe(took.Seconds())
}

// ObserveEncoded records a message written to the wire
func (m *Metrics) ObserveEncoded(kind protocol.MessageKind) {
	if m == nil {
		return
	}
	m.encoded.WithLabelValues(string(kind)).Inc()
}

// Handler exposes the metrics gathered by g in the Prometheus text format
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
