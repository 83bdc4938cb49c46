package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap/zapcore"

	"github.com/distributedio/respd/encoding/resp"
)

const (
	//promethus default namespace
	namespace = "respd"

	//promethues default label key
	frameType = "type"
	errKind   = "kind"
	command   = "command"
	labelName = "level"
)

var (
	//Label value slice when creating prometheus object
	frameTypeLabel = []string{frameType}
	errKindLabel   = []string{errKind}
	commandLabel   = []string{command}

	// global prometheus object
	gm *Metrics
)

//Metrics prometheus statistics
type Metrics struct {
	//connection
	ConnectionOnlineGauge     prometheus.Gauge
	ConnectionRejectedCounter prometheus.Counter

	//codec
	FramesDecodedCounterVec *prometheus.CounterVec
	FramesEncodedCounterVec *prometheus.CounterVec
	DecodeErrorsCounterVec  *prometheus.CounterVec
	IncompleteReadsCounter  prometheus.Counter
	FrameBytesHistogram     prometheus.Histogram

	//command
	CommandCallHistogramVec *prometheus.HistogramVec

	//logger
	LogMetricsCounterVec *prometheus.CounterVec
}

//init create global object
func init() {
	gm = &Metrics{}

	gm.ConnectionOnlineGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connect_online_number",
			Help:      "The number of online connection",
		})
	prometheus.MustRegister(gm.ConnectionOnlineGauge)

	gm.ConnectionRejectedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connect_rejected_total",
			Help:      "The total of connections refused for exceeding max-connection",
		})
	prometheus.MustRegister(gm.ConnectionRejectedCounter)

	gm.FramesDecodedCounterVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_decoded_total",
			Help:      "The total of frames decoded by type",
		}, frameTypeLabel)
	prometheus.MustRegister(gm.FramesDecodedCounterVec)

	gm.FramesEncodedCounterVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_encoded_total",
			Help:      "The total of frames encoded by type",
		}, frameTypeLabel)
	prometheus.MustRegister(gm.FramesEncodedCounterVec)

	gm.DecodeErrorsCounterVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_errors_total",
			Help:      "The total of protocol errors by kind",
		}, errKindLabel)
	prometheus.MustRegister(gm.DecodeErrorsCounterVec)

	gm.IncompleteReadsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "incomplete_reads_total",
			Help:      "The total of decode attempts that waited for more bytes",
		})
	prometheus.MustRegister(gm.IncompleteReadsCounter)

	gm.FrameBytesHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_bytes",
			Buckets:   prometheus.ExponentialBuckets(8, 4, 12),
			Help:      "The size of decoded request frames",
		})
	prometheus.MustRegister(gm.FrameBytesHistogram)

	gm.CommandCallHistogramVec = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_call_second",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 20),
			Help:      "The cost times of command call",
		}, commandLabel)
	prometheus.MustRegister(gm.CommandCallHistogramVec)

	gm.LogMetricsCounterVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logs_entries_total",
			Help:      "Number of logs of certain level",
		},
		[]string{labelName},
	)
	prometheus.MustRegister(gm.LogMetricsCounterVec)

	http.Handle(MetricsPath, promhttp.Handler())
}

//GetMetrics return metrics object
func GetMetrics() *Metrics {
	return gm
}

// ErrorKind maps a codec error to its metric label
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, resp.ErrNotComplete):
		return "not_complete"
	case errors.Is(err, resp.ErrInvalidFrameType):
		return "invalid_frame_type"
	case errors.Is(err, resp.ErrInvalidFrameLength):
		return "invalid_frame_length"
	case errors.Is(err, resp.ErrParseInt):
		return "parse_int"
	case errors.Is(err, resp.ErrParseFloat):
		return "parse_float"
	case errors.Is(err, resp.ErrFrameTooLarge):
		return "frame_too_large"
	case errors.Is(err, resp.ErrInvalidFrame):
		return "invalid_frame"
	}
	return "other"
}

//Measure logger level rate
func Measure(e zapcore.Entry) error {
	label := e.LoggerName + "_" + e.Level.String()
	gm.LogMetricsCounterVec.WithLabelValues(label).Inc()
	return nil
}
