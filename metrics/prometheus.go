package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap/zapcore"
)

const (
	//promethus default namespace
	namespace = "respd"

	//promethues default label key
	command   = "command"
	kind      = "kind"
	action    = "action"
	labelName = "level"
)

var (
	//Label value slice when creating prometheus object
	commandLabel = []string{command}
	kindLabel    = []string{kind}
	actionLabel  = []string{action}

	// global prometheus object
	gm *Metrics
)

//Metrics prometheus statistics
type Metrics struct {
	//connection
	ConnectionOnlineGauge     prometheus.Gauge
	ConnectionRejectedCounter prometheus.Counter

	//codec
	DecodedValuesCounterVec  *prometheus.CounterVec
	ProtocolErrorsCounterVec *prometheus.CounterVec

	//command
	CommandCallHistogramVec *prometheus.HistogramVec

	//keyspace
	ExpireKeysTotal      *prometheus.CounterVec
	PubsubDroppedCounter prometheus.Counter

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
			Help:      "The total of connections closed for exceeding max-connection",
		})
	prometheus.MustRegister(gm.ConnectionRejectedCounter)

	gm.DecodedValuesCounterVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decoded_values_total",
			Help:      "The total of top level values decoded from clients",
		}, kindLabel)
	prometheus.MustRegister(gm.DecodedValuesCounterVec)

	gm.ProtocolErrorsCounterVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "protocol_errors_total",
			Help:      "The total of malformed input from clients",
		}, kindLabel)
	prometheus.MustRegister(gm.ProtocolErrorsCounterVec)

	gm.CommandCallHistogramVec = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_call_second",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 20),
			Help:      "The cost times of command call",
		}, commandLabel)
	prometheus.MustRegister(gm.CommandCallHistogramVec)

	gm.ExpireKeysTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expire_keys_total",
			Help:      "The number of expire keys added, removed or expired",
		}, actionLabel)
	prometheus.MustRegister(gm.ExpireKeysTotal)

	gm.PubsubDroppedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pubsub_dropped_total",
			Help:      "The number of messages dropped for lagging subscribers",
		})
	prometheus.MustRegister(gm.PubsubDroppedCounter)

	gm.LogMetricsCounterVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logs_entries_total",
			Help:      "Number of logs of certain level",
		},
		[]string{labelName},
	)
	prometheus.MustRegister(gm.LogMetricsCounterVec)

	http.Handle("/respd/metrics", promhttp.Handler())
}

//GetMetrics return metrics object
func GetMetrics() *Metrics {
	return gm
}

//Measure logger level rate
func Measure(e zapcore.Entry) error {
	label := e.LoggerName + "_" + e.Level.String()
	gm.LogMetricsCounterVec.WithLabelValues(label).Inc()
	return nil
}
