package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

const (
	defaultLabel = "test"
)

func TestMetrics(t *testing.T) {
	gm.ConnectionOnlineGauge.Inc()
	gm.ConnectionOnlineGauge.Dec()
	gm.ConnectionRejectedCounter.Inc()

	before := testutil.ToFloat64(gm.ProtocolErrorsCounterVec.WithLabelValues(defaultLabel))
	gm.ProtocolErrorsCounterVec.WithLabelValues(defaultLabel).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(gm.ProtocolErrorsCounterVec.WithLabelValues(defaultLabel)))

	gm.DecodedValuesCounterVec.WithLabelValues(defaultLabel).Inc()
	gm.CommandCallHistogramVec.WithLabelValues(defaultLabel).Observe(1)
	gm.ExpireKeysTotal.WithLabelValues("added").Inc()
	gm.PubsubDroppedCounter.Inc()
	assert.Equal(t, gm, GetMetrics())
}

func TestMeasure(t *testing.T) {
	label := "respd_info"
	before := testutil.ToFloat64(gm.LogMetricsCounterVec.WithLabelValues(label))
	assert.NoError(t, Measure(zapcore.Entry{LoggerName: "respd", Level: zapcore.InfoLevel}))
	assert.Equal(t, before+1, testutil.ToFloat64(gm.LogMetricsCounterVec.WithLabelValues(label)))
}
