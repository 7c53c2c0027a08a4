package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"truthlens/internal/metrics"
)

func TestRecordAnalysis(t *testing.T) {
	before := testutil.ToFloat64(metrics.AnalysesTotal.WithLabelValues("danger", "text", "whatsapp"))
	otp := testutil.ToFloat64(metrics.PatternDetections.WithLabelValues("otp_scam"))

	metrics.RecordAnalysis("danger", "text", "whatsapp", 0.8, []string{"otp_scam", "lottery_scam"}, 2*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.AnalysesTotal.WithLabelValues("danger", "text", "whatsapp")))
	assert.Equal(t, otp+1, testutil.ToFloat64(metrics.PatternDetections.WithLabelValues("otp_scam")))
}

func TestRecordCache(t *testing.T) {
	hits := testutil.ToFloat64(metrics.CacheRequests.WithLabelValues("hit"))
	misses := testutil.ToFloat64(metrics.CacheRequests.WithLabelValues("miss"))

	metrics.RecordCacheHit()
	metrics.RecordCacheMiss()
	metrics.RecordCacheMiss()

	assert.Equal(t, hits+1, testutil.ToFloat64(metrics.CacheRequests.WithLabelValues("hit")))
	assert.Equal(t, misses+2, testutil.ToFloat64(metrics.CacheRequests.WithLabelValues("miss")))
}

func TestRecordFeedback(t *testing.T) {
	before := testutil.ToFloat64(metrics.FeedbackTotal.WithLabelValues("true"))

	metrics.RecordFeedback(true)

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.FeedbackTotal.WithLabelValues("true")))
}

func TestSetStreamClients(t *testing.T) {
	metrics.SetStreamClients(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.StreamClients))
}
