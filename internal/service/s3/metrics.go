package s3

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	signRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "filemanager_s3_sign_requests_total",
		Help: "Total number of object url signing requests.",
	})
	signFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "filemanager_s3_sign_failures_total",
		Help: "Total number of object url signing requests that failed after retries.",
	})
	signDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "filemanager_s3_sign_duration_seconds",
		Help:    "Duration of object url signing including retries.",
		Buckets: prometheus.DefBuckets,
	})
)
