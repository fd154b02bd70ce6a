package metrics

import (
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gb2260_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	LookupsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gb2260_lookups_total",
			Help: "Total number of division lookups by kind.",
		},
		[]string{"kind"},
	)
	FailedLookupsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gb2260_lookups_failed_total",
			Help: "Total number of lookups for unknown revisions or codes.",
		},
		[]string{"reason"},
	)
	MirrorDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gb2260_mirror_duration_seconds",
			Help:    "Duration of copying the registry into the database.",
			Buckets: []float64{0.1, 0.5, 1, 5, 15},
		},
	)
	MirroredDivisions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gb2260_mirrored_divisions",
			Help: "Number of divisions stored in the database mirror.",
		},
	)
)

func StartMetricsServer(port int) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(LookupsCounter)
	prometheus.MustRegister(FailedLookupsCounter)
	prometheus.MustRegister(MirrorDuration)
	prometheus.MustRegister(MirroredDivisions)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), nil))
	}()
}
