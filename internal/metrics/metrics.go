package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ReportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studytrack_reports_total",
			Help: "Activity reports received, by outcome",
		},
		[]string{"outcome"},
	)

	SessionsClosedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studytrack_sessions_closed_total",
			Help: "Sessions closed, by reason",
		},
		[]string{"reason"},
	)

	StudySecondsCommitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "studytrack_study_seconds_committed_total",
			Help: "Total study seconds committed to the log",
		},
	)

	ActiveSession = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "studytrack_active_session",
			Help: "1 while a study session is open, 0 otherwise",
		},
	)

	SyncPushesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studytrack_sync_pushes_total",
			Help: "Sync pushes to the cloud API, by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		ReportsTotal,
		SessionsClosedTotal,
		StudySecondsCommitted,
		ActiveSession,
		SyncPushesTotal,
	)
}
