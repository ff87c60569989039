package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LabelsRecordedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "firecam_labels_recorded_total",
		Help: "Total number of bbox label submissions, by status",
	}, []string{"status"})

	ExtractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "firecam_extractions_total",
		Help: "Total number of frame extraction requests, by status",
	}, []string{"status"})

	ExtractionStageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "firecam_extraction_stage_duration_seconds",
		Help:    "Duration of each frame extraction stage",
		Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
	}, []string{"stage"})

	FramesUploadedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "firecam_frames_uploaded_total",
		Help: "Total number of frame images uploaded to object storage",
	})

	FrameUploadFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "firecam_frame_upload_failures_total",
		Help: "Total number of individual frame uploads that failed",
	})

	ActiveExtractions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "firecam_active_extractions",
		Help: "Number of extraction requests currently in flight",
	})
)
