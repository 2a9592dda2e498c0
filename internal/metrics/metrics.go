package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics счётчики и датчики сервиса
type Metrics struct {
	Regenerations  prometheus.Counter
	Downloads      prometheus.Counter
	Uploads        prometheus.Counter
	UploadFailures *prometheus.CounterVec
	FilteredRows   prometheus.Counter
	DatasetRows    prometheus.Gauge
}

// New регистрирует метрики в переданном реестре
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Regenerations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voltlab_regenerations_total",
			Help: "Total sample dataset regenerations.",
		}),
		Downloads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voltlab_downloads_total",
			Help: "Total CSV downloads served.",
		}),
		Uploads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voltlab_uploads_total",
			Help: "Total CSV uploads successfully ingested.",
		}),
		UploadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "voltlab_upload_failures_total",
			Help: "Upload failures by stage (parse, schema, value).",
		}, []string{"stage"}),
		FilteredRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voltlab_filtered_rows_total",
			Help: "Rows dropped for carrying the Invalid/Calib sentinel.",
		}),
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "voltlab_dataset_rows",
			Help: "Row count of the current generated dataset.",
		}),
	}

	reg.MustRegister(m.Regenerations, m.Downloads, m.Uploads, m.UploadFailures,
		m.FilteredRows, m.DatasetRows)
	return m
}
