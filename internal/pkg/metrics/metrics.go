package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal количество HTTP запросов
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration длительность HTTP запросов
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// TemplateOpsTotal количество операций над шаблонами документов
	TemplateOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "template_operations_total",
			Help: "Total number of document template store operations",
		},
		[]string{"operation", "status"},
	)

	// RenderTotal количество рендерингов шаблонов
	RenderTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "template_render_total",
			Help: "Total number of template renders",
		},
		[]string{"category", "status"},
	)

	// RenderDuration длительность рендеринга шаблона
	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "template_render_duration_seconds",
			Help:    "Duration of template rendering in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"category"},
	)

	// PDFExportTotal количество экспортов в PDF
	PDFExportTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pdf_export_total",
			Help: "Total number of PDF exports",
		},
		[]string{"status"},
	)

	// PDFExportDuration длительность экспорта в PDF
	PDFExportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pdf_export_duration_seconds",
			Help:    "Duration of PDF export in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"category"},
	)

	// PDFFileSizeBytes размер экспортированных PDF файлов
	PDFFileSizeBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pdf_file_size_bytes",
			Help:    "Size of exported PDF files in bytes",
			Buckets: []float64{1024, 10 * 1024, 100 * 1024, 1024 * 1024, 10 * 1024 * 1024},
		},
		[]string{"category"},
	)

	// DocxExportTotal количество экспортов в DOCX
	DocxExportTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docx_export_total",
			Help: "Total number of DOCX exports",
		},
		[]string{"status"},
	)

	// RendererRequestsTotal количество запросов к внешнему PDF-рендеру
	RendererRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pdf_renderer_requests_total",
			Help: "Total number of requests to the external PDF renderer",
		},
		[]string{"status"},
	)

	// RendererRequestDuration длительность запросов к внешнему PDF-рендеру
	RendererRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pdf_renderer_request_duration_seconds",
			Help:    "Duration of external PDF renderer requests in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)
)
