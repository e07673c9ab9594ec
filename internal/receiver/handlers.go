package receiver

import (
	"context"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	colmetricspb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"

	"github.com/sirupsen/logrus"

	"otlpsink/internal/otlpconvert"
	"otlpsink/internal/schema"
	"otlpsink/internal/store"
	"otlpsink/pkg/ulid"
)

// traceHandler implements TraceService.Export, grounded on the teacher's
// OTLPHandler (minus auth/dedup/streaming, which spec.md's Receiver has no
// equivalent of — it writes straight into the CRB within the request).
type traceHandler struct {
	coltracepb.UnimplementedTraceServiceServer
	store  *store.Store
	logger *slog.Logger
}

func (h *traceHandler) Export(ctx context.Context, req *coltracepb.ExportTraceServiceRequest) (*coltracepb.ExportTraceServiceResponse, error) {
	batchID := ulid.New()

	rows, err := otlpconvert.DecodeTraceProto(req.GetResourceSpans())
	if err != nil {
		h.logger.Error("failed to decode otlp trace export", "batch_id", batchID.String(), "error", err)
		return nil, status.Error(codes.Internal, "failed to decode trace export request")
	}

	buf, ok := h.store.Buffer(schema.TableTraces)
	if !ok {
		return nil, status.Error(codes.Internal, "traces buffer not attached")
	}

	a := buf.GetAppender()
	defer a.Close()
	for _, row := range rows {
		otlpconvert.WriteTraceRow(a, row)
	}

	h.logger.Debug("otlp trace export applied", "batch_id", batchID.String(), "rows", len(rows))
	return &coltracepb.ExportTraceServiceResponse{}, nil
}

// logsHandler implements LogsService.Export.
type logsHandler struct {
	collogspb.UnimplementedLogsServiceServer
	store  *store.Store
	logger *slog.Logger
}

func (h *logsHandler) Export(ctx context.Context, req *collogspb.ExportLogsServiceRequest) (*collogspb.ExportLogsServiceResponse, error) {
	batchID := ulid.New()

	rows, err := otlpconvert.DecodeLogsProto(req.GetResourceLogs())
	if err != nil {
		h.logger.Error("failed to decode otlp logs export", "batch_id", batchID.String(), "error", err)
		return nil, status.Error(codes.Internal, "failed to decode logs export request")
	}

	buf, ok := h.store.Buffer(schema.TableLogs)
	if !ok {
		return nil, status.Error(codes.Internal, "logs buffer not attached")
	}

	a := buf.GetAppender()
	defer a.Close()
	for _, row := range rows {
		otlpconvert.WriteLogRow(a, row)
	}

	h.logger.Debug("otlp logs export applied", "batch_id", batchID.String(), "rows", len(rows))
	return &collogspb.ExportLogsServiceResponse{}, nil
}

// metricsHandler implements MetricsService.Export, fanning decoded rows
// out across the five metric tables within one Appender scope per table.
type metricsHandler struct {
	colmetricspb.UnimplementedMetricsServiceServer
	store        *store.Store
	logger       *slog.Logger
	decodeLogger *logrus.Logger
}

func (h *metricsHandler) Export(ctx context.Context, req *colmetricspb.ExportMetricsServiceRequest) (*colmetricspb.ExportMetricsServiceResponse, error) {
	batchID := ulid.New()

	rows, err := otlpconvert.DecodeMetricsProto(req.GetResourceMetrics(), h.decodeLogger)
	if err != nil {
		h.logger.Error("failed to decode otlp metrics export", "batch_id", batchID.String(), "error", err)
		return nil, status.Error(codes.Internal, "failed to decode metrics export request")
	}

	if err := h.writeGauges(rows.Gauges); err != nil {
		return nil, err
	}
	if err := h.writeSums(rows.Sums); err != nil {
		return nil, err
	}
	if err := h.writeHistograms(rows.Histograms); err != nil {
		return nil, err
	}
	if err := h.writeExpHistograms(rows.ExpHistograms); err != nil {
		return nil, err
	}
	if err := h.writeSummaries(rows.Summaries); err != nil {
		return nil, err
	}

	h.logger.Debug("otlp metrics export applied",
		"batch_id", batchID.String(),
		"gauges", len(rows.Gauges),
		"sums", len(rows.Sums),
		"histograms", len(rows.Histograms),
		"exp_histograms", len(rows.ExpHistograms),
		"summaries", len(rows.Summaries),
	)
	return &colmetricspb.ExportMetricsServiceResponse{}, nil
}

func (h *metricsHandler) writeGauges(rows []otlpconvert.GaugeRow) error {
	if len(rows) == 0 {
		return nil
	}
	buf, ok := h.store.Buffer(schema.TableMetricsGauge)
	if !ok {
		return status.Error(codes.Internal, "gauge buffer not attached")
	}
	a := buf.GetAppender()
	defer a.Close()
	for _, row := range rows {
		otlpconvert.WriteGaugeRow(a, row)
	}
	return nil
}

func (h *metricsHandler) writeSums(rows []otlpconvert.SumRow) error {
	if len(rows) == 0 {
		return nil
	}
	buf, ok := h.store.Buffer(schema.TableMetricsSum)
	if !ok {
		return status.Error(codes.Internal, "sum buffer not attached")
	}
	a := buf.GetAppender()
	defer a.Close()
	for _, row := range rows {
		otlpconvert.WriteSumRow(a, row)
	}
	return nil
}

func (h *metricsHandler) writeHistograms(rows []otlpconvert.HistogramRow) error {
	if len(rows) == 0 {
		return nil
	}
	buf, ok := h.store.Buffer(schema.TableMetricsHistogram)
	if !ok {
		return status.Error(codes.Internal, "histogram buffer not attached")
	}
	a := buf.GetAppender()
	defer a.Close()
	for _, row := range rows {
		otlpconvert.WriteHistogramRow(a, row)
	}
	return nil
}

func (h *metricsHandler) writeExpHistograms(rows []otlpconvert.ExpHistogramRow) error {
	if len(rows) == 0 {
		return nil
	}
	buf, ok := h.store.Buffer(schema.TableMetricsExpHistogram)
	if !ok {
		return status.Error(codes.Internal, "exponential histogram buffer not attached")
	}
	a := buf.GetAppender()
	defer a.Close()
	for _, row := range rows {
		otlpconvert.WriteExpHistogramRow(a, row)
	}
	return nil
}

func (h *metricsHandler) writeSummaries(rows []otlpconvert.SummaryRow) error {
	if len(rows) == 0 {
		return nil
	}
	buf, ok := h.store.Buffer(schema.TableMetricsSummary)
	if !ok {
		return status.Error(codes.Internal, "summary buffer not attached")
	}
	a := buf.GetAppender()
	defer a.Close()
	for _, row := range rows {
		otlpconvert.WriteSummaryRow(a, row)
	}
	return nil
}
