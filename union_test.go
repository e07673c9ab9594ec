package otlpsink

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otlpsink/internal/schema"
)

func appendGauge(db *Database, tsNS int64, service, metric string, value float64) {
	buf, _ := db.store.Buffer(schema.TableMetricsGauge)
	a := buf.GetAppender()
	a.BeginRow()
	a.SetTimestampNS(schema.MetricsColTimestamp, tsNS)
	a.SetVarchar(schema.MetricsColServiceName, service)
	a.SetVarchar(schema.MetricsColMetricName, metric)
	a.SetNull(schema.MetricsColMetricDescription)
	a.SetNull(schema.MetricsColMetricUnit)
	a.SetMap(schema.MetricsColResourceAttributes, nil)
	a.SetNull(schema.MetricsColScopeName)
	a.SetNull(schema.MetricsColScopeVersion)
	a.SetMap(schema.MetricsColAttributes, nil)
	a.SetDouble(schema.GaugeColValue, value)
	a.CommitRow()
	a.Close()
}

func appendHistogram(db *Database, tsNS int64, service, metric string, count uint64, sum float64) {
	buf, _ := db.store.Buffer(schema.TableMetricsHistogram)
	a := buf.GetAppender()
	a.BeginRow()
	a.SetTimestampNS(schema.MetricsColTimestamp, tsNS)
	a.SetVarchar(schema.MetricsColServiceName, service)
	a.SetVarchar(schema.MetricsColMetricName, metric)
	a.SetNull(schema.MetricsColMetricDescription)
	a.SetNull(schema.MetricsColMetricUnit)
	a.SetMap(schema.MetricsColResourceAttributes, nil)
	a.SetNull(schema.MetricsColScopeName)
	a.SetNull(schema.MetricsColScopeVersion)
	a.SetMap(schema.MetricsColAttributes, nil)
	a.SetUBigint(schema.HistogramColCount, count)
	a.SetDouble(schema.HistogramColSum, sum)
	a.SetListUInt64(schema.HistogramColBucketCounts, []uint64{count})
	a.SetListFloat64(schema.HistogramColExplicitBounds, nil)
	a.SetNull(schema.HistogramColMin)
	a.SetNull(schema.HistogramColMax)
	a.CommitRow()
	a.Close()
}

func TestMetricsUnionMergesGaugeAndHistogramRows(t *testing.T) {
	db, err := Attach("localhost:0", map[string]string{"buffer_size": "100"})
	require.NoError(t, err)
	defer db.Detach()

	appendGauge(db, 1_000_000, "svc", "cpu", 1.5)
	appendGauge(db, 2_000_000, "svc", "cpu", 2.5)
	appendGauge(db, 3_000_000, "svc", "cpu", 3.5)
	appendHistogram(db, 4_000_000, "svc", "latency", 10, 100)
	appendHistogram(db, 5_000_000, "svc", "latency", 20, 200)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	rows, err := db.MetricsUnion(ctx, nil, 1)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	var gauges, histograms int
	for _, r := range rows {
		switch r.MetricType {
		case "gauge":
			gauges++
			require.NotNil(t, r.Value)
			assert.Nil(t, r.Count)
		case "histogram":
			histograms++
			require.NotNil(t, r.Count)
			assert.Nil(t, r.Value)
			assert.Equal(t, []uint64{*r.Count}, r.BucketCounts)
		default:
			t.Fatalf("unexpected MetricType %q", r.MetricType)
		}
		assert.Equal(t, "svc", r.ServiceName)
	}
	assert.Equal(t, 3, gauges)
	assert.Equal(t, 2, histograms)
}

func TestMetricsUnionWithNoDataReturnsNoRows(t *testing.T) {
	db, err := Attach("localhost:0", map[string]string{"buffer_size": "10"})
	require.NoError(t, err)
	defer db.Detach()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	rows, err := db.MetricsUnion(ctx, nil, 1)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestUnionColumnNamesHas27Entries(t *testing.T) {
	names := UnionColumnNames()
	assert.Len(t, names, 27)
	assert.Contains(t, names, "MetricType")
	assert.Contains(t, names, "BucketCounts")
}
