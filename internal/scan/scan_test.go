package scan

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otlpsink/internal/columnar"
	"otlpsink/internal/schema"
)

func appendGaugeRow(buf *columnar.RingBuffer, tsNS int64, service, metric string, value float64) {
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

func TestCollectWithNoFiltersReturnsAllRowsInChunkOrder(t *testing.T) {
	buf := columnar.New(schema.MetricsGauge(), 100, columnar.WithChunkCapacity(2))
	for i := 0; i < 10; i++ {
		appendGaugeRow(buf, int64(i)*1_000_000, "svc", "cpu", float64(i))
	}

	// A single worker exercises the full chunk-order guarantee; with
	// several workers only per-chunk order (not cross-chunk order) is
	// specified.
	s := Bind(buf, nil, nil, nil)
	batches, err := Collect(context.Background(), s, 1)
	require.NoError(t, err)

	var values []float64
	for _, b := range batches {
		for r := 0; r < b.Len(); r++ {
			values = append(values, b.Float64(schema.GaugeColValue, r))
		}
	}
	require.Len(t, values, 10)
	for i, v := range values {
		assert.Equal(t, float64(i), v, "row %d out of chunk order", i)
	}
}

func TestBindWithProjectionSlicesOutputColumns(t *testing.T) {
	buf := columnar.New(schema.MetricsGauge(), 100, columnar.WithChunkCapacity(4))
	appendGaugeRow(buf, 1_000_000, "svc", "cpu", 42.5)

	projection := []int{schema.MetricsColServiceName, schema.GaugeColValue}
	s := Bind(buf, projection, nil, nil)
	batches, err := Collect(context.Background(), s, 1)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	require.Equal(t, 1, batches[0].Len())
	assert.Equal(t, "svc", batches[0].Varchar(0, 0))
	assert.Equal(t, 42.5, batches[0].Float64(1, 0))
}

func TestTimestampPushdownPrunesChunksAndFiltersRows(t *testing.T) {
	registry := prometheus.NewRegistry()
	buf := columnar.New(schema.MetricsGauge(), 100, columnar.WithChunkCapacity(2))
	for i := 0; i < 10; i++ {
		appendGaugeRow(buf, int64(i)*1_000_000, "svc", "cpu", float64(i))
	}

	filters := []PushedFilter{
		FilterInt(schema.MetricsColTimestamp, OpGreaterEqual, 3000),
		FilterInt(schema.MetricsColTimestamp, OpLess, 6000),
	}
	s := Bind(buf, nil, filters, registry)
	batches, err := Collect(context.Background(), s, 4)
	require.NoError(t, err)

	var values []float64
	for _, b := range batches {
		for r := 0; r < b.Len(); r++ {
			assert.GreaterOrEqual(t, b.TimestampNS(schema.MetricsColTimestamp, r)/1000, int64(3000))
			assert.Less(t, b.TimestampNS(schema.MetricsColTimestamp, r)/1000, int64(6000))
			values = append(values, b.Float64(schema.GaugeColValue, r))
		}
	}
	assert.ElementsMatch(t, []float64{3, 4, 5}, values)

	pruned := testutil.ToFloat64(s.metrics.chunksPruned)
	assert.Greater(t, pruned, float64(0))
}

func TestServiceEqualityPushdownFiltersRows(t *testing.T) {
	buf := columnar.New(schema.MetricsGauge(), 100, columnar.WithChunkCapacity(2))
	appendGaugeRow(buf, 1_000_000, "a", "cpu", 1)
	appendGaugeRow(buf, 2_000_000, "a", "cpu", 2)
	appendGaugeRow(buf, 3_000_000, "b", "cpu", 3)
	appendGaugeRow(buf, 4_000_000, "b", "cpu", 4)

	filters := []PushedFilter{FilterString(schema.MetricsColServiceName, OpEqual, "b")}
	s := Bind(buf, nil, filters, nil)
	batches, err := Collect(context.Background(), s, 2)
	require.NoError(t, err)

	var values []float64
	for _, b := range batches {
		for r := 0; r < b.Len(); r++ {
			assert.Equal(t, "b", b.Varchar(schema.MetricsColServiceName, r))
			values = append(values, b.Float64(schema.GaugeColValue, r))
		}
	}
	assert.ElementsMatch(t, []float64{3, 4}, values)
}

func TestResidualFilterEvaluatesRowWise(t *testing.T) {
	buf := columnar.New(schema.MetricsGauge(), 100, columnar.WithChunkCapacity(8))
	for i := 0; i < 5; i++ {
		appendGaugeRow(buf, int64(i)*1_000_000, "svc", "cpu", float64(i))
	}

	filters := []PushedFilter{FilterFloat(schema.GaugeColValue, OpGreaterEqual, 3)}
	s := Bind(buf, nil, filters, nil)
	batches, err := Collect(context.Background(), s, 1)
	require.NoError(t, err)

	var values []float64
	for _, b := range batches {
		for r := 0; r < b.Len(); r++ {
			values = append(values, b.Float64(schema.GaugeColValue, r))
		}
	}
	assert.ElementsMatch(t, []float64{3, 4}, values)
}

func TestEmptySnapshotProducesNoBatchesAndNoError(t *testing.T) {
	buf := columnar.New(schema.MetricsGauge(), 10, columnar.WithChunkCapacity(4))
	s := Bind(buf, nil, nil, nil)
	batches, err := Collect(context.Background(), s, 3)
	require.NoError(t, err)
	assert.Empty(t, batches)
}

func TestResultOutClosesAfterExhaustion(t *testing.T) {
	buf := columnar.New(schema.MetricsGauge(), 100, columnar.WithChunkCapacity(2))
	for i := 0; i < 4; i++ {
		appendGaugeRow(buf, int64(i)*1_000_000, "svc", "cpu", float64(i))
	}

	s := Bind(buf, nil, nil, nil)
	res := s.Run(context.Background(), 2)
	count := 0
	for range res.Out {
		count++
	}
	require.NoError(t, res.Err())
	assert.Greater(t, count, 0)
}
