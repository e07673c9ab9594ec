package columnar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otlpsink/internal/schema"
)

func TestAppendAndSnapshotRoundTrips(t *testing.T) {
	buf := New(schema.MetricsGauge(), 16, WithChunkCapacity(4))

	a := buf.GetAppender()
	a.BeginRow()
	a.SetTimestampNS(schema.MetricsColTimestamp, 1_000_000_000)
	a.SetVarchar(schema.MetricsColServiceName, "checkout")
	a.SetVarchar(schema.MetricsColMetricName, "requests")
	a.SetNull(schema.MetricsColMetricDescription)
	a.SetNull(schema.MetricsColMetricUnit)
	a.SetMap(schema.MetricsColResourceAttributes, map[string]string{"region": "us"})
	a.SetNull(schema.MetricsColScopeName)
	a.SetNull(schema.MetricsColScopeVersion)
	a.SetMap(schema.MetricsColAttributes, nil)
	a.SetDouble(schema.GaugeColValue, 42.5)
	a.CommitRow()
	a.Close()

	snap := buf.Snapshot()
	require.Len(t, snap, 1)
	require.Equal(t, 1, snap[0].Size())
	assert.Equal(t, "checkout", snap[0].Varchar(schema.MetricsColServiceName, 0))
	assert.Equal(t, 42.5, snap[0].Float64(schema.GaugeColValue, 0))
	assert.True(t, snap[0].IsNull(schema.MetricsColMetricUnit, 0))
}

func TestChunkSealsAtCapacity(t *testing.T) {
	buf := New(schema.MetricsGauge(), 16, WithChunkCapacity(2))

	for i := 0; i < 3; i++ {
		a := buf.GetAppender()
		a.BeginRow()
		a.SetTimestampNS(schema.MetricsColTimestamp, int64(i)*1_000_000)
		a.SetVarchar(schema.MetricsColServiceName, "svc")
		a.SetVarchar(schema.MetricsColMetricName, "m")
		a.SetNull(schema.MetricsColMetricDescription)
		a.SetNull(schema.MetricsColMetricUnit)
		a.SetMap(schema.MetricsColResourceAttributes, nil)
		a.SetNull(schema.MetricsColScopeName)
		a.SetNull(schema.MetricsColScopeVersion)
		a.SetMap(schema.MetricsColAttributes, nil)
		a.SetDouble(schema.GaugeColValue, float64(i))
		a.CommitRow()
		a.Close()
	}

	assert.Equal(t, 3, buf.Size())
	snap := buf.Snapshot()
	// two rows sealed into one chunk, one row still in-flight
	require.Len(t, snap, 2)
	assert.Equal(t, 2, snap[0].Size())
	assert.Equal(t, 1, snap[1].Size())
}

func TestRingEvictsOldestChunkAtMaxChunks(t *testing.T) {
	buf := New(schema.MetricsGauge(), 1, WithChunkCapacity(1))

	for i := 0; i < 3; i++ {
		a := buf.GetAppender()
		a.BeginRow()
		a.SetTimestampNS(schema.MetricsColTimestamp, int64(i))
		a.SetVarchar(schema.MetricsColServiceName, "svc")
		a.SetVarchar(schema.MetricsColMetricName, "m")
		a.SetNull(schema.MetricsColMetricDescription)
		a.SetNull(schema.MetricsColMetricUnit)
		a.SetMap(schema.MetricsColResourceAttributes, nil)
		a.SetNull(schema.MetricsColScopeName)
		a.SetNull(schema.MetricsColScopeVersion)
		a.SetMap(schema.MetricsColAttributes, nil)
		a.SetDouble(schema.GaugeColValue, float64(i))
		a.CommitRow()
		a.Close()
	}

	snap := buf.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, float64(2), snap[0].Float64(schema.GaugeColValue, 0))
}

func TestZoneMapTracksServiceAndMetricCardinality(t *testing.T) {
	buf := New(schema.MetricsGauge(), 16, WithChunkCapacity(8))

	services := []string{"a", "a", "b"}
	for _, svc := range services {
		a := buf.GetAppender()
		a.BeginRow()
		a.SetTimestampNS(schema.MetricsColTimestamp, 0)
		a.SetVarchar(schema.MetricsColServiceName, svc)
		a.SetVarchar(schema.MetricsColMetricName, "m")
		a.SetNull(schema.MetricsColMetricDescription)
		a.SetNull(schema.MetricsColMetricUnit)
		a.SetMap(schema.MetricsColResourceAttributes, nil)
		a.SetNull(schema.MetricsColScopeName)
		a.SetNull(schema.MetricsColScopeVersion)
		a.SetMap(schema.MetricsColAttributes, nil)
		a.SetDouble(schema.GaugeColValue, 1)
		a.CommitRow()
		a.Close()
	}

	snap := buf.Snapshot()
	require.Len(t, snap, 1)
	has, mixed, _ := snap[0].ServiceZone()
	assert.True(t, has)
	assert.True(t, mixed)

	metHas, metMixed, metVal := snap[0].MetricZone()
	assert.True(t, metHas)
	assert.False(t, metMixed)
	assert.Equal(t, "m", metVal)
}

func TestZoneMapTimestampRange(t *testing.T) {
	buf := New(schema.MetricsGauge(), 16, WithChunkCapacity(8))

	for _, ns := range []int64{5_000_000_000, 1_000_000_000, 9_000_000_000} {
		a := buf.GetAppender()
		a.BeginRow()
		a.SetTimestampNS(schema.MetricsColTimestamp, ns)
		a.SetVarchar(schema.MetricsColServiceName, "svc")
		a.SetVarchar(schema.MetricsColMetricName, "m")
		a.SetNull(schema.MetricsColMetricDescription)
		a.SetNull(schema.MetricsColMetricUnit)
		a.SetMap(schema.MetricsColResourceAttributes, nil)
		a.SetNull(schema.MetricsColScopeName)
		a.SetNull(schema.MetricsColScopeVersion)
		a.SetMap(schema.MetricsColAttributes, nil)
		a.SetDouble(schema.GaugeColValue, 1)
		a.CommitRow()
		a.Close()
	}

	snap := buf.Snapshot()
	require.Len(t, snap, 1)
	minUS, maxUS := snap[0].TimestampRange()
	assert.Equal(t, int64(1_000_000), minUS)
	assert.Equal(t, int64(9_000_000), maxUS)
}

func TestNanosToMicrosHalfUp(t *testing.T) {
	assert.Equal(t, int64(1), NanosToMicrosHalfUp(500), "exact tie rounds up")
	assert.Equal(t, int64(0), NanosToMicrosHalfUp(499))
	assert.Equal(t, int64(2), NanosToMicrosHalfUp(1_500))
	assert.Equal(t, int64(0), NanosToMicrosHalfUp(0))
}

func TestZoneMapTimestampRoundsSubMicrosecondNanos(t *testing.T) {
	buf := New(schema.MetricsGauge(), 16, WithChunkCapacity(8))

	a := buf.GetAppender()
	a.BeginRow()
	a.SetTimestampNS(schema.MetricsColTimestamp, 1_500)
	a.SetVarchar(schema.MetricsColServiceName, "svc")
	a.SetVarchar(schema.MetricsColMetricName, "m")
	a.SetNull(schema.MetricsColMetricDescription)
	a.SetNull(schema.MetricsColMetricUnit)
	a.SetMap(schema.MetricsColResourceAttributes, nil)
	a.SetNull(schema.MetricsColScopeName)
	a.SetNull(schema.MetricsColScopeVersion)
	a.SetMap(schema.MetricsColAttributes, nil)
	a.SetDouble(schema.GaugeColValue, 1)
	a.CommitRow()
	a.Close()

	snap := buf.Snapshot()
	require.Len(t, snap, 1)
	minUS, maxUS := snap[0].TimestampRange()
	assert.Equal(t, int64(2), minUS)
	assert.Equal(t, int64(2), maxUS)
}

func TestSnapshotCopyIsIndependentOfSubsequentAppends(t *testing.T) {
	buf := New(schema.MetricsGauge(), 16, WithChunkCapacity(8))

	a := buf.GetAppender()
	a.BeginRow()
	a.SetTimestampNS(schema.MetricsColTimestamp, 0)
	a.SetVarchar(schema.MetricsColServiceName, "svc")
	a.SetVarchar(schema.MetricsColMetricName, "m")
	a.SetNull(schema.MetricsColMetricDescription)
	a.SetNull(schema.MetricsColMetricUnit)
	a.SetMap(schema.MetricsColResourceAttributes, nil)
	a.SetNull(schema.MetricsColScopeName)
	a.SetNull(schema.MetricsColScopeVersion)
	a.SetMap(schema.MetricsColAttributes, nil)
	a.SetDouble(schema.GaugeColValue, 1)
	a.CommitRow()
	a.Close()

	snap := buf.Snapshot()
	require.Len(t, snap, 1)

	a2 := buf.GetAppender()
	a2.BeginRow()
	a2.SetTimestampNS(schema.MetricsColTimestamp, 1)
	a2.SetVarchar(schema.MetricsColServiceName, "svc")
	a2.SetVarchar(schema.MetricsColMetricName, "m")
	a2.SetNull(schema.MetricsColMetricDescription)
	a2.SetNull(schema.MetricsColMetricUnit)
	a2.SetMap(schema.MetricsColResourceAttributes, nil)
	a2.SetNull(schema.MetricsColScopeName)
	a2.SetNull(schema.MetricsColScopeVersion)
	a2.SetMap(schema.MetricsColAttributes, nil)
	a2.SetDouble(schema.GaugeColValue, 2)
	a2.CommitRow()
	a2.Close()

	assert.Equal(t, 1, snap[0].Size())
	assert.Equal(t, 2, buf.Size())
}
