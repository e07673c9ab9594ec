package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllReturnsSevenTablesInOrder(t *testing.T) {
	tables := All()
	require.Len(t, tables, 7)

	names := make([]string, len(tables))
	for i, tbl := range tables {
		names[i] = tbl.Name
	}
	assert.Equal(t, []string{
		TableTraces,
		TableLogs,
		TableMetricsGauge,
		TableMetricsSum,
		TableMetricsHistogram,
		TableMetricsExpHistogram,
		TableMetricsSummary,
	}, names)
}

func TestGetKnownAndUnknownTable(t *testing.T) {
	tbl, ok := Get(TableTraces)
	require.True(t, ok)
	assert.Equal(t, TableTraces, tbl.Name)

	_, ok = Get("not_a_table")
	assert.False(t, ok)
}

func TestTracesHasNoMetricColumn(t *testing.T) {
	tbl := Traces()
	assert.NotNil(t, tbl.ServiceColIdx)
	assert.Equal(t, TracesColServiceName, *tbl.ServiceColIdx)
	assert.Nil(t, tbl.MetricColIdx)
}

func TestLogsHasNoMetricColumn(t *testing.T) {
	tbl := Logs()
	assert.NotNil(t, tbl.ServiceColIdx)
	assert.Nil(t, tbl.MetricColIdx)
}

func TestMetricTablesHaveServiceAndMetricColumns(t *testing.T) {
	for _, tbl := range []*Table{
		MetricsGauge(), MetricsSum(), MetricsHistogram(),
		MetricsExpHistogram(), MetricsSummary(),
	} {
		require.NotNil(t, tbl.ServiceColIdx, tbl.Name)
		require.NotNil(t, tbl.MetricColIdx, tbl.Name)
		assert.Equal(t, MetricsColServiceName, *tbl.ServiceColIdx, tbl.Name)
		assert.Equal(t, MetricsColMetricName, *tbl.MetricColIdx, tbl.Name)
	}
}

func TestColumnNamesAndTypesLineUp(t *testing.T) {
	tbl := MetricsHistogram()
	names := tbl.ColumnNames()
	types := tbl.ColumnTypes()
	require.Len(t, names, len(tbl.Columns))
	require.Len(t, types, len(tbl.Columns))
	for i, c := range tbl.Columns {
		assert.Equal(t, c.Name, names[i])
		assert.Equal(t, c.Type, types[i])
	}
}

func TestIsMetricTable(t *testing.T) {
	assert.True(t, IsMetricTable(TableMetricsGauge))
	assert.True(t, IsMetricTable(TableMetricsSummary))
	assert.False(t, IsMetricTable(TableTraces))
	assert.False(t, IsMetricTable(TableLogs))
}

func TestMetricsUnionHas27Columns(t *testing.T) {
	union := MetricsUnion()
	assert.Len(t, union.Columns, 27)
}

func TestMetricsUnionColumnsAreSuperset(t *testing.T) {
	union := MetricsUnion()
	unionNames := make(map[string]ColumnType, len(union.Columns))
	for _, c := range union.Columns {
		unionNames[c.Name] = c.Type
	}

	for _, tbl := range []*Table{
		MetricsGauge(), MetricsSum(), MetricsHistogram(),
		MetricsExpHistogram(), MetricsSummary(),
	} {
		for _, c := range tbl.Columns {
			unionType, ok := unionNames[c.Name]
			require.True(t, ok, "union missing column %s from %s", c.Name, tbl.Name)
			assert.Equal(t, c.Type, unionType, "type mismatch for %s in %s", c.Name, tbl.Name)
		}
	}
}

func TestSourceMetricType(t *testing.T) {
	cases := []struct {
		table string
		want  string
	}{
		{TableMetricsGauge, MetricTypeGauge},
		{TableMetricsSum, MetricTypeSum},
		{TableMetricsHistogram, MetricTypeHistogram},
		{TableMetricsExpHistogram, MetricTypeExponentialHistogram},
		{TableMetricsSummary, MetricTypeSummary},
	}
	for _, tc := range cases {
		got, ok := SourceMetricType(tc.table)
		require.True(t, ok, tc.table)
		assert.Equal(t, tc.want, got)
	}

	_, ok := SourceMetricType(TableTraces)
	assert.False(t, ok)
}

func TestColumnTypeString(t *testing.T) {
	assert.Equal(t, "TIMESTAMP_NS", TimestampNS.String())
	assert.Equal(t, "MAP(VARCHAR,VARCHAR)", MapStringString.String())
	assert.Equal(t, "LIST(MAP(VARCHAR,VARCHAR))", ListMapStringString.String())
}
