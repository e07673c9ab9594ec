package otlpsink

import (
	"context"

	"golang.org/x/sync/errgroup"

	"otlpsink/internal/scan"
	"otlpsink/internal/schema"
)

// UnionRow is one materialized row of otlp_metrics_union: the 9 base
// metric columns, a MetricType discriminator, and every metric-specific
// column across all five metric tables — 27 columns total, matching
// spec.md §6's "Table surface" description. Columns that don't apply to
// MetricType are left at their zero value (nil for pointer/slice-typed
// columns, which doubles as the column's null marker).
type UnionRow struct {
	Timestamp           int64
	ServiceName         string
	MetricName          string
	MetricDescription   string
	MetricUnit          string
	ResourceAttributes  map[string]string
	ScopeName           string
	ScopeVersion        string
	Attributes          map[string]string
	MetricType          string

	Value                  *float64
	AggregationTemporality *int32
	IsMonotonic            *bool
	Count                  *uint64
	Sum                    *float64
	BucketCounts           []uint64
	ExplicitBounds         []float64
	Min                    *float64
	Max                    *float64
	Scale                  *int32
	ZeroCount              *uint64
	PositiveOffset         *int32
	PositiveBucketCounts   []uint64
	NegativeOffset         *int32
	NegativeBucketCounts   []uint64
	QuantileValues         []float64
	QuantileQuantiles      []float64
}

// metricUnionTables lists the five metric tables in the order their rows
// are emitted by MetricsUnion; cross-table ordering beyond "all of one
// table's rows before the next" is unspecified, the same guarantee a
// single table's scan gives across chunks.
var metricUnionTables = []string{
	schema.TableMetricsGauge,
	schema.TableMetricsSum,
	schema.TableMetricsHistogram,
	schema.TableMetricsExpHistogram,
	schema.TableMetricsSummary,
}

// UnionColumnNames returns otlp_metrics_union's 27 column names, in the
// schema registry's declared order: the 9 base columns, MetricType, then
// the 17 deduplicated metric-specific columns.
func UnionColumnNames() []string {
	return schema.MetricsUnion().ColumnNames()
}

// MetricsUnion scans all five metric tables and returns their rows
// merged into the otlp_metrics_union shape. filters are base-column
// pushdowns only (Timestamp/ServiceName/MetricName, column indices
// 0-8 per schema.MetricsCol* — identical across every metric table since
// they all share the same base-column prefix); a type-specific filter
// has no single column identity across the union and is rejected by the
// caller's responsibility, not validated here.
func (d *Database) MetricsUnion(ctx context.Context, filters []scan.PushedFilter, workers int) ([]UnionRow, error) {
	perTable := make([][]scan.Batch, len(metricUnionTables))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range metricUnionTables {
		g.Go(func() error {
			table, err := d.Table(name)
			if err != nil {
				return err
			}
			batches, err := table.Scan(gctx, nil, filters, workers)
			if err != nil {
				return err
			}
			perTable[i] = batches
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var rows []UnionRow
	for i, name := range metricUnionTables {
		for _, b := range perTable[i] {
			for r := 0; r < b.Len(); r++ {
				rows = append(rows, unionRowFrom(name, b, r))
			}
		}
	}
	return rows, nil
}

// unionRowFrom reads the 9 base columns (every metric table's common
// prefix) plus the type-specific columns for name's metric family out of
// batch row r.
func unionRowFrom(name string, b scan.Batch, r int) UnionRow {
	row := UnionRow{
		Timestamp:          b.TimestampNS(schema.MetricsColTimestamp, r),
		ServiceName:        b.Varchar(schema.MetricsColServiceName, r),
		MetricName:         b.Varchar(schema.MetricsColMetricName, r),
		MetricDescription:  nullableVarchar(b, schema.MetricsColMetricDescription, r),
		MetricUnit:         nullableVarchar(b, schema.MetricsColMetricUnit, r),
		ResourceAttributes: b.Map(schema.MetricsColResourceAttributes, r),
		ScopeName:          nullableVarchar(b, schema.MetricsColScopeName, r),
		ScopeVersion:       nullableVarchar(b, schema.MetricsColScopeVersion, r),
		Attributes:         b.Map(schema.MetricsColAttributes, r),
	}

	row.MetricType, _ = schema.SourceMetricType(name)

	switch name {
	case schema.TableMetricsGauge:
		row.Value = f64ptr(b.Float64(schema.GaugeColValue, r))
	case schema.TableMetricsSum:
		row.Value = f64ptr(b.Float64(schema.SumColValue, r))
		row.AggregationTemporality = i32ptr(b.Int32(schema.SumColAggregationTemporality, r))
		row.IsMonotonic = boolptr(b.Bool(schema.SumColIsMonotonic, r))
	case schema.TableMetricsHistogram:
		row.Count = u64ptr(b.UInt64(schema.HistogramColCount, r))
		row.Sum = nullableFloat64(b, schema.HistogramColSum, r)
		row.BucketCounts = b.ListUInt64(schema.HistogramColBucketCounts, r)
		row.ExplicitBounds = b.ListFloat64(schema.HistogramColExplicitBounds, r)
		row.Min = nullableFloat64(b, schema.HistogramColMin, r)
		row.Max = nullableFloat64(b, schema.HistogramColMax, r)
	case schema.TableMetricsExpHistogram:
		row.Count = u64ptr(b.UInt64(schema.ExpHistogramColCount, r))
		row.Sum = nullableFloat64(b, schema.ExpHistogramColSum, r)
		row.Scale = i32ptr(b.Int32(schema.ExpHistogramColScale, r))
		row.ZeroCount = u64ptr(b.UInt64(schema.ExpHistogramColZeroCount, r))
		row.PositiveOffset = i32ptr(b.Int32(schema.ExpHistogramColPositiveOffset, r))
		row.PositiveBucketCounts = b.ListUInt64(schema.ExpHistogramColPositiveBucketCounts, r)
		row.NegativeOffset = i32ptr(b.Int32(schema.ExpHistogramColNegativeOffset, r))
		row.NegativeBucketCounts = b.ListUInt64(schema.ExpHistogramColNegativeBucketCounts, r)
		row.Min = nullableFloat64(b, schema.ExpHistogramColMin, r)
		row.Max = nullableFloat64(b, schema.ExpHistogramColMax, r)
	case schema.TableMetricsSummary:
		row.Count = u64ptr(b.UInt64(schema.SummaryColCount, r))
		row.Sum = f64ptr(b.Float64(schema.SummaryColSum, r))
		row.QuantileValues = b.ListFloat64(schema.SummaryColQuantileValues, r)
		row.QuantileQuantiles = b.ListFloat64(schema.SummaryColQuantileQuantiles, r)
	}
	return row
}

func nullableVarchar(b scan.Batch, col, row int) string {
	if b.IsNull(col, row) {
		return ""
	}
	return b.Varchar(col, row)
}

func nullableFloat64(b scan.Batch, col, row int) *float64 {
	if b.IsNull(col, row) {
		return nil
	}
	return f64ptr(b.Float64(col, row))
}

func f64ptr(v float64) *float64 { return &v }
func i32ptr(v int32) *int32     { return &v }
func u64ptr(v uint64) *uint64   { return &v }
func boolptr(v bool) *bool      { return &v }
