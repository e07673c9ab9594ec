// Package otlpsink is the embedded OTLP sink and query layer: Attach
// starts a gRPC receiver writing into a per-table set of columnar ring
// buffers, Table binds a point-in-time scan over one of them, and Detach
// tears the whole thing down.
package otlpsink

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"otlpsink/internal/columnar"
	"otlpsink/internal/receiver"
	"otlpsink/internal/scan"
	"otlpsink/internal/schema"
	"otlpsink/internal/store"
	apperrors "otlpsink/pkg/errors"
	"otlpsink/pkg/logging"
)

// detachTimeout bounds how long Detach waits for the receiver's graceful
// stop before forcing it, matching the Receiver's own Stop contract.
const detachTimeout = 10 * time.Second

// Database is the handle returned by Attach: it exclusively owns the
// store's ring buffers and the Receiver, per spec.md §9's re-expression
// of the source's optional_ptr/shared_ptr aliasing — every other
// participant (Table, Scanner) holds a reference into this handle, never
// the reverse.
type Database struct {
	store    *store.Store
	receiver *receiver.Receiver

	detachOnce sync.Once
	detachErr  error
}

// Attach parses spec ("host:port", optionally "otlp:"-prefixed) and
// options, builds one ring buffer per schema table sized from
// buffer_size, starts the gRPC receiver, and returns the resulting
// Database. Attach fails cleanly: on any error after the store is built,
// the store's buffers are simply dropped with it (they hold no external
// resources) before Attach returns.
func Attach(spec string, options map[string]string) (*Database, error) {
	return attachWithRegistry(spec, options, nil)
}

// attachWithRegistry is Attach with an explicit Prometheus registerer,
// split out so tests can attach against an isolated registry instead of
// the global default one.
func attachWithRegistry(spec string, options map[string]string, registry prometheus.Registerer) (*Database, error) {
	parsed, err := parseAttach(spec, options)
	if err != nil {
		return nil, err
	}

	st := store.New(parsed.bufferSize, registry)

	logger := logging.NewLoggerWithFormat(slog.LevelInfo, "json")
	decodeLogger := logrus.New()

	r := receiver.New(parsed.host, parsed.port, st, logger, decodeLogger)
	if err := r.Start(); err != nil {
		return nil, err
	}

	return &Database{store: st, receiver: r}, nil
}

// Detach stops the receiver; the buffers are kept. It is idempotent and
// safe to call more than once; subsequent Table lookups still succeed
// against the now-static, no-longer-appended-to buffers, matching the
// spec's description that it's the host's responsibility to reject
// queries against a detached attach name.
func (d *Database) Detach() error {
	d.detachOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), detachTimeout)
		defer cancel()
		d.detachErr = d.receiver.Stop(ctx)
	})
	return d.detachErr
}

// Table looks up one of the seven schema tables' backing buffer by name
// and returns a handle usable to bind scans against it.
func (d *Database) Table(name string) (*Table, error) {
	buf, ok := d.store.Buffer(name)
	if !ok {
		return nil, apperrors.NewInvalidAttach(fmt.Sprintf("unknown table %q", name))
	}
	table, _ := schema.Get(name)
	return &Table{descriptor: table, buf: buf}, nil
}

// Tables lists every table name this Database backs.
func (d *Database) Tables() []string {
	return d.store.Tables()
}

// Table is a bind-ready handle on one of the Database's ring buffers:
// the "table-like reader" spec.md §6 describes.
type Table struct {
	descriptor *schema.Table
	buf        *columnar.RingBuffer
}

// Name returns the table's name.
func (t *Table) Name() string { return t.descriptor.Name }

// ColumnNames returns the table's ordered column names.
func (t *Table) ColumnNames() []string { return t.descriptor.ColumnNames() }

// Bind starts a point-in-time scan over the table with the given
// projection and pushed-down filters (nil projection scans every
// column). registry may be nil.
func (t *Table) Bind(projection []int, filters []scan.PushedFilter, registry prometheus.Registerer) *scan.Scanner {
	return scan.Bind(t.buf, projection, filters, registry)
}

// Scan binds and runs a scan to completion, returning every batch it
// produced. A convenience wrapper around Bind + scan.Collect for callers
// that want a materialized result rather than a streaming one.
func (t *Table) Scan(ctx context.Context, projection []int, filters []scan.PushedFilter, workers int) ([]scan.Batch, error) {
	s := t.Bind(projection, filters, nil)
	return scan.Collect(ctx, s, workers)
}
