// Package receiver implements the gRPC OTLP ingestion surface: three
// services (Traces, Metrics, Logs), each exposing one Export RPC, plus the
// New→Starting→Running→Stopping→Stopped lifecycle spec.md §4.4 describes.
package receiver

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"

	"github.com/sirupsen/logrus"

	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	colmetricspb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"

	"otlpsink/internal/store"
	apperrors "otlpsink/pkg/errors"
)

// State is one step of the Receiver's lifecycle (spec.md §4.4).
type State int32

const (
	StateNew State = iota
	StateStarting
	StateRunning
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// startupDeadline bounds how long Start waits for the server goroutine to
// either bind successfully or fail, grounded on spec.md §4.4's "5-second
// startup deadline" (re-expressed per DESIGN NOTES as a one-shot channel
// rendezvous rather than the source's sleep-poll).
const startupDeadline = 5 * time.Second

// Receiver owns the gRPC server and its background accept-loop goroutine
// for one attach.
type Receiver struct {
	mu    sync.Mutex
	state State

	host string
	port int

	grpcServer *grpc.Server
	listener   net.Listener
	logger     *slog.Logger
}

// New builds a Receiver bound to host:port, serving the three OTLP
// services against store's buffers. The gRPC server is constructed here
// but not yet listening; call Start to bind and begin serving.
func New(host string, port int, st *store.Store, logger *slog.Logger, decodeLogger *logrus.Logger) *Receiver {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			recoveryInterceptor(logger),
			loggingInterceptor(logger),
		),
		grpc.MaxRecvMsgSize(16*1024*1024),
		grpc.MaxSendMsgSize(16*1024*1024),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    1 * time.Minute,
			Timeout: 20 * time.Second,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             30 * time.Second,
			PermitWithoutStream: true,
		}),
	)

	coltracepb.RegisterTraceServiceServer(grpcServer, &traceHandler{store: st, logger: logger})
	collogspb.RegisterLogsServiceServer(grpcServer, &logsHandler{store: st, logger: logger})
	colmetricspb.RegisterMetricsServiceServer(grpcServer, &metricsHandler{store: st, logger: logger, decodeLogger: decodeLogger})

	return &Receiver{
		host:       host,
		port:       port,
		grpcServer: grpcServer,
		logger:     logger,
		state:      StateNew,
	}
}

// State returns the receiver's current lifecycle state.
func (r *Receiver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Start binds the listening socket and begins serving in a background
// goroutine, blocking until the socket is accepting connections, the bind
// fails, or startupDeadline elapses. A bind failure or timeout surfaces a
// Bind-kind error synchronously, per spec.md §7.
func (r *Receiver) Start() error {
	r.mu.Lock()
	if r.state != StateNew {
		r.mu.Unlock()
		return apperrors.NewBind(fmt.Sprintf("receiver cannot start from state %s", r.state), nil)
	}
	r.state = StateStarting
	r.mu.Unlock()

	ready := make(chan error, 1)
	go r.serve(ready)

	select {
	case err := <-ready:
		r.mu.Lock()
		defer r.mu.Unlock()
		if err != nil {
			r.state = StateStopping
			return apperrors.NewBind("failed to bind otlp receiver", err)
		}
		r.state = StateRunning
		return nil
	case <-time.After(startupDeadline):
		r.mu.Lock()
		r.state = StateStopping
		r.mu.Unlock()
		return apperrors.NewBind("otlp receiver did not become ready within the startup deadline", nil)
	}
}

// serve binds the TCP listener and runs the gRPC accept loop. It signals
// ready (nil on success, the bind error otherwise) exactly once.
func (r *Receiver) serve(ready chan<- error) {
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", r.host, r.port))
	if err != nil {
		ready <- err
		return
	}

	r.mu.Lock()
	r.listener = lis
	r.mu.Unlock()
	ready <- nil

	r.logger.Info("otlp receiver listening", "host", r.host, "port", r.port)
	if err := r.grpcServer.Serve(lis); err != nil {
		r.logger.Error("otlp receiver accept loop exited", "error", err)
	}
}

// Stop is idempotent: it gracefully stops the gRPC server, falling back to
// a hard stop if ctx is done first, and joins the accept-loop goroutine.
// Calling Stop from StateNew or after a previous Stop is a no-op.
func (r *Receiver) Stop(ctx context.Context) error {
	r.mu.Lock()
	switch r.state {
	case StateNew, StateStopped:
		r.mu.Unlock()
		return nil
	}
	r.state = StateStopping
	r.mu.Unlock()

	stopped := make(chan struct{})
	go func() {
		r.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-ctx.Done():
		r.logger.Warn("graceful shutdown deadline exceeded, forcing stop")
		r.grpcServer.Stop()
		<-stopped
	case <-stopped:
	}

	r.mu.Lock()
	r.state = StateStopped
	r.mu.Unlock()
	return nil
}
