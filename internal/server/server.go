// Package server implements the TCP accept loop that dispatches each
// connection to the worker pool: read one request line, invoke the
// engine, write one response line, close (spec §2, §6.2, §6.5).
package server

import (
	"context"
	"net"

	"github.com/ignitedb/ignite/internal/engine"
	"github.com/ignitedb/ignite/internal/protocol"
	"github.com/ignitedb/ignite/internal/workerpool"
	"github.com/ignitedb/ignite/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Server accepts TCP connections on Addr and serves each with a request
// from the shared worker pool, against a shared Engine.
type Server struct {
	addr    string
	engine  engine.Engine
	pool    *workerpool.Pool
	log     *zap.SugaredLogger
	metrics *serverMetrics
}

// Config configures a new Server.
type Config struct {
	Addr       string
	Engine     engine.Engine
	Workers    int
	Logger     *zap.SugaredLogger
	Registerer prometheus.Registerer
}

// New builds a Server and its worker pool. It does not bind a listener -
// call Serve for that, so callers can validate configuration (e.g. the
// engine meta-file guard) before committing to a port.
func New(config *Config) *Server {
	return &Server{
		addr:    config.Addr,
		engine:  config.Engine,
		pool:    workerpool.New(config.Workers, config.Logger),
		log:     config.Logger,
		metrics: newServerMetrics(config.Registerer),
	}
}

// Serve binds Addr and accepts connections until ctx is cancelled or
// listening fails. Each connection is dispatched to the worker pool and
// handled with its own duplicated engine handle when the engine supports
// it (spec §5, §9).
func (s *Server) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.NewIOError(err, "failed to bind server listener").WithPath(s.addr)
	}
	defer listener.Close()

	s.log.Infow("server listening", "addr", s.addr)

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return errors.NewIOError(err, "failed to accept connection")
			}
		}

		handlerEngine := s.engine
		if dup, ok := s.engine.(engine.Duplicable); ok {
			handlerEngine = dup.Duplicate()
		}

		s.pool.Spawn(func() {
			s.handleConnection(ctx, conn, handlerEngine)
		})
	}
}

// Close stops the worker pool, waiting for in-flight connections to
// finish.
func (s *Server) Close() {
	s.pool.Close()
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn, eng engine.Engine) {
	defer conn.Close()

	codec := protocol.NewCodec(conn)
	req, err := codec.ReadRequest()
	if err != nil {
		s.log.Warnw("failed to read request", "remote", conn.RemoteAddr(), "error", err)
		return
	}

	switch {
	case req.Get != nil:
		s.metrics.requests.WithLabelValues("get").Inc()
		value, found, err := eng.Get(ctx, req.Get.Key)
		if err != nil {
			codec.WriteGetResponse(protocol.NewGetErr(err.Error()))
			return
		}
		if !found {
			codec.WriteGetResponse(protocol.NewGetOK(nil))
			return
		}
		codec.WriteGetResponse(protocol.NewGetOK(&value))

	case req.Set != nil:
		s.metrics.requests.WithLabelValues("set").Inc()
		if err := eng.Set(ctx, req.Set.Key, req.Set.Value); err != nil {
			codec.WriteSetResponse(protocol.NewSetErr(err.Error()))
			return
		}
		codec.WriteSetResponse(protocol.NewSetOK())

	case req.Rm != nil:
		s.metrics.requests.WithLabelValues("rm").Inc()
		if err := eng.Remove(ctx, req.Rm.Key); err != nil {
			codec.WriteRmResponse(protocol.NewRmErr(err.Error()))
			return
		}
		codec.WriteRmResponse(protocol.NewRmOK())

	default:
		s.log.Warnw("request carried no recognised discriminant", "remote", conn.RemoteAddr())
	}
}
