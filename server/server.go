// Package server accepts client connections on a UNIX stream socket and
// bridges them to the scheduling engine: decoded RUN/BLOCK frames become
// Admission events, and each connection doubles as the Notifier its bursts
// carry for DONE delivery.
package server

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sched"
)

// Server owns the listening socket and the set of live connections.
type Server struct {
	path   string
	engine *sched.Engine

	ln net.Listener
	wg sync.WaitGroup
}

// New creates a server that will listen on path and feed engine.
func New(path string, engine *sched.Engine) *Server {
	return &Server{path: path, engine: engine}
}

// Listen binds the UNIX socket, removing any stale socket file first.
func (s *Server) Listen() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale socket %s: %w", s.path, err)
	}
	ln, err := net.Listen("unix", s.path)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.path, err)
	}
	s.ln = ln
	logrus.Infof("listening on %s", s.path)
	return nil
}

// Serve accepts connections until ctx is cancelled. Each connection gets its
// own reader goroutine; the engine never sees a socket.
func (s *Server) Serve(ctx context.Context) error {
	if s.ln == nil {
		return fmt.Errorf("Serve called before Listen")
	}
	go func() {
		<-ctx.Done()
		s.ln.Close()
	}()
	for {
		raw, err := s.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.wg.Wait()
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		c := newConn(raw, s.engine)
		logrus.Debugf("client connected: %s", c.id)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			c.serve()
		}()
	}
}

// Close removes the socket file. Call after Serve has returned.
func (s *Server) Close() {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("removing socket %s: %v", s.path, err)
	}
}
