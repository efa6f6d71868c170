package testutil

import (
	"context"
	"net/http"
	"sync"

	"github.com/preston-bernstein/sebango-service/internal/poller"
)

// StubPoller implements the server's Poller for tests.
type StubPoller struct {
	mu         sync.Mutex
	StartCalls int
	StopCalls  int
	Err        error
	StatusVal  poller.Status
}

func (p *StubPoller) Start(context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.StartCalls++
}

func (p *StubPoller) Stop(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.StopCalls++
	return p.Err
}

func (p *StubPoller) Status() poller.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.StatusVal
}

// Calls returns the start and stop counts.
func (p *StubPoller) Calls() (start, stop int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.StartCalls, p.StopCalls
}

// StubHTTPServer implements the server's httpServer for tests. ListenAndServe returns ListenErr
// immediately, or blocks until Shutdown when Block is set.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Block       bool

	mu            sync.Mutex
	listenCalls   int
	shutdownCalls int
	closed        chan struct{}
	once          sync.Once
}

func (s *StubHTTPServer) init() {
	s.once.Do(func() { s.closed = make(chan struct{}) })
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.init()
	s.mu.Lock()
	s.listenCalls++
	s.mu.Unlock()
	if s.Block && s.ListenErr == nil {
		<-s.closed
		return http.ErrServerClosed
	}
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.init()
	s.mu.Lock()
	s.shutdownCalls++
	first := s.shutdownCalls == 1
	s.mu.Unlock()
	if first {
		close(s.closed)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NotFoundHandler()
	}
	return s.HandlerVal
}

// Calls returns the listen and shutdown counts.
func (s *StubHTTPServer) Calls() (listen, shutdown int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listenCalls, s.shutdownCalls
}
