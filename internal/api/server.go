// Package api exposes a debug HTTP surface over a running audiohal
// Engine: routing state, stream definitions, and the open/route/volume/
// usecase operations, for introspection and manual exercising of a
// loaded configuration. It is not part of the routing engine itself.
package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/haldev/audiohal/internal/audiohal"
)

// Server is a Huma v2 API bound to a single Engine. The engine itself
// serializes nothing internally, so every handler that touches it or
// the stream registry holds mu for the duration of the call.
type Server struct {
	api huma.API
	mux *http.ServeMux
	srv *http.Server

	engine *audiohal.Engine

	mu      sync.Mutex
	nextID  atomic.Uint64
	streams map[string]*audiohal.OpenStream
}

// NewServer builds a debug API server for engine.
func NewServer(engine *audiohal.Engine) *Server {
	mux := http.NewServeMux()
	config := huma.DefaultConfig("audiohal debug API", "1.0.0")
	config.Info.Description = "Introspection and manual control surface for a loaded audio routing configuration."

	s := &Server{
		api:     humago.New(mux, config),
		mux:     mux,
		engine:  engine,
		streams: make(map[string]*audiohal.OpenStream),
	}
	s.registerRoutes()
	return s
}

// Start begins serving on addr. It blocks until the server stops.
func (s *Server) Start(addr string) error {
	s.srv = &http.Server{Addr: addr, Handler: s.mux}
	return s.srv.ListenAndServe()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health",
		Tags:        []string{"health"},
	}, func(_ context.Context, _ *struct{}) (*HealthResponse, error) {
		return &HealthResponse{Body: HealthData{Status: "ok"}}, nil
	})

	s.registerDeviceRoutes()
	s.registerStreamRoutes()
}

// errToHuma maps an audiohal.Error's Kind to the matching HTTP status.
func errToHuma(err error) error {
	var ae *audiohal.Error
	if e, ok := err.(*audiohal.Error); ok {
		ae = e
	} else {
		return huma.Error500InternalServerError("engine error", err)
	}
	switch ae.Kind {
	case audiohal.KindNotFound:
		return huma.Error404NotFound(ae.Message, ae)
	case audiohal.KindInvalidArgument:
		return huma.Error400BadRequest(ae.Message, ae)
	case audiohal.KindResourceLimit:
		return huma.Error409Conflict(ae.Message, ae)
	default:
		return huma.Error500InternalServerError(ae.Message, ae)
	}
}

func (s *Server) lookupStream(id string) (*audiohal.OpenStream, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.streams[id]
	return st, ok
}

func (s *Server) trackStream(st *audiohal.OpenStream) string {
	id := fmt.Sprintf("s%d", s.nextID.Add(1))
	s.mu.Lock()
	s.streams[id] = st
	s.mu.Unlock()
	return id
}

func (s *Server) untrackStream(id string) {
	s.mu.Lock()
	delete(s.streams, id)
	s.mu.Unlock()
}
