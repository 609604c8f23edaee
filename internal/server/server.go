package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/voxelcast/voxelcast/internal/core/observability/log"
	"github.com/voxelcast/voxelcast/internal/core/world"
	"github.com/voxelcast/voxelcast/pkg/collision"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Config configures the query service.
type Config struct {
	Host         string `json:"host" yaml:"host"`
	Port         int    `json:"port" yaml:"port"`
	MaxSessions  int    `json:"max_sessions,omitempty" yaml:"max_sessions,omitempty"`
	SweepWorkers int    `json:"sweep_workers,omitempty" yaml:"sweep_workers,omitempty"`
}

// Validate checks the config before the server starts.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalidConfig, c.Port)
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("%w: max_sessions %d", ErrInvalidConfig, c.MaxSessions)
	}
	return nil
}

// QueryServer exposes the world's collision queries over a websocket
// endpoint at /query. Each connection is a session; requests on a session
// are answered in order.
type QueryServer struct {
	cfg        Config
	w          *world.World
	lg         log.Log
	httpServer *http.Server

	mu       sync.Mutex
	sessions map[uuid.UUID]*websocket.Conn
	running  bool
}

// NewQueryServer validates the config and builds the server.
func NewQueryServer(cfg Config, w *world.World, lg log.Log) (*QueryServer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &QueryServer{
		cfg:      cfg,
		w:        w,
		lg:       lg,
		sessions: make(map[uuid.UUID]*websocket.Conn),
	}, nil
}

// Start begins serving in the background.
func (s *QueryServer) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}
	s.running = true
	s.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("/query", s.handleQuery)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler: mux,
	}

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.lg.Error("query server stopped", log.Error(err))
		}
	}()

	s.lg.Info("query server listening",
		log.String("host", s.cfg.Host),
		log.Int("port", s.cfg.Port),
	)
	return nil
}

// Stop shuts the server down and closes all sessions.
func (s *QueryServer) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrServerNotRunning
	}
	s.running = false
	for id, conn := range s.sessions {
		_ = conn.Close()
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	return s.httpServer.Shutdown(ctx)
}

func (s *QueryServer) handleQuery(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.lg.Warn("websocket upgrade failed", log.Error(err))
		return
	}

	sessionID := uuid.New()

	s.mu.Lock()
	if s.cfg.MaxSessions > 0 && len(s.sessions) >= s.cfg.MaxSessions {
		s.mu.Unlock()
		s.lg.Warn("session rejected", log.Error(ErrMaxSessionsReached))
		_ = conn.Close()
		return
	}
	s.sessions[sessionID] = conn
	s.mu.Unlock()

	lg := s.lg.With(log.String("session", sessionID.String()))
	lg.Info("session opened", log.String("remote", conn.RemoteAddr().String()))

	defer func() {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		_ = conn.Close()
		lg.Info("session closed")
	}()

	for {
		var req QueryRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				lg.Warn("session read failed", log.Error(err))
			}
			return
		}

		resp := s.dispatch(req)
		if err := conn.WriteJSON(resp); err != nil {
			lg.Warn("session write failed", log.Error(err))
			return
		}
	}
}

// dispatch runs one query against the world and shapes the response.
func (s *QueryServer) dispatch(req QueryRequest) QueryResponse {
	resp := QueryResponse{ID: req.ID}

	s.lg.Debug("query dispatched",
		log.String("id", req.ID),
		log.String("type", string(req.Type)),
		log.Vec3("start", req.Start.X, req.Start.Y, req.Start.Z),
		log.Vec3("end", req.End.X, req.End.Y, req.End.Z),
	)

	switch req.Type {
	case QueryRaycast:
		if hit, ok := s.w.Raycast(req.Start, req.End); ok {
			resp.OK = true
			resp.Block = &hit
		}

	case QueryIntercept:
		if req.Box == nil {
			resp.Error = ErrMissingBox.Error()
			return resp
		}
		if hit, ok := collision.Intercept(*req.Box, req.Start, req.End); ok {
			resp.OK = true
			resp.Hit = &hit
		}

	case QuerySweep:
		if len(req.Segments) == 0 {
			resp.Error = ErrEmptySweep.Error()
			return resp
		}
		resp.OK = true
		resp.Results = s.w.Sweep(req.Segments, s.cfg.SweepWorkers)

	default:
		resp.Error = ErrUnknownQueryType.Error()
	}

	return resp
}
