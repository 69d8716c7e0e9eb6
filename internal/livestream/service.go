package livestream

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/midiweave/smf/pkg/smf"
)

// Service holds an already-parsed file and replays its decoded events to
// every connected client, paced in real time.
type Service struct {
	file           *smf.File
	hub            *Hub
	ticksPerSecond float64
	logger         *slog.Logger
	httpServer     *http.Server
}

// defaultBPM is the tempo assumed for a PPQ file when the caller does not
// specify a ticksPerSecond. Set Tempo events in the file are not consulted.
const defaultBPM = 120

// NewService constructs a Service over an already-parsed file. ticksPerSecond,
// when zero, is derived from the file's time division (PPQ at 120 BPM, or
// the SMPTE frame rate times ticks-per-frame).
func NewService(file *smf.File, ticksPerSecond float64, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if ticksPerSecond <= 0 {
		ticksPerSecond = defaultTicksPerSecond(file.TimeDivision)
	}
	return &Service{
		file:           file,
		hub:            NewReplayHub(file, ticksPerSecond, logger),
		ticksPerSecond: ticksPerSecond,
		logger:         logger,
	}
}

func defaultTicksPerSecond(division smf.TimeDivision) float64 {
	if division.Kind == smf.DivisionSMPTE {
		return float64(division.FramesPerSecond) * float64(division.TicksPerFrame)
	}
	ppq := float64(division.PPQ)
	if ppq == 0 {
		ppq = 480
	}
	return (float64(defaultBPM) / 60.0) * ppq
}

// ListenAndServe starts the hub's goroutine and the HTTP server on addr,
// exposing the replay endpoint at /ws.
func (s *Service) ListenAndServe(addr string) error {
	go s.hub.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("livestream service starting", "addr", addr, "ticksPerSecond", s.ticksPerSecond)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Service) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(_ *http.Request) bool { return true },
}

func (s *Service) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{hub: s.hub, conn: conn, send: make(chan []byte, 256), ctx: r.Context()}
	s.hub.register <- client

	go client.writePump()
	go client.readPump()
}
