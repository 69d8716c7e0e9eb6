// Package livestream re-broadcasts a parsed MIDI file's decoded events
// over websocket connections, paced in real time by each event's
// delta-time. It produces no audio; it is a metadata relay for external
// tooling (lighting consoles, visualizers, test harnesses).
package livestream

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/midiweave/smf/pkg/smf"
)

// Client is a single connected websocket listener.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	ctx  context.Context
}

// EventMessage is the JSON shape delivered for every decoded wire event.
type EventMessage struct {
	Track int    `json:"track"`
	Event string `json:"event"`
	Delta uint32 `json:"delta"`
}

// Hub owns the set of connected clients. A single goroutine (Run) mutates
// the client map; everything else communicates with it only through the
// register/unregister channels. When armed with a file (via NewReplayHub),
// Hub also starts a dedicated replay goroutine for each client as it
// registers: delivery is unicast per client rather than fanned out through
// a shared broadcast queue, so simultaneous listeners never see each
// other's messages and each gets the file replayed from the start on its
// own wall clock.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client

	file           *smf.File
	ticksPerSecond float64
	logger         *slog.Logger
}

// NewHub creates a hub with no file attached. Registering a client tracks
// it but starts no replay; this is the bare registration bookkeeping most
// tests exercise directly.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// NewReplayHub creates a hub that replays file's decoded events to every
// client it registers, paced at ticksPerSecond.
func NewReplayHub(file *smf.File, ticksPerSecond float64, logger *slog.Logger) *Hub {
	h := NewHub()
	h.file = file
	h.ticksPerSecond = ticksPerSecond
	h.logger = logger
	return h
}

// Run drives the hub's event loop. Call it in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			if h.file != nil {
				go h.replay(client)
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
		}
	}
}

// ClientCount reports how many clients are currently registered.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// replay walks every track's events in parallel-by-offset order (tracks
// advance independently against the same wall clock, as a real sequencer
// would) and pushes each one to client as it becomes due.
func (h *Hub) replay(client *Client) {
	cursors := make([]int, len(h.file.Tracks))
	ticks := make([]uint32, len(h.file.Tracks))
	var now uint32

	for {
		nextTrack := -1
		var nextDue uint32
		for t, track := range h.file.Tracks {
			if cursors[t] >= len(track.Events) {
				continue
			}
			due := ticks[t] + track.Events[cursors[t]].Delta()
			if nextTrack == -1 || due < nextDue {
				nextTrack = t
				nextDue = due
			}
		}
		if nextTrack == -1 {
			return
		}

		event := h.file.Tracks[nextTrack].Events[cursors[nextTrack]]
		waitSeconds := float64(nextDue-now) / h.ticksPerSecond
		select {
		case <-client.ctx.Done():
			return
		case <-time.After(time.Duration(waitSeconds * float64(time.Second))):
		}

		ticks[nextTrack] = nextDue
		now = nextDue
		cursors[nextTrack]++

		msg := EventMessage{Track: nextTrack, Event: event.EventLabel(), Delta: event.Delta()}
		data, err := json.Marshal(msg)
		if err != nil {
			if h.logger != nil {
				h.logger.Error("failed to marshal event", "error", err)
			}
			continue
		}
		select {
		case client.send <- data:
		case <-client.ctx.Done():
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
