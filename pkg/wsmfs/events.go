package wsmfs

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/jcd386/WSM-File-System/pkg/models"
)

// EventAction names what happened to a node.
type EventAction string

const (
	EventCreated EventAction = "created"
	EventRenamed EventAction = "renamed"
	EventMoved   EventAction = "moved"
	EventDeleted EventAction = "deleted"
)

// Event is one change-feed entry, pushed to every connected websocket
// client after a mutation commits.
type Event struct {
	Action   EventAction     `json:"action"`
	NodeKind models.NodeKind `json:"nodeKind"`
	NodeID   string          `json:"nodeId"`
	Name     string          `json:"name"`
	AnchorID string          `json:"anchorId,omitempty"`
	At       time.Time       `json:"at"`
}

// Hub fans mutation events out to websocket subscribers. Slow clients are
// dropped rather than blocking the publisher.
type Hub struct {
	log      zerolog.Logger
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

type subscriber struct {
	conn *websocket.Conn
	send chan Event
}

// NewHub creates an empty hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Same-origin policy is left to the deployment's proxy.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		subs: make(map[*subscriber]struct{}),
	}
}

// ServeHTTP upgrades the request to a websocket and streams events until the
// client disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	sub := &subscriber{conn: conn, send: make(chan Event, 64)}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	h.log.Debug().Str("remote", r.RemoteAddr).Msg("change feed subscriber connected")

	go h.writeLoop(sub)
	h.readLoop(sub)
}

// readLoop drains client frames; the feed is one-way, so anything received
// is discarded. Returning unregisters the subscriber.
func (h *Hub) readLoop(sub *subscriber) {
	defer h.drop(sub)
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(sub *subscriber) {
	for ev := range sub.send {
		if err := sub.conn.WriteJSON(ev); err != nil {
			h.drop(sub)
			return
		}
	}
}

func (h *Hub) drop(sub *subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.send)
	}
	h.mu.Unlock()
	sub.conn.Close()
}

// Publish delivers an event to every subscriber. Subscribers whose buffers
// are full are dropped.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	var stale []*subscriber
	for sub := range h.subs {
		select {
		case sub.send <- ev:
		default:
			stale = append(stale, sub)
		}
	}
	h.mu.Unlock()
	for _, sub := range stale {
		h.drop(sub)
	}
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := make([]*subscriber, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()
	for _, sub := range subs {
		h.drop(sub)
	}
}

func (s *Service) publishFolder(action EventAction, f *models.Folder) {
	if s.events == nil {
		return
	}
	s.events.Publish(Event{
		Action:   action,
		NodeKind: models.NodeKindFolder,
		NodeID:   f.ID.String(),
		Name:     f.Name,
		AnchorID: f.AnchorID.String(),
		At:       time.Now().UTC(),
	})
}

func (s *Service) publishFile(action EventAction, f *models.File) {
	if s.events == nil {
		return
	}
	s.events.Publish(Event{
		Action:   action,
		NodeKind: models.NodeKindFile,
		NodeID:   f.ID.String(),
		Name:     f.Name,
		At:       time.Now().UTC(),
	})
}
