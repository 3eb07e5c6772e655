// Package gateway bridges the host platform over a websocket.
//
// The platform bridge connects once and streams join, quit, move, death and
// chat frames. The hub keeps the participant registry current, hands each
// notification to the event hooks, and implements platform.Effects and
// platform.Announcer by sending frames back over every open bridge.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/coder/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/platform"
	"github.com/KirkDiggler/eventtools/internal/repositories/participant"
)

// DefaultQueueSize bounds the outbound frames buffered per bridge
const DefaultQueueSize = 1024

const readLimit = 64 << 10

var (
	// ErrQueueFull is returned when a frame was dropped for at least one bridge
	ErrQueueFull = errors.New("gateway write queue is full, frame dropped")

	// ErrUnknownFrame is returned for an inbound frame type the hub does not handle
	ErrUnknownFrame = errors.New("unknown frame type")

	errBridgeClosed = errors.New("bridge closed")
)

var (
	_ platform.Effects   = (*Hub)(nil)
	_ platform.Announcer = (*Hub)(nil)
)

// Hooks receives platform notifications after the registry reflects them
type Hooks interface {
	OnJoin(ctx context.Context, p *models.Participant)
	OnQuit(ctx context.Context, id models.ParticipantID)
	OnDeath(ctx context.Context, id models.ParticipantID)
	OnChat(ctx context.Context, p *models.Participant, message string) bool
}

// Config holds configuration for the hub
type Config struct {
	// Registry records live connections
	Registry participant.Repository

	// Hooks receives notifications
	Hooks Hooks

	// QueueSize bounds outbound frames per bridge, DefaultQueueSize when zero
	QueueSize int

	// InsecureSkipVerify disables the Origin check on accept
	InsecureSkipVerify bool
}

type bridge struct {
	id     uint64
	conn   *websocket.Conn
	writes chan []byte
}

// Hub accepts bridge connections and implements the platform adapters
type Hub struct {
	registry   participant.Repository
	hooks      Hooks
	queueSize  int
	skipVerify bool

	nextID  atomic.Uint64
	mu      sync.RWMutex
	bridges map[uint64]*bridge
}

// New creates a hub
func New(cfg *Config) (*Hub, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Registry == nil {
		return nil, errors.New("participant registry cannot be nil")
	}
	if cfg.Hooks == nil {
		return nil, errors.New("hooks cannot be nil")
	}

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	return &Hub{
		registry:   cfg.Registry,
		hooks:      cfg.Hooks,
		queueSize:  queueSize,
		skipVerify: cfg.InsecureSkipVerify,
		bridges:    make(map[uint64]*bridge),
	}, nil
}

// Bridges returns the number of open bridge connections
func (h *Hub) Bridges() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.bridges)
}

// ServeHTTP upgrades the request and serves the bridge until it disconnects
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: h.skipVerify,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to accept bridge", "err", err)
		return
	}
	conn.SetReadLimit(readLimit)

	b := &bridge{
		id:     h.nextID.Add(1),
		conn:   conn,
		writes: make(chan []byte, h.queueSize),
	}
	h.mu.Lock()
	h.bridges[b.id] = b
	h.mu.Unlock()
	slog.InfoContext(ctx, "bridge connected", "bridge", b.id, "remote", r.RemoteAddr)

	defer func() {
		h.mu.Lock()
		delete(h.bridges, b.id)
		h.mu.Unlock()
		conn.CloseNow()
		slog.InfoContext(ctx, "bridge disconnected", "bridge", b.id)
	}()

	if err := h.serve(ctx, b); err != nil {
		slog.WarnContext(ctx, "bridge closed with error", "bridge", b.id, "err", err)
	}
}

func (h *Hub) serve(ctx context.Context, b *bridge) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return h.readLoop(ctx, b)
	})
	eg.Go(func() error {
		return h.writeLoop(ctx, b)
	})
	if err := eg.Wait(); err != nil && !errors.Is(err, errBridgeClosed) {
		return err
	}
	return nil
}

func (h *Hub) readLoop(ctx context.Context, b *bridge) error {
	for {
		typ, data, err := b.conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return errBridgeClosed
			}
			if ctx.Err() != nil {
				return errBridgeClosed
			}
			return err
		}
		if typ != websocket.MessageText {
			slog.WarnContext(ctx, "ignoring non-text frame", "bridge", b.id, "type", typ)
			continue
		}

		// a bad frame is dropped, the bridge stays up
		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			slog.WarnContext(ctx, "malformed frame", "bridge", b.id, "err", err)
			continue
		}

		if err := h.handle(ctx, b, &f); err != nil {
			slog.WarnContext(ctx, "failed to handle frame", "bridge", b.id, "type", f.Type, "err", err)
		}
	}
}

func (h *Hub) writeLoop(ctx context.Context, b *bridge) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case data := <-b.writes:
			if err := b.conn.Write(ctx, websocket.MessageText, data); err != nil {
				return fmt.Errorf("write frame: %w", err)
			}
		}
	}
}

// handle applies one inbound frame. Registry changes land before the hooks
// run. A nil bridge drops chat results.
func (h *Hub) handle(ctx context.Context, b *bridge, f *Frame) error {
	switch f.Type {
	case FrameJoin:
		if f.Participant == nil || f.Participant.ID == "" {
			return errors.New("join frame without participant")
		}
		if err := h.registry.Upsert(ctx, &participant.UpsertInput{Participant: f.Participant}); err != nil {
			return err
		}
		h.hooks.OnJoin(ctx, f.Participant)

	case FrameQuit:
		if err := h.registry.Remove(ctx, &participant.RemoveInput{ParticipantID: f.ID}); err != nil {
			return err
		}
		h.hooks.OnQuit(ctx, f.ID)

	case FrameMove:
		if f.Location == nil {
			return errors.New("move frame without location")
		}
		return h.registry.UpdateLocation(ctx, &participant.UpdateLocationInput{
			ParticipantID: f.ID,
			Location:      *f.Location,
		})

	case FrameDeath:
		h.hooks.OnDeath(ctx, f.ID)

	case FrameChat:
		var consumed bool
		p, err := h.registry.Get(ctx, f.ID)
		if err == nil {
			consumed = h.hooks.OnChat(ctx, p, f.Text)
		}
		if b != nil {
			// every chat frame gets a chat_result
			if qerr := h.enqueue(ctx, b, &Frame{Type: FrameChatResult, Ref: f.Ref, Consumed: consumed}); qerr != nil {
				return qerr
			}
		}
		return err

	default:
		return fmt.Errorf("%w: %q", ErrUnknownFrame, f.Type)
	}
	return nil
}

func (h *Hub) enqueue(ctx context.Context, b *bridge, f *Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}
	select {
	case b.writes <- data:
		return nil
	default:
		slog.WarnContext(ctx, "bridge queue full, frame dropped", "bridge", b.id, "type", f.Type)
		return ErrQueueFull
	}
}

// send queues f on every open bridge
func (h *Hub) send(ctx context.Context, f *Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.bridges) == 0 {
		slog.DebugContext(ctx, "no bridge connected, frame dropped", "type", f.Type)
		return nil
	}

	var dropped bool
	for _, b := range h.bridges {
		select {
		case b.writes <- data:
		default:
			dropped = true
			slog.WarnContext(ctx, "bridge queue full, frame dropped", "bridge", b.id, "type", f.Type)
		}
	}
	if dropped {
		return ErrQueueFull
	}
	return nil
}
