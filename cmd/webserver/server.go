package main

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
	"github.com/trytobebee/gridsnake/pkg/input"
	"github.com/trytobebee/gridsnake/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // the page is served from this process; any origin may play
	},
}

// ServerMessage is sent to the browser.
type ServerMessage struct {
	Type   string         `json:"type"`
	Config *ClientConfig  `json:"config,omitempty"`
	State  *game.Snapshot `json:"state,omitempty"`
}

// ClientConfig tells the page how to size the board.
type ClientConfig struct {
	Mode     game.Mode `json:"mode"`
	GridSize int       `json:"gridSize"`
	CellSize float64   `json:"cellSize"`
}

// ClientMessage is received from the browser.
type ClientMessage struct {
	Action string `json:"action"`
}

// Server hands every websocket connection its own session.
type Server struct {
	cfg config.Config
	log *zap.Logger
}

func NewServer(cfg config.Config, log *zap.Logger) *Server {
	return &Server{cfg: cfg, log: log}
}

// conn is one browser tab. The session is touched by the read loop and the
// tick loop, so both hold mu.
type conn struct {
	ws  *websocket.Conn
	log *zap.Logger

	mu       sync.Mutex
	session  *game.Session
	proposed []game.Point
	rec      *game.Recorder

	writeMu sync.Mutex
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()

	id := uuid.NewString()
	log := s.log.With(zap.String("session", id), zap.String("remote", r.RemoteAddr))

	session, err := game.NewSession(s.cfg.Settings(), append(s.cfg.SessionOptions(), game.WithLogger(log))...)
	if err != nil {
		log.Error("create session", zap.Error(err))
		return
	}

	c := &conn{ws: ws, log: log, session: session}
	if s.cfg.TraceDir != "" {
		if c.rec, err = game.NewRecorder(s.cfg.TraceDir, id, log); err != nil {
			log.Warn("trace disabled", zap.Error(err))
		} else {
			defer c.rec.Close()
		}
	}

	mode := s.cfg.Mode
	metrics.SessionOpened(mode)
	defer metrics.SessionClosed(mode)
	log.Info("client connected")

	if err := c.serve(r.Context(), s.cfg); err != nil && !isClosed(err) {
		log.Warn("connection ended", zap.Error(err))
		return
	}
	log.Info("client disconnected")
}

func (c *conn) serve(ctx context.Context, cfg config.Config) error {
	settings := c.session.Settings()
	if err := c.write(ServerMessage{Type: "config", Config: &ClientConfig{
		Mode:     settings.Mode,
		GridSize: settings.GridSize,
		CellSize: settings.CellSize,
	}}); err != nil {
		return err
	}
	if err := c.sendState(); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// ReadMessage does not watch ctx; closing the socket unblocks it.
		go func() {
			<-ctx.Done()
			c.ws.Close()
		}()
		return c.readLoop()
	})
	g.Go(func() error {
		var tickErr error
		err := cfg.Clock().Run(ctx, cfg.Frame(), func(dt time.Duration) bool {
			tickErr = c.tick(dt)
			return tickErr == nil
		})
		if tickErr != nil {
			return tickErr
		}
		return err
	})
	return g.Wait()
}

func (c *conn) readLoop() error {
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return err
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.log.Debug("bad client message", zap.ByteString("data", data))
			continue
		}
		if c.handleAction(msg.Action) {
			if err := c.sendState(); err != nil {
				return err
			}
		}
	}
}

// handleAction applies a client action and reports whether to push a state.
func (c *conn) handleAction(action string) bool {
	cmd := input.DecodeName(action)

	c.mu.Lock()
	defer c.mu.Unlock()
	if cmd.Action == input.ActionTurn {
		c.proposed = append(c.proposed, cmd.Dir)
	}
	return input.Apply(c.session, cmd) && cmd.Action != input.ActionTurn
}

// tick advances the session; ticks while over or paused are skipped so the
// browser is not flooded with identical states.
func (c *conn) tick(dt time.Duration) error {
	c.mu.Lock()
	if c.session.IsOver() || c.session.Paused() {
		c.mu.Unlock()
		return nil
	}
	hit := c.session.Tick(dt)
	snap := c.session.Snapshot()
	proposed := c.proposed
	c.proposed = nil
	c.mu.Unlock()

	metrics.ObserveTick(hit, snap)
	if c.rec != nil {
		c.rec.Record(game.TickRecord{Tick: snap.Tick, Proposed: proposed, Hit: hit.String(), State: snap})
	}
	return c.write(ServerMessage{Type: "state", State: &snap})
}

func (c *conn) sendState() error {
	c.mu.Lock()
	snap := c.session.Snapshot()
	c.mu.Unlock()
	return c.write(ServerMessage{Type: "state", State: &snap})
}

func (c *conn) write(msg ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

func isClosed(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) ||
		errors.Is(err, context.Canceled)
}
