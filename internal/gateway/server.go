package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/grebnov/neoncity/internal/model"
	"github.com/grebnov/neoncity/internal/nav"
	"github.com/grebnov/neoncity/internal/world"
)

// Authenticator verifies account credentials for gateway logins.
type Authenticator interface {
	Authenticate(ctx context.Context, login, password string) (bool, error)
}

// Server upgrades browser connections and runs one pathfinding session per
// client. World reads are concurrent-safe because the world is immutable
// once generated; each client mutates only its own session grid.
type Server struct {
	addr          string
	world         *world.World
	auth          Authenticator
	sessionBuffer int
	writeTimeout  time.Duration
	upgrader      websocket.Upgrader
}

// NewServer creates a gateway for the given world. auth may be nil, which
// disables account logins. writeTimeout of zero disables write deadlines.
func NewServer(addr string, w *world.World, auth Authenticator, sessionBuffer int, writeTimeout time.Duration) *Server {
	if sessionBuffer <= 0 {
		sessionBuffer = 64
	}
	return &Server{
		addr:          addr,
		world:         w,
		auth:          auth,
		sessionBuffer: sessionBuffer,
		writeTimeout:  writeTimeout,
		upgrader:      websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// Run serves websocket clients on /ws until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWS)

	srv := &http.Server{Addr: s.addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("gateway shutdown", "error", err)
		}
	}()

	slog.Info("gateway listening", "addr", s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("gateway listen on %s: %w", s.addr, err)
	}
	return nil
}

// HandleWS upgrades one HTTP request to a websocket client connection.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{
		id:           uuid.NewString(),
		conn:         conn,
		world:        s.world,
		auth:         s.auth,
		session:      nav.NewSession(s.sessionBuffer),
		out:          make(chan any, s.sessionBuffer),
		writeTimeout: s.writeTimeout,
	}
	slog.Info("client connected", "session", c.id, "remote", r.RemoteAddr)
	c.run(r.Context())
	slog.Info("client disconnected", "session", c.id)
}

// client is one websocket connection with its dedicated pathfinding
// session. All frames are written by a single pump; gateway-level replies
// merge in through the out channel.
type client struct {
	id           string
	conn         *websocket.Conn
	world        *world.World
	auth         Authenticator
	session      *nav.Session
	out          chan any
	writeTimeout time.Duration
}

func (c *client) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := c.session.Start(gctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return c.writePump(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return c.readPump(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		c.conn.Close()
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Debug("client teardown", "session", c.id, "error", err)
	}
}

// writePump is the single writer for the connection.
func (c *client) writePump(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case resp := <-c.session.Responses():
			if msg := encodeResponse(resp); msg != nil {
				if err := c.write(msg); err != nil {
					return fmt.Errorf("writing session response: %w", err)
				}
			}
		case msg := <-c.out:
			if err := c.write(msg); err != nil {
				return fmt.Errorf("writing gateway response: %w", err)
			}
		}
	}
}

func (c *client) write(msg any) error {
	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return err
		}
	}
	return c.conn.WriteJSON(msg)
}

// readPump decodes client frames until the connection drops.
func (c *client) readPump(ctx context.Context) error {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return fmt.Errorf("reading client frame: %w", err)
			}
			return nil
		}
		c.handleFrame(ctx, data)
	}
}

// handleFrame dispatches one decoded frame. Session messages pass through
// to the pathfinding session; world and viewport queries answer directly.
// A malformed or unknown frame answers an error message without killing
// the connection.
func (c *client) handleFrame(ctx context.Context, data []byte) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		c.reply(ctx, errorMsg{Type: msgError, Message: "malformed message"})
		return
	}

	switch env.Type {
	case msgInit:
		var m initMsg
		if err := json.Unmarshal(data, &m); err != nil {
			c.reply(ctx, badPayload(env.Type))
			return
		}
		c.submit(ctx, nav.InitRequest{Width: m.Width, Height: m.Height, WalkableMap: toBitmap(m.WalkableMap)})

	case msgFindPath:
		var m findPathMsg
		if err := json.Unmarshal(data, &m); err != nil {
			c.reply(ctx, badPayload(env.Type))
			return
		}
		c.submit(ctx, nav.FindPathRequest{
			ID:     m.ID,
			StartX: m.StartX,
			StartY: m.StartY,
			EndX:   m.EndX,
			EndY:   m.EndY,
			Smooth: m.Smooth,
		})

	case msgUpdateMap:
		var m updateMapMsg
		if err := json.Unmarshal(data, &m); err != nil {
			c.reply(ctx, badPayload(env.Type))
			return
		}
		c.submit(ctx, nav.UpdateMapRequest{WalkableMap: toBitmap(m.WalkableMap)})

	case msgUpdateTile:
		var m updateTileMsg
		if err := json.Unmarshal(data, &m); err != nil {
			c.reply(ctx, badPayload(env.Type))
			return
		}
		c.submit(ctx, nav.UpdateTileRequest{X: m.X, Y: m.Y, Walkable: m.Walkable})

	case msgLogin:
		var m loginMsg
		if err := json.Unmarshal(data, &m); err != nil {
			c.reply(ctx, badPayload(env.Type))
			return
		}
		if c.auth == nil {
			c.reply(ctx, errorMsg{Type: msgError, Message: "accounts are not enabled"})
			return
		}
		ok, err := c.auth.Authenticate(ctx, m.Login, m.Password)
		if err != nil {
			slog.Error("login check failed", "session", c.id, "error", err)
			c.reply(ctx, errorMsg{Type: msgError, Message: "login unavailable"})
			return
		}
		c.reply(ctx, loginResultMsg{Type: msgLoginResult, OK: ok})

	case msgWorld:
		c.reply(ctx, worldMsg{
			Type:   msgWorld,
			Width:  c.world.Width(),
			Height: c.world.Height(),
			Seed:   c.world.Seed(),
		})

	case msgViewport:
		var m viewportMsg
		if err := json.Unmarshal(data, &m); err != nil {
			c.reply(ctx, badPayload(env.Type))
			return
		}
		tiles, structures := c.world.Viewport(model.NewRect(m.X, m.Y, m.W, m.H))
		c.reply(ctx, viewportResultMsg{Type: msgViewport, Tiles: tiles, Structures: structures})

	default:
		c.reply(ctx, errorMsg{Type: msgError, Message: fmt.Sprintf("unknown message type %q", env.Type)})
	}
}

func (c *client) submit(ctx context.Context, req nav.Request) {
	if err := c.session.Submit(ctx, req); err != nil {
		slog.Debug("dropping request", "session", c.id, "error", err)
	}
}

func (c *client) reply(ctx context.Context, msg any) {
	select {
	case c.out <- msg:
	case <-ctx.Done():
	}
}

func badPayload(msgType string) errorMsg {
	return errorMsg{Type: msgError, Message: fmt.Sprintf("malformed %s payload", msgType)}
}
