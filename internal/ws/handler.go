package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nmjl-service/internal/config"
	"nmjl-service/internal/service/scoring"
	"nmjl-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	TypeSuggest    = "suggest"
	TypeSuggestion = "suggestion"
	TypeError      = "error"
)

// Suggester ranks an observed hand.
type Suggester interface {
	Suggest(ctx context.Context, tiles []string) (*scoring.Suggestion, error)
}

type Handler struct {
	suggester Suggester
}

func NewHandler(suggester Suggester) *Handler {
	return &Handler{suggester: suggester}
}

// OutgoingMessage is every frame the server sends. Seq echoes the request.
type OutgoingMessage struct {
	Type string      `json:"type"`
	Seq  int64       `json:"seq"`
	Data interface{} `json:"data"`
}

type incomingMessage struct {
	Type string          `json:"type"`
	Seq  int64           `json:"seq"`
	Data json.RawMessage `json:"data"`
}

type suggestData struct {
	Tiles []string `json:"tiles"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     checkOrigin,
}

// checkOrigin accepts any origin outside release mode. In release mode the
// Origin header, when present, must name the host being dialed.
func checkOrigin(r *http.Request) bool {
	if config.GlobalConfig == nil || config.GlobalConfig.Server.Mode != "release" {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && strings.EqualFold(u.Host, r.Host)
}

// HandleSuggestWS streams a fresh ranking for every hand the client sends.
func (h *Handler) HandleSuggestWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	sessionID := uuid.NewString()
	logger.Log.Info("New WebSocket connection", zap.String("session", sessionID))

	cl := newClient(conn, sessionID, h.suggester)
	cl.run()
}

type client struct {
	conn      *websocket.Conn
	session   string
	suggester Suggester
	outbound  chan OutgoingMessage
	done      chan struct{}
	pingEvery time.Duration
}

func newClient(conn *websocket.Conn, session string, suggester Suggester) *client {
	conn.SetReadLimit(1 << 16)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	return &client{
		conn:      conn,
		session:   session,
		suggester: suggester,
		outbound:  make(chan OutgoingMessage, 8),
		done:      make(chan struct{}),
		pingEvery: 25 * time.Second,
	}
}

func (c *client) run() {
	go c.writePump()
	c.readPump()
}

func (c *client) readPump() {
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		close(c.done)
		c.conn.Close()
	}()

	for {
		mt, message, err := c.conn.ReadMessage()
		if err != nil {
			logger.Log.Info("WS read error", zap.Error(err), zap.String("session", c.session))
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}

		var incoming incomingMessage
		if err := json.Unmarshal(message, &incoming); err != nil {
			c.send(OutgoingMessage{Type: TypeError, Data: gin.H{"message": "invalid payload"}})
			continue
		}
		if incoming.Type != TypeSuggest {
			c.send(OutgoingMessage{Type: TypeError, Seq: incoming.Seq, Data: gin.H{"message": "unknown message type"}})
			continue
		}

		var data suggestData
		if err := json.Unmarshal(incoming.Data, &data); err != nil {
			c.send(OutgoingMessage{Type: TypeError, Seq: incoming.Seq, Data: gin.H{"message": "invalid payload"}})
			continue
		}
		sug, err := c.suggester.Suggest(ctx, data.Tiles)
		if err != nil {
			c.send(OutgoingMessage{Type: TypeError, Seq: incoming.Seq, Data: gin.H{"message": err.Error()}})
			continue
		}
		c.send(OutgoingMessage{Type: TypeSuggestion, Seq: incoming.Seq, Data: sug})
	}
}

// send queues a frame; a client that stops draining loses frames.
func (c *client) send(msg OutgoingMessage) {
	select {
	case c.outbound <- msg:
	default:
		logger.Log.Warn("WS outbound full, dropping frame", zap.String("session", c.session), zap.Int64("seq", msg.Seq))
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(c.pingEvery)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.outbound:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteJSON(msg); err != nil {
				logger.Log.Info("WS write error", zap.Error(err), zap.String("session", c.session))
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
