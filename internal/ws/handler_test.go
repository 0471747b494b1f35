package ws_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"nmjl-service/internal/config"
	"nmjl-service/internal/service/scoring"
	"nmjl-service/internal/ws"
	appErr "nmjl-service/pkg/errors"
)

type fakeSuggester struct{}

func (fakeSuggester) Suggest(_ context.Context, tiles []string) (*scoring.Suggestion, error) {
	if len(tiles) == 0 {
		return nil, appErr.ErrInvalidHand
	}
	return &scoring.Suggestion{Tiles: tiles, HighestScore: len(tiles)}, nil
}

type frame struct {
	Type string          `json:"type"`
	Seq  int64           `json:"seq"`
	Data json.RawMessage `json:"data"`
}

func serve(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/suggest", ws.NewHandler(fakeSuggester{}).HandleSuggestWS)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/suggest"
}

func dial(t *testing.T) *websocket.Conn {
	t.Helper()
	_, url := serve(t)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestReleaseModeChecksOrigin(t *testing.T) {
	prev := config.GlobalConfig
	config.GlobalConfig = &config.Config{Server: config.ServerConfig{Mode: "release"}}
	t.Cleanup(func() { config.GlobalConfig = prev })

	srv, url := serve(t)

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://elsewhere.example"}})
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {srv.URL}})
	require.NoError(t, err)
	conn.Close()
}

func roundTrip(t *testing.T, conn *websocket.Conn, payload string) frame {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(payload)))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var f frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestSuggestStream(t *testing.T) {
	conn := dial(t)

	f := roundTrip(t, conn, `{"type":"suggest","seq":1,"data":{"tiles":["1D","2D"]}}`)
	require.Equal(t, ws.TypeSuggestion, f.Type)
	require.Equal(t, int64(1), f.Seq)
	var sug scoring.Suggestion
	require.NoError(t, json.Unmarshal(f.Data, &sug))
	require.Equal(t, 2, sug.HighestScore)

	f = roundTrip(t, conn, `{"type":"suggest","seq":2,"data":{"tiles":["1D","2D","3D"]}}`)
	require.Equal(t, int64(2), f.Seq)
	require.NoError(t, json.Unmarshal(f.Data, &sug))
	require.Equal(t, 3, sug.HighestScore)
}

func TestSuggestStreamErrors(t *testing.T) {
	conn := dial(t)

	f := roundTrip(t, conn, `not json`)
	require.Equal(t, ws.TypeError, f.Type)

	f = roundTrip(t, conn, `{"type":"discard","seq":4}`)
	require.Equal(t, ws.TypeError, f.Type)
	require.Equal(t, int64(4), f.Seq)

	f = roundTrip(t, conn, `{"type":"suggest","seq":5,"data":{"tiles":[]}}`)
	require.Equal(t, ws.TypeError, f.Type)
	require.Contains(t, string(f.Data), appErr.ErrInvalidHand.Error())
}
