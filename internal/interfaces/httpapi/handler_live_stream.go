package httpapi

import (
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/riskibarqy/touchline/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = (streamPongWait * 9) / 10
	streamReadLimit  = 512
)

const (
	frameTypeUpdate = "update"
	frameTypeClosed = "closed"
)

type liveStreamFrame struct {
	Type string          `json:"type"`
	Data *usecase.Update `json:"data,omitempty"`
}

// StreamLiveSession pushes every session update to a websocket client until
// the session is finished or the client goes away. The first frame is the
// current snapshot.
func (h *Handler) StreamLiveSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StreamLiveSession")
	defer span.End()

	sessionID := strings.TrimSpace(r.PathValue("sessionID"))
	updates, cancel, err := h.liveService.Subscribe(sessionID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	defer cancel()

	snapshot, err := h.liveService.Get(ctx, sessionID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(h.allowedOrigins, r.Header.Get("Origin"))
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(ctx, "websocket upgrade failed", "session_id", sessionID, "error", err)
		return
	}
	defer conn.Close()

	clientGone := make(chan struct{})
	go drainClient(conn, clientGone)

	h.logger.DebugContext(ctx, "live stream opened", "session_id", sessionID)

	if err := writeFrame(conn, liveStreamFrame{Type: frameTypeUpdate, Data: &snapshot}); err != nil {
		return
	}

	ping := time.NewTicker(streamPingPeriod)
	defer ping.Stop()

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				_ = writeFrame(conn, liveStreamFrame{Type: frameTypeClosed})
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"),
					time.Now().Add(streamWriteWait))
				return
			}
			if err := writeFrame(conn, liveStreamFrame{Type: frameTypeUpdate, Data: &update}); err != nil {
				h.logger.DebugContext(ctx, "live stream write failed", "session_id", sessionID, "error", err)
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				return
			}
		case <-clientGone:
			h.logger.DebugContext(ctx, "live stream closed by client", "session_id", sessionID)
			return
		case <-ctx.Done():
			return
		}
	}
}

// drainClient discards inbound messages so control frames are processed and
// signals when the client disconnects.
func drainClient(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(streamReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func writeFrame(conn *websocket.Conn, frame liveStreamFrame) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(frame); err != nil {
		return err
	}

	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	return conn.WriteMessage(websocket.TextMessage, buf.B)
}
