package httpapi

import (
	"context"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/riskibarqy/live-dattacks/internal/domain/livescore"
	"github.com/valyala/bytebufferpool"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = (streamPongWait * 9) / 10
	streamReadLimit  = 512

	streamMessageSnapshot = "snapshot"
)

// StreamLive upgrades to a WebSocket and pushes the current snapshot followed
// by every published state until the client goes away or the poller stops.
func (h *Handler) StreamLive(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates, unsubscribe := h.live.Subscribe()
	defer unsubscribe()

	h.logger.InfoContext(r.Context(), "live stream opened", "remote_addr", r.RemoteAddr)
	defer h.logger.InfoContext(r.Context(), "live stream closed", "remote_addr", r.RemoteAddr)

	closed := make(chan struct{})
	go readPump(conn, closed)

	if err := h.writeState(r.Context(), conn, h.live.Snapshot()); err != nil {
		return
	}

	ping := time.NewTicker(streamPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case state, ok := <-updates:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "live poller stopped"))
				return
			}
			if err := h.writeState(r.Context(), conn, state); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client frames and reports when the connection ends.
func readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)

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

// writeState sends one snapshot frame. A snapshot that fails to encode is
// logged and skipped; only connection errors end the session.
func (h *Handler) writeState(ctx context.Context, conn *websocket.Conn, state livescore.LiveState) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(streamMessageDTO{
		Type: streamMessageSnapshot,
		Data: toLiveStateDTO(state),
	}); err != nil {
		h.logger.ErrorContext(ctx, "encode live stream frame", "cycle", state.Cycle, "error", err)
		return nil
	}

	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	return conn.WriteMessage(websocket.TextMessage, buf.B)
}
