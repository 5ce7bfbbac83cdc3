package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	applogger "MarketSim/pkg/logger"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Simulated data, no credentials involved.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveFeed upgrades the connection and streams simulated ticks until
// the client disconnects.
func (h *MarketHandler) liveFeed(c echo.Context) error {
	symbol := c.QueryParam("symbol")

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ticks, cancel := h.feed.Subscribe()
	defer cancel()

	if h.log != nil {
		h.log.Info("live feed client connected", applogger.String("remote", conn.RemoteAddr().String()))
	}

	// Drain client frames so close/pong handling works; the feed is
	// one-directional otherwise.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	pinger := time.NewTicker(wsPingInterval)
	defer pinger.Stop()

	for {
		select {
		case <-done:
			return nil
		case <-pinger.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout)); err != nil {
				return nil
			}
		case t, ok := <-ticks:
			if !ok {
				return nil
			}
			if symbol != "" && t.Symbol != symbol {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(t); err != nil {
				if h.log != nil {
					h.log.Debug("live feed client gone", applogger.Error(err))
				}
				return nil
			}
		}
	}
}
