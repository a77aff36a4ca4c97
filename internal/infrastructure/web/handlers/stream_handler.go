package handlers

import (
	"net/http"
	"time"

	"gold-pricing-service/internal/application/dto"
	"gold-pricing-service/internal/domain/entities"
	"gold-pricing-service/internal/domain/interfaces"
	"gold-pricing-service/internal/infrastructure/logging"

	"github.com/gorilla/websocket"
)

const (
	PingInterval    = 30 * time.Second
	WriteWait       = 10 * time.Second
	PongWait        = 60 * time.Second
	ReadBufferSize  = 1024
	WriteBufferSize = 1024
)

// StreamHandler publica la cotización por websocket
type StreamHandler struct {
	quotes       interfaces.QuoteService
	mapper       *dto.ProductMapper
	upgrader     websocket.Upgrader
	pingInterval time.Duration
}

// NewStreamHandler crea el handler del stream
func NewStreamHandler(quotes interfaces.QuoteService) *StreamHandler {
	return &StreamHandler{
		quotes: quotes,
		mapper: dto.NewProductMapper(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  ReadBufferSize,
			WriteBufferSize: WriteBufferSize,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingInterval: PingInterval,
	}
}

// Stream godoc
// @Summary Gold quote stream
// @Description Websocket that pushes the current quote on connect and after every refresh.
// @Tags gold
// @Success 101 {object} dto.GoldStatusMessage "Switching protocols"
// @Router /gold/stream [get]
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade ya respondió con el error HTTP
		logging.HTTP().WarnWithError(ctx, "Websocket upgrade failed", err, nil)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	updates, cancel := h.quotes.Subscribe()
	defer cancel()

	logging.HTTP().Info(ctx, "Stream subscriber connected", nil)

	if err := h.send(conn, h.quotes.Status(ctx)); err != nil {
		return
	}

	// el lector sólo atiende pongs y detecta el cierre del cliente
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		_ = conn.SetReadDeadline(time.Now().Add(PongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(PongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case status, ok := <-updates:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
					time.Now().Add(WriteWait))
				return
			}
			if err := h.send(conn, status); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			logging.HTTP().Info(ctx, "Stream subscriber disconnected", nil)
			return
		}
	}
}

func (h *StreamHandler) send(conn *websocket.Conn, status entities.QuoteStatus) error {
	_ = conn.SetWriteDeadline(time.Now().Add(WriteWait))
	return conn.WriteJSON(h.mapper.ToGoldStatusMessage(status))
}
