package v1

import (
	"net/http"

	"github.com/clinicore/clinicore/internal/notify"
	"github.com/clinicore/clinicore/internal/service"
	"github.com/clinicore/clinicore/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WSHandler upgrades authenticated clients onto the notification channel.
type WSHandler struct {
	authSvc   *service.AuthService
	registry  *notify.Registry
	collector *metrics.Collector
	log       *zap.Logger
}

func NewWSHandler(authSvc *service.AuthService, registry *notify.Registry, collector *metrics.Collector, log *zap.Logger) *WSHandler {
	return &WSHandler{
		authSvc:   authSvc,
		registry:  registry,
		collector: collector,
		log:       log,
	}
}

// Serve performs the handshake. Browser WebSocket clients cannot set an
// Authorization header, so the access token travels in the
// Sec-WebSocket-Protocol header; the server echoes it back as the selected
// subprotocol to complete the negotiation. The token is validated and the
// user resolved before the upgrade, so a failed handshake never registers a
// connection.
func (h *WSHandler) Serve(c *gin.Context) {
	token := c.GetHeader("Sec-WebSocket-Protocol")
	if token == "" {
		respondError(c, http.StatusUnauthorized, "missing connection token")
		return
	}

	user, err := h.authSvc.ResolveConnectionToken(c.Request.Context(), token)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "invalid connection token")
		return
	}

	upgrader := websocket.Upgrader{
		Subprotocols: []string{token},
		CheckOrigin:  func(*http.Request) bool { return true },
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := notify.NewClient(user.ID, conn)
	h.registry.Register(client)
	h.collector.WSConnections.Inc()

	h.log.Info("websocket connected", zap.String("user_id", user.ID.String()))

	go client.WritePump()
	client.ReadPump()

	h.registry.Unregister(client)
	h.collector.WSConnections.Dec()
	h.log.Info("websocket disconnected", zap.String("user_id", user.ID.String()))
}
