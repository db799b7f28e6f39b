package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hirelane/ats/internal/api/metrics"
	"github.com/hirelane/ats/internal/core/ports"
)

const (
	pingInterval = 15 * time.Second
	writeWait    = 5 * time.Second
)

// ChatHandler serves the chat REST endpoints and the live message stream.
type ChatHandler struct {
	service        ports.ChatService
	hub            *ChatHub
	allowedOrigins []string
	log            zerolog.Logger
}

func NewChatHandler(service ports.ChatService, hub *ChatHub, allowedOrigins []string, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		service:        service,
		hub:            hub,
		allowedOrigins: allowedOrigins,
		log:            log,
	}
}

// Inbox handles GET /v1/chat/inbox.
//
// @Summary      Conversation list
// @Description  One entry per reachable peer, most recent conversation first.
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  inboxEntryResponse
// @Router       /v1/chat/inbox [get]
func (h *ChatHandler) Inbox(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	entries, err := h.service.Inbox(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toInboxResponses(entries))
}

// Conversation handles GET /v1/chat/:peer_id.
//
// @Summary      Messages exchanged with a peer
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        peer_id  path      string  true  "Peer id"
// @Success      200      {array}   domain.ChatMessage
// @Failure      403      {object}  errorResponse
// @Router       /v1/chat/{peer_id} [get]
func (h *ChatHandler) Conversation(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	msgs, err := h.service.Conversation(c.Request().Context(), actor, c.Param("peer_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

// Send handles POST /v1/chat/:peer_id.
//
// @Summary      Send a message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        peer_id  path      string              true  "Peer id"
// @Param        body     body      sendMessageRequest  true  "Message"
// @Success      201      {object}  domain.ChatMessage
// @Failure      403      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /v1/chat/{peer_id} [post]
func (h *ChatHandler) Send(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req sendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.service.Send(c.Request().Context(), actor, c.Param("peer_id"), req.Message)
	if err != nil {
		return err
	}
	metrics.EntitiesCreatedTotal.WithLabelValues("chat_message").Inc()
	return c.JSON(http.StatusCreated, msg)
}

// Stream handles GET /v1/chat/stream.
//
// @Summary      Live chat stream (websocket)
// @Description  Pushes every new message sent by or to the actor as JSON. Browsers pass the token as ?token=.
// @Tags         chat
// @Security     BearerAuth
// @Success      101
// @Router       /v1/chat/stream [get]
func (h *ChatHandler) Stream(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	upgrader := h.upgrader()
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the handshake error.
		h.log.Warn().Err(err).Str("actor_id", actor.ID).Msg("websocket upgrade failed")
		return nil
	}
	defer ws.Close()

	msgs, cancel := h.hub.subscribe(actor.ID)
	defer cancel()

	// The reader only exists to process control frames and notice closes.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case m, ok := <-msgs:
			if !ok {
				_ = ws.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(writeWait))
				return nil
			}
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteJSON(m); err != nil {
				h.log.Debug().Err(err).Str("actor_id", actor.ID).Msg("chat stream write failed")
				return nil
			}
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(writeWait)); err != nil {
				return nil
			}
		case <-done:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

func (h *ChatHandler) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			// Non-browser clients send no origin; an empty allow-list admits all.
			if origin == "" || len(h.allowedOrigins) == 0 {
				return true
			}
			for _, allowed := range h.allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			h.log.Warn().Str("origin", origin).Msg("websocket origin rejected")
			return false
		},
	}
}
