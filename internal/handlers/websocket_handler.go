package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/collabroomhq/collabroom-backend/internal/cache"
	"github.com/collabroomhq/collabroom-backend/internal/handlers/ws"
	"github.com/collabroomhq/collabroom-backend/internal/service"
	"github.com/gofiber/websocket/v2"
)

type WebSocketHandler struct {
	membershipService *service.MembershipService
	userService       repositoryUserStatus
	hub               *ws.Hub
	presenceCache     *cache.PresenceCache
}

// repositoryUserStatus is the slice of the user repository the socket layer
// needs for persisting online status.
type repositoryUserStatus interface {
	UpdateOnlineStatus(userID uint, isOnline bool) error
}

func NewWebSocketHandler(membershipService *service.MembershipService, userRepo repositoryUserStatus, presenceCache *cache.PresenceCache) *WebSocketHandler {
	return &WebSocketHandler{
		membershipService: membershipService,
		userService:       userRepo,
		hub:               ws.NewHub(),
		presenceCache:     presenceCache,
	}
}

// GetHub returns the hub instance so the message write path can dispatch.
func (h *WebSocketHandler) GetHub() *ws.Hub {
	return h.hub
}

// HandleWebSocket runs one authenticated connection. Identity comes from the
// access-token cookie verified before the upgrade; a request without a valid
// credential is rejected there and never reaches this handler, so the
// connection setup never completes for it.
func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		// Upgrade happened without the auth middleware; treat as unauthenticated.
		_ = c.Close()
		return
	}
	email, _ := c.Locals("email").(string)
	role, _ := c.Locals("role").(string)

	supportsGzip := c.Query("gzip") == "1" || c.Headers("X-Supports-Gzip") == "1"

	client := ws.NewClient(c, userID, email, role, supportsGzip)

	c.SetPongHandler(func(appData string) error {
		h.hub.MarkPong(client)
		_ = h.presenceCache.Refresh(userID)
		return c.SetReadDeadline(time.Now().Add(h.hub.PongWindow()))
	})
	_ = c.SetReadDeadline(time.Now().Add(h.hub.PongWindow()))

	h.hub.Register(client)

	go func() {
		if err := h.presenceCache.SetOnline(userID); err != nil {
			log.Printf("Failed to set user %d online in cache: %v", userID, err)
		}
		if err := h.userService.UpdateOnlineStatus(userID, true); err != nil {
			log.Printf("Failed to set user %d online in DB: %v", userID, err)
		}
	}()

	defer func() {
		h.hub.Unregister(client)
		go func() {
			if err := h.presenceCache.SetOffline(userID); err != nil {
				log.Printf("Failed to set user %d offline in cache: %v", userID, err)
			}
			if err := h.userService.UpdateOnlineStatus(userID, false); err != nil {
				log.Printf("Failed to set user %d offline in DB: %v", userID, err)
			}
		}()
	}()

	log.Printf("User %d connected via WebSocket", userID)

	ctx := &ws.MessageContext{
		Client:     client,
		Hub:        h.hub,
		Membership: h.membershipService,
	}

	for {
		messageType, messageBytes, err := c.ReadMessage()
		if err != nil {
			log.Printf("Error reading message from user %d: %v", userID, err)
			break
		}

		if messageType == websocket.BinaryMessage {
			decompressed, err := ws.DecompressMessage(messageBytes)
			if err != nil {
				log.Printf("Error decompressing message from user %d: %v", userID, err)
				_ = ws.SendError(client, "decompression_failed", "Failed to decompress message", err.Error())
				continue
			}
			messageBytes = decompressed
		}

		msg, err := ws.Deserialize(messageBytes)
		if err != nil {
			log.Printf("Error deserializing message from user %d: %v", userID, err)
			_ = ws.SendError(client, "invalid_message", "Invalid message format", err.Error())
			continue
		}

		if err := msg.Process(ctx); err != nil {
			if errors.Is(err, ws.ErrCloseConnection) {
				// Authorization failures are fatal: no error frame, just a
				// disconnect, so group existence is never confirmed.
				break
			}
			log.Printf("Error processing message %s from user %d: %v", msg.GetType(), userID, err)
			_ = ws.SendError(client, "processing_failed", "Failed to process message", err.Error())
		}
	}

	log.Printf("User %d disconnected from WebSocket", userID)
}
