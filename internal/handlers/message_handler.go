package handlers

import (
	"errors"
	"strconv"

	"github.com/collabroomhq/collabroom-backend/internal/cache"
	"github.com/collabroomhq/collabroom-backend/internal/handlers/ws"
	"github.com/collabroomhq/collabroom-backend/internal/httpx"
	"github.com/collabroomhq/collabroom-backend/internal/models"
	"github.com/collabroomhq/collabroom-backend/internal/service"
	"github.com/collabroomhq/collabroom-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type MessageHandler struct {
	messageService    *service.MessageService
	membershipService *service.MembershipService
	messageCache      *cache.MessageCache
	hub               *ws.Hub
}

func NewMessageHandler(messageService *service.MessageService, membershipService *service.MembershipService, messageCache *cache.MessageCache, hub *ws.Hub) *MessageHandler {
	return &MessageHandler{
		messageService:    messageService,
		membershipService: membershipService,
		messageCache:      messageCache,
		hub:               hub,
	}
}

// SendMessage persists a channel message and fans it out to the channel and
// per-user room groups. The dispatch happens after the durable write and
// before the 201 response; a resend with a known client id returns the
// stored message without dispatching again.
func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input service.SendMessageInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	input.Content = validation.TrimAndLimit(input.Content, validation.MaxMessageLength())
	if input.Content == "" {
		return httpx.BadRequest(c, "missing_content", "Content is required")
	}
	if input.ChannelID == 0 {
		return httpx.BadRequest(c, "missing_channel", "channel_id is required")
	}
	if !validation.ValidateClientID(input.ClientID) {
		return httpx.BadRequest(c, "invalid_client_id", "client_id must be a UUID")
	}

	result, err := h.messageService.Send(userID, input)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrChannelNotFound):
		return httpx.NotFound(c, "channel_not_found", "Channel not found")
	case errors.Is(err, service.ErrNotChannelMember):
		return httpx.Forbidden(c, "not_channel_member", "User not in channel")
	default:
		return httpx.Internal(c, "send_message_failed")
	}

	message := result.Message
	if result.Created {
		_ = h.messageCache.InvalidateChannelHistory(message.ChannelID)
		h.hub.Dispatch(message.ToResponse(), message.ChannelID, message.Channel.RoomID, userID)
	}

	return c.Status(fiber.StatusCreated).JSON(message.ToResponse())
}

func (h *MessageHandler) GetChannelMessages(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	channelID, err := parseIDParam(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_channel_id", "Invalid channel id")
	}

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	var messages []models.ChannelMessage
	if cursorStr := c.Query("cursor"); cursorStr != "" {
		cursor, err := strconv.ParseUint(cursorStr, 10, 32)
		if err != nil {
			return httpx.BadRequest(c, "invalid_cursor", "Invalid cursor")
		}
		messages, err = h.messageService.GetChannelMessages(userID, channelID, uint(cursor), limit)
		if err != nil {
			return h.historyError(c, err)
		}
	} else {
		// Cache only serves the first page, and only after the same
		// membership check the uncached path performs.
		isMember, err := h.membershipService.IsChannelMember(userID, channelID)
		if err != nil {
			return httpx.Internal(c, "fetch_messages_failed")
		}
		if !isMember {
			return httpx.Forbidden(c, "not_channel_member", "User not in channel")
		}
		if cached, ok := h.messageCache.GetChannelHistory(channelID); ok && len(cached) > 0 {
			messages = cached
			if len(messages) > limit {
				messages = messages[:limit]
			}
		} else {
			messages, err = h.messageService.GetChannelMessages(userID, channelID, 0, limit)
			if err != nil {
				return h.historyError(c, err)
			}
			if len(messages) > 0 {
				_ = h.messageCache.SetChannelHistory(channelID, messages)
			}
		}
	}

	responses := make([]interface{}, len(messages))
	for i, msg := range messages {
		responses[i] = msg.ToResponse()
	}

	result := fiber.Map{
		"messages": responses,
		"count":    len(messages),
	}
	if len(messages) > 0 {
		// Newest-first; the oldest message in this page is the next cursor.
		result["next_cursor"] = messages[len(messages)-1].ID
	}

	return c.JSON(result)
}

func (h *MessageHandler) historyError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrNotChannelMember) {
		return httpx.Forbidden(c, "not_channel_member", "User not in channel")
	}
	return httpx.Internal(c, "fetch_messages_failed")
}
