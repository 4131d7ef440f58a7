package handlers

import (
	"errors"
	"strings"

	"github.com/collabroomhq/collabroom-backend/internal/httpx"
	"github.com/collabroomhq/collabroom-backend/internal/models"
	"github.com/collabroomhq/collabroom-backend/internal/service"
	"github.com/collabroomhq/collabroom-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type ChannelHandler struct {
	channelService *service.ChannelService
}

func NewChannelHandler(channelService *service.ChannelService) *ChannelHandler {
	return &ChannelHandler{channelService: channelService}
}

type createChannelInput struct {
	Name       string                   `json:"name"`
	Visibility models.ChannelVisibility `json:"visibility"`
}

func (h *ChannelHandler) CreateChannel(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	roomID, err := parseIDParam(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_room_id", "Invalid room id")
	}

	var input createChannelInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	input.Name = strings.ToLower(strings.TrimSpace(input.Name))
	if !validation.ValidateChannelName(input.Name) {
		return httpx.BadRequest(c, "invalid_channel_name", "Channel name must be 2-50 lowercase characters")
	}

	channel, err := h.channelService.Create(userID, roomID, input.Name, input.Visibility)
	switch {
	case err == nil:
		return c.Status(fiber.StatusCreated).JSON(channel.ToResponse())
	case errors.Is(err, service.ErrRoomNotFound):
		return httpx.NotFound(c, "room_not_found", "Room not found")
	case errors.Is(err, service.ErrNotRoomAdmin):
		return httpx.Forbidden(c, "not_room_admin", "Only the room admin can create channels")
	case errors.Is(err, service.ErrChannelExists):
		return httpx.Conflict(c, "channel_exists", "Channel already exists")
	default:
		return httpx.Internal(c, "create_channel_failed")
	}
}

func (h *ChannelHandler) ListChannels(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	roomID, err := parseIDParam(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_room_id", "Invalid room id")
	}

	channels, err := h.channelService.ListByRoom(userID, roomID)
	if err != nil {
		if errors.Is(err, service.ErrNotRoomMember) {
			return httpx.Forbidden(c, "not_room_member", "Not a member of this room")
		}
		return httpx.Internal(c, "fetch_channels_failed")
	}

	responses := make([]interface{}, len(channels))
	for i, channel := range channels {
		responses[i] = channel.ToResponse()
	}
	return c.JSON(fiber.Map{"channels": responses, "count": len(channels)})
}

func (h *ChannelHandler) JoinChannel(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	channelID, err := parseIDParam(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_channel_id", "Invalid channel id")
	}

	switch err := h.channelService.Join(userID, channelID); {
	case err == nil:
		return c.JSON(fiber.Map{"success": true})
	case errors.Is(err, service.ErrChannelNotFound):
		return httpx.NotFound(c, "channel_not_found", "Channel not found")
	case errors.Is(err, service.ErrNotRoomMember):
		return httpx.Forbidden(c, "not_room_member", "Join the room before joining its channels")
	default:
		return httpx.Internal(c, "join_channel_failed")
	}
}

func (h *ChannelHandler) LeaveChannel(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	channelID, err := parseIDParam(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_channel_id", "Invalid channel id")
	}

	if err := h.channelService.Leave(userID, channelID); err != nil {
		return httpx.Internal(c, "leave_channel_failed")
	}
	return c.JSON(fiber.Map{"success": true})
}
