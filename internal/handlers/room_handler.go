package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/collabroomhq/collabroom-backend/internal/cache"
	"github.com/collabroomhq/collabroom-backend/internal/httpx"
	"github.com/collabroomhq/collabroom-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type RoomHandler struct {
	roomService   *service.RoomService
	presenceCache *cache.PresenceCache
}

func NewRoomHandler(roomService *service.RoomService, presenceCache *cache.PresenceCache) *RoomHandler {
	return &RoomHandler{
		roomService:   roomService,
		presenceCache: presenceCache,
	}
}

type createRoomInput struct {
	CompanyName string `json:"company_name"`
}

func (h *RoomHandler) CreateRoom(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input createRoomInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	input.CompanyName = strings.TrimSpace(input.CompanyName)
	if input.CompanyName == "" {
		return httpx.BadRequest(c, "missing_company_name", "company_name is required")
	}

	room, err := h.roomService.Create(userID, input.CompanyName)
	if err != nil {
		return httpx.Internal(c, "create_room_failed")
	}

	return c.Status(fiber.StatusCreated).JSON(room.ToResponse())
}

func (h *RoomHandler) GetMyRooms(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	rooms, err := h.roomService.GetUserRooms(userID)
	if err != nil {
		return httpx.Internal(c, "fetch_rooms_failed")
	}

	responses := make([]interface{}, len(rooms))
	for i, room := range rooms {
		responses[i] = room.ToResponse()
	}
	return c.JSON(fiber.Map{"rooms": responses, "count": len(rooms)})
}

type addMemberInput struct {
	UserID uint `json:"user_id"`
}

func (h *RoomHandler) AddMember(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	roomID, err := parseIDParam(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_room_id", "Invalid room id")
	}

	var input addMemberInput
	if err := c.BodyParser(&input); err != nil || input.UserID == 0 {
		return httpx.BadRequest(c, "invalid_request_body", "user_id is required")
	}

	switch err := h.roomService.AddMember(userID, roomID, input.UserID); {
	case err == nil:
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
	case errors.Is(err, service.ErrRoomNotFound):
		return httpx.NotFound(c, "room_not_found", "Room not found")
	case errors.Is(err, service.ErrNotRoomAdmin):
		return httpx.Forbidden(c, "not_room_admin", "Only the room admin can add members")
	case errors.Is(err, service.ErrUserNotFound):
		return httpx.NotFound(c, "user_not_found", "User not found")
	case errors.Is(err, service.ErrAlreadyMember):
		return httpx.Conflict(c, "already_member", "User is already a member")
	default:
		return httpx.Internal(c, "add_member_failed")
	}
}

func (h *RoomHandler) GetMembers(c *fiber.Ctx) error {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	roomID, err := parseIDParam(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_room_id", "Invalid room id")
	}

	members, err := h.roomService.GetMembers(userID, roomID)
	if err != nil {
		if errors.Is(err, service.ErrNotRoomMember) {
			return httpx.Forbidden(c, "not_room_member", "Not a member of this room")
		}
		return httpx.Internal(c, "fetch_members_failed")
	}

	responses := make([]interface{}, len(members))
	for i, member := range members {
		resp := member.ToResponse()
		// Live presence beats the last persisted flag.
		if h.presenceCache.IsOnline(member.ID) {
			resp.IsOnline = true
		}
		responses[i] = resp
	}
	return c.JSON(fiber.Map{"members": responses, "count": len(members)})
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
