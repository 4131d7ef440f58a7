package ws

import (
	"fmt"
	"log"
)

// RoomGroupName is the broadcast group carrying one user's view of a room.
func RoomGroupName(roomID, userID uint) string {
	return fmt.Sprintf("room-%d-userId-%d", roomID, userID)
}

// ChannelGroupName is the broadcast group shared by all members of a channel.
func ChannelGroupName(channelID uint) string {
	return fmt.Sprintf("channel-%d", channelID)
}

// MessageJoinRoom subscribes the connection to its per-user room group. The
// claimed user must match the connection identity and hold the durable room
// membership; any failure is fatal to the connection.
type MessageJoinRoom struct {
	RoomID uint `json:"roomId"`
	UserID uint `json:"userId"`
}

func (m *MessageJoinRoom) GetType() string {
	return EventJoinRoom
}

func (m *MessageJoinRoom) Process(ctx *MessageContext) error {
	if m.UserID != ctx.Client.UserID {
		log.Printf("Mismatched userId %d and authenticated user %d on joinRoom. Disconnecting.", m.UserID, ctx.Client.UserID)
		return ErrCloseConnection
	}

	isMember, err := ctx.Membership.IsRoomMember(ctx.Client.UserID, m.RoomID)
	if err != nil {
		log.Printf("Room membership check failed for user %d room %d: %v", ctx.Client.UserID, m.RoomID, err)
		return ErrCloseConnection
	}
	if !isMember {
		log.Printf("User %d has not joined room %d. Disconnecting.", ctx.Client.UserID, m.RoomID)
		return ErrCloseConnection
	}

	groupName := RoomGroupName(m.RoomID, m.UserID)
	ctx.Hub.JoinGroup(ctx.Client, groupName)
	log.Printf("User %d joined room group %s", m.UserID, groupName)
	return nil
}

// MessageLeaveRoom unsubscribes from a room group. Always permitted;
// leaving a group never joined is a no-op.
type MessageLeaveRoom struct {
	RoomID uint `json:"roomId"`
	UserID uint `json:"userId"`
}

func (m *MessageLeaveRoom) GetType() string {
	return EventLeaveRoom
}

func (m *MessageLeaveRoom) Process(ctx *MessageContext) error {
	groupName := RoomGroupName(m.RoomID, m.UserID)
	ctx.Hub.LeaveGroup(ctx.Client, groupName)
	log.Printf("User %d left room group %s", m.UserID, groupName)
	return nil
}

// MessageJoinChannel subscribes the connection to a channel group after the
// membership check. Denial is fatal to the connection.
type MessageJoinChannel struct {
	ChannelID uint `json:"channelId"`
}

func (m *MessageJoinChannel) GetType() string {
	return EventJoinChannel
}

func (m *MessageJoinChannel) Process(ctx *MessageContext) error {
	isMember, err := ctx.Membership.IsChannelMember(ctx.Client.UserID, m.ChannelID)
	if err != nil {
		log.Printf("Channel membership check failed for user %d channel %d: %v", ctx.Client.UserID, m.ChannelID, err)
		return ErrCloseConnection
	}
	if !isMember {
		log.Printf("User %d has not joined channel %d. Disconnecting.", ctx.Client.UserID, m.ChannelID)
		return ErrCloseConnection
	}

	groupName := ChannelGroupName(m.ChannelID)
	ctx.Hub.JoinGroup(ctx.Client, groupName)
	log.Printf("User %d joined channel group %s", ctx.Client.UserID, groupName)
	return nil
}

// MessageLeaveChannel unsubscribes from a channel group. Idempotent.
type MessageLeaveChannel struct {
	ChannelID uint `json:"channelId"`
}

func (m *MessageLeaveChannel) GetType() string {
	return EventLeaveChannel
}

func (m *MessageLeaveChannel) Process(ctx *MessageContext) error {
	groupName := ChannelGroupName(m.ChannelID)
	ctx.Hub.LeaveGroup(ctx.Client, groupName)
	log.Printf("User %d left channel group %s", ctx.Client.UserID, groupName)
	return nil
}
