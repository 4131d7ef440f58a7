package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// Client-facing event names.
const (
	EventJoinRoom     = "joinRoom"
	EventLeaveRoom    = "leaveRoom"
	EventJoinChannel  = "joinChannel"
	EventLeaveChannel = "leaveChannel"
	EventNewMessage   = "newMessage"
)

// ErrCloseConnection signals that the connection must be torn down. Returned
// for authentication and authorization failures; the reason is logged
// server-side and never sent over the transport, so a rejected client only
// observes a disconnect.
var ErrCloseConnection = errors.New("connection must be closed")

// MembershipChecker answers whether a user currently holds the durable
// membership fact for a room or channel. Backed by the persistence layer;
// consulted exactly once, at join time.
type MembershipChecker interface {
	IsRoomMember(userID, roomID uint) (bool, error)
	IsChannelMember(userID, channelID uint) (bool, error)
}

// MessageContext provides the dependencies needed to process a client event.
type MessageContext struct {
	Client     *Client
	Hub        *Hub
	Membership MembershipChecker
}

// Message is a client event received over the WebSocket wire.
type Message interface {
	GetType() string
	Process(ctx *MessageContext) error
}

// SerializedMessage is the wire format wrapper
type SerializedMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ErrorResponse is sent when a frame cannot be parsed or processed.
type ErrorResponse struct {
	Type    string `json:"type"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// SendError reports a non-fatal processing failure to the client.
func SendError(c *Client, code, message, details string) error {
	data, err := json.Marshal(ErrorResponse{
		Type:    "error",
		Error:   message,
		Code:    code,
		Details: details,
	})
	if err != nil {
		return err
	}
	return c.send(data)
}

func CreateMessage(msgType string, registry map[string]reflect.Type) (Message, error) {
	t, ok := registry[msgType]
	if !ok {
		return nil, fmt.Errorf("unknown message type: %s", msgType)
	}
	return reflect.New(t).Interface().(Message), nil
}
