package ws

import "encoding/json"

// MessagePing is an application-level keepalive from the client, separate
// from the transport ping/pong frames.
type MessagePing struct {
}

func (msg *MessagePing) GetType() string {
	return "ping"
}

func (msg *MessagePing) Process(ctx *MessageContext) error {
	data, err := json.Marshal(map[string]string{"type": "pong"})
	if err != nil {
		return err
	}
	return ctx.Client.send(data)
}

// MessagePong acknowledges a server ping (in case the client tracks latency).
type MessagePong struct {
}

func (msg *MessagePong) GetType() string {
	return "pong"
}

func (msg *MessagePong) Process(ctx *MessageContext) error {
	ctx.Hub.MarkPong(ctx.Client)
	return nil
}
