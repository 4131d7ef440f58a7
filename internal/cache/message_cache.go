package cache

import (
	"fmt"
	"time"

	"github.com/collabroomhq/collabroom-backend/internal/models"
	"github.com/vmihailenco/msgpack/v5"
)

// ChannelHistoryTTL keeps first-page channel history hot between fetches.
const ChannelHistoryTTL = 5 * time.Minute

// MessageCache caches the first page of a channel's message history. Only
// cursor-less reads go through it; the write path invalidates on every new
// message. Nil-safe like the other caches.
type MessageCache struct {
	redis *RedisCache
}

func NewMessageCache(redis *RedisCache) *MessageCache {
	return &MessageCache{redis: redis}
}

func channelHistoryKey(channelID uint) string {
	return fmt.Sprintf("chanhist:%d", channelID)
}

// GetChannelHistory retrieves the cached first page for a channel.
func (mc *MessageCache) GetChannelHistory(channelID uint) ([]models.ChannelMessage, bool) {
	if mc == nil || mc.redis == nil {
		return nil, false
	}
	data, err := mc.redis.Get(channelHistoryKey(channelID))
	if err != nil || data == nil {
		return nil, false
	}

	var messages []models.ChannelMessage
	if err := msgpack.Unmarshal(data, &messages); err != nil {
		return nil, false
	}
	return messages, true
}

// SetChannelHistory caches the first page for a channel.
func (mc *MessageCache) SetChannelHistory(channelID uint, messages []models.ChannelMessage) error {
	if mc == nil || mc.redis == nil {
		return nil
	}
	data, err := msgpack.Marshal(messages)
	if err != nil {
		return err
	}
	return mc.redis.Set(channelHistoryKey(channelID), data, ChannelHistoryTTL)
}

// InvalidateChannelHistory drops the cached page after a write.
func (mc *MessageCache) InvalidateChannelHistory(channelID uint) error {
	if mc == nil || mc.redis == nil {
		return nil
	}
	return mc.redis.Delete(channelHistoryKey(channelID))
}
