package cache

import (
	"fmt"
	"strconv"
	"time"
)

// PresenceTTL bounds how stale a presence entry can get if a disconnect is
// never observed; matches the hub's heartbeat window with headroom.
const PresenceTTL = 90 * time.Second

const presenceSetKey = "presence:online"

// PresenceCache tracks which users currently hold a live WebSocket
// connection. All methods are nil-safe so the server runs without Redis.
type PresenceCache struct {
	redis *RedisCache
}

func NewPresenceCache(redis *RedisCache) *PresenceCache {
	return &PresenceCache{redis: redis}
}

func presenceKey(userID uint) string {
	return fmt.Sprintf("presence:%d", userID)
}

// SetOnline marks a user online with a TTL-bounded per-user key.
func (pc *PresenceCache) SetOnline(userID uint) error {
	if pc == nil || pc.redis == nil {
		return nil
	}
	if err := pc.redis.SetAdd(presenceSetKey, userID); err != nil {
		return err
	}
	return pc.redis.Set(presenceKey(userID), []byte("1"), PresenceTTL)
}

// SetOffline removes a user from the online set.
func (pc *PresenceCache) SetOffline(userID uint) error {
	if pc == nil || pc.redis == nil {
		return nil
	}
	if err := pc.redis.SetRemove(presenceSetKey, userID); err != nil {
		return err
	}
	return pc.redis.Delete(presenceKey(userID))
}

// IsOnline checks the TTL-bounded per-user key, not the set, so an entry
// orphaned by a crashed server still expires.
func (pc *PresenceCache) IsOnline(userID uint) bool {
	if pc == nil || pc.redis == nil {
		return false
	}
	return pc.redis.Exists(presenceKey(userID))
}

// Refresh extends a user's presence TTL; called on heartbeat pongs.
func (pc *PresenceCache) Refresh(userID uint) error {
	if pc == nil || pc.redis == nil {
		return nil
	}
	return pc.redis.Set(presenceKey(userID), []byte("1"), PresenceTTL)
}

// OnlineUsers returns all user IDs in the online set.
func (pc *PresenceCache) OnlineUsers() ([]uint, error) {
	if pc == nil || pc.redis == nil {
		return nil, nil
	}
	members, err := pc.redis.SetMembers(presenceSetKey)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(members))
	for _, member := range members {
		if id, err := strconv.ParseUint(member, 10, 32); err == nil {
			userIDs = append(userIDs, uint(id))
		}
	}
	return userIDs, nil
}

// OnlineCount returns the size of the online set.
func (pc *PresenceCache) OnlineCount() (int64, error) {
	if pc == nil || pc.redis == nil {
		return 0, nil
	}
	return pc.redis.SetCard(presenceSetKey)
}
