package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/logger"
)

// AvailabilityCache serves the display-polling read path. Entries may be
// stale; the authoritative availability check always happens inside
// Reserve's transaction, never against this cache.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityCache(addr string, ttl time.Duration) *AvailabilityCache {
	if addr == "" {
		return &AvailabilityCache{}
	}
	return &AvailabilityCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

func availabilityKey(roomType string, checkin, checkout time.Time) string {
	return fmt.Sprintf("availability:%s:%s:%s",
		roomType, checkin.UTC().Format("2006-01-02"), checkout.UTC().Format("2006-01-02"))
}

// Get returns the cached room list and whether it was present. A nil client
// or any Redis error reads as a miss.
func (c *AvailabilityCache) Get(ctx context.Context, roomType string, checkin, checkout time.Time) ([]domain.Room, bool) {
	if c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, availabilityKey(roomType, checkin, checkout)).Bytes()
	if err != nil {
		return nil, false
	}
	var rooms []domain.Room
	if err := json.Unmarshal(raw, &rooms); err != nil {
		return nil, false
	}
	return rooms, true
}

// Set stores the list best-effort under a short TTL.
func (c *AvailabilityCache) Set(ctx context.Context, roomType string, checkin, checkout time.Time, rooms []domain.Room) {
	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(rooms)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, availabilityKey(roomType, checkin, checkout), raw, c.ttl).Err(); err != nil {
		logger.Debug("Availability cache write failed", "error", err)
	}
}

// Close releases the underlying client.
func (c *AvailabilityCache) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
