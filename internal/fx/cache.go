package fx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKey = "fx:table"

// Cache persists the last good rate table in Redis so a restarted process
// can price foreign-currency items before its first provider fetch.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper. A nil client disables persistence.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

type cachedTable struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// Save stores the table, replacing any previous snapshot.
func (c *Cache) Save(ctx context.Context, t Table) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(cachedTable{
		Base:      t.Base(),
		Rates:     t.Rates(),
		FetchedAt: t.FetchedAt(),
	})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey, raw, c.ttl).Err()
}

// Load returns the stored table, reporting false when no snapshot exists.
func (c *Cache) Load(ctx context.Context) (Table, bool, error) {
	if c == nil || c.client == nil {
		return Table{}, false, nil
	}
	raw, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		return Table{}, false, nil
	}
	if err != nil {
		return Table{}, false, err
	}
	var stored cachedTable
	if err := json.Unmarshal(raw, &stored); err != nil {
		return Table{}, false, err
	}
	table, err := NewTable(stored.Base, stored.Rates, stored.FetchedAt)
	if err != nil {
		return Table{}, false, err
	}
	return table, true, nil
}
