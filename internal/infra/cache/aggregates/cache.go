package aggregates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/ptr"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

const (
	keyPrefix  = "charter:aggregates"
	versionKey = keyPrefix + ":version"
)

// Client подмножество команд redis, используемых кэшем (реализуется *redis.Client)
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// Cache кэш дневных агрегатов в redis.
// Каждая запись слотов или бронирований увеличивает версию, старые ключи
// становятся недостижимыми и истекают по TTL
type Cache struct {
	client Client
	ttl    time.Duration
}

// NewCache создает новый кэш агрегатов
func NewCache(client Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

type dayEntry struct {
	Date          types.Date `json:"date"`
	FullCount     int        `json:"full"`
	AMOnlyCount   int        `json:"amOnly"`
	PMOnlyCount   int        `json:"pmOnly"`
	SunsetCount   int        `json:"sunset"`
	ReservedCount int        `json:"reserved"`
	IsReserved    bool       `json:"isReserved"`
}

// Get возвращает агрегаты текущей версии, если они есть, и саму версию.
// Промах нужно сохранять через Set с этой же версией
func (c *Cache) Get(ctx context.Context, scope domain.AssetScope, from, to types.Date) ([]domain.DayAggregate, int64, bool, error) {
	version, err := c.version(ctx)
	if err != nil {
		return nil, 0, false, err
	}

	raw, err := c.client.Get(ctx, dataKey(version, scope, from, to)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, version, false, fmt.Errorf("%w: Get - %v", ErrCacheRead, err)
	}

	var entries []dayEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, version, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	days := make([]domain.DayAggregate, len(entries))
	for i, e := range entries {
		days[i] = domain.DayAggregate{
			Date:          e.Date,
			FullCount:     e.FullCount,
			AMOnlyCount:   e.AMOnlyCount,
			PMOnlyCount:   e.PMOnlyCount,
			SunsetCount:   e.SunsetCount,
			ReservedCount: e.ReservedCount,
			IsReserved:    e.IsReserved,
		}
	}
	return days, version, true, nil
}

// Set сохраняет агрегаты под версией, прочитанной в Get до обращения к хранилищам.
// Если между ними прошла запись, ключ уже недостижим и истечёт по TTL
func (c *Cache) Set(ctx context.Context, version int64, scope domain.AssetScope, from, to types.Date, days []domain.DayAggregate) error {
	entries := make([]dayEntry, len(days))
	for i, d := range days {
		entries[i] = dayEntry{
			Date:          d.Date,
			FullCount:     d.FullCount,
			AMOnlyCount:   d.AMOnlyCount,
			PMOnlyCount:   d.PMOnlyCount,
			SunsetCount:   d.SunsetCount,
			ReservedCount: d.ReservedCount,
			IsReserved:    d.IsReserved,
		}
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal: %v", ErrCacheWrite, err)
	}

	if err := c.client.Set(ctx, dataKey(version, scope, from, to), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - %v", ErrCacheWrite, err)
	}
	return nil
}

// Invalidate делает все сохранённые агрегаты недостижимыми
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - %v", ErrCacheWrite, err)
	}
	return nil
}

func (c *Cache) version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: version - %v", ErrCacheRead, err)
	}
	return v, nil
}

func dataKey(version int64, scope domain.AssetScope, from, to types.Date) string {
	return fmt.Sprintf("%s:v%d:a%d:e%d:%s:%s",
		keyPrefix,
		version,
		ptr.Value(scope.AssetID, 0),
		ptr.Value(scope.ExperienceID, 0),
		from,
		to,
	)
}
