package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"driveflow-docs-go/internal/pkg/tracing"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
)

// Item представляет элемент кэша с временем жизни
type Item struct {
	Value      []byte
	Expiration int64
}

// Cache представляет кэш отрендеренных документов с поддержкой TTL
type Cache struct {
	items sync.Map
	ttl   time.Duration

	hits   prometheus.Gauge
	misses prometheus.Gauge
	size   *prometheus.GaugeVec
	count  prometheus.Gauge
}

// NewCache создает новый экземпляр кэша с глобальными метриками
func NewCache(ttl time.Duration) *Cache {
	return NewCacheWithMetrics(ttl, cacheHits, cacheMisses, cacheSize, cacheItemsCount)
}

// NewCacheWithMetrics создает кэш с переданными метриками
func NewCacheWithMetrics(ttl time.Duration, hits, misses prometheus.Gauge, size *prometheus.GaugeVec, count prometheus.Gauge) *Cache {
	cache := &Cache{
		ttl:    ttl,
		hits:   hits,
		misses: misses,
		size:   size,
		count:  count,
	}
	go cache.startCleanupTimer()
	return cache
}

// Set добавляет значение в кэш
func (c *Cache) Set(key string, value []byte) {
	c.items.Store(key, Item{
		Value:      value,
		Expiration: time.Now().Add(c.ttl).UnixNano(),
	})
	c.size.WithLabelValues(key).Set(float64(len(value)))
	c.recount()
}

// Get получает значение из кэша
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := tracing.StartSpan(ctx, "Cache.Get")
	defer span.End()

	span.SetAttributes(attribute.String("cache.key", key))

	item, exists := c.items.Load(key)
	if !exists {
		c.misses.Inc()
		err := fmt.Errorf("cache miss: key %s not found", key)
		tracing.RecordError(ctx, err)
		return nil, err
	}

	cached := item.(Item)
	if time.Now().UnixNano() > cached.Expiration {
		c.items.Delete(key)
		c.recount()
		c.misses.Inc()
		err := fmt.Errorf("cache miss: key %s expired", key)
		tracing.RecordError(ctx, err)
		return nil, err
	}

	c.hits.Inc()
	span.AddEvent("Cache hit")
	return cached.Value, nil
}

// Delete удаляет значение из кэша
func (c *Cache) Delete(ctx context.Context, key string) {
	_, span := tracing.StartSpan(ctx, "Cache.Delete")
	defer span.End()

	span.SetAttributes(attribute.String("cache.key", key))

	c.items.Delete(key)
	c.recount()
	span.AddEvent("Cache entry deleted")
}

// Clear очищает весь кэш
func (c *Cache) Clear(ctx context.Context) {
	_, span := tracing.StartSpan(ctx, "Cache.Clear")
	defer span.End()

	c.items.Range(func(key, _ interface{}) bool {
		c.items.Delete(key)
		return true
	})
	c.recount()
	span.AddEvent("Cache cleared")
}

// startCleanupTimer запускает периодическую очистку устаревших элементов
func (c *Cache) startCleanupTimer() {
	ticker := time.NewTicker(c.ttl)
	for range ticker.C {
		now := time.Now().UnixNano()
		c.items.Range(func(key, value interface{}) bool {
			item := value.(Item)
			if now > item.Expiration {
				c.items.Delete(key)
			}
			return true
		})
		c.recount()
	}
}

// recount пересчитывает количество элементов в кэше для метрик
func (c *Cache) recount() {
	var n int64
	c.items.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	c.count.Set(float64(n))
}
