package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

const (
	PAGE_CACHE_TTL    = 20 * time.Second // TTL кеша страниц
	PAGE_CACHE_PREFIX = "page_cache:"    // Префикс ключей в Redis
)

// PageCacheInstance - общий кеш целых страниц, инициализируется при старте
var PageCacheInstance *PageCache

// CachedPage - отрендеренный ответ страницы
type CachedPage struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type localEntry struct {
	page      CachedPage
	expiresAt time.Time
}

// PageCache кеширует отрендеренные страницы по ключу "путь + query string".
// При наличии Redis записи живут в нем, иначе используется локальная карта
// с тем же TTL.
type PageCache struct {
	ttl time.Duration

	mu    sync.Mutex
	local map[string]localEntry
}

func NewPageCache(ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = PAGE_CACHE_TTL
	}
	return &PageCache{
		ttl:   ttl,
		local: make(map[string]localEntry),
	}
}

// Get возвращает закешированную страницу, если она еще не истекла
func (pc *PageCache) Get(ctx context.Context, key string) (*CachedPage, bool) {
	if RedisClient != nil {
		data, err := RedisClient.Get(ctx, PAGE_CACHE_PREFIX+key).Bytes()
		if err != nil {
			return nil, false
		}
		var page CachedPage
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, false
		}
		return &page, true
	}

	pc.mu.Lock()
	defer pc.mu.Unlock()
	entry, ok := pc.local[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(pc.local, key)
		return nil, false
	}
	return &entry.page, true
}

// Set сохраняет страницу на время TTL
func (pc *PageCache) Set(ctx context.Context, key string, page CachedPage) {
	if RedisClient != nil {
		data, err := json.Marshal(page)
		if err != nil {
			return
		}
		RedisClient.Set(ctx, PAGE_CACHE_PREFIX+key, data, pc.ttl)
		return
	}

	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.local[key] = localEntry{page: page, expiresAt: time.Now().Add(pc.ttl)}
}

// Clear полностью очищает кеш (админский/тестовый инструмент)
func (pc *PageCache) Clear(ctx context.Context) error {
	if RedisClient != nil {
		iter := RedisClient.Scan(ctx, 0, PAGE_CACHE_PREFIX+"*", 0).Iterator()
		for iter.Next(ctx) {
			if err := RedisClient.Del(ctx, iter.Val()).Err(); err != nil {
				return err
			}
		}
		if err := iter.Err(); err != nil {
			return err
		}
	}

	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.local = make(map[string]localEntry)
	return nil
}
