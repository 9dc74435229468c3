package countrylib

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// CountryCache keeps resolved countries. A key is a dotted-quad IPv4
// address. Implementations have to be safe for concurrent use.
type CountryCache interface {
	Get(ip string) (string, bool)
	Put(ip, country string)
	Len() int
}

type mapCountryCache struct {
	mutex sync.RWMutex
	items map[string]string
}

func (m *mapCountryCache) Get(ip string) (string, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	country, ok := m.items[ip]

	return country, ok
}

func (m *mapCountryCache) Put(ip, country string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.items[ip] = country
}

func (m *mapCountryCache) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.items)
}

type lruCountryCache struct {
	cache *lru.Cache
}

func (l lruCountryCache) Get(ip string) (string, bool) {
	value, ok := l.cache.Get(ip)
	if !ok {
		return "", false
	}

	return value.(string), true
}

func (l lruCountryCache) Put(ip, country string) {
	l.cache.Add(ip, country)
}

func (l lruCountryCache) Len() int {
	return l.cache.Len()
}

// NewCountryCache returns a cache which keeps everything for the
// lifetime of the process. There is no eviction and no TTL.
func NewCountryCache() CountryCache {
	return &mapCountryCache{
		items: map[string]string{},
	}
}

// NewLRUCountryCache returns a cache which keeps at most size entries
// and evicts least recently used ones.
func NewLRUCountryCache(size int) (CountryCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("cannot create lru cache: %w", err)
	}

	return lruCountryCache{
		cache: cache,
	}, nil
}
