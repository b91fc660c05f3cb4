package libpack_cache

import (
	"bytes"
	"compress/gzip"
	"hash/fnv"
	"io"
	"sync"
	"time"
)

const shardCount = 256 // must stay a power of 2

type entry struct {
	expiresAt time.Time
	value     []byte
}

type shard struct {
	entries map[string]entry
	sync.RWMutex
}

// Cache is a sharded in-memory TTL store for serialized results.
// Values are gzip-compressed; a background janitor sweeps expired
// entries. It satisfies the client's cache capability.
type Cache struct {
	compressPool sync.Pool
	stop         chan struct{}
	shards       [shardCount]*shard
	globalTTL    time.Duration
	stopOnce     sync.Once
}

func New(globalTTL time.Duration) *Cache {
	c := &Cache{
		globalTTL: globalTTL,
		stop:      make(chan struct{}),
		compressPool: sync.Pool{
			New: func() interface{} {
				return gzip.NewWriter(io.Discard)
			},
		},
	}
	for i := range c.shards {
		c.shards[i] = &shard{entries: make(map[string]entry)}
	}
	go c.janitor()
	return c
}

func (c *Cache) shardFor(key string) *shard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return c.shards[h.Sum32()&(shardCount-1)]
}

// Set stores a value under the cache-wide TTL.
func (c *Cache) Set(key string, value []byte) {
	c.SetWithTTL(key, value, c.globalTTL)
}

func (c *Cache) SetWithTTL(key string, value []byte, ttl time.Duration) {
	compressed, err := c.compress(value)
	if err != nil {
		return
	}
	s := c.shardFor(key)
	s.Lock()
	s.entries[key] = entry{value: compressed, expiresAt: time.Now().Add(ttl)}
	s.Unlock()
}

func (c *Cache) Get(key string) ([]byte, bool) {
	s := c.shardFor(key)
	s.RLock()
	e, ok := s.entries[key]
	s.RUnlock()
	if !ok {
		return nil, false
	}
	if e.expiresAt.Before(time.Now()) {
		s.Lock()
		delete(s.entries, key)
		s.Unlock()
		return nil, false
	}
	value, err := c.decompress(e.value)
	if err != nil {
		return nil, false
	}
	return value, true
}

func (c *Cache) Delete(key string) {
	s := c.shardFor(key)
	s.Lock()
	delete(s.entries, key)
	s.Unlock()
}

// Len reports the number of live entries, expired ones included until
// the next sweep.
func (c *Cache) Len() int {
	total := 0
	for _, s := range c.shards {
		s.RLock()
		total += len(s.entries)
		s.RUnlock()
	}
	return total
}

func (c *Cache) CleanExpiredEntries() {
	now := time.Now()
	for _, s := range c.shards {
		s.Lock()
		for key, e := range s.entries {
			if e.expiresAt.Before(now) {
				delete(s.entries, key)
			}
		}
		s.Unlock()
	}
}

// Stop terminates the janitor goroutine. Safe to call more than once.
func (c *Cache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}

func (c *Cache) janitor() {
	interval := c.globalTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.CleanExpiredEntries()
		case <-c.stop:
			return
		}
	}
}

func (c *Cache) compress(value []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := c.compressPool.Get().(*gzip.Writer)
	defer c.compressPool.Put(w)
	w.Reset(&buf)
	if _, err := w.Write(value); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Cache) decompress(value []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(value))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
