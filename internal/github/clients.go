package github

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/dgraph-io/ristretto/v2"
	gogithub "github.com/google/go-github/v75/github"
)

// DefaultMaxClients is how many per-token API clients are kept at once
const DefaultMaxClients = 32

// clientCache holds the API clients of recently used tokens. Keys are token
// digests and the number of entries never exceeds the configured size.
type clientCache struct {
	cache *ristretto.Cache[string, *gogithub.Client]
}

func newClientCache(size int) *clientCache {
	if size <= 0 {
		size = DefaultMaxClients
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, *gogithub.Client]{
		NumCounters:        int64(size) * 10,
		MaxCost:            int64(size),
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		// only reachable with an invalid config; clients are then built per call
		return &clientCache{}
	}
	return &clientCache{cache: cache}
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (c *clientCache) get(token string) (*gogithub.Client, bool) {
	if c.cache == nil {
		return nil, false
	}
	return c.cache.Get(tokenKey(token))
}

func (c *clientCache) put(token string, cl *gogithub.Client) {
	if c.cache == nil {
		return
	}
	if c.cache.Set(tokenKey(token), cl, 1) {
		c.cache.Wait()
	}
}

func (c *clientCache) close() {
	if c.cache != nil {
		c.cache.Close()
	}
}
