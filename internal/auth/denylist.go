package auth

import (
	"context"
	"sync"
	"time"
)

// Denylist records revoked token IDs. Tokens are stateless, so logout works
// by denylisting the token's ID for its remaining lifetime; entries expire
// together with the tokens they block.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// MemoryDenylist is a process-local Denylist used when no Redis address is
// configured, and in tests. A janitor goroutine drops expired entries.
type MemoryDenylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	done    chan struct{}
	once    sync.Once
}

// NewMemoryDenylist creates the denylist and starts its cleanup loop.
func NewMemoryDenylist() *MemoryDenylist {
	d := &MemoryDenylist{
		entries: make(map[string]time.Time),
		done:    make(chan struct{}),
	}
	go d.janitor()
	return d
}

// Revoke marks the token ID as revoked until its expiry.
func (d *MemoryDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired; nothing to block
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[tokenID] = time.Now().Add(ttl)
	return nil
}

// IsRevoked reports whether the token ID has an unexpired revocation.
func (d *MemoryDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	until, ok := d.entries[tokenID]
	if !ok {
		return false, nil
	}
	if time.Now().After(until) {
		delete(d.entries, tokenID)
		return false, nil
	}
	return true, nil
}

// Close stops the janitor goroutine. Safe to call more than once.
func (d *MemoryDenylist) Close() {
	d.once.Do(func() { close(d.done) })
}

func (d *MemoryDenylist) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-d.done:
			return
		case now := <-ticker.C:
			d.mu.Lock()
			for id, until := range d.entries {
				if now.After(until) {
					delete(d.entries, id)
				}
			}
			d.mu.Unlock()
		}
	}
}
