package broadcast

import (
	"sync"
	"time"
)

// PendingTable holds one pending broadcast per admin: after /sendall the
// admin's next message supplies the payload. Entries expire so a forgotten
// /sendall cannot capture an unrelated message days later.
type PendingTable struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[int64]pendingEntry
}

type pendingEntry struct {
	caption string
	created time.Time
}

// NewPendingTable creates a table whose entries expire after ttl.
func NewPendingTable(ttl time.Duration) *PendingTable {
	return &PendingTable{
		ttl:     ttl,
		entries: make(map[int64]pendingEntry),
	}
}

// Put registers a pending broadcast for the given admin, replacing any
// previous one.
func (p *PendingTable) Put(userID int64, caption string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[userID] = pendingEntry{caption: caption, created: time.Now()}
}

// Has reports whether the admin has a live pending broadcast.
func (p *PendingTable) Has(userID int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.entries[userID]
	if !ok {
		return false
	}
	if time.Since(entry.created) > p.ttl {
		delete(p.entries, userID)
		return false
	}
	return true
}

// Take consumes the admin's pending broadcast, returning its caption.
func (p *PendingTable) Take(userID int64) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.entries[userID]
	if !ok {
		return "", false
	}
	delete(p.entries, userID)
	if time.Since(entry.created) > p.ttl {
		return "", false
	}
	return entry.caption, true
}
