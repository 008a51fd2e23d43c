// Package memstore holds transient per-user verification state in process
// memory. A restart loses in-flight verifications; users restart the flow.
package memstore

import (
	"sync"
	"time"

	"github.com/ecobot-api/internal/domain"
)

// PendingTable maps a user id to its single in-flight verification attempt.
// Put overwrites (supersession); Get expires entries lazily.
type PendingTable struct {
	mu      sync.RWMutex
	entries map[string]domain.PendingVerification
	nowF    func() time.Time
}

func NewPendingTable() *PendingTable {
	return &PendingTable{
		entries: make(map[string]domain.PendingVerification),
		nowF:    time.Now,
	}
}

// Put records the in-flight attempt for entry.UserID, replacing any prior one.
func (t *PendingTable) Put(entry domain.PendingVerification) {
	t.mu.Lock()
	t.entries[entry.UserID] = entry
	t.mu.Unlock()
}

// Get returns the live entry for userID. An aged-out entry is deleted and
// reported absent.
func (t *PendingTable) Get(userID string) (domain.PendingVerification, bool) {
	t.mu.RLock()
	entry, ok := t.entries[userID]
	t.mu.RUnlock()
	if !ok {
		return domain.PendingVerification{}, false
	}
	if entry.Expired(t.nowF()) {
		t.mu.Lock()
		// Re-check under the write lock: a Put may have superseded the entry.
		if cur, still := t.entries[userID]; still && cur.CreatedAt.Equal(entry.CreatedAt) {
			delete(t.entries, userID)
		}
		t.mu.Unlock()
		return domain.PendingVerification{}, false
	}
	return entry, true
}

// Remove drops the entry for userID, if any.
func (t *PendingTable) Remove(userID string) {
	t.mu.Lock()
	delete(t.entries, userID)
	t.mu.Unlock()
}
