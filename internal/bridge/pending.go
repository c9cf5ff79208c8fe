package bridge

import "sync"

// PendingSet tracks contract ids currently owned by a running state machine.
// Membership is advisory mutual exclusion for the Send flow: two requests
// for the same contract must not both proceed past the guard.
type PendingSet struct {
	mu  sync.Mutex
	ids map[[32]byte]struct{}
}

// NewPendingSet creates an empty pending set.
func NewPendingSet() *PendingSet {
	return &PendingSet{ids: make(map[[32]byte]struct{})}
}

// Insert adds the id if absent. Returns false if it was already present.
func (p *PendingSet) Insert(id [32]byte) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.ids[id]; ok {
		return false
	}
	p.ids[id] = struct{}{}
	return true
}

// Remove releases the id.
func (p *PendingSet) Remove(id [32]byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.ids, id)
}

// Contains reports whether the id is currently held.
func (p *PendingSet) Contains(id [32]byte) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.ids[id]
	return ok
}

// Len returns the number of in-flight ids.
func (p *PendingSet) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.ids)
}
