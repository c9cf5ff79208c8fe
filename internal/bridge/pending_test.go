package bridge

import (
	"sync"
	"testing"
)

func TestPendingSetInsertRemove(t *testing.T) {
	p := NewPendingSet()

	var id [32]byte
	id[0] = 0x01

	if !p.Insert(id) {
		t.Fatal("first insert should succeed")
	}
	if p.Insert(id) {
		t.Fatal("second insert should fail")
	}
	if !p.Contains(id) {
		t.Error("id should be present")
	}

	p.Remove(id)
	if p.Contains(id) || p.Len() != 0 {
		t.Error("id should be gone after remove")
	}
	if !p.Insert(id) {
		t.Error("insert after remove should succeed")
	}
}

func TestPendingSetConcurrentInsert(t *testing.T) {
	p := NewPendingSet()

	var id [32]byte
	id[0] = 0x02

	const workers = 32
	wins := make(chan bool, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins <- p.Insert(id)
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for w := range wins {
		if w {
			won++
		}
	}
	if won != 1 {
		t.Errorf("%d inserts won, want exactly 1", won)
	}
}
