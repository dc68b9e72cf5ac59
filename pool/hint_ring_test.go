// File: pool/hint_ring_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync"
	"testing"
)

func TestHintRingFIFO(t *testing.T) {
	r := newHintRing(4)
	a, b := &page{id: 1}, &page{id: 2}

	if !r.enqueue(a) || !r.enqueue(b) {
		t.Fatal("enqueue failed on non-full ring")
	}
	if p, ok := r.dequeue(); !ok || p.id != 1 {
		t.Fatalf("expected page 1, got %v", p)
	}
	if p, ok := r.dequeue(); !ok || p.id != 2 {
		t.Fatalf("expected page 2, got %v", p)
	}
	if _, ok := r.dequeue(); ok {
		t.Fatal("dequeue succeeded on empty ring")
	}
}

func TestHintRingFull(t *testing.T) {
	r := newHintRing(2)
	p := &page{}
	if !r.enqueue(p) || !r.enqueue(p) {
		t.Fatal("ring filled early")
	}
	if r.enqueue(p) {
		t.Fatal("enqueue succeeded on full ring")
	}
}

func TestHintRingConcurrent(t *testing.T) {
	r := newHintRing(1024)
	p := &page{}
	const producers = 4
	const perProducer = 200

	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				for !r.enqueue(p) {
				}
			}
		}()
	}

	got := 0
	done := make(chan struct{})
	go func() {
		defer close(done)
		for got < producers*perProducer {
			if _, ok := r.dequeue(); ok {
				got++
			}
		}
	}()
	wg.Wait()
	<-done
	if got != producers*perProducer {
		t.Fatalf("dequeued %d of %d hints", got, producers*perProducer)
	}
}
