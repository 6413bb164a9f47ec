package rigidbody

import (
	"sync"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestActionQueueFIFO(t *testing.T) {
	var q actionQueue
	q.enqueue(Action{Kind: ActionForce, Linear: cp.Vector{X: 1}})
	q.enqueue(Action{Kind: ActionTorque, Angular: 2})
	q.enqueue(Action{Kind: ActionWakeUp})

	got := q.drain()
	if len(got) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(got))
	}
	if got[0].Kind != ActionForce || got[1].Kind != ActionTorque || got[2].Kind != ActionWakeUp {
		t.Fatalf("actions out of order: %v", got)
	}
	if q.len() != 0 {
		t.Fatalf("queue must be empty after drain")
	}
}

func TestActionQueueDrainEmpty(t *testing.T) {
	var q actionQueue
	if got := q.drain(); len(got) != 0 {
		t.Fatalf("drain on empty queue must return empty, got %d", len(got))
	}
	// drain is idempotent
	q.enqueue(Action{Kind: ActionWakeUp})
	q.drain()
	if got := q.drain(); len(got) != 0 {
		t.Fatalf("second drain must return empty, got %d", len(got))
	}
}

func TestActionQueueConcurrentProducers(t *testing.T) {
	const producers = 8
	const perProducer = 200

	var q actionQueue
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.enqueue(Action{
					Kind:   ActionImpulse,
					Linear: cp.Vector{X: float64(p), Y: float64(i)},
				})
			}
		}(p)
	}
	wg.Wait()

	got := q.drain()
	if len(got) != producers*perProducer {
		t.Fatalf("expected %d actions, got %d", producers*perProducer, len(got))
	}

	// every producer's own submissions must come out in submission order
	next := make([]int, producers)
	for _, a := range got {
		p := int(a.Linear.X)
		if int(a.Linear.Y) != next[p] {
			t.Fatalf("producer %d reordered: expected seq %d, got %v", p, next[p], a.Linear.Y)
		}
		next[p]++
	}
	for p, n := range next {
		if n != perProducer {
			t.Fatalf("producer %d lost actions: %d of %d", p, n, perProducer)
		}
	}
}
