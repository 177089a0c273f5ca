package pipeline

import (
	"sync/atomic"
	"testing"
)

func TestForEachVisitsEveryIndexOnce(t *testing.T) {
	const n = 100
	counts := make([]int32, n)
	ForEach(n, 4, func(i int) {
		atomic.AddInt32(&counts[i], 1)
	})
	for i, c := range counts {
		if c != 1 {
			t.Fatalf("index %d visited %d times", i, c)
		}
	}
}

func TestForEachPreservesIndexedResults(t *testing.T) {
	const n = 50
	out := make([]int, n)
	ForEach(n, 8, func(i int) {
		out[i] = i * i
	})
	for i := range out {
		if out[i] != i*i {
			t.Fatalf("out[%d] = %d, want %d", i, out[i], i*i)
		}
	}
}

func TestForEachDegenerateInputs(t *testing.T) {
	ForEach(0, 4, func(i int) { t.Fatal("fn must not run for n=0") })
	ForEach(5, 4, nil)

	var called int32
	ForEach(3, 0, func(i int) { atomic.AddInt32(&called, 1) })
	if called != 3 {
		t.Fatalf("default worker count ran %d calls, want 3", called)
	}
}
