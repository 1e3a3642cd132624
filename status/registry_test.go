package status

import (
	"sync"
	"testing"
)

func TestMetricMapCachedPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get("engine.ticks")
	b := r.Ints.Get("engine.ticks")
	if a != b {
		t.Fatal("Get must return the same pointer for the same key")
	}
	a.Store(7)
	if b.Load() != 7 {
		t.Error("writes through one pointer must be visible through the other")
	}
}

func TestMetricMapConcurrentGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Ints.Get("shared.counter").Add(1)
			}
		}()
	}
	wg.Wait()
	if got := r.Ints.Get("shared.counter").Load(); got != 2000 {
		t.Errorf("counter = %d, want 2000", got)
	}
	if r.Ints.Count() != 1 {
		t.Errorf("count = %d, want 1 despite concurrent registration", r.Ints.Count())
	}
}

func TestAtomicFloat(t *testing.T) {
	var f AtomicFloat
	if f.Get() != 0 {
		t.Fatal("zero value must read 0.0")
	}
	f.Set(3.5)
	if f.Get() != 3.5 {
		t.Errorf("get = %f, want 3.5", f.Get())
	}
	if got := f.Add(0.25); got != 3.75 {
		t.Errorf("add returned %f, want 3.75", got)
	}
}

func TestRegistrySnapshot(t *testing.T) {
	r := NewRegistry()
	r.Bools.Get("monitor.alerting").Store(true)
	r.Ints.Get("engine.ticks").Store(120)
	r.Floats.Get("monitor.fps").Set(59.8)

	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot size = %d, want 3", len(snap))
	}
	if snap["monitor.alerting"] != true {
		t.Errorf("bool metric lost: %v", snap["monitor.alerting"])
	}
	if snap["engine.ticks"] != int64(120) {
		t.Errorf("int metric lost: %v", snap["engine.ticks"])
	}
	if snap["monitor.fps"] != 59.8 {
		t.Errorf("float metric lost: %v", snap["monitor.fps"])
	}
}

func TestMetricMapRangeSorted(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	m.Get("c")
	m.Get("a")
	m.Get("b")
	var keys []string
	m.Range(func(k string, _ *AtomicFloat) { keys = append(keys, k) })
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("range order = %v, want sorted", keys)
	}
}
