package cmap

import (
	"fmt"
	"strconv"
	"sync"
	"testing"
)

type userKey string

func TestNewWithShards(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{0, DefaultShardCount},
		{-4, DefaultShardCount},
		{12, DefaultShardCount},
		{1, 1},
		{8, 8},
		{64, 64},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("shards=%d", tt.input), func(t *testing.T) {
			m := NewWithShards[string, int](tt.input)
			if m.ShardCount() != tt.expected {
				t.Errorf("NewWithShards(%d) shard count = %d, want %d",
					tt.input, m.ShardCount(), tt.expected)
			}
		})
	}
}

func TestSetGetDelete(t *testing.T) {
	m := New[string, int]()

	m.Set("key1", 100)
	m.Set("key1", 200)

	if val, ok := m.Get("key1"); !ok || val != 200 {
		t.Errorf("Get(key1) = (%d, %v), want (200, true)", val, ok)
	}
	if !m.Has("key1") {
		t.Error("Has(key1) should return true")
	}

	m.Delete("key1")
	m.Delete("missing")
	if _, ok := m.Get("key1"); ok {
		t.Error("key1 should not exist after deletion")
	}
}

func TestNamedStringKey(t *testing.T) {
	m := New[userKey, string]()
	m.Set(userKey("u1"), "alice")

	if v, ok := m.Get("u1"); !ok || v != "alice" {
		t.Errorf("Get(u1) = (%q, %v), want (alice, true)", v, ok)
	}
}

func TestCountAndClear(t *testing.T) {
	m := New[string, int]()
	for i := 0; i < 50; i++ {
		m.Set(strconv.Itoa(i), i)
	}
	if m.Count() != 50 {
		t.Errorf("Count() = %d, want 50", m.Count())
	}

	m.Clear()
	if m.Count() != 0 {
		t.Errorf("Count() after Clear() = %d, want 0", m.Count())
	}
}

func TestView(t *testing.T) {
	m := New[string, []int]()
	m.Set("list", []int{1, 2, 3})

	var sum int
	m.View("list", func(v []int, ok bool) {
		if !ok {
			t.Fatal("View(list) reported missing")
		}
		for _, x := range v {
			sum += x
		}
	})
	if sum != 6 {
		t.Errorf("sum = %d, want 6", sum)
	}

	m.View("missing", func(v []int, ok bool) {
		if ok || v != nil {
			t.Errorf("View(missing) = (%v, %v), want (nil, false)", v, ok)
		}
	})
}

func TestUpdate(t *testing.T) {
	m := New[string, int]()

	got := m.Update("counter", func(v int, exists bool) int {
		if exists {
			t.Error("counter should not exist yet")
		}
		return v + 1
	})
	if got != 1 {
		t.Errorf("Update() = %d, want 1", got)
	}

	got = m.Update("counter", func(v int, exists bool) int { return v + 1 })
	if got != 2 {
		t.Errorf("Update() = %d, want 2", got)
	}
}

func TestGetOrSet(t *testing.T) {
	m := New[string, int]()

	if v, loaded := m.GetOrSet("k", 1); loaded || v != 1 {
		t.Errorf("GetOrSet first = (%d, %v), want (1, false)", v, loaded)
	}
	if v, loaded := m.GetOrSet("k", 2); !loaded || v != 1 {
		t.Errorf("GetOrSet second = (%d, %v), want (1, true)", v, loaded)
	}
}

func TestConcurrentUpdate(t *testing.T) {
	m := NewWithShards[string, int](4)
	var wg sync.WaitGroup
	const workers, ops = 50, 200

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < ops; j++ {
				key := "k" + strconv.Itoa(j%10)
				m.Update(key, func(v int, _ bool) int { return v + 1 })
				m.View(key, func(int, bool) {})
			}
		}()
	}
	wg.Wait()

	total := 0
	m.Range(func(_ string, v int) bool {
		total += v
		return true
	})
	if total != workers*ops {
		t.Errorf("total = %d, want %d", total, workers*ops)
	}
}
