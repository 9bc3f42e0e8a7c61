package common

import (
	"errors"
	"testing"
	"time"
)

func TestCacheService_SetGet(t *testing.T) {
	cs := NewCacheService(60, 0)

	cs.Set("key", "value", NoExpiration)
	val, found := cs.Get("key")
	if !found || val != "value" {
		t.Errorf("Expected cached value, got %v (found=%v)", val, found)
	}

	cs.Delete("key")
	if _, found := cs.Get("key"); found {
		t.Error("Expected key to be deleted")
	}
}

func TestCacheService_GetOrSet(t *testing.T) {
	cs := NewCacheService(60, 0)

	calls := 0
	loader := func() (any, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		val, err := cs.GetOrSet("answer", NoExpiration, loader)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if val != 42 {
			t.Errorf("Expected 42, got %v", val)
		}
	}
	if calls != 1 {
		t.Errorf("Expected loader to run once, ran %d times", calls)
	}
}

func TestCacheService_GetOrSetErrorNotCached(t *testing.T) {
	cs := NewCacheService(60, 0)

	boom := errors.New("load failed")
	if _, err := cs.GetOrSet("key", NoExpiration, func() (any, error) { return nil, boom }); err != boom {
		t.Fatalf("Expected loader error, got %v", err)
	}

	// A failed load must not poison the key.
	val, err := cs.GetOrSet("key", NoExpiration, func() (any, error) { return "ok", nil })
	if err != nil || val != "ok" {
		t.Errorf("Expected recovery after failed load, got %v, %v", val, err)
	}
}

func TestCacheService_FlushClearsEverything(t *testing.T) {
	cs := NewCacheService(60, 0)
	cs.Set("a", 1, NoExpiration)
	cs.Set("b", 2, time.Minute)

	cs.Flush()
	if _, found := cs.Get("a"); found {
		t.Error("Expected a to be flushed")
	}
	if _, found := cs.Get("b"); found {
		t.Error("Expected b to be flushed")
	}
}
