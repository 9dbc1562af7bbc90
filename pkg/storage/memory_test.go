package storage

import (
	"errors"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	kv := NewMemoryStore()

	if err := kv.Set("k", "v1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, ok, err := kv.Get("k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || value != "v1" {
		t.Errorf("Expected v1, got %q (ok=%t)", value, ok)
	}

	if err := kv.Set("k", "v2"); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}
	value, _, _ = kv.Get("k")
	if value != "v2" {
		t.Errorf("Expected overwrite to replace value, got %q", value)
	}

	if err := kv.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	_, ok, _ = kv.Get("k")
	if ok {
		t.Errorf("Expected key gone after delete")
	}

	if err := kv.Delete("never-existed"); err != nil {
		t.Errorf("Deleting an absent key should be a no-op, got: %v", err)
	}
}

func TestMemoryStoreQuota(t *testing.T) {
	kv := NewMemoryStoreWithQuota(10)

	if err := kv.Set("a", "12345"); err != nil {
		t.Fatalf("Set within quota failed: %v", err)
	}

	err := kv.Set("b", "123456789")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("Expected ErrQuotaExceeded, got: %v", err)
	}
	_, ok, _ := kv.Get("b")
	if ok {
		t.Errorf("Expected rejected write to leave no value behind")
	}

	// Replacing an existing value only counts the new size for that key.
	if err := kv.Set("a", "123456789"); err != nil {
		t.Errorf("Expected in-place replacement within quota to succeed, got: %v", err)
	}
}
