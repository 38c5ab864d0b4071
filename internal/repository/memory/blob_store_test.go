package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
)

func TestBlobStore_GetMissing(t *testing.T) {
	store := NewBlobStore()

	_, err := store.Get(context.Background(), "absent")
	if !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("Expected ErrKeyNotFound, got %v", err)
	}
}

func TestBlobStore_PutGet(t *testing.T) {
	ctx := context.Background()
	store := NewBlobStore()

	value := []byte(`[]`)
	if err := store.Put(ctx, "k", value); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	value[0] = 'x'

	got, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(got) != "[]" {
		t.Errorf("Expected stored value to be isolated from caller, got %s", got)
	}

	got[0] = 'y'
	again, _ := store.Get(ctx, "k")
	if string(again) != "[]" {
		t.Errorf("Expected returned value to be a copy, got %s", again)
	}
}
