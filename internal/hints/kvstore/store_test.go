package kvstore

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/park285/action-reaction-hints/internal/common/testhelper"
)

type backendFactory func(t *testing.T) KeyValueStore

func backends() map[string]backendFactory {
	return map[string]backendFactory{
		BackendMemory: func(*testing.T) KeyValueStore {
			return NewMemoryStore()
		},
		BackendValkey: func(t *testing.T) KeyValueStore {
			client, _ := testhelper.NewMiniredisClient(t)
			return NewValkeyStore(client, "", testhelper.DiscardLogger())
		},
		BackendSQLite: func(t *testing.T) KeyValueStore {
			store := NewSQLStore(testhelper.NewSQLiteDB(t))
			if err := store.AutoMigrate(context.Background()); err != nil {
				t.Fatalf("migrate failed: %v", err)
			}
			return store
		},
	}
}

func TestKeyValueStore_Contract(t *testing.T) {
	for name, factory := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := factory(t)

			if _, ok, err := store.GetItem(ctx, "missing"); ok || err != nil {
				t.Fatalf("expected miss without error, ok=%v err=%v", ok, err)
			}

			if err := store.SetItem(ctx, "ai_hints_en_food_pizza", `{"v":1}`); err != nil {
				t.Fatalf("set failed: %v", err)
			}
			if err := store.SetItem(ctx, "ai_hints_en_food_pizza", `{"v":2}`); err != nil {
				t.Fatalf("overwrite failed: %v", err)
			}
			value, ok, err := store.GetItem(ctx, "ai_hints_en_food_pizza")
			if err != nil || !ok || value != `{"v":2}` {
				t.Fatalf("expected overwritten value, got %q ok=%v err=%v", value, ok, err)
			}

			if err := store.SetItem(ctx, "other_key", "x"); err != nil {
				t.Fatalf("set failed: %v", err)
			}
			keys, err := store.GetAllKeys(ctx)
			if err != nil {
				t.Fatalf("keys failed: %v", err)
			}
			slices.Sort(keys)
			if !slices.Equal(keys, []string{"ai_hints_en_food_pizza", "other_key"}) {
				t.Fatalf("unexpected keys: %v", keys)
			}

			if err := store.RemoveItem(ctx, "other_key"); err != nil {
				t.Fatalf("remove failed: %v", err)
			}
			if err := store.RemoveItem(ctx, "other_key"); err != nil {
				t.Fatalf("removing a missing key must not fail: %v", err)
			}
			if _, ok, _ := store.GetItem(ctx, "other_key"); ok {
				t.Fatal("expected removed key to be absent")
			}
		})
	}
}

func TestKeyValueStore_MultiRemove(t *testing.T) {
	for name, factory := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := factory(t)

			var toRemove []string
			for i := 0; i < 20; i++ {
				key := fmt.Sprintf("ai_hints_en_food_word%02d", i)
				if err := store.SetItem(ctx, key, "v"); err != nil {
					t.Fatalf("set failed: %v", err)
				}
				toRemove = append(toRemove, key)
			}
			if err := store.SetItem(ctx, "keep", "v"); err != nil {
				t.Fatalf("set failed: %v", err)
			}

			if err := store.MultiRemove(ctx, nil); err != nil {
				t.Fatalf("empty multi remove must be a no-op: %v", err)
			}
			if err := store.MultiRemove(ctx, toRemove); err != nil {
				t.Fatalf("multi remove failed: %v", err)
			}

			keys, err := store.GetAllKeys(ctx)
			if err != nil {
				t.Fatalf("keys failed: %v", err)
			}
			if !slices.Equal(keys, []string{"keep"}) {
				t.Fatalf("unexpected keys after multi remove: %v", keys)
			}
		})
	}
}

func TestValkeyStore_ScanPattern(t *testing.T) {
	ctx := context.Background()
	client, mr := testhelper.NewMiniredisClient(t)
	store := NewValkeyStore(client, "ai_hints_*", testhelper.DiscardLogger())

	if err := mr.Set("ai_hints_en_food_pizza", "v"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := mr.Set("session:123", "v"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	keys, err := store.GetAllKeys(ctx)
	if err != nil {
		t.Fatalf("keys failed: %v", err)
	}
	if !slices.Equal(keys, []string{"ai_hints_en_food_pizza"}) {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestValkeyStore_ErrorIsWrapped(t *testing.T) {
	client, mr := testhelper.NewMiniredisClient(t)
	store := NewValkeyStore(client, "", testhelper.DiscardLogger())
	mr.SetError("READONLY test failure")

	if _, _, err := store.GetItem(context.Background(), "k"); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseBackend(t *testing.T) {
	tests := map[string]string{
		"":         BackendValkey,
		"Valkey":   BackendValkey,
		"postgres": BackendPostgres,
		" sqlite ": BackendSQLite,
		"memory":   BackendMemory,
	}
	for raw, want := range tests {
		got, err := ParseBackend(raw)
		if err != nil || got != want {
			t.Errorf("ParseBackend(%q) = %q, %v; want %q", raw, got, err, want)
		}
	}
	if _, err := ParseBackend("dynamodb"); err == nil {
		t.Error("expected error for unknown backend")
	}
}
