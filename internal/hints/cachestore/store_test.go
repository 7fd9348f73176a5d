package cachestore

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/park285/action-reaction-hints/internal/common/testhelper"
	"github.com/park285/action-reaction-hints/internal/hints/kvstore"
	"github.com/park285/action-reaction-hints/internal/hints/model"
)

var pizzaHints = model.HintSet{"a", "b", "c", "d"}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

type failingKV struct{ err error }

func (f failingKV) GetItem(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingKV) SetItem(context.Context, string, string) error         { return f.err }
func (f failingKV) RemoveItem(context.Context, string) error              { return f.err }
func (f failingKV) GetAllKeys(context.Context) ([]string, error)          { return nil, f.err }
func (f failingKV) MultiRemove(context.Context, []string) error           { return f.err }

func TestStore_Key(t *testing.T) {
	store := New(kvstore.NewMemoryStore(), testhelper.DiscardLogger())

	if got := store.Key("Pizza", "food", model.LanguageEnglish); got != "ai_hints_en_food_pizza" {
		t.Errorf("unexpected key: %s", got)
	}
	// 토픽은 소문자화하지 않는다.
	if got := store.Key("Pizza", "Food", model.LanguageTamil); got != "ai_hints_ta_Food_pizza" {
		t.Errorf("unexpected key: %s", got)
	}

	custom := New(kvstore.NewMemoryStore(), testhelper.DiscardLogger(), WithPrefix("hints_v2"))
	if got := custom.Key("pizza", "food", model.LanguageEnglish); got != "hints_v2_en_food_pizza" {
		t.Errorf("unexpected key: %s", got)
	}
}

func TestStore_RoundTrip_Valkey(t *testing.T) {
	ctx := context.Background()
	client, mr := testhelper.NewMiniredisClient(t)
	store := New(kvstore.NewValkeyStore(client, "", testhelper.DiscardLogger()), testhelper.DiscardLogger())

	store.Put(ctx, "Pizza", "food", pizzaHints, model.LanguageEnglish)

	got, ok := store.Get(ctx, "pizza", "food", model.LanguageEnglish)
	if !ok || got != pizzaHints {
		t.Fatalf("expected round trip, got %q ok=%v", got, ok)
	}
	if !mr.Exists("ai_hints_en_food_pizza") {
		t.Fatal("expected entry under derived key")
	}
}

func TestStore_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	kv := kvstore.NewMemoryStore()
	store := New(kv, testhelper.DiscardLogger(), WithClock(clock.Now))

	store.Put(ctx, "pizza", "food", pizzaHints, model.LanguageEnglish)

	clock.Advance(24*time.Hour - time.Millisecond)
	if _, ok := store.Get(ctx, "pizza", "food", model.LanguageEnglish); !ok {
		t.Fatal("expected fresh entry just before expiry")
	}

	clock.Advance(time.Millisecond)
	if _, ok := store.Get(ctx, "pizza", "food", model.LanguageEnglish); ok {
		t.Fatal("expected miss at exactly 24h")
	}

	stats := store.Stats(ctx)
	if stats.TotalCached != 0 || len(stats.CacheKeys) != 0 {
		t.Fatalf("expired entry must be deleted on read, stats=%+v", stats)
	}
}

func TestStore_CorruptEntryIsRemoved(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	store := New(kv, testhelper.DiscardLogger())

	tests := map[string]string{
		"not json":    "{not json",
		"three hints": `{"word":"pizza","topic":"food","language":"en","hints":["a","b","c"],"timestamp":` + "9999999999999}",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			key := store.Key("pizza", "food", model.LanguageEnglish)
			if err := kv.SetItem(ctx, key, raw); err != nil {
				t.Fatalf("seed failed: %v", err)
			}
			if _, ok := store.Get(ctx, "pizza", "food", model.LanguageEnglish); ok {
				t.Fatal("expected miss for corrupt entry")
			}
			if _, ok, _ := kv.GetItem(ctx, key); ok {
				t.Fatal("corrupt entry must be removed")
			}
		})
	}
}

func TestStore_ClearAllAndStats(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	store := New(kv, testhelper.DiscardLogger())

	if removed, err := store.ClearAll(ctx); err != nil || removed != 0 {
		t.Fatalf("clear on empty store must be a no-op, removed=%d err=%v", removed, err)
	}

	store.Put(ctx, "pizza", "food", pizzaHints, model.LanguageEnglish)
	store.Put(ctx, "யானை", "animals", pizzaHints, model.LanguageTamil)
	if err := kv.SetItem(ctx, "user_settings", "{}"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := kv.SetItem(ctx, "ai_hintsX_not_ours", "{}"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	stats := store.Stats(ctx)
	want := []string{"ai_hints_en_food_pizza", "ai_hints_ta_animals_யானை"}
	got := slices.Clone(stats.CacheKeys)
	slices.Sort(got)
	if stats.TotalCached != 2 || !slices.Equal(got, want) {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	removed, err := store.ClearAll(ctx)
	if err != nil || removed != 2 {
		t.Fatalf("expected 2 removed, got %d err=%v", removed, err)
	}

	keys, _ := kv.GetAllKeys(ctx)
	if !slices.Equal(keys, []string{"ai_hintsX_not_ours", "user_settings"}) {
		t.Fatalf("clear must only touch cache keys, remaining=%v", keys)
	}
}

func TestStore_FailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	store := New(failingKV{err: errors.New("storage unavailable")}, testhelper.DiscardLogger())

	store.Put(ctx, "pizza", "food", pizzaHints, model.LanguageEnglish)

	if _, ok := store.Get(ctx, "pizza", "food", model.LanguageEnglish); ok {
		t.Fatal("expected miss on storage error")
	}

	stats := store.Stats(ctx)
	if stats.TotalCached != 0 || stats.CacheKeys == nil || len(stats.CacheKeys) != 0 {
		t.Fatalf("expected empty stats, got %+v", stats)
	}

	if _, err := store.ClearAll(ctx); err == nil {
		t.Fatal("expected clear error to be reported")
	}
}

func TestStore_CustomTTL_SQLite(t *testing.T) {
	ctx := context.Background()
	clock := newClock()

	sqlKV := kvstore.NewSQLStore(testhelper.NewSQLiteDB(t))
	if err := sqlKV.AutoMigrate(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	store := New(sqlKV, testhelper.DiscardLogger(), WithClock(clock.Now), WithTTL(time.Hour))

	store.Put(ctx, "pizza", "food", pizzaHints, model.LanguageEnglish)
	if got, ok := store.Get(ctx, "pizza", "food", model.LanguageEnglish); !ok || got != pizzaHints {
		t.Fatalf("expected hit, got %q ok=%v", got, ok)
	}

	clock.Advance(time.Hour)
	if _, ok := store.Get(ctx, "pizza", "food", model.LanguageEnglish); ok {
		t.Fatal("expected miss after custom ttl")
	}
	if stats := store.Stats(ctx); stats.TotalCached != 0 {
		t.Fatalf("expected expired entry deleted, stats=%+v", stats)
	}
}
