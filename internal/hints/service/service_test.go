package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/park285/action-reaction-hints/internal/common/testhelper"
	"github.com/park285/action-reaction-hints/internal/common/textutil"
	"github.com/park285/action-reaction-hints/internal/hints/cachestore"
	"github.com/park285/action-reaction-hints/internal/hints/content"
	"github.com/park285/action-reaction-hints/internal/hints/kvstore"
	"github.com/park285/action-reaction-hints/internal/hints/model"
	"github.com/park285/action-reaction-hints/internal/hints/static"
)

var (
	remoteHints = model.HintSet{"a", "b", "c", "d"}
	cachedHints = model.HintSet{"cached-1", "cached-2", "cached-3", "cached-4"}
)

type fakeRemote struct {
	calls   atomic.Int32
	hints   model.HintSet
	source  model.Source
	err     error
	panics  bool
	release chan struct{}
}

func (f *fakeRemote) RequestHintsWithSource(ctx context.Context, _, _, _ string, _ model.Language) (model.HintSet, model.Source, error) {
	f.calls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return model.HintSet{}, "", ctx.Err()
		}
	}
	if f.panics {
		panic("remote exploded")
	}
	if f.err != nil {
		return model.HintSet{}, "", f.err
	}
	source := f.source
	if source == "" {
		source = model.SourceAI
	}
	return f.hints, source, nil
}

type fakeConnectivity struct {
	online bool
	calls  atomic.Int32
}

func (f *fakeConnectivity) IsOnline(context.Context) bool {
	f.calls.Add(1)
	return f.online
}

type panicConnectivity struct{}

func (panicConnectivity) IsOnline(context.Context) bool { panic("probe exploded") }

type panicGenerator struct{}

func (panicGenerator) Generate(string, string, model.Language) model.HintSet { panic("generator exploded") }

type fixture struct {
	service *HintService
	remote  *fakeRemote
	network *fakeConnectivity
	cache   *cachestore.Store
}

func newFixture(t *testing.T, online bool, remote *fakeRemote, cfg Config, opts ...Option) *fixture {
	t.Helper()

	catalog, err := content.LoadDefault()
	if err != nil {
		t.Fatalf("load content failed: %v", err)
	}
	network := &fakeConnectivity{online: online}
	cache := cachestore.New(kvstore.NewMemoryStore(), testhelper.DiscardLogger())

	svc := New(cfg, static.NewGenerator(catalog), remote, network, cache, testhelper.DiscardLogger(), opts...)
	t.Cleanup(svc.Wait)

	return &fixture{service: svc, remote: remote, network: network, cache: cache}
}

func TestGetHints_NonAIModeSkipsNetwork(t *testing.T) {
	for _, online := range []bool{true, false} {
		f := newFixture(t, online, &fakeRemote{hints: remoteHints}, Config{})

		hints, source := f.service.GetHintsDetailed(context.Background(), "pizza", "food", false, model.LanguageEnglish)
		if source != model.SourceStatic {
			t.Errorf("expected static source, got %s", source)
		}
		if hints[3] != "p _ z _ a" {
			t.Errorf("unexpected static hints: %q", hints)
		}
		if f.network.calls.Load() != 0 || f.remote.calls.Load() != 0 {
			t.Errorf("non-AI mode must not touch prober/remote, prober=%d remote=%d",
				f.network.calls.Load(), f.remote.calls.Load())
		}
	}
}

func TestGetHints_OnlinePrefersFreshRemote(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true, &fakeRemote{hints: remoteHints}, Config{})
	f.cache.Put(ctx, "pizza", "food", cachedHints, model.LanguageEnglish)

	hints, source := f.service.GetHintsDetailed(ctx, "pizza", "food", true, model.LanguageEnglish)
	if hints != remoteHints || source != model.SourceAI {
		t.Fatalf("expected fresh remote hints, got %q source=%s", hints, source)
	}

	f.service.Wait()
	got, ok := f.cache.Get(ctx, "pizza", "food", model.LanguageEnglish)
	if !ok || got != remoteHints {
		t.Fatalf("expected cache overwritten with remote hints, got %q ok=%v", got, ok)
	}
}

func TestGetHints_OfflinePrefersCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false, &fakeRemote{hints: remoteHints}, Config{})
	f.cache.Put(ctx, "pizza", "food", cachedHints, model.LanguageEnglish)

	hints, source := f.service.GetHintsDetailed(ctx, "pizza", "food", true, model.LanguageEnglish)
	if hints != cachedHints || source != model.SourceCache {
		t.Fatalf("expected cached hints, got %q source=%s", hints, source)
	}
	if f.remote.calls.Load() != 0 {
		t.Fatal("offline path must not call the remote client")
	}
}

func TestGetHints_OfflineWithoutCacheIsStatic(t *testing.T) {
	f := newFixture(t, false, &fakeRemote{hints: remoteHints}, Config{})

	hints, source := f.service.GetHintsDetailed(context.Background(), "pizza", "food", true, model.LanguageEnglish)
	if source != model.SourceStatic {
		t.Fatalf("expected static source, got %s", source)
	}
	for i, hint := range hints {
		if strings.TrimSpace(hint) == "" {
			t.Fatalf("hint %d is empty", i)
		}
	}
	if !strings.Contains(hints[3], "p") || !strings.Contains(hints[3], "a") {
		t.Errorf("pattern must contain first and last character: %q", hints[3])
	}
}

func TestGetHints_RemoteErrorFallsBackToCacheThenStatic(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit", func(t *testing.T) {
		f := newFixture(t, true, &fakeRemote{err: errors.New("transport down")}, Config{})
		f.cache.Put(ctx, "pizza", "food", cachedHints, model.LanguageEnglish)

		hints, source := f.service.GetHintsDetailed(ctx, "pizza", "food", true, model.LanguageEnglish)
		if hints != cachedHints || source != model.SourceCache {
			t.Fatalf("expected cached hints, got %q source=%s", hints, source)
		}
	})

	t.Run("panic with cache miss", func(t *testing.T) {
		f := newFixture(t, true, &fakeRemote{panics: true}, Config{})

		hints, source := f.service.GetHintsDetailed(ctx, "pizza", "food", true, model.LanguageEnglish)
		if source != model.SourceStatic || hints[3] != "p _ z _ a" {
			t.Fatalf("expected static hints, got %q source=%s", hints, source)
		}
	})

	t.Run("incomplete remote hints", func(t *testing.T) {
		f := newFixture(t, true, &fakeRemote{hints: model.HintSet{"a", "", "c", "d"}}, Config{})

		_, source := f.service.GetHintsDetailed(ctx, "pizza", "food", true, model.LanguageEnglish)
		if source != model.SourceStatic {
			t.Fatalf("expected static source, got %s", source)
		}
	})
}

func TestGetHints_RemoteFallbackIsNotCached(t *testing.T) {
	ctx := context.Background()
	fallback := model.HintSet{"fb-1", "fb-2", "fb-3", "P _ Z _ A"}
	f := newFixture(t, true, &fakeRemote{hints: fallback, source: model.SourceRemoteFallback}, Config{})

	hints, source := f.service.GetHintsDetailed(ctx, "pizza", "food", true, model.LanguageEnglish)
	if hints != fallback || source != model.SourceRemoteFallback {
		t.Fatalf("expected remote fallback hints, got %q source=%s", hints, source)
	}

	f.service.Wait()
	if _, ok := f.cache.Get(ctx, "pizza", "food", model.LanguageEnglish); ok {
		t.Fatal("remote fallback hints must not be cached")
	}
}

func TestGetHints_PizzaOnlineThenOffline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true, &fakeRemote{hints: remoteHints}, Config{})

	if got := f.service.GetHints(ctx, "pizza", "food", true, model.LanguageEnglish); got != remoteHints {
		t.Fatalf("expected remote hints, got %q", got)
	}
	f.service.Wait()

	f.network.online = false
	hints, source := f.service.GetHintsDetailed(ctx, "pizza", "food", true, model.LanguageEnglish)
	if hints != remoteHints || source != model.SourceCache {
		t.Fatalf("expected cached remote hints offline, got %q source=%s", hints, source)
	}
	if f.remote.calls.Load() != 1 {
		t.Fatalf("expected exactly one remote call, got %d", f.remote.calls.Load())
	}
}

func TestGetHints_PanickingCollaborators(t *testing.T) {
	svc := New(Config{}, panicGenerator{}, &fakeRemote{hints: remoteHints}, panicConnectivity{}, nil, testhelper.DiscardLogger())

	hints, source := svc.GetHintsDetailed(context.Background(), "pizza", "food", true, model.LanguageEnglish)
	if source != model.SourceStatic {
		t.Fatalf("expected static source, got %s", source)
	}
	if hints != (model.HintSet{"_ _ _ _ _", "5", "p", "p _ _ _ a"}) {
		t.Fatalf("unexpected last resort hints: %q", hints)
	}
}

func TestGetHints_EmptyWordIsStillPlayable(t *testing.T) {
	svc := New(Config{}, nil, nil, nil, nil, testhelper.DiscardLogger())

	hints := svc.GetHints(context.Background(), "", "food", true, model.LanguageEnglish)
	if !hints.IsComplete() {
		t.Fatalf("expected complete hints, got %q", hints)
	}
}

func TestGetHints_DedupeInFlight(t *testing.T) {
	remote := &fakeRemote{hints: remoteHints, release: make(chan struct{})}
	f := newFixture(t, true, remote, Config{DedupeInFlight: true})

	const callers = 5
	var wg sync.WaitGroup
	results := make([]model.HintSet, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = f.service.GetHints(context.Background(), "Pizza", "food", true, model.LanguageEnglish)
		}()
	}

	deadline := time.Now().Add(2 * time.Second)
	for remote.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	// 나머지 호출자가 singleflight 에 합류할 시간을 준다.
	time.Sleep(50 * time.Millisecond)
	close(remote.release)
	wg.Wait()

	if got := remote.calls.Load(); got != 1 {
		t.Errorf("expected a single remote call, got %d", got)
	}
	for i, hints := range results {
		if hints != remoteHints {
			t.Errorf("caller %d got %q", i, hints)
		}
	}
}

func TestGetHints_CallerCanceledIsStillTotal(t *testing.T) {
	remote := &fakeRemote{hints: remoteHints, release: make(chan struct{})}
	f := newFixture(t, true, remote, Config{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	hints := f.service.GetHints(ctx, "pizza", "food", true, model.LanguageEnglish)
	if !hints.IsComplete() {
		t.Fatalf("expected complete hints, got %q", hints)
	}
}

func TestPrefetchHints(t *testing.T) {
	f := newFixture(t, false, &fakeRemote{hints: remoteHints}, Config{PrefetchConcurrency: 2})

	words := []string{"pizza", "banana", " pizza ", "", "elephant", "banana"}
	results := f.service.PrefetchHints(context.Background(), words, "food", true, model.LanguageEnglish)

	if len(results) != 3 {
		t.Fatalf("expected 3 distinct words, got %d: %v", len(results), results)
	}
	for _, word := range []string{"pizza", "banana", "elephant"} {
		hints, ok := results[word]
		if !ok {
			t.Fatalf("missing hints for %q", word)
		}
		first, _ := textutil.First(word)
		if !strings.HasPrefix(hints[3], first) {
			t.Errorf("unexpected pattern for %q: %q", word, hints[3])
		}
	}
}

func TestMetrics_CountsBySource(t *testing.T) {
	reg := prometheus.NewRegistry()
	f := newFixture(t, false, &fakeRemote{hints: remoteHints}, Config{}, WithMetrics(NewMetrics(reg)))

	f.service.GetHints(context.Background(), "pizza", "food", false, model.LanguageEnglish)
	f.service.GetHints(context.Background(), "pizza", "food", true, model.LanguageEnglish)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	var total float64
	for _, family := range families {
		if family.GetName() != "action_reaction_hint_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			total += metric.GetCounter().GetValue()
			for _, label := range metric.GetLabel() {
				if label.GetName() == "source" && label.GetValue() != string(model.SourceStatic) {
					t.Errorf("unexpected source label: %s", label.GetValue())
				}
			}
		}
	}
	if total != 2 {
		t.Errorf("expected 2 counted requests, got %v", total)
	}
}
