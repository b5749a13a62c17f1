package cache

import (
	"context"
	"errors"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/trimworks/flashing/pkg/config"
	"github.com/trimworks/flashing/pkg/core/geom"
	"github.com/trimworks/flashing/pkg/core/profile"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

// testCache exercises the Cache contract against any backend.
func testCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "diagram:missing"); err != nil || hit {
		t.Fatalf("Get(missing) = %v, %v", hit, err)
	}
	if err := c.Set(ctx, "diagram:a", []byte("<svg/>"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "diagram:a")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, "diagram:a"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "diagram:a"); hit {
		t.Error("entry still present after Delete")
	}
	if err := c.Delete(ctx, "diagram:a"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	testCache(t, c)
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set(ctx, "short", []byte("x"), time.Minute)
	c.Set(ctx, "forever", []byte("y"), 0)

	stats, err := c.Stats()
	if err != nil || stats.Entries != 2 || stats.Expired != 0 {
		t.Fatalf("Stats = %+v, %v", stats, err)
	}

	now = now.Add(time.Hour)
	if stats, _ := c.Stats(); stats.Expired != 1 {
		t.Errorf("Expired = %d, want 1", stats.Expired)
	}
	n, err := c.Prune()
	if err != nil || n != 1 {
		t.Errorf("Prune = %d, %v; want 1", n, err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should survive")
	}

	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if stats, _ := c.Stats(); stats.Entries != 0 {
		t.Errorf("Entries after Clear = %d", stats.Entries)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	c.Set(ctx, "k", []byte("v"), 0)
	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want miss", hit, err)
	}
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("FLASHING_TEST_REDIS_URL")
	if url == "" {
		t.Skip("FLASHING_TEST_REDIS_URL not set")
	}
	c, err := NewRedisCache(context.Background(), url)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	testCache(t, c)
}

func TestRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not-a-url"); err == nil {
		t.Error("expected error for invalid url")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestHashJSONNaN(t *testing.T) {
	p := profile.Path{Points: []geom.Point{{X: math.NaN(), Y: 0}}}
	if HashJSON(p) != HashJSON(p) {
		t.Error("HashJSON should be stable for paths with NaN")
	}
}

func testPath() profile.Path {
	return profile.Path{
		Points:   []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}},
		Segments: []profile.Segment{{Length: "100"}},
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	cfg := config.Default()
	base := DiagramKeyOpts{Format: "svg", Scale: 1, Config: cfg}

	k1 := k.DiagramKey(testPath(), base)
	if !strings.HasPrefix(k1, "diagram:") {
		t.Errorf("DiagramKey = %s", k1)
	}
	if k1 != k.DiagramKey(testPath(), base) {
		t.Error("DiagramKey should be deterministic")
	}

	png := base
	png.Format = "png"
	border := base
	border.ShowBorder = true
	preset := base
	preset.Config.GridSize = 25
	moved := testPath()
	moved.Points[1].X = 120

	for name, key := range map[string]string{
		"format": k.DiagramKey(testPath(), png),
		"border": k.DiagramKey(testPath(), border),
		"preset": k.DiagramKey(testPath(), preset),
		"path":   k.DiagramKey(moved, base),
	} {
		if key == k1 {
			t.Errorf("changing %s should change the key", name)
		}
	}

	set := profile.DiagramSet{Paths: []profile.Path{testPath()}}
	if k.SummaryKey(set, "json") == k.SummaryKey(set, "text") {
		t.Error("SummaryKey should include the format")
	}
}

func TestDiagramOptsFromSet(t *testing.T) {
	a, b := testPath(), testPath()
	b.PathIndex = 1
	set := profile.DiagramSet{
		Paths: []profile.Path{a, b},
		LabelOverrides: map[string]geom.Point{
			profile.FoldLabelKey(1, 0): {X: 5, Y: 5},
		},
	}

	optsA := DiagramOptsFromSet(set, 0, "svg", config.Default())
	optsB := DiagramOptsFromSet(set, 1, "svg", config.Default())
	if len(optsA.Overrides) != 0 {
		t.Errorf("path 0 picked up foreign overrides: %v", optsA.Overrides)
	}
	if len(optsB.Overrides) != 1 {
		t.Errorf("path 1 overrides = %v", optsB.Overrides)
	}
	if optsA.Scale != 1 {
		t.Errorf("Scale = %v, want effective scale 1", optsA.Scale)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "staging:")
	key := scoped.DiagramKey(testPath(), DiagramKeyOpts{Format: "svg"})
	if !strings.HasPrefix(key, "staging:diagram:") {
		t.Errorf("ScopedKeyer key should be prefixed: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("wrapped error should unwrap to ErrNetwork")
	}
	if IsRetryable(errors.New("boom")) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	retryDelay = time.Millisecond
	ctx := context.Background()

	calls := 0
	permanent := errors.New("permanent")
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return permanent
	})
	if err != permanent || calls != 1 {
		t.Errorf("non-retryable: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retryable: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	if !IsRetryable(err) || calls != 3 {
		t.Errorf("exhausted: err=%v calls=%d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
