package pkgpebble

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testMetrics struct {
	read         int
	batchCommits int
	batchBytes   int
}

func (m *testMetrics) ObserveRead(d time.Duration, bytes int) { m.read += bytes }
func (m *testMetrics) ObserveBatchCommit(d time.Duration, bytes int) {
	m.batchCommits++
	m.batchBytes += bytes
}

func newTestDB(t *testing.T) (*DB, *testMetrics) {
	t.Helper()
	metrics := &testMetrics{}
	db, err := Open(Options{
		DataDir:       t.TempDir(),
		Fsync:         FsyncModeInterval,
		FsyncInterval: 2 * time.Millisecond,
		Metrics:       metrics,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, metrics
}

func TestOpenRequiresDataDir(t *testing.T) {
	if _, err := Open(Options{}); err == nil {
		t.Fatalf("expected error for empty data dir")
	}
}

func TestParseFsyncMode(t *testing.T) {
	cases := map[string]FsyncMode{
		"":         FsyncModeAlways,
		"always":   FsyncModeAlways,
		"Interval": FsyncModeInterval,
		"never":    FsyncModeNever,
	}
	for in, want := range cases {
		got, err := ParseFsyncMode(in)
		if err != nil {
			t.Fatalf("ParseFsyncMode(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseFsyncMode(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseFsyncMode("sometimes"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestBatchGetHas(t *testing.T) {
	db, metrics := newTestDB(t)

	b := db.NewBatch()
	if err := b.Set([]byte("k1"), []byte("v1"), nil); err != nil {
		t.Fatalf("batch set: %v", err)
	}
	if err := db.CommitBatch(context.Background(), b); err != nil {
		t.Fatalf("commit: %v", err)
	}
	_ = b.Close()

	got, err := db.Get([]byte("k1"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "v1" {
		t.Fatalf("got %q want v1", got)
	}

	ok, err := db.Has([]byte("k1"))
	if err != nil || !ok {
		t.Fatalf("has k1 = %v, %v; want true, nil", ok, err)
	}
	ok, err = db.Has([]byte("missing"))
	if err != nil || ok {
		t.Fatalf("has missing = %v, %v; want false, nil", ok, err)
	}
	if _, err := db.Get([]byte("missing")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing err = %v, want ErrNotFound", err)
	}

	if metrics.batchCommits != 1 || metrics.batchBytes == 0 {
		t.Fatalf("unexpected commit metrics: %+v", metrics)
	}
	if metrics.read == 0 {
		t.Fatalf("expected read metrics to record bytes")
	}
}

func TestCommitBatchHonoursContext(t *testing.T) {
	db, _ := newTestDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := db.NewBatch()
	defer b.Close()
	if err := b.Set([]byte("k"), []byte("v"), nil); err != nil {
		t.Fatalf("batch set: %v", err)
	}
	if err := db.CommitBatch(ctx, b); !errors.Is(err, context.Canceled) {
		t.Fatalf("commit err = %v, want context.Canceled", err)
	}
	if ok, _ := db.Has([]byte("k")); ok {
		t.Fatalf("expected key not to be written")
	}
}

func TestCountPrefix(t *testing.T) {
	db, _ := newTestDB(t)

	b := db.NewBatch()
	for _, k := range []string{"cust/a/1", "cust/a/2", "cust/b/1", "tn/1"} {
		if err := b.Set([]byte(k), nil, nil); err != nil {
			t.Fatalf("batch set: %v", err)
		}
	}
	if err := db.CommitBatch(context.Background(), b); err != nil {
		t.Fatalf("commit: %v", err)
	}
	_ = b.Close()

	n, err := db.CountPrefix([]byte("cust/a/"))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("count cust/a/ = %d, want 2", n)
	}

	n, err = db.CountPrefix([]byte("cust/z/"))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("count cust/z/ = %d, want 0", n)
	}
}

func TestPrefixUpperBound(t *testing.T) {
	if got := string(prefixUpperBound([]byte("ab"))); got != "ac" {
		t.Fatalf("upper bound of ab = %q, want ac", got)
	}
	if got := prefixUpperBound([]byte{0xff, 0xff}); got != nil {
		t.Fatalf("upper bound of 0xffff = %v, want nil", got)
	}
	if got := prefixUpperBound([]byte{'a', 0xff}); string(got) != "b" {
		t.Fatalf("upper bound of a\\xff = %q, want b", got)
	}
}
