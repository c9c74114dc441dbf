package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinemind/studio-api/internal/core/domain"
)

type recordingRepo struct {
	mu      sync.Mutex
	entries []domain.Activity
	err     error
}

func (r *recordingRepo) Insert(_ context.Context, a domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, a)
	return r.err
}

func (r *recordingRepo) snapshot() []domain.Activity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Activity(nil), r.entries...)
}

func TestDispatcher_FlushesOnClose(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(repo, Options{Workers: 3}, zerolog.Nop())
	d.Start(context.Background())

	for i := int64(1); i <= 20; i++ {
		d.Record(domain.Activity{Kind: domain.ActivityLogin, AccountID: i % 4})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close err: %v", err)
	}

	got := repo.snapshot()
	if len(got) != 20 {
		t.Fatalf("inserted %d entries, want 20", len(got))
	}
	for _, a := range got {
		if a.OccurredAt.IsZero() {
			t.Fatal("OccurredAt was not stamped")
		}
	}
}

func TestDispatcher_PreservesPerAccountOrder(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(repo, Options{Workers: 4}, zerolog.Nop())
	d.Start(context.Background())

	for i := 0; i < 10; i++ {
		d.Record(domain.Activity{
			Kind:      domain.ActivityFootageSearch,
			AccountID: 9,
			Details:   map[string]string{"seq": string(rune('a' + i))},
		})
	}
	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("Close err: %v", err)
	}

	got := repo.snapshot()
	for i, a := range got {
		if want := string(rune('a' + i)); a.Details["seq"] != want {
			t.Fatalf("entry %d seq = %q, want %q", i, a.Details["seq"], want)
		}
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(repo, Options{Workers: 1, Buffer: 2}, zerolog.Nop())

	// Not started: the buffer fills and the rest is dropped without blocking.
	for i := 0; i < 5; i++ {
		d.Record(domain.Activity{Kind: domain.ActivityVideoRender})
	}
	if got := d.Dropped(); got != 3 {
		t.Fatalf("Dropped = %d, want 3", got)
	}

	d.Start(context.Background())
	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("Close err: %v", err)
	}
	if n := len(repo.snapshot()); n != 2 {
		t.Fatalf("inserted %d entries, want 2", n)
	}
}

func TestDispatcher_RecordAfterCloseIsDropped(t *testing.T) {
	d := NewDispatcher(&recordingRepo{}, Options{Workers: 1}, zerolog.Nop())
	d.Start(context.Background())
	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("Close err: %v", err)
	}

	d.Record(domain.Activity{Kind: domain.ActivityLogin})
	if d.Dropped() != 1 {
		t.Fatalf("Dropped = %d, want 1", d.Dropped())
	}
	// A second Close is a no-op.
	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("second Close err: %v", err)
	}
}

func TestDispatcher_InsertErrorsDoNotStopWorker(t *testing.T) {
	repo := &recordingRepo{err: errors.New("mongo down")}
	d := NewDispatcher(repo, Options{Workers: 1}, zerolog.Nop())
	d.Start(context.Background())

	d.Record(domain.Activity{Kind: domain.ActivityLogin})
	d.Record(domain.Activity{Kind: domain.ActivityLogin})
	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("Close err: %v", err)
	}
	if n := len(repo.snapshot()); n != 2 {
		t.Fatalf("attempted %d inserts, want 2", n)
	}
}
