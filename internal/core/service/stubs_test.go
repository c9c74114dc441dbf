package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/cinemind/studio-api/internal/core/domain"
	"github.com/cinemind/studio-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Account repository
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	mu        sync.Mutex
	byEmail   map[string]*domain.Account
	nextID    int64
	findErr   error
	createErr error
	// raceOnCreate simulates a concurrent registration winning the insert.
	raceOnCreate bool
	creates      int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byEmail: make(map[string]*domain.Account), nextID: 1}
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	a, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createErr != nil {
		return nil, r.createErr
	}
	if r.raceOnCreate {
		r.insertLocked(&domain.Account{Name: a.Name, Email: a.Email, Password: "winner", Role: domain.DefaultRole})
		return nil, domain.ErrAccountExists
	}
	if _, exists := r.byEmail[a.Email]; exists {
		return nil, domain.ErrAccountExists
	}
	stored := r.insertLocked(a)
	clone := *stored
	return &clone, nil
}

func (r *stubAccountRepo) insertLocked(a *domain.Account) *domain.Account {
	stored := *a
	stored.ID = r.nextID
	stored.CreatedAt = time.Now().UTC()
	r.nextID++
	r.byEmail[stored.Email] = &stored
	return &stored
}

func (r *stubAccountRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return 0, r.findErr
	}
	return int64(len(r.byEmail)), nil
}

// ---------------------------------------------------------------------------
// Analysis repository
// ---------------------------------------------------------------------------

type stubAnalysisRepo struct {
	mu        sync.Mutex
	records   []domain.AnalysisRecord
	createErr error
	listErr   error
	clock     time.Time
}

func newStubAnalysisRepo() *stubAnalysisRepo {
	return &stubAnalysisRepo{clock: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (r *stubAnalysisRepo) Create(_ context.Context, rec *domain.AnalysisRecord) (*domain.AnalysisRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	stored := *rec
	stored.ID = int64(len(r.records) + 1)
	r.clock = r.clock.Add(time.Second)
	stored.CreatedAt = r.clock
	r.records = append(r.records, stored)
	return &stored, nil
}

func (r *stubAnalysisRepo) FindByID(_ context.Context, id int64) (*domain.AnalysisRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID == id {
			clone := rec
			return &clone, nil
		}
	}
	return nil, domain.ErrAnalysisNotFound
}

func (r *stubAnalysisRepo) ListByUser(_ context.Context, userID int64) ([]domain.AnalysisRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.AnalysisRecord
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubAnalysisRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return 0, r.listErr
	}
	return int64(len(r.records)), nil
}

// ---------------------------------------------------------------------------
// Collaborators
// ---------------------------------------------------------------------------

type staticTokens struct{ token string }

func (s staticTokens) Issue(*domain.Account) (string, error) { return s.token, nil }

type plainPasswords struct{}

func (plainPasswords) Prepare(p string) (string, error) { return p, nil }

type recordingActivity struct {
	mu      sync.Mutex
	entries []domain.Activity
}

func (r *recordingActivity) Record(a domain.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, a)
}

func (r *recordingActivity) kinds() []domain.ActivityKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ActivityKind, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Kind
	}
	return out
}

type fixedAnalyzer struct {
	analysis domain.ScriptAnalysis
	err      error
	calls    int
}

func (a *fixedAnalyzer) Analyze(context.Context, *ports.ScriptUpload) (*domain.ScriptAnalysis, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	out := a.analysis
	return &out, nil
}

type stubUploads struct {
	saved []string
	err   error
}

func (u *stubUploads) Save(_ context.Context, up ports.ScriptUpload) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.saved = append(u.saved, up.FileName)
	return "key/" + up.FileName, nil
}

// stubIdempotency mimics the Redis store: "pending" keys are in flight,
// bound keys point at a record.
type stubIdempotency struct {
	keys       map[string]int64 // 0 = pending
	reserveErr error
	released   []string
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]int64)}
}

func (s *stubIdempotency) Reserve(_ context.Context, key string) (int64, bool, error) {
	if s.reserveErr != nil {
		return 0, false, s.reserveErr
	}
	id, seen := s.keys[key]
	if !seen {
		s.keys[key] = 0
		return 0, true, nil
	}
	if id == 0 {
		return 0, false, domain.ErrRequestInProgress
	}
	return id, false, nil
}

func (s *stubIdempotency) Complete(_ context.Context, key string, id int64) error {
	s.keys[key] = id
	return nil
}

func (s *stubIdempotency) Release(_ context.Context, key string) error {
	delete(s.keys, key)
	s.released = append(s.released, key)
	return nil
}

var errBoom = errors.New("boom")
