package service

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/healthtab/internal/domain"
)

// memStore is an in-memory StateStore with injectable failures.
type memStore struct {
	mu      sync.Mutex
	saved   *domain.UserState
	loadErr error
	saveErr error
	saves   int
}

func (m *memStore) Load(context.Context) (*domain.UserState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.saved == nil {
		return domain.NewUserState(), nil
	}
	return m.saved.Clone(), nil
}

func (m *memStore) Save(_ context.Context, s *domain.UserState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.saved = s.Clone()
	return nil
}

func (m *memStore) snapshot() *domain.UserState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return nil
	}
	return m.saved.Clone()
}

// recordingMetrics counts calls per label.
type recordingMetrics struct {
	mu        sync.Mutex
	checkIns  map[string]int
	chats     map[string]int
	failures  map[string]int
	streak    int
	flushes   int
	flushErr  error
	durations int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		checkIns: map[string]int{},
		chats:    map[string]int{},
		failures: map[string]int{},
	}
}

func (r *recordingMetrics) IncCheckIns(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkIns[outcome]++
}

func (r *recordingMetrics) IncChatMessages(topic string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chats[topic]++
}

func (r *recordingMetrics) IncPersistFailures(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[op]++
}

func (r *recordingMetrics) ObservePersistDuration(time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.durations++
}

func (r *recordingMetrics) SetStreak(days int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.streak = days
}

func (r *recordingMetrics) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushes++
	return r.flushErr
}

// recordingObserver keeps every event it sees.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}
