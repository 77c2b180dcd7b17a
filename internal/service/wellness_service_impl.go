package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/healthtab/internal/advisor"
	"github.com/alexanderramin/healthtab/internal/domain"
	"github.com/alexanderramin/healthtab/internal/metrics"
	"github.com/alexanderramin/healthtab/internal/store"
	"github.com/alexanderramin/healthtab/internal/streak"
)

// ErrNotLoaded marks a save skipped because the stored state could not be
// read at startup. Writing the session's state over it would drop the
// history that failed to load.
var ErrNotLoaded = errors.New("stored state was not loaded; session is not saved")

type wellnessService struct {
	mu       sync.Mutex
	store    store.StateStore
	state    *domain.UserState
	loadErr  error
	now      func() time.Time
	location *time.Location
	observer UseCaseObserver
	metrics  metrics.Recorder
}

// Option configures NewWellnessService.
type Option func(*wellnessService)

// WithClock replaces time.Now as the source of today's date.
func WithClock(now func() time.Time) Option {
	return func(s *wellnessService) { s.now = now }
}

// WithLocation sets the time zone that decides where a day begins.
func WithLocation(loc *time.Location) Option {
	return func(s *wellnessService) {
		if loc != nil {
			s.location = loc
		}
	}
}

func WithObserver(obs UseCaseObserver) Option {
	return func(s *wellnessService) {
		s.observer = useCaseObserverOrNoop([]UseCaseObserver{obs})
	}
}

func WithMetrics(m metrics.Recorder) Option {
	return func(s *wellnessService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewWellnessService loads the state from st. A load failure does not
// stop the service: it starts from an empty state, LoadError reports the
// cause, and nothing is saved for the rest of the session.
func NewWellnessService(ctx context.Context, st store.StateStore, opts ...Option) WellnessService {
	s := &wellnessService{
		store:    st,
		now:      time.Now,
		location: time.Local,
		observer: NoopUseCaseObserver{},
		metrics:  metrics.Noop{},
	}
	for _, opt := range opts {
		opt(s)
	}

	startedAt := time.Now().UTC()
	state, err := st.Load(ctx)
	fields := map[string]any{}
	if err != nil {
		s.loadErr = err
		state = domain.NewUserState()
		s.metrics.IncPersistFailures("load")
	} else {
		fields["logs"] = len(state.Logs)
		fields["chat_turns"] = len(state.ChatHistory)
		fields["streak"] = state.Streak
	}
	s.state = state
	s.metrics.SetStreak(state.Streak)

	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "load-state",
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
	return s
}

func (s *wellnessService) Today() domain.Date { return s.today() }

func (s *wellnessService) today() domain.Date {
	return domain.DateOf(s.now().In(s.location))
}

func (s *wellnessService) SubmitCheckIn(ctx context.Context, in domain.CheckIn) (result *CheckInResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"energy":  in.Energy,
		"mood":    in.Mood,
		"fatigue": in.Fatigue,
	}
	var warning string
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "submit-checkin",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
			Warning:   warning,
		})
	}()

	if err = in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	upd := streak.Update(s.state.LastLogDate, s.state.Streak, today)
	plan := advisor.GeneratePlan(in.Energy, in.Mood, in.Fatigue, in.Notes)
	reply := advisor.Respond(in.Notes)

	entry := domain.LogEntry{
		Date:    upd.LastLogDate,
		Energy:  in.Energy,
		Mood:    in.Mood,
		Fatigue: in.Fatigue,
		Notes:   in.Notes,
		Plan:    plan,
		AIReply: reply,
	}
	s.state.Logs = append(s.state.Logs, entry)
	s.state.Streak = upd.Streak
	last := upd.LastLogDate
	s.state.LastLogDate = &last
	if upd.Streak > s.state.BestStreak {
		s.state.BestStreak = upd.Streak
	}

	result = &CheckInResult{
		Entry:     entry,
		Plan:      plan,
		Reply:     reply,
		Streak:    upd.Streak,
		Outcome:   upd.Outcome,
		GapDays:   upd.GapDays,
		Milestone: upd.Outcome == streak.OutcomeExtended && streak.Milestone(upd.Streak),
	}
	if result.Milestone {
		result.Encouragement = streak.Encouragement(upd.Streak)
	}

	fields["date"] = entry.Date.String()
	fields["streak"] = upd.Streak
	fields["outcome"] = string(upd.Outcome)
	if upd.Outcome == streak.OutcomeClockSkew {
		// The entry carries the later stored date to keep the log ordered;
		// the day it was actually submitted only survives in this event.
		fields["today"] = today.String()
		fields["gap_days"] = upd.GapDays
		warning = "check-in dated before the last logged day; streak reset"
	}

	s.metrics.IncCheckIns(string(upd.Outcome))
	s.metrics.SetStreak(upd.Streak)
	err = s.persist(ctx, fields)
	return result, err
}

func (s *wellnessService) SubmitChatMessage(ctx context.Context, message string) (reply string, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "submit-chat",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	text := strings.TrimSpace(message)
	if text == "" {
		return "", &domain.ValidationError{Field: "message", Reason: "must not be empty"}
	}

	reply, topic := advisor.Classify(text)
	fields["topic"] = topic

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.ChatHistory = append(s.state.ChatHistory, domain.ChatTurn{User: text, AI: reply})
	s.metrics.IncChatMessages(topic)
	err = s.persist(ctx, fields)
	return reply, err
}

// persist saves the whole state. The in-memory state is kept either way;
// a failure comes back as a StorageError.
func (s *wellnessService) persist(ctx context.Context, fields map[string]any) error {
	var err error
	if s.loadErr != nil {
		err = &domain.StorageError{Op: "save", Err: ErrNotLoaded}
		fields["save_skipped"] = true
	} else {
		started := time.Now()
		err = s.store.Save(ctx, s.state)
		s.metrics.ObservePersistDuration(time.Since(started))
	}
	if err != nil {
		s.metrics.IncPersistFailures("save")
		if !errors.Is(err, domain.ErrStorage) {
			err = &domain.StorageError{Op: "save", Err: err}
		}
	}
	if flushErr := s.metrics.Flush(); flushErr != nil {
		fields["metrics_error"] = flushErr.Error()
	}
	if err != nil {
		return fmt.Errorf("persisting state: %w", err)
	}
	return nil
}

func (s *wellnessService) RecentLogs(n int) []domain.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Recent(n)
}

func (s *wellnessService) ChatHistory() []domain.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ChatTurn{}, s.state.ChatHistory...)
}

func (s *wellnessService) Streak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Streak
}

// BestStreak is the largest of the recorded best, the current streak and
// the longest run in the log, so documents written before the best was
// tracked still report a sensible value.
func (s *wellnessService) BestStreak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	best := max(s.state.BestStreak, s.state.Streak)
	if longest := streak.Longest(s.state.Logs); longest > best {
		best = longest
	}
	return best
}

// Summary averages the last n entries.
func (s *wellnessService) Summary(n int) advisor.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return advisor.Summarize(s.state.Recent(n))
}

func (s *wellnessService) LoadError() error {
	return s.loadErr
}
