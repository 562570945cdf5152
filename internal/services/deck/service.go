package deck

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/amandanordqvist/datingapp/internal/domain/model"
	"github.com/amandanordqvist/datingapp/internal/domain/rules"
	"github.com/amandanordqvist/datingapp/internal/infra/clock"
)

var ErrNoSession = errors.New("deck session not open")

// ProfileSource feeds cards into the deck, one page at a time.
type ProfileSource interface {
	Page(ctx context.Context, offset, limit int) ([]model.Profile, error)
}

// DecisionSink persists committed swipes. It is optional; recording
// failures never block the deck.
type DecisionSink interface {
	Record(ctx context.Context, userID int64, decision model.SwipeDecision) error
}

type Config struct {
	ViewportWidth  float64
	CommitDuration time.Duration
	PageSize       int
}

type Dependencies struct {
	Source    ProfileSource
	Decisions DecisionSink
	Scheduler clock.Scheduler
	Logger    *zap.Logger
}

// Service owns one deck session per user. The machine inside each session
// is pure; the service adds locking, paging and the animation clock. Every
// scheduled callback carries the generation it was created under, so a
// reset or close invalidates callbacks that are already in flight.
type Service struct {
	mu       sync.Mutex
	sessions map[int64]*session

	source    ProfileSource
	decisions DecisionSink
	scheduler clock.Scheduler
	logger    *zap.Logger
	cfg       Config
	now       func() time.Time
}

type session struct {
	machine    *Machine
	gen        uint64
	offset     int
	cancelAnim func()
}

func NewService(deps Dependencies, cfg Config) *Service {
	if cfg.ViewportWidth <= 0 {
		cfg.ViewportWidth = rules.DefaultViewportWidth
	}
	if cfg.CommitDuration <= 0 {
		cfg.CommitDuration = rules.SwipeOutDuration
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	scheduler := deps.Scheduler
	if scheduler == nil {
		scheduler = clock.System{}
	}

	return &Service{
		sessions:  make(map[int64]*session),
		source:    deps.Source,
		decisions: deps.Decisions,
		scheduler: scheduler,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Open starts a session for the user, loading the first page of profiles.
// Opening an already open deck returns its current state unchanged.
func (s *Service) Open(ctx context.Context, userID int64) (Snapshot, error) {
	s.mu.Lock()
	if sess, ok := s.sessions[userID]; ok {
		snap := sess.machine.Snapshot()
		s.mu.Unlock()
		return snap, nil
	}
	s.mu.Unlock()

	profiles, err := s.source.Page(ctx, 0, s.cfg.PageSize)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load deck profiles: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[userID]; ok {
		return sess.machine.Snapshot(), nil
	}

	sess := &session{
		machine: NewMachine(profiles, s.cfg.ViewportWidth),
		offset:  len(profiles),
	}
	s.sessions[userID] = sess

	s.logger.Info("deck opened",
		zap.Int64("user_id", userID),
		zap.Int("profiles", len(profiles)),
	)
	return sess.machine.Snapshot(), nil
}

func (s *Service) Drag(_ context.Context, userID int64, dx, dy float64) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return Snapshot{}, ErrNoSession
	}
	if err := sess.machine.Drag(dx, dy); err != nil {
		return Snapshot{}, err
	}
	return sess.machine.Snapshot(), nil
}

// Release ends the gesture. Both outcomes start an animation; the service
// schedules its completion and returns the in-flight state immediately.
func (s *Service) Release(ctx context.Context, userID int64) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return Snapshot{}, ErrNoSession
	}

	outcome, err := sess.machine.Release()
	if err != nil {
		return Snapshot{}, err
	}

	if outcome.Committed {
		s.recordDecision(ctx, userID, outcome)
	}
	s.scheduleFinish(userID, sess)

	return sess.machine.Snapshot(), nil
}

func (s *Service) SuperLike(ctx context.Context, userID int64) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return Snapshot{}, ErrNoSession
	}

	outcome, err := sess.machine.SuperLike()
	if err != nil {
		return Snapshot{}, err
	}

	s.recordDecision(ctx, userID, outcome)
	s.scheduleFinish(userID, sess)

	return sess.machine.Snapshot(), nil
}

func (s *Service) TapImage(_ context.Context, userID int64, x float64) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return Snapshot{}, ErrNoSession
	}
	if _, err := sess.machine.TapImage(x); err != nil {
		return Snapshot{}, err
	}
	return sess.machine.Snapshot(), nil
}

// Reset reloads the deck from the top of the catalog. Pending animation
// callbacks from before the reset are invalidated.
func (s *Service) Reset(ctx context.Context, userID int64) (Snapshot, error) {
	profiles, err := s.source.Page(ctx, 0, s.cfg.PageSize)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reload deck profiles: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return Snapshot{}, ErrNoSession
	}

	sess.gen++
	if sess.cancelAnim != nil {
		sess.cancelAnim()
		sess.cancelAnim = nil
	}
	sess.machine.Reset(profiles)
	sess.offset = len(profiles)

	return sess.machine.Snapshot(), nil
}

func (s *Service) Close(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return nil
	}
	sess.gen++
	if sess.cancelAnim != nil {
		sess.cancelAnim()
	}
	delete(s.sessions, userID)
	return nil
}

func (s *Service) Snapshot(_ context.Context, userID int64) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return Snapshot{}, ErrNoSession
	}
	return sess.machine.Snapshot(), nil
}

// recordDecision is fire-and-forget: the swipe already committed in the
// session, a failed write only loses analytics.
func (s *Service) recordDecision(ctx context.Context, userID int64, outcome ReleaseOutcome) {
	if s.decisions == nil {
		return
	}
	decision := SwipeDecisionAt(outcome, s.now().UTC())
	if err := s.decisions.Record(ctx, userID, decision); err != nil {
		s.logger.Warn("record swipe decision failed",
			zap.Int64("user_id", userID),
			zap.String("profile_id", outcome.ProfileID),
			zap.Error(err),
		)
	}
}

// scheduleFinish completes the running animation after the commit duration.
// The callback checks the generation so a reset or close in the meantime
// makes it a no-op. Caller must hold s.mu.
func (s *Service) scheduleFinish(userID int64, sess *session) {
	gen := sess.gen
	if sess.cancelAnim != nil {
		sess.cancelAnim()
	}
	sess.cancelAnim = s.scheduler.After(s.cfg.CommitDuration, func() {
		s.finishAnimation(userID, gen)
	})
}

func (s *Service) finishAnimation(userID int64, gen uint64) {
	s.mu.Lock()

	sess, ok := s.sessions[userID]
	if !ok || sess.gen != gen {
		s.mu.Unlock()
		return
	}
	sess.cancelAnim = nil

	if err := sess.machine.FinishAnimation(); err != nil {
		s.mu.Unlock()
		return
	}

	needRefill := sess.machine.Phase() == PhaseExhausted
	offset := sess.offset
	s.mu.Unlock()

	if !needRefill {
		return
	}

	// Fetch the next page outside the lock; the animation callback runs on
	// its own goroutine with no request context.
	profiles, err := s.source.Page(context.Background(), offset, s.cfg.PageSize)
	if err != nil {
		s.logger.Warn("deck refill failed", zap.Int64("user_id", userID), zap.Error(err))
		return
	}
	if len(profiles) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok = s.sessions[userID]
	if !ok || sess.gen != gen {
		return
	}
	sess.machine.Refill(profiles)
	sess.offset += len(profiles)
}
