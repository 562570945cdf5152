package moments

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/amandanordqvist/datingapp/internal/domain/model"
	"github.com/amandanordqvist/datingapp/internal/domain/rules"
	"github.com/amandanordqvist/datingapp/internal/infra/clock"
)

var ErrViewerNotOpen = errors.New("story viewer not open")

type ViewerSnapshot struct {
	Open   bool
	Index  int
	Total  int
	Moment model.Moment
}

type ViewerDependencies struct {
	Moments   *Service
	Scheduler clock.Scheduler
	Logger    *zap.Logger
}

// ViewerSessions runs the fullscreen story experience, one session per
// user. Each story shows for a fixed duration and then auto-advances;
// advancing past the last story closes the viewer. Timer callbacks carry a
// generation so manual navigation or close invalidates the one in flight.
//
// The set of stories is snapshotted at open; moments created or expired
// while viewing do not reshuffle a running session.
type ViewerSessions struct {
	mu       sync.Mutex
	sessions map[int64]*viewerSession

	moments   *Service
	scheduler clock.Scheduler
	duration  time.Duration
	logger    *zap.Logger
}

type viewerSession struct {
	stories []model.Moment
	index   int
	gen     uint64
	cancel  func()
}

func NewViewerSessions(deps ViewerDependencies, storyDuration time.Duration) *ViewerSessions {
	if storyDuration <= 0 {
		storyDuration = rules.StoryDuration
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	scheduler := deps.Scheduler
	if scheduler == nil {
		scheduler = clock.System{}
	}

	return &ViewerSessions{
		sessions:  make(map[int64]*viewerSession),
		moments:   deps.Moments,
		scheduler: scheduler,
		duration:  storyDuration,
		logger:    logger,
	}
}

// Open starts the viewer at the given moment, or at the newest one when no
// id is given. Reopening replaces the previous session.
func (v *ViewerSessions) Open(ctx context.Context, userID int64, startMomentID string) (ViewerSnapshot, error) {
	stories, err := v.moments.List(ctx)
	if err != nil {
		return ViewerSnapshot{}, err
	}
	if len(stories) == 0 {
		return ViewerSnapshot{}, ErrMomentNotFound
	}

	start := 0
	if startMomentID != "" {
		start = -1
		for i, m := range stories {
			if m.ID == startMomentID {
				start = i
				break
			}
		}
		if start < 0 {
			return ViewerSnapshot{}, ErrMomentNotFound
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if prev, ok := v.sessions[userID]; ok && prev.cancel != nil {
		prev.cancel()
	}

	sess := &viewerSession{stories: stories, index: start}
	if prev, ok := v.sessions[userID]; ok {
		sess.gen = prev.gen + 1
	}
	v.sessions[userID] = sess
	v.armTimer(userID, sess)

	return v.snapshot(sess), nil
}

// Next advances manually. Past the last story the viewer closes.
func (v *ViewerSessions) Next(_ context.Context, userID int64) (ViewerSnapshot, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	sess, ok := v.sessions[userID]
	if !ok {
		return ViewerSnapshot{}, ErrViewerNotOpen
	}
	return v.advanceLocked(userID, sess), nil
}

// Prev steps back one story. At the first story it closes the viewer, the
// same way advancing past the last one does.
func (v *ViewerSessions) Prev(_ context.Context, userID int64) (ViewerSnapshot, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	sess, ok := v.sessions[userID]
	if !ok {
		return ViewerSnapshot{}, ErrViewerNotOpen
	}

	if sess.index == 0 {
		v.closeLocked(userID)
		return ViewerSnapshot{Open: false}, nil
	}
	sess.index--
	sess.gen++
	v.armTimer(userID, sess)
	return v.snapshot(sess), nil
}

func (v *ViewerSessions) Close(_ context.Context, userID int64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closeLocked(userID)
	return nil
}

// Snapshot reports the current viewer state without touching the timer.
func (v *ViewerSessions) Snapshot(_ context.Context, userID int64) (ViewerSnapshot, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	sess, ok := v.sessions[userID]
	if !ok {
		return ViewerSnapshot{Open: false}, nil
	}
	return v.snapshot(sess), nil
}

func (v *ViewerSessions) advanceLocked(userID int64, sess *viewerSession) ViewerSnapshot {
	sess.gen++
	if sess.index+1 >= len(sess.stories) {
		v.closeLocked(userID)
		return ViewerSnapshot{Open: false}
	}
	sess.index++
	v.armTimer(userID, sess)
	return v.snapshot(sess)
}

func (v *ViewerSessions) closeLocked(userID int64) {
	sess, ok := v.sessions[userID]
	if !ok {
		return
	}
	sess.gen++
	if sess.cancel != nil {
		sess.cancel()
	}
	delete(v.sessions, userID)
}

// armTimer schedules the auto-advance for the story on screen. Caller must
// hold v.mu.
func (v *ViewerSessions) armTimer(userID int64, sess *viewerSession) {
	if sess.cancel != nil {
		sess.cancel()
	}
	gen := sess.gen
	sess.cancel = v.scheduler.After(v.duration, func() {
		v.autoAdvance(userID, gen)
	})
}

func (v *ViewerSessions) autoAdvance(userID int64, gen uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	sess, ok := v.sessions[userID]
	if !ok || sess.gen != gen {
		return
	}
	v.advanceLocked(userID, sess)
}

func (v *ViewerSessions) snapshot(sess *viewerSession) ViewerSnapshot {
	return ViewerSnapshot{
		Open:   true,
		Index:  sess.index,
		Total:  len(sess.stories),
		Moment: sess.stories[sess.index],
	}
}
