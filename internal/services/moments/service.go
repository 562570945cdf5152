package moments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/amandanordqvist/datingapp/internal/domain/model"
	"github.com/amandanordqvist/datingapp/internal/domain/rules"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrMomentNotFound = errors.New("moment not found")
)

// CurrentUser is the author identity stamped onto every created moment.
var CurrentUser = struct {
	ID    string
	Name  string
	Image string
}{
	ID:    "current-user",
	Name:  "Alexander",
	Image: "https://images.unsplash.com/photo-1500648767791-00dcc994a43e",
}

type Store interface {
	Load(ctx context.Context) ([]model.Moment, bool, error)
	Save(ctx context.Context, moments []model.Moment) error
}

// ReplySink receives moment replies and turns them into conversation
// messages.
type ReplySink interface {
	DeliverReply(ctx context.Context, moment model.Moment, text string) error
}

type Config struct {
	Lifetime time.Duration
}

type Dependencies struct {
	Store   Store
	Replies ReplySink
	Logger  *zap.Logger
}

// Service owns the moments collection. All access funnels through one
// mutex; the collection is small and operations are short. Writes go
// through to the store: user-initiated ones surface failures, background
// ones log and keep the in-memory state.
type Service struct {
	mu      sync.Mutex
	loaded  bool
	moments []model.Moment

	store   Store
	replies ReplySink
	logger  *zap.Logger
	cfg     Config
	now     func() time.Time
	newID   func() string
}

func NewService(deps Dependencies, cfg Config) *Service {
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = rules.MomentLifetime
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		store:   deps.Store,
		replies: deps.Replies,
		logger:  logger,
		cfg:     cfg,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// List returns every moment that has not expired, newest first.
func (s *Service) List(ctx context.Context) ([]model.Moment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	now := s.now()
	active := make([]model.Moment, 0, len(s.moments))
	for _, m := range s.moments {
		if !m.Expired(now) {
			active = append(active, m)
		}
	}
	return active, nil
}

// Mine returns the current user's active moments.
func (s *Service) Mine(ctx context.Context) ([]model.Moment, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	mine := make([]model.Moment, 0, len(all))
	for _, m := range all {
		if m.UserID == CurrentUser.ID {
			mine = append(mine, m)
		}
	}
	return mine, nil
}

// Create posts a new moment. The write is user-initiated, so a store
// failure is surfaced and the in-memory collection is rolled back.
func (s *Service) Create(ctx context.Context, caption, image string) (model.Moment, error) {
	caption = strings.TrimSpace(caption)
	if image == "" {
		return model.Moment{}, ErrValidation
	}
	if len([]rune(caption)) > rules.CaptionMaxLength {
		return model.Moment{}, ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return model.Moment{}, err
	}

	now := s.now().UTC()
	moment := model.Moment{
		ID:        s.newID(),
		UserID:    CurrentUser.ID,
		UserName:  CurrentUser.Name,
		UserImage: CurrentUser.Image,
		Image:     image,
		Caption:   caption,
		CreatedAt: now,
		ExpiresAt: rules.ExpiresAt(now, s.cfg.Lifetime),
	}

	prev := s.moments
	s.moments = append([]model.Moment{moment}, s.moments...)

	if err := s.store.Save(ctx, s.moments); err != nil {
		s.moments = prev
		return model.Moment{}, fmt.Errorf("save moments: %w", err)
	}

	s.logger.Info("moment created", zap.String("moment_id", moment.ID))
	return moment, nil
}

// ToggleLike flips the user's like on a moment. Likes never go below
// zero. The toggled state is authoritative in memory; a failed store write
// is logged and retried implicitly on the next write.
func (s *Service) ToggleLike(ctx context.Context, momentID string) (model.Moment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return model.Moment{}, err
	}

	idx := s.findActive(momentID)
	if idx < 0 {
		return model.Moment{}, ErrMomentNotFound
	}

	m := s.moments[idx]
	if m.HasLiked {
		m.HasLiked = false
		if m.Likes > 0 {
			m.Likes--
		}
	} else {
		m.HasLiked = true
		m.Likes++
	}
	s.moments[idx] = m

	if err := s.store.Save(ctx, s.moments); err != nil {
		s.logger.Warn("persist like toggle failed", zap.String("moment_id", momentID), zap.Error(err))
	}

	return m, nil
}

// Reply sends a message to the moment's author. The moment itself does not
// change and the story timer keeps running.
func (s *Service) Reply(ctx context.Context, momentID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrValidation
	}

	s.mu.Lock()
	idx := -1
	if err := s.ensureLoaded(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	idx = s.findActive(momentID)
	var moment model.Moment
	if idx >= 0 {
		moment = s.moments[idx]
	}
	s.mu.Unlock()

	if idx < 0 {
		return ErrMomentNotFound
	}
	if s.replies == nil {
		return nil
	}
	if err := s.replies.DeliverReply(ctx, moment, text); err != nil {
		return fmt.Errorf("deliver moment reply: %w", err)
	}
	return nil
}

// Get returns a single active moment.
func (s *Service) Get(ctx context.Context, momentID string) (model.Moment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return model.Moment{}, err
	}
	idx := s.findActive(momentID)
	if idx < 0 {
		return model.Moment{}, ErrMomentNotFound
	}
	return s.moments[idx], nil
}

// Sweep drops expired moments and reports how many were removed. It runs
// from the background job, so store failures only log.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return 0, err
	}

	now := s.now()
	kept := s.moments[:0:0]
	for _, m := range s.moments {
		if !m.Expired(now) {
			kept = append(kept, m)
		}
	}

	removed := len(s.moments) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	s.moments = kept

	if err := s.store.Save(ctx, s.moments); err != nil {
		s.logger.Warn("persist sweep failed", zap.Error(err))
	}
	return removed, nil
}

// findActive returns the index of a live moment, -1 otherwise. Expired
// entries count as gone even before the sweep drops them. Caller must hold
// s.mu.
func (s *Service) findActive(momentID string) int {
	now := s.now()
	for i, m := range s.moments {
		if m.ID == momentID && !m.Expired(now) {
			return i
		}
	}
	return -1
}

// ensureLoaded pulls the collection from the store on first use. A missing
// key seeds the demo moments and writes them back; a failed seed write
// keeps the seed in memory. Caller must hold s.mu.
func (s *Service) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	stored, found, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load moments: %w", err)
	}

	if found {
		now := s.now()
		active := make([]model.Moment, 0, len(stored))
		for _, m := range stored {
			if !m.Expired(now) {
				active = append(active, m)
			}
		}
		s.moments = active
		s.loaded = true
		return nil
	}

	s.moments = SeedMoments(s.now().UTC())
	s.loaded = true
	if err := s.store.Save(ctx, s.moments); err != nil {
		s.logger.Warn("persist seeded moments failed", zap.Error(err))
	}
	return nil
}

// SeedMoments is the demo feed shown on first launch, aged relative to now
// the same way the original data was.
func SeedMoments(now time.Time) []model.Moment {
	return []model.Moment{
		{
			ID:        "1",
			UserID:    "user1",
			UserName:  "Emma",
			UserImage: "https://images.unsplash.com/photo-1494790108377-be9c29b29330",
			Image:     "https://images.unsplash.com/photo-1534528741775-53994a69daeb",
			Caption:   "Beautiful sunset at the beach today!",
			CreatedAt: now.Add(-2 * time.Hour),
			ExpiresAt: now.Add(22 * time.Hour),
			Likes:     12,
		},
		{
			ID:        "2",
			UserID:    "user2",
			UserName:  "Oliver",
			UserImage: "https://images.unsplash.com/photo-1500648767791-00dcc994a43e",
			Image:     "https://images.unsplash.com/photo-1502082553048-f009c37129b9",
			Caption:   "Just finished a photoshoot in the city",
			CreatedAt: now.Add(-5 * time.Hour),
			ExpiresAt: now.Add(19 * time.Hour),
			Likes:     24,
			HasLiked:  true,
		},
		{
			ID:        "3",
			UserID:    "user3",
			UserName:  "Sophie",
			UserImage: "https://images.unsplash.com/photo-1534528741775-53994a69daeb",
			Image:     "https://images.unsplash.com/photo-1523264939339-c89f9dadde2e",
			Caption:   "Morning yoga session",
			CreatedAt: now.Add(-8 * time.Hour),
			ExpiresAt: now.Add(16 * time.Hour),
			Likes:     18,
		},
	}
}
