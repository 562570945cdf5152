package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/amandanordqvist/datingapp/internal/domain/model"
	pgrepo "github.com/amandanordqvist/datingapp/internal/repo/postgres"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrValidation      = errors.New("validation error")
)

// meProfileID is the catalog entry that backs the logged-in user's own
// profile screen.
const meProfileID = "4"

type Store interface {
	Page(ctx context.Context, offset, limit int) ([]model.Profile, error)
	Get(ctx context.Context, id string) (model.Profile, error)
	Upsert(ctx context.Context, p model.Profile) error
}

type Service struct {
	store  Store
	logger *zap.Logger
}

type Dependencies struct {
	Store  Store
	Logger *zap.Logger
}

func NewService(deps Dependencies) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  deps.Store,
		logger: logger,
	}
}

func (s *Service) Page(ctx context.Context, offset, limit int) ([]model.Profile, error) {
	if offset < 0 || limit < 0 {
		return nil, ErrValidation
	}
	profiles, err := s.store.Page(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("page profiles: %w", err)
	}
	return profiles, nil
}

func (s *Service) Get(ctx context.Context, id string) (model.Profile, error) {
	if strings.TrimSpace(id) == "" {
		return model.Profile{}, ErrValidation
	}
	profile, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) || errors.Is(err, pgrepo.ErrProfileNotFound) {
			return model.Profile{}, ErrProfileNotFound
		}
		return model.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

func (s *Service) Me(ctx context.Context) (model.Profile, error) {
	return s.Get(ctx, meProfileID)
}

func (s *Service) UpdateMe(ctx context.Context, p model.Profile) (model.Profile, error) {
	p.ID = meProfileID
	if strings.TrimSpace(p.Name) == "" {
		return model.Profile{}, ErrValidation
	}
	if p.Age < 18 {
		return model.Profile{}, ErrValidation
	}

	if err := s.store.Upsert(ctx, p); err != nil {
		return model.Profile{}, fmt.Errorf("update own profile: %w", err)
	}

	s.logger.Info("own profile updated", zap.String("profile_id", p.ID))
	return p, nil
}
