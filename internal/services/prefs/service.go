package prefs

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/amandanordqvist/datingapp/internal/domain/enums"
)

var ErrValidation = errors.New("validation error")

type Store interface {
	Theme(ctx context.Context) (enums.ThemeMode, bool, error)
	SaveTheme(ctx context.Context, mode enums.ThemeMode) error
}

type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Theme returns the stored preference, falling back to following the
// device setting when nothing was saved yet.
func (s *Service) Theme(ctx context.Context) (enums.ThemeMode, error) {
	mode, found, err := s.store.Theme(ctx)
	if err != nil {
		return "", fmt.Errorf("load theme: %w", err)
	}
	if !found {
		return enums.ThemeSystem, nil
	}
	return mode, nil
}

func (s *Service) SetTheme(ctx context.Context, mode enums.ThemeMode) error {
	if !mode.Valid() {
		return ErrValidation
	}
	if err := s.store.SaveTheme(ctx, mode); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	s.logger.Info("theme preference saved", zap.String("mode", string(mode)))
	return nil
}
