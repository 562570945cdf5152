package prefs_test

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/amandanordqvist/datingapp/internal/domain/enums"
	redrepo "github.com/amandanordqvist/datingapp/internal/repo/redis"
	prefsvc "github.com/amandanordqvist/datingapp/internal/services/prefs"
)

func TestThemeDefaultsToSystem(t *testing.T) {
	svc, _, cleanup := newPrefsForTest(t)
	defer cleanup()

	mode, err := svc.Theme(context.Background())
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	if mode != enums.ThemeSystem {
		t.Fatalf("default theme = %s, want system", mode)
	}
}

func TestSetThemeRoundTrip(t *testing.T) {
	svc, mini, cleanup := newPrefsForTest(t)
	defer cleanup()
	ctx := context.Background()

	if err := svc.SetTheme(ctx, enums.ThemeDark); err != nil {
		t.Fatalf("set theme: %v", err)
	}

	stored, err := mini.Get("@theme_mode")
	if err != nil {
		t.Fatalf("@theme_mode key not written: %v", err)
	}
	if stored != "dark" {
		t.Fatalf("stored theme = %q, want dark", stored)
	}

	mode, err := svc.Theme(ctx)
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	if mode != enums.ThemeDark {
		t.Fatalf("theme = %s, want dark", mode)
	}
}

func TestSetThemeRejectsUnknownMode(t *testing.T) {
	svc, _, cleanup := newPrefsForTest(t)
	defer cleanup()

	if err := svc.SetTheme(context.Background(), enums.ThemeMode("sepia")); !errors.Is(err, prefsvc.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func newPrefsForTest(t *testing.T) (*prefsvc.Service, *miniredis.Miniredis, func()) {
	t.Helper()

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	svc := prefsvc.NewService(redrepo.NewPrefRepo(client), nil)

	return svc, mini, func() {
		_ = client.Close()
		mini.Close()
	}
}
