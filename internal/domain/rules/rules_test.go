package rules

import (
	"testing"
	"time"
)

func TestCommitThresholdIsQuarterOfViewport(t *testing.T) {
	got := CommitThreshold(400)
	if got != 100 {
		t.Fatalf("unexpected threshold: got %v want %v", got, 100.0)
	}
}

func TestCommitThresholdFallsBackToDefaultWidth(t *testing.T) {
	got := CommitThreshold(0)
	want := DefaultViewportWidth * CommitThresholdRatio
	if got != want {
		t.Fatalf("unexpected threshold: got %v want %v", got, want)
	}
}

func TestRotationIsLinearInsideHalfWidth(t *testing.T) {
	got := Rotation(100, 400)
	if got != 5 {
		t.Fatalf("unexpected rotation: got %v want %v", got, 5.0)
	}

	got = Rotation(-100, 400)
	if got != -5 {
		t.Fatalf("unexpected rotation: got %v want %v", got, -5.0)
	}
}

func TestRotationClampsAtMaxDegrees(t *testing.T) {
	if got := Rotation(1000, 400); got != MaxRotationDegrees {
		t.Fatalf("unexpected rotation: got %v want %v", got, MaxRotationDegrees)
	}
	if got := Rotation(-1000, 400); got != -MaxRotationDegrees {
		t.Fatalf("unexpected rotation: got %v want %v", got, -MaxRotationDegrees)
	}
}

func TestExpiresAtAddsLifetime(t *testing.T) {
	created := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	got := ExpiresAt(created, MomentLifetime)
	want := created.Add(24 * time.Hour)
	if !got.Equal(want) {
		t.Fatalf("unexpected expiry: got %v want %v", got, want)
	}
}

func TestExpiredBoundary(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	if Expired(now.Add(time.Second), now) {
		t.Fatalf("moment expiring in the future reported expired")
	}
	if !Expired(now, now) {
		t.Fatalf("moment expiring exactly now should be expired")
	}
	if !Expired(now.Add(-time.Second), now) {
		t.Fatalf("moment expired in the past not reported expired")
	}
}
