package rules

import "time"

const (
	// CommitThresholdRatio is the fraction of the viewport width a drag must
	// cross before release commits a like or dislike.
	CommitThresholdRatio = 0.25

	// MaxRotationDegrees is reached when the card travels half the viewport
	// width; rotation is clamped beyond that.
	MaxRotationDegrees = 10.0

	DefaultViewportWidth = 375.0

	SwipeOutDuration = 250 * time.Millisecond

	MomentLifetime   = 24 * time.Hour
	StoryDuration    = 5 * time.Second
	SweepInterval    = 60 * time.Second
	CaptionMaxLength = 150

	// ImagePrevTapRatio splits a card tap: the left third steps back through
	// the profile's images, the rest steps forward.
	ImagePrevTapRatio = 1.0 / 3.0
)

func CommitThreshold(viewportWidth float64) float64 {
	if viewportWidth <= 0 {
		viewportWidth = DefaultViewportWidth
	}
	return viewportWidth * CommitThresholdRatio
}

// Rotation maps horizontal displacement to card rotation in degrees,
// linear up to half the viewport width and clamped after that.
func Rotation(dx, viewportWidth float64) float64 {
	if viewportWidth <= 0 {
		viewportWidth = DefaultViewportWidth
	}
	deg := dx / (viewportWidth / 2) * MaxRotationDegrees
	if deg > MaxRotationDegrees {
		return MaxRotationDegrees
	}
	if deg < -MaxRotationDegrees {
		return -MaxRotationDegrees
	}
	return deg
}

func ExpiresAt(createdAt time.Time, lifetime time.Duration) time.Time {
	if lifetime <= 0 {
		lifetime = MomentLifetime
	}
	return createdAt.Add(lifetime)
}

func Expired(expiresAt, now time.Time) bool {
	return !expiresAt.After(now)
}
