package deck

import (
	"errors"
	"testing"

	"github.com/amandanordqvist/datingapp/internal/domain/enums"
	"github.com/amandanordqvist/datingapp/internal/domain/model"
)

func testProfiles(ids ...string) []model.Profile {
	profiles := make([]model.Profile, 0, len(ids))
	for _, id := range ids {
		profiles = append(profiles, model.Profile{
			ID:     id,
			Name:   "p" + id,
			Images: []string{"a.jpg", "b.jpg", "c.jpg"},
		})
	}
	return profiles
}

func swipe(t *testing.T, m *Machine, dx float64) ReleaseOutcome {
	t.Helper()

	if err := m.Drag(dx, 0); err != nil {
		t.Fatalf("drag: %v", err)
	}
	outcome, err := m.Release()
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := m.FinishAnimation(); err != nil {
		t.Fatalf("finish animation: %v", err)
	}
	return outcome
}

func TestSwipeThroughDeck(t *testing.T) {
	m := NewMachine(testProfiles("1", "2", "3"), 400)

	if out := swipe(t, m, 150); !out.Committed || out.Action != enums.DecisionLike {
		t.Fatalf("first swipe: %+v", out)
	}
	if out := swipe(t, m, 150); !out.Committed || out.Action != enums.DecisionLike {
		t.Fatalf("second swipe: %+v", out)
	}
	if out := swipe(t, m, -150); !out.Committed || out.Action != enums.DecisionDislike {
		t.Fatalf("third swipe: %+v", out)
	}

	snap := m.Snapshot()
	if snap.Phase != PhaseExhausted {
		t.Fatalf("phase = %s, want exhausted", snap.Phase)
	}
	if len(snap.Liked) != 2 || snap.Liked[0] != "1" || snap.Liked[1] != "2" {
		t.Fatalf("liked = %v", snap.Liked)
	}
	if len(snap.Disliked) != 1 || snap.Disliked[0] != "3" {
		t.Fatalf("disliked = %v", snap.Disliked)
	}
	if len(snap.SuperLiked) != 0 {
		t.Fatalf("superliked = %v", snap.SuperLiked)
	}
}

func TestReleaseBelowThresholdSnapsBack(t *testing.T) {
	m := NewMachine(testProfiles("1"), 400)

	// Threshold for a 400pt viewport is 100pt.
	if err := m.Drag(99, 40); err != nil {
		t.Fatalf("drag: %v", err)
	}
	outcome, err := m.Release()
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if outcome.Committed {
		t.Fatalf("sub-threshold release must not commit")
	}
	if m.Phase() != PhaseSnapBack {
		t.Fatalf("phase = %s, want snap_back", m.Phase())
	}

	if err := m.FinishAnimation(); err != nil {
		t.Fatalf("finish animation: %v", err)
	}
	snap := m.Snapshot()
	if snap.Phase != PhaseIdle || snap.OffsetX != 0 || snap.OffsetY != 0 {
		t.Fatalf("card did not settle: %+v", snap)
	}
	if snap.Current == nil || snap.Current.ID != "1" {
		t.Fatalf("card should still be on top")
	}
}

func TestReleaseAtExactThresholdCommits(t *testing.T) {
	m := NewMachine(testProfiles("1"), 400)

	if err := m.Drag(100, 0); err != nil {
		t.Fatalf("drag: %v", err)
	}
	outcome, err := m.Release()
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if !outcome.Committed || outcome.Action != enums.DecisionLike {
		t.Fatalf("exact-threshold release should commit a like, got %+v", outcome)
	}
}

func TestVerticalDragNeverCommits(t *testing.T) {
	m := NewMachine(testProfiles("1"), 400)

	if err := m.Drag(0, 500); err != nil {
		t.Fatalf("drag: %v", err)
	}
	outcome, err := m.Release()
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if outcome.Committed {
		t.Fatalf("vertical drag must not commit")
	}
}

func TestDragDuringCommitRejected(t *testing.T) {
	m := NewMachine(testProfiles("1", "2"), 400)

	if err := m.Drag(200, 0); err != nil {
		t.Fatalf("drag: %v", err)
	}
	if _, err := m.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}

	if err := m.Drag(10, 0); !errors.Is(err, ErrDeckBusy) {
		t.Fatalf("drag during commit animation should be busy, got %v", err)
	}
	if _, err := m.SuperLike(); !errors.Is(err, ErrDeckBusy) {
		t.Fatalf("superlike during commit animation should be busy, got %v", err)
	}
}

func TestSuperLikeCommitsWithoutDrag(t *testing.T) {
	m := NewMachine(testProfiles("1", "2"), 400)

	outcome, err := m.SuperLike()
	if err != nil {
		t.Fatalf("superlike: %v", err)
	}
	if !outcome.Committed || outcome.Action != enums.DecisionSuperLike || outcome.ProfileID != "1" {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}

	if err := m.FinishAnimation(); err != nil {
		t.Fatalf("finish animation: %v", err)
	}
	snap := m.Snapshot()
	if snap.Current == nil || snap.Current.ID != "2" {
		t.Fatalf("deck should advance after superlike")
	}
	if len(snap.SuperLiked) != 1 || len(snap.Liked) != 0 {
		t.Fatalf("superlike must land only in the superliked list: %+v", snap)
	}
}

func TestDecisionListsStayDisjoint(t *testing.T) {
	m := NewMachine(testProfiles("1", "2", "3"), 400)

	swipe(t, m, 150)
	if _, err := m.SuperLike(); err != nil {
		t.Fatalf("superlike: %v", err)
	}
	if err := m.FinishAnimation(); err != nil {
		t.Fatalf("finish animation: %v", err)
	}
	swipe(t, m, -150)

	seen := map[string]int{}
	snap := m.Snapshot()
	for _, id := range snap.Liked {
		seen[id]++
	}
	for _, id := range snap.Disliked {
		seen[id]++
	}
	for _, id := range snap.SuperLiked {
		seen[id]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("profile %s appears in %d lists", id, n)
		}
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 decided profiles, got %d", len(seen))
	}
}

func TestRotationFollowsDrag(t *testing.T) {
	m := NewMachine(testProfiles("1"), 400)

	if err := m.Drag(200, 0); err != nil {
		t.Fatalf("drag: %v", err)
	}
	if got := m.Rotation(); got != 10 {
		t.Fatalf("rotation at half viewport = %v, want 10", got)
	}

	if err := m.Drag(1000, 0); err != nil {
		t.Fatalf("drag: %v", err)
	}
	if got := m.Rotation(); got != 10 {
		t.Fatalf("rotation must clamp at 10, got %v", got)
	}

	if err := m.Drag(-1000, 0); err != nil {
		t.Fatalf("drag: %v", err)
	}
	if got := m.Rotation(); got != -10 {
		t.Fatalf("rotation must clamp at -10, got %v", got)
	}
}

func TestTapImagePaging(t *testing.T) {
	m := NewMachine(testProfiles("1"), 300)

	// Right side advances, clamped at the last photo.
	for want := 1; want <= 2; want++ {
		idx, err := m.TapImage(250)
		if err != nil {
			t.Fatalf("tap: %v", err)
		}
		if idx != want {
			t.Fatalf("image index = %d, want %d", idx, want)
		}
	}
	if idx, _ := m.TapImage(250); idx != 2 {
		t.Fatalf("forward tap should clamp at 2, got %d", idx)
	}

	// Left third goes back, clamped at the first photo.
	if idx, _ := m.TapImage(50); idx != 1 {
		t.Fatalf("back tap = %d, want 1", idx)
	}
	if idx, _ := m.TapImage(50); idx != 0 {
		t.Fatalf("back tap = %d, want 0", idx)
	}
	if idx, _ := m.TapImage(50); idx != 0 {
		t.Fatalf("back tap should clamp at 0, got %d", idx)
	}
}

func TestImageIndexResetsOnAdvance(t *testing.T) {
	m := NewMachine(testProfiles("1", "2"), 300)

	if _, err := m.TapImage(250); err != nil {
		t.Fatalf("tap: %v", err)
	}
	swipe(t, m, 200)

	if snap := m.Snapshot(); snap.ImageIndex != 0 {
		t.Fatalf("image index should reset for the next card, got %d", snap.ImageIndex)
	}
}

func TestResetKeepsDecisionHistory(t *testing.T) {
	m := NewMachine(testProfiles("1", "2"), 400)
	swipe(t, m, 150)

	m.Reset(testProfiles("1", "2"))

	snap := m.Snapshot()
	if snap.Phase != PhaseIdle || snap.Index != 0 {
		t.Fatalf("reset did not rewind the stack: %+v", snap)
	}
	if len(snap.Liked) != 1 || snap.Liked[0] != "1" {
		t.Fatalf("reset must keep decision history: %v", snap.Liked)
	}
}

func TestRefillWakesExhaustedDeck(t *testing.T) {
	m := NewMachine(testProfiles("1"), 400)
	swipe(t, m, 150)

	if m.Phase() != PhaseExhausted {
		t.Fatalf("phase = %s, want exhausted", m.Phase())
	}

	m.Refill(testProfiles("2"))
	if m.Phase() != PhaseIdle {
		t.Fatalf("refill should wake the deck, phase = %s", m.Phase())
	}
	if current, ok := m.Current(); !ok || current.ID != "2" {
		t.Fatalf("current after refill: %+v ok=%v", current, ok)
	}
}

func TestExhaustedSnapshotOffersIntents(t *testing.T) {
	m := NewMachine(testProfiles("1"), 400)

	snap := m.Snapshot()
	if len(snap.Intents) != 0 {
		t.Fatalf("active deck must not carry intents: %v", snap.Intents)
	}

	swipe(t, m, 150)

	snap = m.Snapshot()
	if snap.Phase != PhaseExhausted {
		t.Fatalf("phase = %s, want exhausted", snap.Phase)
	}
	if len(snap.Intents) != 2 || snap.Intents[0] != IntentRestart || snap.Intents[1] != IntentViewMatches {
		t.Fatalf("terminal intents = %v", snap.Intents)
	}
}

func TestEmptyDeckStartsExhausted(t *testing.T) {
	m := NewMachine(nil, 400)

	if m.Phase() != PhaseExhausted {
		t.Fatalf("phase = %s, want exhausted", m.Phase())
	}
	if err := m.Drag(10, 0); !errors.Is(err, ErrNoCurrentProfile) {
		t.Fatalf("drag on empty deck: %v", err)
	}
	if _, err := m.SuperLike(); !errors.Is(err, ErrNoCurrentProfile) {
		t.Fatalf("superlike on empty deck: %v", err)
	}
}
