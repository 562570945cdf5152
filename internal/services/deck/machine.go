package deck

import (
	"errors"
	"time"

	"github.com/amandanordqvist/datingapp/internal/domain/enums"
	"github.com/amandanordqvist/datingapp/internal/domain/model"
	"github.com/amandanordqvist/datingapp/internal/domain/rules"
)

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseDragging   Phase = "dragging"
	PhaseSnapBack   Phase = "snap_back"
	PhaseCommitting Phase = "committing"
	PhaseExhausted  Phase = "exhausted"
)

var (
	ErrNoCurrentProfile = errors.New("no current profile")
	ErrDeckBusy         = errors.New("deck is animating")
)

// Machine is the card stack state machine. It is pure: no timers, no
// stores, no goroutines. Transitions that represent animations move the
// machine into a transient phase (snap_back, committing) and stay there
// until FinishAnimation is called by whoever owns the clock.
//
// Decision lists are append-only and disjoint; a profile id lands in
// exactly one of liked, disliked or superliked, at the moment the gesture
// crosses the commit threshold. The later FinishAnimation only advances
// the stack, it can no longer change the decision.
type Machine struct {
	viewportWidth float64

	profiles   []model.Profile
	index      int
	imageIndex int

	dx, dy float64
	phase  Phase

	pending enums.Decision

	liked      []string
	disliked   []string
	superliked []string
}

type ReleaseOutcome struct {
	Committed bool
	Action    enums.Decision
	ProfileID string
}

// Intent is a follow-up action the deck offers the client as data. The
// exhausted deck carries the two terminal-screen choices.
type Intent string

const (
	IntentRestart     Intent = "restart"
	IntentViewMatches Intent = "view_matches"
)

type Snapshot struct {
	Phase      Phase
	Index      int
	Remaining  int
	ImageIndex int
	OffsetX    float64
	OffsetY    float64
	Rotation   float64
	Current    *model.Profile
	Liked      []string
	Disliked   []string
	SuperLiked []string
	Intents    []Intent
}

func NewMachine(profiles []model.Profile, viewportWidth float64) *Machine {
	if viewportWidth <= 0 {
		viewportWidth = rules.DefaultViewportWidth
	}

	m := &Machine{
		viewportWidth: viewportWidth,
		profiles:      append([]model.Profile(nil), profiles...),
		phase:         PhaseIdle,
	}
	if len(m.profiles) == 0 {
		m.phase = PhaseExhausted
	}
	return m
}

func (m *Machine) Phase() Phase { return m.phase }

func (m *Machine) Current() (model.Profile, bool) {
	if m.index >= len(m.profiles) {
		return model.Profile{}, false
	}
	return m.profiles[m.index], true
}

// Drag moves the top card. Vertical movement is tracked for rendering but
// never influences the commit decision.
func (m *Machine) Drag(dx, dy float64) error {
	switch m.phase {
	case PhaseIdle, PhaseDragging:
	case PhaseSnapBack, PhaseCommitting:
		return ErrDeckBusy
	case PhaseExhausted:
		return ErrNoCurrentProfile
	}

	m.dx = dx
	m.dy = dy
	m.phase = PhaseDragging
	return nil
}

// Release ends the gesture. Crossing the horizontal threshold commits the
// swipe immediately; anything less snaps the card back.
func (m *Machine) Release() (ReleaseOutcome, error) {
	if m.phase != PhaseDragging {
		if m.phase == PhaseExhausted {
			return ReleaseOutcome{}, ErrNoCurrentProfile
		}
		return ReleaseOutcome{}, ErrDeckBusy
	}

	current, ok := m.Current()
	if !ok {
		return ReleaseOutcome{}, ErrNoCurrentProfile
	}

	threshold := rules.CommitThreshold(m.viewportWidth)
	if m.dx >= threshold {
		return m.commit(current.ID, enums.DecisionLike), nil
	}
	if m.dx <= -threshold {
		return m.commit(current.ID, enums.DecisionDislike), nil
	}

	m.phase = PhaseSnapBack
	return ReleaseOutcome{Committed: false}, nil
}

// SuperLike commits the top card regardless of drag position. It is only
// reachable through the explicit button, never through a gesture.
func (m *Machine) SuperLike() (ReleaseOutcome, error) {
	switch m.phase {
	case PhaseIdle, PhaseDragging:
	case PhaseSnapBack, PhaseCommitting:
		return ReleaseOutcome{}, ErrDeckBusy
	case PhaseExhausted:
		return ReleaseOutcome{}, ErrNoCurrentProfile
	}

	current, ok := m.Current()
	if !ok {
		return ReleaseOutcome{}, ErrNoCurrentProfile
	}

	return m.commit(current.ID, enums.DecisionSuperLike), nil
}

func (m *Machine) commit(profileID string, action enums.Decision) ReleaseOutcome {
	switch action {
	case enums.DecisionLike:
		m.liked = append(m.liked, profileID)
	case enums.DecisionDislike:
		m.disliked = append(m.disliked, profileID)
	case enums.DecisionSuperLike:
		m.superliked = append(m.superliked, profileID)
	}

	m.pending = action
	m.phase = PhaseCommitting

	return ReleaseOutcome{
		Committed: true,
		Action:    action,
		ProfileID: profileID,
	}
}

// FinishAnimation completes the transient phase. After a commit the stack
// advances to the next card; after a snap back the card settles in place.
func (m *Machine) FinishAnimation() error {
	switch m.phase {
	case PhaseSnapBack:
		m.dx, m.dy = 0, 0
		m.phase = PhaseIdle
		return nil
	case PhaseCommitting:
		m.index++
		m.imageIndex = 0
		m.dx, m.dy = 0, 0
		m.pending = ""
		if m.index >= len(m.profiles) {
			m.phase = PhaseExhausted
		} else {
			m.phase = PhaseIdle
		}
		return nil
	default:
		return ErrDeckBusy
	}
}

// TapImage pages through the top card's photos. A tap on the left third
// goes back, anywhere else goes forward; both ends clamp.
func (m *Machine) TapImage(x float64) (int, error) {
	if m.phase != PhaseIdle {
		if m.phase == PhaseExhausted {
			return 0, ErrNoCurrentProfile
		}
		return 0, ErrDeckBusy
	}

	current, ok := m.Current()
	if !ok {
		return 0, ErrNoCurrentProfile
	}
	if len(current.Images) == 0 {
		return 0, nil
	}

	if x < m.viewportWidth*rules.ImagePrevTapRatio {
		if m.imageIndex > 0 {
			m.imageIndex--
		}
	} else {
		if m.imageIndex < len(current.Images)-1 {
			m.imageIndex++
		}
	}
	return m.imageIndex, nil
}

// Refill appends profiles to the bottom of the stack. An exhausted deck
// becomes idle again when new cards arrive.
func (m *Machine) Refill(profiles []model.Profile) {
	if len(profiles) == 0 {
		return
	}
	m.profiles = append(m.profiles, profiles...)
	if m.phase == PhaseExhausted && m.index < len(m.profiles) {
		m.phase = PhaseIdle
	}
}

// Reset replaces the stack and clears gesture state. Decision history is
// kept; it records what the user already did in this session.
func (m *Machine) Reset(profiles []model.Profile) {
	m.profiles = append([]model.Profile(nil), profiles...)
	m.index = 0
	m.imageIndex = 0
	m.dx, m.dy = 0, 0
	m.pending = ""
	if len(m.profiles) == 0 {
		m.phase = PhaseExhausted
	} else {
		m.phase = PhaseIdle
	}
}

// Rotation is the card tilt for the current drag offset.
func (m *Machine) Rotation() float64 {
	return rules.Rotation(m.dx, m.viewportWidth)
}

func (m *Machine) Decision(profileID string) (enums.Decision, bool) {
	for _, id := range m.superliked {
		if id == profileID {
			return enums.DecisionSuperLike, true
		}
	}
	for _, id := range m.liked {
		if id == profileID {
			return enums.DecisionLike, true
		}
	}
	for _, id := range m.disliked {
		if id == profileID {
			return enums.DecisionDislike, true
		}
	}
	return "", false
}

func (m *Machine) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:      m.phase,
		Index:      m.index,
		Remaining:  len(m.profiles) - m.index,
		ImageIndex: m.imageIndex,
		OffsetX:    m.dx,
		OffsetY:    m.dy,
		Rotation:   m.Rotation(),
		Liked:      append([]string(nil), m.liked...),
		Disliked:   append([]string(nil), m.disliked...),
		SuperLiked: append([]string(nil), m.superliked...),
	}
	if current, ok := m.Current(); ok {
		snap.Current = &current
	}
	if snap.Remaining < 0 {
		snap.Remaining = 0
	}
	if m.phase == PhaseExhausted {
		snap.Intents = []Intent{IntentRestart, IntentViewMatches}
	}
	return snap
}

// PendingDecision reports the committed action while the swipe-out
// animation is still running.
func (m *Machine) PendingDecision() (enums.Decision, bool) {
	if m.phase != PhaseCommitting {
		return "", false
	}
	return m.pending, true
}

// SwipeDecisionAt builds the persistence record for a commit.
func SwipeDecisionAt(outcome ReleaseOutcome, at time.Time) model.SwipeDecision {
	return model.SwipeDecision{
		ProfileID: outcome.ProfileID,
		Action:    outcome.Action,
		CreatedAt: at,
	}
}
