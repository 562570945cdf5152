package enums

// Decision is the outcome of a committed swipe gesture.
type Decision string

const (
	DecisionLike      Decision = "LIKE"
	DecisionDislike   Decision = "DISLIKE"
	DecisionSuperLike Decision = "SUPERLIKE"
)

func (d Decision) Valid() bool {
	switch d {
	case DecisionLike, DecisionDislike, DecisionSuperLike:
		return true
	default:
		return false
	}
}

// Sender tags which side of a conversation produced a message.
type Sender string

const (
	SenderMe   Sender = "me"
	SenderThem Sender = "them"
)

// ThemeMode is the persisted theme preference.
type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

func (m ThemeMode) Valid() bool {
	switch m {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}
