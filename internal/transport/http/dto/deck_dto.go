package dto

type DeckDragRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

type DeckTapRequest struct {
	X float64 `json:"x"`
}

// DeckSnapshotResponse is the full deck state after any gesture. The client
// drives its card transforms straight from offset_x and rotation.
type DeckSnapshotResponse struct {
	Phase      string           `json:"phase"`
	Index      int              `json:"index"`
	Remaining  int              `json:"remaining"`
	ImageIndex int              `json:"image_index"`
	OffsetX    float64          `json:"offset_x"`
	OffsetY    float64          `json:"offset_y"`
	Rotation   float64          `json:"rotation"`
	Current    *ProfileResponse `json:"current"`
	Liked      []string         `json:"liked"`
	Disliked   []string         `json:"disliked"`
	SuperLiked []string         `json:"super_liked"`
	Intents    []string         `json:"intents,omitempty"`
}
