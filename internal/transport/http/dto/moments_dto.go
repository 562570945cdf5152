package dto

import "time"

// MomentResponse keeps the camelCase field names the stored collection
// uses so the client reads feed and storage payloads identically.
type MomentResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	UserImage string    `json:"userImage"`
	Image     string    `json:"image"`
	Caption   string    `json:"caption,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	Likes     int       `json:"likes"`
	HasLiked  bool      `json:"hasLiked"`
}

type MomentsListResponse struct {
	Items []MomentResponse `json:"items"`
}

type CreateMomentRequest struct {
	Caption string `json:"caption"`
	Image   string `json:"image"`
}

type MomentReplyRequest struct {
	Text string `json:"text"`
}

type ViewerOpenRequest struct {
	MomentID string `json:"moment_id"`
}

type ViewerStateResponse struct {
	Open   bool            `json:"open"`
	Index  int             `json:"index"`
	Total  int             `json:"total"`
	Moment *MomentResponse `json:"moment"`
}
