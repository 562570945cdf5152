package dto

type ChatResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	LastMessage string `json:"lastMessage"`
	Time        string `json:"time"`
	Unread      int    `json:"unread"`
}

type ChatsListResponse struct {
	Items []ChatResponse `json:"items"`
}

type MessageResponse struct {
	ID       string `json:"id"`
	Sender   string `json:"sender"`
	Text     string `json:"text"`
	MediaURL string `json:"mediaUrl,omitempty"`
	Read     bool   `json:"read"`
	Time     string `json:"time"`
}

type MessagesListResponse struct {
	Items []MessageResponse `json:"items"`
}

type SendMessageRequest struct {
	Text string `json:"text"`
}
