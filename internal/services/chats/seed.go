package chats

import (
	"github.com/amandanordqvist/datingapp/internal/domain/enums"
	"github.com/amandanordqvist/datingapp/internal/domain/model"
)

// SeedChats is the conversation list shown on first launch.
func SeedChats() []model.Chat {
	return []model.Chat{
		{
			ID:          "1",
			UserID:      "user1",
			Name:        "Emma",
			LastMessage: "Would love to meet for coffee!",
			Time:        "5m ago",
			Image:       "https://images.unsplash.com/photo-1494790108377-be9c29b29330",
			Unread:      2,
		},
		{
			ID:          "2",
			UserID:      "user2",
			Name:        "Oliver",
			LastMessage: "That sounds great! When are you free?",
			Time:        "2h ago",
			Image:       "https://images.unsplash.com/photo-1500648767791-00dcc994a43e",
			Unread:      0,
		},
		{
			ID:          "3",
			UserID:      "user3",
			Name:        "Sophie",
			LastMessage: "Looking forward to our date tomorrow!",
			Time:        "1d ago",
			Image:       "https://images.unsplash.com/photo-1534528741775-53994a69daeb",
			Unread:      0,
		},
	}
}

// SeedMessages is the demo history for the seeded conversations. Unknown
// chats start empty.
func SeedMessages(chatID string) []model.Message {
	switch chatID {
	case "1":
		return []model.Message{
			{ID: "1", Text: "Hey! I saw we matched", Sender: enums.SenderThem, Read: true, Time: "10:30 AM"},
			{ID: "2", Text: "Hi! Yes, I love your profile! Especially the coffee enthusiasm", Sender: enums.SenderMe, Read: true, Time: "10:32 AM"},
			{ID: "3", Text: "Thanks! I know this amazing coffee place downtown. Would you like to grab a cup sometime?", Sender: enums.SenderThem, Read: false, Time: "10:35 AM"},
		}
	case "2":
		return []model.Message{
			{ID: "1", Text: "Hi there! I noticed you're into photography too!", Sender: enums.SenderThem, Read: true, Time: "2:15 PM"},
			{ID: "2", Text: "Yes! I love capturing moments. What's your favorite subject to shoot?", Sender: enums.SenderMe, Read: true, Time: "2:20 PM"},
		}
	case "3":
		return []model.Message{
			{ID: "1", Text: "Hello! Your travel photos are amazing!", Sender: enums.SenderThem, Read: true, Time: "5:45 PM"},
			{ID: "2", Text: "Thank you! I just got back from Italy", Sender: enums.SenderMe, Read: true, Time: "5:50 PM"},
		}
	default:
		return []model.Message{}
	}
}
