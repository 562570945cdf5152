package redis_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/amandanordqvist/datingapp/internal/domain/model"
	redrepo "github.com/amandanordqvist/datingapp/internal/repo/redis"
)

func TestMomentsRepoRoundTrip(t *testing.T) {
	client, cleanup := newRedisClientForTest(t)
	defer cleanup()

	repo := redrepo.NewMomentsRepo(client)
	ctx := context.Background()

	_, found, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if found {
		t.Fatalf("key should not exist before first save")
	}

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	moments := []model.Moment{{
		ID:        "m1",
		UserID:    "u2",
		UserName:  "Sofia",
		Image:     "https://cdn.example.com/m1.jpg",
		Caption:   "golden hour",
		CreatedAt: created,
		ExpiresAt: created.Add(24 * time.Hour),
		Likes:     3,
	}}
	if err := repo.Save(ctx, moments); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, found, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatalf("key should exist after save")
	}
	if len(loaded) != 1 || loaded[0].ID != "m1" || loaded[0].Likes != 3 {
		t.Fatalf("unexpected moments after round trip: %+v", loaded)
	}
	if !loaded[0].ExpiresAt.Equal(created.Add(24 * time.Hour)) {
		t.Fatalf("expiresAt changed: %v", loaded[0].ExpiresAt)
	}
}

func TestChatRepoMessagesKeyPerChat(t *testing.T) {
	client, cleanup := newRedisClientForTest(t)
	defer cleanup()

	repo := redrepo.NewChatRepo(client)
	ctx := context.Background()

	msgs := []model.Message{{ID: "1", Sender: "me", Text: "hi", Read: true, Time: "10:24"}}
	if err := repo.SaveMessages(ctx, "c7", msgs); err != nil {
		t.Fatalf("save messages: %v", err)
	}

	loaded, found, err := repo.LoadMessages(ctx, "c7")
	if err != nil {
		t.Fatalf("load messages: %v", err)
	}
	if !found || len(loaded) != 1 || loaded[0].Text != "hi" {
		t.Fatalf("unexpected messages: found=%v %+v", found, loaded)
	}

	_, found, err = repo.LoadMessages(ctx, "other")
	if err != nil {
		t.Fatalf("load other chat: %v", err)
	}
	if found {
		t.Fatalf("messages must be keyed per chat")
	}
}

func newRedisClientForTest(t *testing.T) (*goredis.Client, func()) {
	t.Helper()

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})

	return client, func() {
		_ = client.Close()
		mini.Close()
	}
}
