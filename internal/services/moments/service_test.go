package moments

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/amandanordqvist/datingapp/internal/domain/model"
)

type stubStore struct {
	data    []model.Moment
	found   bool
	loadErr error
	saveErr error
	saves   int
}

func (s *stubStore) Load(_ context.Context) ([]model.Moment, bool, error) {
	if s.loadErr != nil {
		return nil, false, s.loadErr
	}
	return s.data, s.found, nil
}

func (s *stubStore) Save(_ context.Context, moments []model.Moment) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.data = append([]model.Moment(nil), moments...)
	s.found = true
	return nil
}

type stubReplies struct {
	delivered []string
	err       error
}

func (s *stubReplies) DeliverReply(_ context.Context, moment model.Moment, text string) error {
	if s.err != nil {
		return s.err
	}
	s.delivered = append(s.delivered, moment.ID+":"+text)
	return nil
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newMomentsForTest(store *stubStore, replies *stubReplies) *Service {
	svc := NewService(Dependencies{Store: store, Replies: replies}, Config{})
	svc.now = func() time.Time { return testNow }
	seq := 0
	svc.newID = func() string {
		seq++
		return "new-" + strings.Repeat("x", seq)
	}
	return svc
}

func TestFirstLoadSeedsAndPersists(t *testing.T) {
	store := &stubStore{}
	svc := newMomentsForTest(store, nil)

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("seed size = %d, want 3", len(list))
	}
	if !store.found || len(store.data) != 3 {
		t.Fatalf("seed was not written back to the store")
	}
}

func TestLoadFiltersExpired(t *testing.T) {
	store := &stubStore{
		found: true,
		data: []model.Moment{
			{ID: "live", ExpiresAt: testNow.Add(time.Hour)},
			{ID: "dead", ExpiresAt: testNow.Add(-time.Second)},
		},
	}
	svc := newMomentsForTest(store, nil)

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != "live" {
		t.Fatalf("expired moments must be dropped on load: %+v", list)
	}
}

func TestCreateMoment(t *testing.T) {
	store := &stubStore{found: true}
	svc := newMomentsForTest(store, nil)
	ctx := context.Background()

	moment, err := svc.Create(ctx, "  hello  ", "img.jpg")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if moment.Caption != "hello" {
		t.Fatalf("caption not trimmed: %q", moment.Caption)
	}
	if moment.UserID != CurrentUser.ID || moment.UserName != "Alexander" {
		t.Fatalf("author not stamped: %+v", moment)
	}
	if !moment.ExpiresAt.Equal(testNow.Add(24 * time.Hour)) {
		t.Fatalf("expiresAt = %v, want createdAt+24h", moment.ExpiresAt)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) == 0 || list[0].ID != moment.ID {
		t.Fatalf("new moment must be first in the feed")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newMomentsForTest(&stubStore{found: true}, nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "caption", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty image: %v", err)
	}
	long := strings.Repeat("a", 151)
	if _, err := svc.Create(ctx, long, "img.jpg"); !errors.Is(err, ErrValidation) {
		t.Fatalf("151-char caption: %v", err)
	}
	if _, err := svc.Create(ctx, strings.Repeat("a", 150), "img.jpg"); err != nil {
		t.Fatalf("150-char caption should pass: %v", err)
	}
}

func TestCreateRevertsOnSaveFailure(t *testing.T) {
	store := &stubStore{found: true}
	svc := newMomentsForTest(store, nil)
	ctx := context.Background()

	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("warm up: %v", err)
	}

	store.saveErr = errors.New("redis down")
	if _, err := svc.Create(ctx, "c", "img.jpg"); err == nil {
		t.Fatalf("create must surface the save failure")
	}

	store.saveErr = nil
	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, m := range list {
		if m.UserID == CurrentUser.ID {
			t.Fatalf("failed create leaked into the feed: %+v", m)
		}
	}
}

func TestToggleLikeTwiceRestoresState(t *testing.T) {
	store := &stubStore{
		found: true,
		data: []model.Moment{
			{ID: "m1", Likes: 5, ExpiresAt: testNow.Add(time.Hour)},
		},
	}
	svc := newMomentsForTest(store, nil)
	ctx := context.Background()

	liked, err := svc.ToggleLike(ctx, "m1")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !liked.HasLiked || liked.Likes != 6 {
		t.Fatalf("after like: %+v", liked)
	}

	unliked, err := svc.ToggleLike(ctx, "m1")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if unliked.HasLiked || unliked.Likes != 5 {
		t.Fatalf("double toggle must restore the original state: %+v", unliked)
	}
}

func TestToggleLikeFloorsAtZero(t *testing.T) {
	store := &stubStore{
		found: true,
		data: []model.Moment{
			{ID: "m1", Likes: 0, HasLiked: true, ExpiresAt: testNow.Add(time.Hour)},
		},
	}
	svc := newMomentsForTest(store, nil)

	m, err := svc.ToggleLike(context.Background(), "m1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if m.Likes != 0 {
		t.Fatalf("likes must not go negative: %d", m.Likes)
	}
}

func TestToggleLikeUnknownMoment(t *testing.T) {
	svc := newMomentsForTest(&stubStore{found: true}, nil)

	if _, err := svc.ToggleLike(context.Background(), "nope"); !errors.Is(err, ErrMomentNotFound) {
		t.Fatalf("want ErrMomentNotFound, got %v", err)
	}
}

func TestToggleLikeSurvivesSaveFailure(t *testing.T) {
	store := &stubStore{
		found: true,
		data: []model.Moment{
			{ID: "m1", Likes: 1, ExpiresAt: testNow.Add(time.Hour)},
		},
	}
	svc := newMomentsForTest(store, nil)
	ctx := context.Background()

	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("warm up: %v", err)
	}
	store.saveErr = errors.New("redis down")

	m, err := svc.ToggleLike(ctx, "m1")
	if err != nil {
		t.Fatalf("toggle should degrade, not fail: %v", err)
	}
	if !m.HasLiked || m.Likes != 2 {
		t.Fatalf("in-memory toggle must stand: %+v", m)
	}
}

func TestReplyDeliversToSink(t *testing.T) {
	replies := &stubReplies{}
	store := &stubStore{
		found: true,
		data: []model.Moment{
			{ID: "m1", UserID: "user1", UserName: "Emma", ExpiresAt: testNow.Add(time.Hour)},
		},
	}
	svc := newMomentsForTest(store, replies)
	ctx := context.Background()

	if err := svc.Reply(ctx, "m1", "love this!"); err != nil {
		t.Fatalf("reply: %v", err)
	}
	if len(replies.delivered) != 1 || replies.delivered[0] != "m1:love this!" {
		t.Fatalf("delivered = %v", replies.delivered)
	}

	if err := svc.Reply(ctx, "m1", "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank reply: %v", err)
	}
	if err := svc.Reply(ctx, "gone", "hi"); !errors.Is(err, ErrMomentNotFound) {
		t.Fatalf("reply to unknown moment: %v", err)
	}
}

func TestSweepRemovesExpired(t *testing.T) {
	store := &stubStore{
		found: true,
		data: []model.Moment{
			{ID: "old", CreatedAt: testNow.Add(-24*time.Hour - time.Second), ExpiresAt: testNow.Add(-time.Second)},
			{ID: "edge", ExpiresAt: testNow},
			{ID: "fresh", ExpiresAt: testNow.Add(time.Hour)},
		},
	}
	svc := newMomentsForTest(store, nil)
	svc.loaded = true
	svc.moments = store.data

	removed, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	// A moment is gone the instant its expiry time is reached.
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	if len(svc.moments) != 1 || svc.moments[0].ID != "fresh" {
		t.Fatalf("remaining = %+v", svc.moments)
	}
	if store.saves != 1 {
		t.Fatalf("sweep must persist once, saves = %d", store.saves)
	}

	removed, err = svc.Sweep(context.Background())
	if err != nil || removed != 0 {
		t.Fatalf("idle sweep: removed=%d err=%v", removed, err)
	}
	if store.saves != 1 {
		t.Fatalf("idle sweep must not write, saves = %d", store.saves)
	}
}
