package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amandanordqvist/datingapp/internal/infra/clock"
	authsvc "github.com/amandanordqvist/datingapp/internal/services/auth"
	decksvc "github.com/amandanordqvist/datingapp/internal/services/deck"
	profilesvc "github.com/amandanordqvist/datingapp/internal/services/profiles"
	"github.com/amandanordqvist/datingapp/internal/transport/http/dto"
)

func TestDeckHandlerSwipeFlow(t *testing.T) {
	h, _ := newDeckHandlerForTest(t)

	rec := doAuthedJSON(t, h.Open, http.MethodPost, "/deck/open", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("open status = %d", rec.Code)
	}
	opened := decodeDeckSnapshot(t, rec)
	if opened.Phase != "idle" || opened.Current == nil {
		t.Fatalf("opened deck phase = %q current = %v", opened.Phase, opened.Current)
	}
	firstID := opened.Current.ID

	rec = doAuthedJSON(t, h.Drag, http.MethodPost, "/deck/drag", dto.DeckDragRequest{DX: 200, DY: 0})
	if rec.Code != http.StatusOK {
		t.Fatalf("drag status = %d", rec.Code)
	}

	rec = doAuthedJSON(t, h.Release, http.MethodPost, "/deck/release", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("release status = %d", rec.Code)
	}
	released := decodeDeckSnapshot(t, rec)
	if released.Phase != "committing" {
		t.Fatalf("phase after committed release = %q", released.Phase)
	}
	if len(released.Liked) != 1 || released.Liked[0] != firstID {
		t.Fatalf("liked = %v, want [%s]", released.Liked, firstID)
	}
}

func TestDeckHandlerDragWithoutOpenSession(t *testing.T) {
	h, _ := newDeckHandlerForTest(t)

	rec := doAuthedJSON(t, h.Drag, http.MethodPost, "/deck/drag", dto.DeckDragRequest{DX: 10})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "DECK_NOT_OPEN" {
		t.Fatalf("error code = %q", code)
	}
}

func TestDeckHandlerDragWhileCommitting(t *testing.T) {
	h, _ := newDeckHandlerForTest(t)

	doAuthedJSON(t, h.Open, http.MethodPost, "/deck/open", nil)
	doAuthedJSON(t, h.Drag, http.MethodPost, "/deck/drag", dto.DeckDragRequest{DX: 300})
	doAuthedJSON(t, h.Release, http.MethodPost, "/deck/release", nil)

	rec := doAuthedJSON(t, h.Drag, http.MethodPost, "/deck/drag", dto.DeckDragRequest{DX: 10})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "DECK_BUSY" {
		t.Fatalf("error code = %q", code)
	}
}

func TestDeckHandlerRequiresIdentity(t *testing.T) {
	h, _ := newDeckHandlerForTest(t)

	req := httptest.NewRequest(http.MethodPost, "/deck/open", nil)
	rec := httptest.NewRecorder()
	h.Open(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func newDeckHandlerForTest(t *testing.T) (*DeckHandler, *clock.Manual) {
	t.Helper()

	sched := clock.NewManual()
	svc := decksvc.NewService(decksvc.Dependencies{
		Source:    profilesvc.NewMemoryCatalog(profilesvc.SeedProfiles()),
		Scheduler: sched,
	}, decksvc.Config{})
	return NewDeckHandler(svc), sched
}

func doAuthedJSON(t *testing.T, handle http.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req = req.WithContext(authsvc.WithIdentity(context.Background(), authsvc.Identity{
		UserID: 1,
		SID:    "sid-1",
	}))
	rec := httptest.NewRecorder()
	handle(rec, req)
	return rec
}

func decodeDeckSnapshot(t *testing.T, rec *httptest.ResponseRecorder) dto.DeckSnapshotResponse {
	t.Helper()

	var snap dto.DeckSnapshotResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	return snap
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	return payload.Code
}
