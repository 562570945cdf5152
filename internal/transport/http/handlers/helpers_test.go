package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/amandanordqvist/datingapp/internal/services/auth"
)

// doAuthedURLParam builds a request carrying both an identity and a chi
// route parameter, for handlers that read URL placeholders directly.
func doAuthedURLParam(t *testing.T, handle http.HandlerFunc, method, target, paramKey, paramValue string, body any) *httptest.ResponseRecorder {
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

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(paramKey, paramValue)

	ctx := authsvc.WithIdentity(context.Background(), authsvc.Identity{UserID: 1, SID: "sid-1"})
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)

	req := httptest.NewRequest(method, target, reader).WithContext(ctx)
	rec := httptest.NewRecorder()
	handle(rec, req)
	return rec
}

func mustDecode(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
