package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"golang.org/x/oauth2"

	"tasky/internal/apiclient"
	"tasky/internal/service"
	"tasky/internal/session"
)

// captured records what the test server received.
type captured struct {
	method string
	path   string
	header http.Header
	body   string
}

type recorder struct {
	mu   sync.Mutex
	reqs []captured
}

func (r *recorder) at(i int) captured {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reqs[i]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reqs)
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = nil
}

func newServer(t *testing.T, status int, response string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.reqs = append(rec.reqs, captured{
			method: r.Method,
			path:   r.URL.Path,
			header: r.Header.Clone(),
			body:   string(body),
		})
		rec.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func newSession(t *testing.T, token string) *session.Session {
	t.Helper()
	s, err := session.New(session.NewMemoryStore(token))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestClient_HeadersWithToken(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"success":true,"message":"ok"}`)
	c := apiclient.New(srv.URL+"/api/", newSession(t, "abc"))

	if _, err := c.Get(context.Background(), "/tasks/1"); err != nil {
		t.Fatalf("Get: %v", err)
	}

	req := got.at(0)
	if req.method != http.MethodGet || req.path != "/api/tasks/1" {
		t.Errorf("request = %s %s, want GET /api/tasks/1", req.method, req.path)
	}
	if ct := req.header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if auth := req.header.Get("Authorization"); auth != "Bearer abc" {
		t.Errorf("Authorization = %q, want %q", auth, "Bearer abc")
	}
	if req.header.Get(apiclient.RequestIDHeader) == "" {
		t.Error("expected a request id header")
	}
}

func TestClient_NoTokenOmitsAuthorization(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"success":true,"message":"ok"}`)

	for name, tokens := range map[string]oauth2.TokenSource{
		"empty session": newSession(t, ""),
		"nil source":    nil,
	} {
		t.Run(name, func(t *testing.T) {
			got.reset()
			c := apiclient.New(srv.URL, tokens)
			if _, err := c.Post(context.Background(), "/login", map[string]string{"email": "a@b.com"}); err != nil {
				t.Fatalf("Post: %v", err)
			}
			if _, ok := got.at(0).header["Authorization"]; ok {
				t.Errorf("Authorization header should be absent, got %q", got.at(0).header.Get("Authorization"))
			}
			if ct := got.at(0).header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
		})
	}
}

func TestClient_SkipAuth(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"success":true,"message":"ok"}`)
	c := apiclient.New(srv.URL, newSession(t, "abc"))

	if _, err := c.Post(context.Background(), "/reset-password", struct{}{}, apiclient.SkipAuth()); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if auth := got.at(0).header.Get("Authorization"); auth != "" {
		t.Errorf("Authorization = %q, want none", auth)
	}
}

func TestClient_BodyEncoding(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"success":true,"message":"ok"}`)
	c := apiclient.New(srv.URL, nil)
	ctx := context.Background()

	if _, err := c.Put(ctx, "/tasks/status", map[string]any{"ids": []int64{1, 2}, "status": "done"}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Delete(ctx, "/tasks", map[string]any{"ids": []int64{}}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Delete(ctx, "/categories/3", nil); err != nil {
		t.Fatal(err)
	}

	if got.at(0).body != `{"ids":[1,2],"status":"done"}` {
		t.Errorf("PUT body = %s", got.at(0).body)
	}
	if got.at(1).method != http.MethodDelete || got.at(1).body != `{"ids":[]}` {
		t.Errorf("DELETE body = %s %s", got.at(1).method, got.at(1).body)
	}
	if got.at(2).body != "" {
		t.Errorf("DELETE without body sent %q", got.at(2).body)
	}
}

func TestClient_EnvelopeReturnedVerbatim(t *testing.T) {
	srv, _ := newServer(t, http.StatusNotFound, `{"success":false,"message":"task not found","error":404}`)
	c := apiclient.New(srv.URL, nil)

	env, err := c.Get(context.Background(), "/tasks/9")
	if err != nil {
		t.Fatalf("non-2xx with envelope should not be a transport error: %v", err)
	}
	if env.Success || env.Message != "task not found" || env.ErrorCode() != 404 || env.StatusCode != http.StatusNotFound {
		t.Errorf("unexpected envelope %+v", env)
	}
	if env.OK() {
		t.Error("OK() should be false")
	}
}

func TestClient_MalformedResponse(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadGateway, `<html>bad gateway</html>`)
	c := apiclient.New(srv.URL, nil)

	_, err := c.Get(context.Background(), "/tasks/1")
	if !service.IsKind(err, service.KindTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	var e *service.Error
	if !errors.As(err, &e) || e.Status != http.StatusBadGateway {
		t.Errorf("expected status 502 on error, got %+v", e)
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := apiclient.New(url, nil)
	if _, err := c.Get(context.Background(), "/profile"); !service.IsKind(err, service.KindTransport) {
		t.Errorf("expected transport error, got %v", err)
	}
}

func TestClient_RateLimitHonoursContext(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, `{"success":true}`)
	c := apiclient.New(srv.URL, nil, apiclient.WithRateLimit(1, 1))

	if _, err := c.Get(context.Background(), "/profile"); err != nil {
		t.Fatalf("first request: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Get(ctx, "/profile"); !service.IsKind(err, service.KindTransport) {
		t.Errorf("expected transport error for cancelled wait, got %v", err)
	}
	if got := rec.count(); got != 1 {
		t.Errorf("server saw %d requests, want 1", got)
	}
}

func TestClient_LenientErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantCode int
	}{
		{"number", `{"success":false,"message":"duplicate","error":409}`, 409},
		{"numeric string", `{"success":false,"message":"duplicate","error":"409"}`, 409},
		{"word", `{"success":false,"message":"duplicate","error":"E_DUPLICATE"}`, 0},
		{"object", `{"success":false,"message":"duplicate","error":{"code":1}}`, 0},
		{"null", `{"success":false,"message":"duplicate","error":null}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, http.StatusConflict, tt.response)
			env, err := apiclient.New(srv.URL, nil).Get(context.Background(), "/categories/user/1")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if env.Message != "duplicate" {
				t.Errorf("Message = %q, want duplicate", env.Message)
			}
			if got := env.ErrorCode(); got != tt.wantCode {
				t.Errorf("ErrorCode() = %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestClient_EmptyBody(t *testing.T) {
	srv, _ := newServer(t, http.StatusNoContent, "")
	c := apiclient.New(srv.URL, nil)

	env, err := c.Delete(context.Background(), "/categories/1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !env.OK() || env.HasData() {
		t.Errorf("empty 204 should be a success without data, got %+v", env)
	}
}

func TestDecodeData(t *testing.T) {
	type item struct {
		ID int64 `json:"id"`
	}

	env := &apiclient.Envelope{Success: true, Data: json.RawMessage(`[{"ID":1},{"ID":2}]`)}
	items, found, err := apiclient.DecodeData[[]item](env)
	if err != nil || !found {
		t.Fatalf("DecodeData: found=%v err=%v", found, err)
	}
	if len(items) != 2 || items[1].ID != 2 {
		t.Errorf("items = %+v", items)
	}

	for _, raw := range []string{"", "null", "  null "} {
		env := &apiclient.Envelope{Success: true, Data: json.RawMessage(raw)}
		got, found, err := apiclient.DecodeData[[]item](env)
		if err != nil || found || got != nil {
			t.Errorf("data %q: got %v found=%v err=%v, want zero value", raw, got, found, err)
		}
	}

	env = &apiclient.Envelope{Success: true, Data: json.RawMessage(`"oops"`)}
	if _, _, err := apiclient.DecodeData[[]item](env); err == nil {
		t.Error("expected decode error for mistyped data")
	}
}
