package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/AlibekovAA/sunzone-forum/internal/common/config"
	"github.com/AlibekovAA/sunzone-forum/internal/common/logger"
)

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) (*App, http.Handler) {
	t.Helper()
	cfg := config.ForumConfig{
		DatabaseURL:    "file:" + t.Name() + "?mode=memory&cache=shared",
		RequestTimeout: 5 * time.Second,
		BcryptCost:     bcrypt.MinCost,
	}
	app, err := New(context.Background(), cfg, logger.NewWithWriter(&bytes.Buffer{}, "test", "error"))
	if err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app, app.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: response is not an envelope: %s", method, path, rec.Body.String())
	}
	return rec.Code, env
}

func decodeData(t *testing.T, env envelope, v any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("failed to decode data %s: %v", env.Data, err)
	}
}

func TestApp_ForumScenario(t *testing.T) {
	app, h := newTestApp(t)

	status, env := do(t, h, http.MethodPost, "/auth/poster/register",
		`{"username":"alice","email":"alice@x.io","secret":"s3cret"}`)
	if status != http.StatusOK {
		t.Fatalf("register: expected 200, got %d (%s)", status, env.Message)
	}
	var alice map[string]any
	decodeData(t, env, &alice)
	for _, leaked := range []string{"secret", "secretHash", "password"} {
		if _, ok := alice[leaked]; ok {
			t.Errorf("register response leaks %q", leaked)
		}
	}
	aliceID, _ := alice["id"].(string)
	if aliceID == "" {
		t.Fatal("expected account id")
	}

	if status, env = do(t, h, http.MethodPost, "/auth/poster/login",
		`{"email":"alice@x.io","secret":"wrong"}`); status != http.StatusUnauthorized {
		t.Fatalf("wrong login: expected 401, got %d (%s)", status, env.Message)
	}
	if status, _ = do(t, h, http.MethodPost, "/auth/poster/login",
		`{"email":"nobody@x.io","secret":"wrong"}`); status != http.StatusUnauthorized {
		t.Fatalf("unknown email: expected 401, got %d", status)
	}
	if status, env = do(t, h, http.MethodPost, "/auth/poster/login",
		`{"email":"alice@x.io","password":"s3cret"}`); status != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", status, env.Message)
	}

	if status, _ = do(t, h, http.MethodPost, "/auth/poster/register",
		`{"username":"alice2","email":"alice@x.io","secret":"s3cret"}`); status != http.StatusConflict {
		t.Fatalf("duplicate email: expected 409, got %d", status)
	}

	status, env = do(t, h, http.MethodPost, "/posts/add",
		`{"ownerId":"`+aliceID+`","title":"Hello","body":"First post"}`)
	if status != http.StatusOK {
		t.Fatalf("create post: expected 200, got %d (%s)", status, env.Message)
	}
	var post struct {
		ID      string `json:"id"`
		OwnerID string `json:"ownerId"`
		Title   string `json:"title"`
	}
	decodeData(t, env, &post)
	if post.ID == "" || post.OwnerID != aliceID || post.Title != "Hello" {
		t.Fatalf("unexpected post: %+v", post)
	}

	status, env = do(t, h, http.MethodPost, "/auth/responder/register",
		`{"username":"bobby","email":"bob@x.io","secret":"password1"}`)
	if status != http.StatusOK {
		t.Fatalf("register responder: expected 200, got %d (%s)", status, env.Message)
	}
	var bob struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &bob)

	if status, env = do(t, h, http.MethodPost, "/posts/"+post.ID+"/comments/add",
		`{"responderId":"`+bob.ID+`","text":"Nice post"}`); status != http.StatusOK {
		t.Fatalf("add comment: expected 200, got %d (%s)", status, env.Message)
	}

	var comments []map[string]any
	_, env = do(t, h, http.MethodGet, "/posts/"+post.ID+"/comments", "")
	decodeData(t, env, &comments)
	if len(comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(comments))
	}

	if status, _ = do(t, h, http.MethodDelete, "/posts/delete/"+post.ID, ""); status != http.StatusOK {
		t.Fatalf("delete post: expected 200, got %d", status)
	}
	if status, _ = do(t, h, http.MethodGet, "/posts/id/"+post.ID, ""); status != http.StatusNotFound {
		t.Fatalf("deleted post: expected 404, got %d", status)
	}

	_, env = do(t, h, http.MethodGet, "/posts/"+post.ID+"/comments", "")
	decodeData(t, env, &comments)
	if len(comments) != 1 {
		t.Fatalf("orphaned comment should remain, got %d", len(comments))
	}

	stats, err := app.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats != (Stats{Posters: 1, Responders: 1, Posts: 0, Comments: 1}) {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestApp_ResponderRegisterLogin(t *testing.T) {
	_, h := newTestApp(t)

	for _, tc := range []struct {
		name, body, message string
	}{
		{"short username", `{"username":"bob","email":"bob@x.io","secret":"password1"}`, "username must be at least 4 characters"},
		{"short secret", `{"username":"bobby","email":"bob@x.io","secret":"pass123"}`, "secret must be at least 8 characters"},
	} {
		status, env := do(t, h, http.MethodPost, "/auth/responder/register", tc.body)
		if status != http.StatusBadRequest || env.Message != tc.message {
			t.Fatalf("%s: expected 400 %q, got %d %q", tc.name, tc.message, status, env.Message)
		}
	}

	status, env := do(t, h, http.MethodPost, "/auth/responder/register",
		`{"username":"bobb","email":"bob@x.io","password":"pass1234"}`)
	if status != http.StatusOK {
		t.Fatalf("register: expected 200, got %d (%s)", status, env.Message)
	}
	var bob map[string]any
	decodeData(t, env, &bob)
	if _, leaked := bob["secret"]; leaked {
		t.Error("register response leaks the secret")
	}

	status, env = do(t, h, http.MethodPost, "/auth/responder/login", `{"email":"bob@x.io","secret":"pass1234"}`)
	if status != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", status, env.Message)
	}
	var loggedIn struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	decodeData(t, env, &loggedIn)
	if loggedIn.ID != bob["id"] || loggedIn.Username != "bobb" {
		t.Errorf("unexpected login result: %+v", loggedIn)
	}

	for _, body := range []string{
		`{"email":"bob@x.io","secret":"pass12345"}`,
		`{"email":"bob@x.io","password":""}`,
	} {
		status, env = do(t, h, http.MethodPost, "/auth/responder/login", body)
		if status != http.StatusUnauthorized || env.Message != "wrong credentials" {
			t.Errorf("%s: expected 401 wrong credentials, got %d %q", body, status, env.Message)
		}
	}

	if status, _ = do(t, h, http.MethodPost, "/auth/poster/login", `{"email":"bob@x.io","secret":"pass1234"}`); status != http.StatusUnauthorized {
		t.Errorf("responder credentials must not log in as a poster, got %d", status)
	}
}

func TestApp_ListByOwnerEmpty(t *testing.T) {
	_, h := newTestApp(t)

	status, env := do(t, h, http.MethodGet, "/posts/uid/nobody", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if string(env.Data) != "[]" {
		t.Errorf("expected empty array, got %s", env.Data)
	}
}

func TestApp_AdminAccounts(t *testing.T) {
	_, h := newTestApp(t)

	status, env := do(t, h, http.MethodPost, "/admin/poster/add",
		`{"username":"carol","email":"carol@x.io","password":"pw"}`)
	if status != http.StatusOK {
		t.Fatalf("create: expected 200, got %d (%s)", status, env.Message)
	}
	var carol struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &carol)

	if status, _ = do(t, h, http.MethodGet, "/poster/email/carol@x.io", ""); status != http.StatusOK {
		t.Fatalf("email lookup: expected 200, got %d", status)
	}

	status, env = do(t, h, http.MethodPut, "/admin/posters/update/"+carol.ID, `{"username":"caroline"}`)
	if status != http.StatusOK {
		t.Fatalf("update: expected 200, got %d (%s)", status, env.Message)
	}
	var updated struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	decodeData(t, env, &updated)
	if updated.Username != "caroline" || updated.Email != "carol@x.io" {
		t.Errorf("unexpected update result: %+v", updated)
	}

	if status, _ = do(t, h, http.MethodPost, "/admin/responders/add",
		`{"username":"bob","email":"bob@x.io","secret":"password1"}`); status != http.StatusBadRequest {
		t.Fatalf("short responder username: expected 400, got %d", status)
	}

	if status, _ = do(t, h, http.MethodDelete, "/admin/posters/delete/"+carol.ID, ""); status != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", status)
	}
	if status, _ = do(t, h, http.MethodDelete, "/admin/posters/delete/"+carol.ID, ""); status != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", status)
	}
}

func TestApp_OperationalRoutes(t *testing.T) {
	_, h := newTestApp(t)

	status, env := do(t, h, http.MethodGet, "/health", "")
	if status != http.StatusOK || env.Message != "ok" {
		t.Fatalf("health: got %d %q", status, env.Message)
	}

	if status, env = do(t, h, http.MethodGet, "/nowhere", ""); status != http.StatusNotFound || env.Message != "route not found" {
		t.Fatalf("unknown route: got %d %q", status, env.Message)
	}

	if status, _ = do(t, h, http.MethodPatch, "/posts", ""); status != http.StatusMethodNotAllowed {
		t.Fatalf("wrong method: expected 405, got %d", status)
	}
	if status, _ = do(t, h, http.MethodPost, "/admin/posters", ""); status != http.StatusMethodNotAllowed {
		t.Fatalf("wrong method on admin route: expected 405, got %d", status)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "forum_") {
		t.Fatalf("metrics: got %d", rec.Code)
	}
}
