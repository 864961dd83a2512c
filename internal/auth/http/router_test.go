package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	accountdomain "github.com/AlibekovAA/sunzone-forum/internal/account/domain"
	"github.com/AlibekovAA/sunzone-forum/internal/auth/service"
	commonerrors "github.com/AlibekovAA/sunzone-forum/internal/common/errors"
	"github.com/AlibekovAA/sunzone-forum/internal/common/logger"
)

type mockAuthenticator struct {
	registerFunc func(ctx context.Context, kind accountdomain.Kind, input service.RegisterInput) (accountdomain.Public, error)
	loginFunc    func(ctx context.Context, kind accountdomain.Kind, input service.LoginInput) (accountdomain.Public, error)
}

func (m *mockAuthenticator) Register(ctx context.Context, kind accountdomain.Kind, input service.RegisterInput) (accountdomain.Public, error) {
	return m.registerFunc(ctx, kind, input)
}

func (m *mockAuthenticator) Login(ctx context.Context, kind accountdomain.Kind, input service.LoginInput) (accountdomain.Public, error) {
	return m.loginFunc(ctx, kind, input)
}

func serve(auth *mockAuthenticator, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	r := mux.NewRouter()
	NewHandler(auth, logger.NewWithWriter(&bytes.Buffer{}, "test", "info")).Register(r)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestAuthHTTP_Register_AcceptsPasswordAlias(t *testing.T) {
	var gotKind accountdomain.Kind
	var gotInput service.RegisterInput
	auth := &mockAuthenticator{
		registerFunc: func(_ context.Context, kind accountdomain.Kind, input service.RegisterInput) (accountdomain.Public, error) {
			gotKind, gotInput = kind, input
			return accountdomain.Public{ID: "r1", Kind: kind, Username: input.Username}, nil
		},
	}

	rec, env := serve(auth, "/auth/responder/register", `{"username":"bobby","email":"bob@x.io","password":"password1"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotKind != accountdomain.KindResponder || gotInput.Secret != "password1" {
		t.Errorf("unexpected call: %s %+v", gotKind, gotInput)
	}
	if env["message"] != "successfully registered" {
		t.Errorf("unexpected message %v", env["message"])
	}
	data, _ := env["data"].(map[string]any)
	if _, leaked := data["secret"]; leaked {
		t.Error("secret must not be serialized")
	}
}

func TestAuthHTTP_Register_UnknownKind(t *testing.T) {
	rec, _ := serve(&mockAuthenticator{}, "/auth/admin/register", `{}`)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAuthHTTP_Register_InvalidJSON(t *testing.T) {
	rec, env := serve(&mockAuthenticator{}, "/auth/poster/register", `{"username":`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env["message"] != "invalid json payload" {
		t.Errorf("unexpected message %v", env["message"])
	}
}

func TestAuthHTTP_Login_InvalidCredentials(t *testing.T) {
	auth := &mockAuthenticator{
		loginFunc: func(context.Context, accountdomain.Kind, service.LoginInput) (accountdomain.Public, error) {
			return accountdomain.Public{}, commonerrors.ErrInvalidCredentials
		},
	}

	rec, env := serve(auth, "/auth/poster/login", `{"email":"alice@x.io","secret":"wrong"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if env["message"] != "wrong credentials" {
		t.Errorf("unexpected message %v", env["message"])
	}
}

func TestAuthHTTP_Login_Success(t *testing.T) {
	auth := &mockAuthenticator{
		loginFunc: func(_ context.Context, kind accountdomain.Kind, input service.LoginInput) (accountdomain.Public, error) {
			return accountdomain.Public{ID: "p1", Kind: kind, Email: input.Email}, nil
		},
	}

	rec, env := serve(auth, "/auth/poster/login", `{"email":"alice@x.io","secret":"s3cret"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env["message"] != "successfully logged in" {
		t.Errorf("unexpected message %v", env["message"])
	}
}
