package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	accountdomain "github.com/AlibekovAA/sunzone-forum/internal/account/domain"
	"github.com/AlibekovAA/sunzone-forum/internal/auth/service"
	commonerrors "github.com/AlibekovAA/sunzone-forum/internal/common/errors"
	commonhttp "github.com/AlibekovAA/sunzone-forum/internal/common/http"
	"github.com/AlibekovAA/sunzone-forum/internal/common/logger"
)

type Authenticator interface {
	Register(ctx context.Context, kind accountdomain.Kind, input service.RegisterInput) (accountdomain.Public, error)
	Login(ctx context.Context, kind accountdomain.Kind, input service.LoginInput) (accountdomain.Public, error)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Secret   string `json:"secret"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Secret   string `json:"secret"`
	Password string `json:"password"`
}

type Handler struct {
	auth   Authenticator
	errors *commonhttp.ErrorHandler
	log    *logger.Logger
}

func NewHandler(auth Authenticator, log *logger.Logger) *Handler {
	return &Handler{auth: auth, errors: commonhttp.NewErrorHandler(log), log: log}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/auth/{kind}/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/auth/{kind}/login", h.login).Methods(http.MethodPost)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	kind, ok := accountdomain.ParseKind(mux.Vars(r)["kind"])
	if !ok {
		h.errors.HandleError(w, r, commonerrors.ErrRouteNotFound)
		return
	}

	var req registerRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{
			"kind":   string(kind),
			"action": "register_invalid_json",
		}).Warnf("register failed: %v", err)
		h.errors.HandleError(w, r, err)
		return
	}

	secret := req.Secret
	if secret == "" {
		secret = req.Password
	}

	account, err := h.auth.Register(r.Context(), kind, service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Secret:   secret,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteData(w, http.StatusOK, "successfully registered", account)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	kind, ok := accountdomain.ParseKind(mux.Vars(r)["kind"])
	if !ok {
		h.errors.HandleError(w, r, commonerrors.ErrRouteNotFound)
		return
	}

	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	secret := req.Secret
	if secret == "" {
		secret = req.Password
	}

	account, err := h.auth.Login(r.Context(), kind, service.LoginInput{Email: req.Email, Secret: secret})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteData(w, http.StatusOK, "successfully logged in", account)
}
