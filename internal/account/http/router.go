package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AlibekovAA/sunzone-forum/internal/account/domain"
	"github.com/AlibekovAA/sunzone-forum/internal/account/service"
	commonhttp "github.com/AlibekovAA/sunzone-forum/internal/common/http"
	"github.com/AlibekovAA/sunzone-forum/internal/common/logger"
)

// Store is what the admin routes need from an account service.
type Store interface {
	Kind() domain.Kind
	ListAll(ctx context.Context) ([]domain.Public, error)
	GetByID(ctx context.Context, id string) (domain.Public, error)
	GetByEmail(ctx context.Context, email string) (domain.Public, error)
	Create(ctx context.Context, input service.CreateInput) (domain.Public, error)
	Update(ctx context.Context, id string, input service.UpdateInput) (domain.Public, error)
	Delete(ctx context.Context, id string) error
}

// Routes lists where one kind's admin routes are mounted. Every prefix gets
// the full set; EmailPaths only serve lookup by email.
type Routes struct {
	Prefixes   []string
	EmailPaths []string
}

type createAccountRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Secret   string `json:"secret"`
	Password string `json:"password"`
}

func (r createAccountRequest) secret() string {
	if r.Secret != "" {
		return r.Secret
	}
	return r.Password
}

type updateAccountRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Secret   *string `json:"secret"`
	Password *string `json:"password"`
}

func (r updateAccountRequest) secret() *string {
	if r.Secret != nil {
		return r.Secret
	}
	return r.Password
}

type Handler struct {
	store  Store
	errors *commonhttp.ErrorHandler
	log    *logger.Logger
	noun   string
}

func NewHandler(store Store, log *logger.Logger) *Handler {
	return &Handler{
		store:  store,
		errors: commonhttp.NewErrorHandler(log),
		log:    log,
		noun:   string(store.Kind()),
	}
}

func (h *Handler) Register(r *mux.Router, routes Routes) {
	for _, prefix := range routes.Prefixes {
		// Flat on r: subrouters answer a method mismatch with 404, not 405.
		r.HandleFunc(prefix, h.list).Methods(http.MethodGet)
		r.HandleFunc(prefix+"/email/{email}", h.getByEmail).Methods(http.MethodGet)
		r.HandleFunc(prefix+"/add", h.create).Methods(http.MethodPost)
		r.HandleFunc(prefix+"/update/{id}", h.update).Methods(http.MethodPut)
		r.HandleFunc(prefix+"/delete/{id}", h.delete).Methods(http.MethodDelete)
		r.HandleFunc(prefix+"/{id}", h.getByID).Methods(http.MethodGet)
	}
	for _, path := range routes.EmailPaths {
		r.HandleFunc(path+"/{email}", h.getByEmail).Methods(http.MethodGet)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.store.ListAll(r.Context())
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteData(w, http.StatusOK, fmt.Sprintf("successfully fetched the %ss", h.noun), accounts)
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	account, err := h.store.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteData(w, http.StatusOK, fmt.Sprintf("successfully fetched the %s", h.noun), account)
}

func (h *Handler) getByEmail(w http.ResponseWriter, r *http.Request) {
	account, err := h.store.GetByEmail(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteData(w, http.StatusOK, fmt.Sprintf("successfully fetched the %s", h.noun), account)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	account, err := h.store.Create(r.Context(), service.CreateInput{
		Username: req.Username,
		Email:    req.Email,
		Secret:   req.secret(),
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteData(w, http.StatusOK, fmt.Sprintf("successfully created the %s", h.noun), account)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateAccountRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	account, err := h.store.Update(r.Context(), mux.Vars(r)["id"], service.UpdateInput{
		Username: req.Username,
		Email:    req.Email,
		Secret:   req.secret(),
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteData(w, http.StatusOK, fmt.Sprintf("successfully updated the %s", h.noun), account)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteMessage(w, http.StatusOK, fmt.Sprintf("successfully deleted the %s", h.noun))
}
