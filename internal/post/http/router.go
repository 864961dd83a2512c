package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	commonhttp "github.com/AlibekovAA/sunzone-forum/internal/common/http"
	"github.com/AlibekovAA/sunzone-forum/internal/common/logger"
	"github.com/AlibekovAA/sunzone-forum/internal/post/domain"
	"github.com/AlibekovAA/sunzone-forum/internal/post/service"
)

const (
	msgFetched    = "successfully fetched the posts"
	msgFetchedOne = "successfully fetched the post"
	msgNoPosts    = "no posts found for this account, try posting something"
	msgCreated    = "successfully created the post"
	msgDeleted    = "successfully deleted the post"
)

type Store interface {
	ListAll(ctx context.Context) ([]domain.Post, error)
	GetByID(ctx context.Context, id string) (domain.Post, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Post, error)
	Create(ctx context.Context, input service.CreateInput) (domain.Post, error)
	Delete(ctx context.Context, id string) error
}

// createPostRequest also accepts the legacy field names uid and post.
type createPostRequest struct {
	OwnerID string `json:"ownerId"`
	UID     string `json:"uid"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	Post    string `json:"post"`
}

func (r createPostRequest) toInput() service.CreateInput {
	in := service.CreateInput{OwnerID: r.OwnerID, Title: r.Title, Body: r.Body}
	if in.OwnerID == "" {
		in.OwnerID = r.UID
	}
	if in.Body == "" {
		in.Body = r.Post
	}
	return in
}

type Handler struct {
	store  Store
	errors *commonhttp.ErrorHandler
}

func NewHandler(store Store, log *logger.Logger) *Handler {
	return &Handler{store: store, errors: commonhttp.NewErrorHandler(log)}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/posts", h.list).Methods(http.MethodGet)
	r.HandleFunc("/posts/id/{id}", h.getByID).Methods(http.MethodGet)
	r.HandleFunc("/posts/uid/{uid}", h.listByOwner).Methods(http.MethodGet)
	r.HandleFunc("/posts/add", h.create).Methods(http.MethodPost)
	r.HandleFunc("/posts/delete/{pid}", h.delete).Methods(http.MethodDelete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.ListAll(r.Context())
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteData(w, http.StatusOK, msgFetched, posts)
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	post, err := h.store.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteData(w, http.StatusOK, msgFetchedOne, post)
}

func (h *Handler) listByOwner(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.ListByOwner(r.Context(), mux.Vars(r)["uid"])
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	if len(posts) == 0 {
		commonhttp.WriteData(w, http.StatusOK, msgNoPosts, []domain.Post{})
		return
	}
	commonhttp.WriteData(w, http.StatusOK, msgFetched, posts)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	post, err := h.store.Create(r.Context(), req.toInput())
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteData(w, http.StatusOK, msgCreated, post)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), mux.Vars(r)["pid"]); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteMessage(w, http.StatusOK, msgDeleted)
}
