package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AlibekovAA/sunzone-forum/internal/comment/domain"
	"github.com/AlibekovAA/sunzone-forum/internal/comment/service"
	commonhttp "github.com/AlibekovAA/sunzone-forum/internal/common/http"
	"github.com/AlibekovAA/sunzone-forum/internal/common/logger"
)

type Store interface {
	ListAll(ctx context.Context) ([]domain.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]domain.Comment, error)
	ListByResponder(ctx context.Context, responderID string) ([]domain.Comment, error)
	Create(ctx context.Context, input service.CreateInput) (domain.Comment, error)
	Delete(ctx context.Context, id string) error
}

// createCommentRequest also accepts the legacy field names rid and comment.
type createCommentRequest struct {
	ResponderID string `json:"responderId"`
	RID         string `json:"rid"`
	Text        string `json:"text"`
	Comment     string `json:"comment"`
}

type Handler struct {
	store  Store
	errors *commonhttp.ErrorHandler
}

func NewHandler(store Store, log *logger.Logger) *Handler {
	return &Handler{store: store, errors: commonhttp.NewErrorHandler(log)}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/comments", h.list).Methods(http.MethodGet)
	r.HandleFunc("/posts/{pid}/comments", h.listByPost).Methods(http.MethodGet)
	r.HandleFunc("/responder/{rid}/comments", h.listByResponder).Methods(http.MethodGet)
	r.HandleFunc("/posts/{pid}/comments/add", h.create).Methods(http.MethodPost)
	r.HandleFunc("/posts/{pid}/comments/delete/{id}", h.delete).Methods(http.MethodDelete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	comments, err := h.store.ListAll(r.Context())
	h.writeList(w, r, comments, err)
}

func (h *Handler) listByPost(w http.ResponseWriter, r *http.Request) {
	comments, err := h.store.ListByPost(r.Context(), mux.Vars(r)["pid"])
	h.writeList(w, r, comments, err)
}

func (h *Handler) listByResponder(w http.ResponseWriter, r *http.Request) {
	comments, err := h.store.ListByResponder(r.Context(), mux.Vars(r)["rid"])
	h.writeList(w, r, comments, err)
}

func (h *Handler) writeList(w http.ResponseWriter, r *http.Request, comments []domain.Comment, err error) {
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	commonhttp.WriteData(w, http.StatusOK, "successfully fetched the comments", comments)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCommentRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	input := service.CreateInput{
		PostID:      mux.Vars(r)["pid"],
		ResponderID: req.ResponderID,
		Text:        req.Text,
	}
	if input.ResponderID == "" {
		input.ResponderID = req.RID
	}
	if input.Text == "" {
		input.Text = req.Comment
	}

	c, err := h.store.Create(r.Context(), input)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteData(w, http.StatusOK, "successfully created the comment", c)
}

// delete ignores {pid}; the comment id alone identifies the record.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteMessage(w, http.StatusOK, "successfully deleted the comment")
}
