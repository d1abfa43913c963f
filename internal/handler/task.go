package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-ticker/internal/model"
	"github.com/BuzzLyutic/task-ticker/internal/service"
	"github.com/BuzzLyutic/task-ticker/internal/view"
	"github.com/BuzzLyutic/task-ticker/pkg/respond"
)

type TaskHandler struct {
	store  *service.TaskStore
	logger *zap.Logger
}

func NewTaskHandler(store *service.TaskStore, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		store:  store,
		logger: logger,
	}
}

type createRequest struct {
	Text string `json:"text"`
}

type listResponse struct {
	Tasks   []model.Task `json:"tasks"`
	Pending int          `json:"pending"`
}

// Page renders the whole list, or the loading skeleton until hydrated.
func (h *TaskHandler) Page(w http.ResponseWriter, r *http.Request) {
	phase, tasks := h.store.Snapshot()

	page := view.Page{Phase: phase, Tasks: tasks, Draft: r.URL.Query().Get("draft")}
	err := respond.HTML(w, r, http.StatusOK, func(out io.Writer) error {
		return view.RenderPage(out, page)
	})
	if err != nil {
		h.logger.Error("failed to render page", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// Формы страницы: ошибки ввода молча игнорируются, всегда редирект на "/"

func (h *TaskHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	text := r.PostForm.Get("text")

	_, res, err := h.store.Add(r.Context(), text)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	if res == model.RejectedEmpty && text != "" {
		respond.SeeOther(w, r, "/?draft="+url.QueryEscape(text))
		return
	}
	respond.SeeOther(w, r, "/")
}

func (h *TaskHandler) ToggleForm(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.Toggle(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.SeeOther(w, r, "/")
}

func (h *TaskHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.SeeOther(w, r, "/")
}

// JSON API

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	phase, tasks := h.store.Snapshot()
	if phase != model.Ready {
		h.handleErrors(w, r, service.ErrNotHydrated)
		return
	}
	respond.JSON(w, r, http.StatusOK, listResponse{Tasks: tasks, Pending: model.PendingCount(tasks)})
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}

	task, res, err := h.store.Add(r.Context(), req.Text)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	if res == model.RejectedEmpty {
		respond.Error(w, r, http.StatusUnprocessableEntity, "text must not be empty")
		return
	}

	w.Header().Set("Location", "/api/tasks/"+task.ID)
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	res, err := h.store.Toggle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	if res == model.NotFound {
		respond.Error(w, r, http.StatusNotFound, "not found")
		return
	}
	h.List(w, r)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	if res == model.NotFound {
		respond.Error(w, r, http.StatusNotFound, "not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, map[string]string{
		"status": "ok",
		"phase":  h.store.Phase().String(),
	})
}

func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotHydrated):
		respond.Error(w, r, http.StatusServiceUnavailable, "tasks are still loading")
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
