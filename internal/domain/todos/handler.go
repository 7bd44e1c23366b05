package todos

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cat-health-api/internal/httpx"
	"cat-health-api/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/todos", func(tr chi.Router) {
		tr.Post("/", createTodoHandler(svc))
		tr.Get("/", listTodosHandler(svc))
		tr.Put("/{todoID}", updateTodoHandler(svc))
		tr.Delete("/{todoID}", deleteTodoHandler(svc))
	})
}

type todoRequest struct {
	Title   string `json:"title"`
	Done    bool   `json:"done"`
	DueDate string `json:"due_date"` // YYYY-MM-DD, optional
}

type todoResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Done      bool       `json:"done"`
	DueDate   *time.Time `json:"due_date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func createTodoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}

		in, err := decodeTodoRequest(r)
		if err != nil {
			httpx.ErrorWith(w, http.StatusBadRequest, err.Error(), err)
			return
		}

		t, err := svc.Create(r.Context(), claims.UserID, in)
		if err != nil {
			httpx.ErrorWith(w, http.StatusBadRequest, "invalid todo", err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toTodoResponse(t))
	}
}

func listTodosHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}

		items, err := svc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			httpx.ErrorWith(w, http.StatusInternalServerError, "could not list todos", err)
			return
		}

		out := make([]todoResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toTodoResponse(t))
		}

		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func updateTodoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}

		todoID := chi.URLParam(r, "todoID")
		current, err := svc.GetByID(r.Context(), todoID)
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "todo not found")
			return
		}
		if err != nil {
			httpx.ErrorWith(w, http.StatusInternalServerError, "could not load todo", err)
			return
		}
		if current.UserID != claims.UserID {
			httpx.Error(w, http.StatusForbidden, "you do not own this todo")
			return
		}

		in, err := decodeTodoRequest(r)
		if err != nil {
			httpx.ErrorWith(w, http.StatusBadRequest, err.Error(), err)
			return
		}

		updated, err := svc.Update(r.Context(), todoID, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Error(w, http.StatusNotFound, "todo not found")
			case errors.Is(err, ErrInvalidInput):
				httpx.Error(w, http.StatusBadRequest, "invalid todo")
			default:
				httpx.ErrorWith(w, http.StatusInternalServerError, "could not update todo", err)
			}
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toTodoResponse(updated))
	}
}

func deleteTodoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}

		todoID := chi.URLParam(r, "todoID")
		current, err := svc.GetByID(r.Context(), todoID)
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "todo not found")
			return
		}
		if err != nil {
			httpx.ErrorWith(w, http.StatusInternalServerError, "could not load todo", err)
			return
		}
		if current.UserID != claims.UserID {
			httpx.Error(w, http.StatusForbidden, "you do not own this todo")
			return
		}

		if err := svc.Delete(r.Context(), todoID); err != nil {
			httpx.ErrorWith(w, http.StatusInternalServerError, "could not delete todo", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func decodeTodoRequest(r *http.Request) (Input, error) {
	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return Input{}, errors.New("invalid json")
	}

	in := Input{Title: req.Title, Done: req.Done}
	if req.DueDate != "" {
		t, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return Input{}, errors.New("due_date must be YYYY-MM-DD")
		}
		in.DueDate = &t
	}

	return in, nil
}

func toTodoResponse(t Todo) todoResponse {
	return todoResponse{
		ID:        t.ID,
		Title:     t.Title,
		Done:      t.Done,
		DueDate:   t.DueDate,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
