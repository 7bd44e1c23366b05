package cats

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"cat-health-api/internal/domain/records"
	"cat-health-api/internal/httpx"
	"cat-health-api/internal/middleware"
)

var validate = validator.New()

func RegisterRoutes(r chi.Router, svc *Service, recSvc *records.Service) {
	r.Route("/cats", func(cr chi.Router) {
		cr.Post("/", createCatHandler(svc))
		cr.Get("/", listCatsHandler(svc))

		cr.Get("/{catID}", getCatHandler(svc, recSvc))
		cr.Put("/{catID}", updateCatHandler(svc))
		cr.Delete("/{catID}", deleteCatHandler(svc))
	})
}

type catRequest struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Breed       string   `json:"breed" validate:"max=120"`
	Age         *int     `json:"age" validate:"omitempty,gte=0,lte=50"`
	Weight      *float64 `json:"weight" validate:"omitempty,gt=0"`
	Description string   `json:"description" validate:"max=2000"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url"`
}

type catResponse struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	Name        string    `json:"name"`
	Breed       string    `json:"breed"`
	Age         *int      `json:"age"`
	Weight      *float64  `json:"weight"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type catDetailResponse struct {
	catResponse
	HealthRecords []records.Response `json:"health_records"`
}

func createCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}

		req, err := decodeCatRequest(r)
		if err != nil {
			httpx.ErrorWith(w, http.StatusBadRequest, "invalid cat payload", err)
			return
		}

		c, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:        req.Name,
			Breed:       req.Breed,
			Age:         req.Age,
			Weight:      req.Weight,
			Description: req.Description,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.Error(w, http.StatusBadRequest, "invalid cat payload")
				return
			}
			httpx.ErrorWith(w, http.StatusInternalServerError, "could not create cat", err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toCatResponse(c))
	}
}

func listCatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			httpx.ErrorWith(w, http.StatusInternalServerError, "could not list cats", err)
			return
		}

		out := make([]catResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCatResponse(c))
		}

		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getCatHandler(svc *Service, recSvc *records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}

		catID := chi.URLParam(r, "catID")
		c, err := svc.GetByID(r.Context(), catID)
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "cat not found")
			return
		}
		if err != nil {
			httpx.ErrorWith(w, http.StatusInternalServerError, "could not load cat", err)
			return
		}
		if c.OwnerUserID != claims.UserID {
			httpx.Error(w, http.StatusForbidden, "you do not own this cat")
			return
		}

		recs, err := recSvc.ListByCat(r.Context(), catID)
		if err != nil {
			httpx.ErrorWith(w, http.StatusInternalServerError, "could not load health records", err)
			return
		}

		detail := catDetailResponse{
			catResponse:   toCatResponse(c),
			HealthRecords: make([]records.Response, 0, len(recs)),
		}
		for _, rec := range recs {
			detail.HealthRecords = append(detail.HealthRecords, records.NewResponse(rec))
		}

		httpx.WriteJSON(w, http.StatusOK, detail)
	}
}

func updateCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}

		catID := chi.URLParam(r, "catID")
		current, err := svc.GetByID(r.Context(), catID)
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "cat not found")
			return
		}
		if err != nil {
			httpx.ErrorWith(w, http.StatusInternalServerError, "could not load cat", err)
			return
		}
		if current.OwnerUserID != claims.UserID {
			httpx.Error(w, http.StatusForbidden, "you do not own this cat")
			return
		}

		req, err := decodeCatRequest(r)
		if err != nil {
			httpx.ErrorWith(w, http.StatusBadRequest, "invalid cat payload", err)
			return
		}

		updated, err := svc.Update(r.Context(), catID, UpdateInput{
			Name:        req.Name,
			Breed:       req.Breed,
			Age:         req.Age,
			Weight:      req.Weight,
			Description: req.Description,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.Error(w, http.StatusBadRequest, "invalid cat payload")
			case errors.Is(err, ErrNotFound):
				httpx.Error(w, http.StatusNotFound, "cat not found")
			default:
				httpx.ErrorWith(w, http.StatusInternalServerError, "could not update cat", err)
			}
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toCatResponse(updated))
	}
}

func deleteCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}

		catID := chi.URLParam(r, "catID")
		current, err := svc.GetByID(r.Context(), catID)
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "cat not found")
			return
		}
		if err != nil {
			httpx.ErrorWith(w, http.StatusInternalServerError, "could not load cat", err)
			return
		}
		if current.OwnerUserID != claims.UserID {
			httpx.Error(w, http.StatusForbidden, "you do not own this cat")
			return
		}

		if err := svc.Delete(r.Context(), catID); err != nil {
			httpx.ErrorWith(w, http.StatusInternalServerError, "could not delete cat", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func decodeCatRequest(r *http.Request) (catRequest, error) {
	var req catRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return catRequest{}, errors.New("invalid json")
	}
	if err := validate.Struct(req); err != nil {
		return catRequest{}, err
	}
	return req, nil
}

func toCatResponse(c Cat) catResponse {
	return catResponse{
		ID:          c.ID,
		OwnerUserID: c.OwnerUserID,
		Name:        c.Name,
		Breed:       c.Breed,
		Age:         c.Age,
		Weight:      c.Weight,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
