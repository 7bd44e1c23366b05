package insurance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cat-health-api/internal/httpx"
	"cat-health-api/internal/middleware"
)

// CatResolver resolves the owning user of a cat. Implemented by the cats
// service. A missing cat comes back as found=false; the error means the
// store failed.
type CatResolver interface {
	OwnerOf(ctx context.Context, catID string) (ownerID string, found bool, err error)
}

// callerOwnsCat resolves the cat's owner and writes the failure response when
// the cat is missing (404), the store fails (500) or the caller is not the
// owner (403).
func callerOwnsCat(r *http.Request, catOwners CatResolver, catID, callerID string, w http.ResponseWriter) bool {
	ownerID, found, err := catOwners.OwnerOf(r.Context(), catID)
	if err != nil {
		httpx.ErrorWith(w, http.StatusInternalServerError, "could not resolve cat owner", err)
		return false
	}
	if !found {
		httpx.Error(w, http.StatusNotFound, "cat not found")
		return false
	}
	if ownerID != callerID {
		httpx.Error(w, http.StatusForbidden, "you do not own this cat")
		return false
	}
	return true
}

func RegisterRoutes(r chi.Router, svc *Service, catOwners CatResolver) {
	r.Route("/cats/{catID}/insurance", func(ir chi.Router) {
		ir.Post("/", createEntryHandler(svc, catOwners))
		ir.Get("/", listEntriesHandler(svc, catOwners))
	})

	r.Route("/insurance/{entryID}", func(ir chi.Router) {
		ir.Put("/", updateEntryHandler(svc, catOwners))
		ir.Delete("/", deleteEntryHandler(svc, catOwners))
	})
}

type entryRequest struct {
	Provider     string   `json:"provider"`
	PolicyNumber string   `json:"policy_number"`
	StartDate    string   `json:"start_date"` // YYYY-MM-DD
	EndDate      string   `json:"end_date"`   // YYYY-MM-DD
	Premium      *float64 `json:"premium"`
	Coverage     string   `json:"coverage"`
}

type entryResponse struct {
	ID           string    `json:"id"`
	CatID        string    `json:"cat_id"`
	Provider     string    `json:"provider"`
	PolicyNumber string    `json:"policy_number"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Premium      *float64  `json:"premium"`
	Coverage     string    `json:"coverage,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func createEntryHandler(svc *Service, catOwners CatResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}

		catID := chi.URLParam(r, "catID")
		if !callerOwnsCat(r, catOwners, catID, claims.UserID, w) {
			return
		}

		in, err := decodeEntryRequest(r)
		if err != nil {
			httpx.ErrorWith(w, http.StatusBadRequest, err.Error(), err)
			return
		}

		e, err := svc.Create(r.Context(), catID, in)
		if err != nil {
			httpx.ErrorWith(w, http.StatusBadRequest, "invalid insurance entry", err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toEntryResponse(e))
	}
}

func listEntriesHandler(svc *Service, catOwners CatResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}

		catID := chi.URLParam(r, "catID")
		if !callerOwnsCat(r, catOwners, catID, claims.UserID, w) {
			return
		}

		items, err := svc.ListByCat(r.Context(), catID)
		if err != nil {
			httpx.ErrorWith(w, http.StatusInternalServerError, "could not list insurance entries", err)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntryResponse(e))
		}

		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func updateEntryHandler(svc *Service, catOwners CatResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}

		entryID := chi.URLParam(r, "entryID")
		e, err := svc.GetByID(r.Context(), entryID)
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "insurance entry not found")
			return
		}
		if err != nil {
			httpx.ErrorWith(w, http.StatusInternalServerError, "could not load insurance entry", err)
			return
		}

		if !callerOwnsCat(r, catOwners, e.CatID, claims.UserID, w) {
			return
		}

		in, err := decodeEntryRequest(r)
		if err != nil {
			httpx.ErrorWith(w, http.StatusBadRequest, err.Error(), err)
			return
		}

		updated, err := svc.Update(r.Context(), entryID, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Error(w, http.StatusNotFound, "insurance entry not found")
			case errors.Is(err, ErrInvalidInput):
				httpx.Error(w, http.StatusBadRequest, "invalid insurance entry")
			default:
				httpx.ErrorWith(w, http.StatusInternalServerError, "could not update insurance entry", err)
			}
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toEntryResponse(updated))
	}
}

func deleteEntryHandler(svc *Service, catOwners CatResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}

		entryID := chi.URLParam(r, "entryID")
		e, err := svc.GetByID(r.Context(), entryID)
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "insurance entry not found")
			return
		}
		if err != nil {
			httpx.ErrorWith(w, http.StatusInternalServerError, "could not load insurance entry", err)
			return
		}

		if !callerOwnsCat(r, catOwners, e.CatID, claims.UserID, w) {
			return
		}

		if err := svc.Delete(r.Context(), entryID); err != nil {
			httpx.ErrorWith(w, http.StatusInternalServerError, "could not delete insurance entry", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func decodeEntryRequest(r *http.Request) (Input, error) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return Input{}, errors.New("invalid json")
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return Input{}, errors.New("start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return Input{}, errors.New("end_date must be YYYY-MM-DD")
	}

	return Input{
		Provider:     req.Provider,
		PolicyNumber: req.PolicyNumber,
		StartDate:    start,
		EndDate:      end,
		Premium:      req.Premium,
		Coverage:     req.Coverage,
	}, nil
}

func toEntryResponse(e Entry) entryResponse {
	return entryResponse{
		ID:           e.ID,
		CatID:        e.CatID,
		Provider:     e.Provider,
		PolicyNumber: e.PolicyNumber,
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,
		Premium:      e.Premium,
		Coverage:     e.Coverage,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
