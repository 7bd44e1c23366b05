package records

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
// service; declared here to keep the import direction cats -> records.
// A missing cat comes back as found=false; the error means the store failed.
type CatResolver interface {
	OwnerOf(ctx context.Context, catID string) (ownerID string, found bool, err error)
}

func RegisterRoutes(r chi.Router, svc *Service, catOwners CatResolver) {
	r.Route("/cats/{catID}/records", func(rr chi.Router) {
		rr.Post("/", createRecordHandler(svc, catOwners))
		rr.Get("/", listRecordsHandler(svc, catOwners))
	})

	r.Route("/records/{recordID}", func(rr chi.Router) {
		rr.Put("/", updateRecordHandler(svc, catOwners))
		rr.Delete("/", deleteRecordHandler(svc, catOwners))
	})
}

type recordRequest struct {
	Type        RecordType `json:"type" enums:"vaccination,checkup,medication,other"`
	Date        string     `json:"date"` // YYYY-MM-DD or RFC3339
	Description string     `json:"description"`
	Notes       string     `json:"notes"`
	FileURL     string     `json:"file_url"`
}

// Response is a health record as returned by the API. Exported so the cats
// handler can embed a cat's records in its detail payload.
type Response struct {
	ID          string     `json:"id"`
	CatID       string     `json:"cat_id"`
	Type        RecordType `json:"type"`
	Date        time.Time  `json:"date"`
	Description string     `json:"description"`
	Notes       string     `json:"notes"`
	FileURL     string     `json:"file_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewResponse converts a record to its API shape.
func NewResponse(rec HealthRecord) Response {
	return Response{
		ID:          rec.ID,
		CatID:       rec.CatID,
		Type:        rec.Type,
		Date:        rec.Date,
		Description: rec.Description,
		Notes:       rec.Notes,
		FileURL:     rec.FileURL,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

// createRecordHandler godoc
// @Summary Add a health record
// @Description Adds a health record to one of the caller's cats. The cat must exist (404 otherwise) and belong to the caller (403 otherwise).
// @Tags records
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param catID path string true "Cat ID"
// @Param payload body recordRequest true "Record data; date as YYYY-MM-DD or RFC3339"
// @Success 201 {object} Response
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cats/{catID}/records [post]
func createRecordHandler(svc *Service, catOwners CatResolver) http.HandlerFunc {
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

		in, err := decodeRecordRequest(r)
		if err != nil {
			httpx.ErrorWith(w, http.StatusBadRequest, err.Error(), err)
			return
		}

		rec, err := svc.Create(r.Context(), catID, CreateInput(in))
		if err != nil {
			httpx.ErrorWith(w, http.StatusBadRequest, "invalid record", err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, NewResponse(rec))
	}
}

// listRecordsHandler godoc
// @Summary List a cat's health records
// @Description Lists the health records of one of the caller's cats, sorted by date descending.
// @Tags records
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param catID path string true "Cat ID"
// @Success 200 {array} Response
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cats/{catID}/records [get]
func listRecordsHandler(svc *Service, catOwners CatResolver) http.HandlerFunc {
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
			httpx.ErrorWith(w, http.StatusInternalServerError, "could not list records", err)
			return
		}

		out := make([]Response, 0, len(items))
		for _, rec := range items {
			out = append(out, NewResponse(rec))
		}

		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func updateRecordHandler(svc *Service, catOwners CatResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}

		recordID := chi.URLParam(r, "recordID")
		rec, err := svc.GetByID(r.Context(), recordID)
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "record not found")
			return
		}
		if err != nil {
			httpx.ErrorWith(w, http.StatusInternalServerError, "could not load record", err)
			return
		}

		// Ownership is transitive: record -> cat -> owner.
		if !callerOwnsCat(r, catOwners, rec.CatID, claims.UserID, w) {
			return
		}

		in, err := decodeRecordRequest(r)
		if err != nil {
			httpx.ErrorWith(w, http.StatusBadRequest, err.Error(), err)
			return
		}

		updated, err := svc.Update(r.Context(), recordID, UpdateInput(in))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Error(w, http.StatusNotFound, "record not found")
			case errors.Is(err, ErrInvalidInput):
				httpx.Error(w, http.StatusBadRequest, "invalid record")
			default:
				httpx.ErrorWith(w, http.StatusInternalServerError, "could not update record", err)
			}
			return
		}

		httpx.WriteJSON(w, http.StatusOK, NewResponse(updated))
	}
}

func deleteRecordHandler(svc *Service, catOwners CatResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}

		recordID := chi.URLParam(r, "recordID")
		rec, err := svc.GetByID(r.Context(), recordID)
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "record not found")
			return
		}
		if err != nil {
			httpx.ErrorWith(w, http.StatusInternalServerError, "could not load record", err)
			return
		}

		if !callerOwnsCat(r, catOwners, rec.CatID, claims.UserID, w) {
			return
		}

		if err := svc.Delete(r.Context(), recordID); err != nil {
			httpx.ErrorWith(w, http.StatusInternalServerError, "could not delete record", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
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

type recordInput struct {
	Type        RecordType
	Date        time.Time
	Description string
	Notes       string
	FileURL     string
}

func decodeRecordRequest(r *http.Request) (recordInput, error) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return recordInput{}, errors.New("invalid json")
	}

	if !req.Type.IsValid() {
		return recordInput{}, errors.New("type must be one of vaccination, checkup, medication, other")
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return recordInput{}, errors.New("date must be YYYY-MM-DD or RFC3339")
	}

	return recordInput{
		Type:        req.Type,
		Date:        date,
		Description: req.Description,
		Notes:       req.Notes,
		FileURL:     req.FileURL,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
