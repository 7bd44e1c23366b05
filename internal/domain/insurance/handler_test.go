package insurance

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"cat-health-api/internal/middleware"
	"cat-health-api/internal/ports/auth"
)

type stubResolver struct {
	ownerID string
	found   bool
	err     error
}

func (s stubResolver) OwnerOf(_ context.Context, _ string) (string, bool, error) {
	return s.ownerID, s.found, s.err
}

type failingRepo struct{}

var errStore = errors.New("store unavailable")

func (failingRepo) Create(_ context.Context, _ Entry) error { return errStore }

func (failingRepo) GetByID(_ context.Context, _ string) (Entry, error) { return Entry{}, errStore }

func (failingRepo) ListByCat(_ context.Context, _ string) ([]Entry, error) { return nil, errStore }

func (failingRepo) Update(_ context.Context, _ Entry) error { return errStore }

func (failingRepo) Delete(_ context.Context, _ string) error { return errStore }

func newInsuranceHandler(repo Repository, resolver CatResolver) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewService(repo), resolver)
	return r
}

func serveAs(t *testing.T, h http.Handler, method, target, userID string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	req = req.WithContext(middleware.WithClaims(req.Context(), auth.Claims{UserID: userID}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestOwnerResolutionOutcomes(t *testing.T) {
	cases := []struct {
		name     string
		resolver stubResolver
		want     int
	}{
		{"store failure is a server error", stubResolver{err: errStore}, http.StatusInternalServerError},
		{"missing cat is not found", stubResolver{found: false}, http.StatusNotFound},
		{"foreign cat is forbidden", stubResolver{ownerID: "someone-else", found: true}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newInsuranceHandler(newTestRepo(), tc.resolver)

			rec := serveAs(t, h, http.MethodPost, "/cats/cat-1/insurance", "owner-1")
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())

			rec = serveAs(t, h, http.MethodGet, "/cats/cat-1/insurance", "owner-1")
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestEntryFetchStoreFailureIsServerError(t *testing.T) {
	h := newInsuranceHandler(failingRepo{}, stubResolver{ownerID: "owner-1", found: true})

	rec := serveAs(t, h, http.MethodPut, "/insurance/entry-1", "owner-1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())

	rec = serveAs(t, h, http.MethodDelete, "/insurance/entry-1", "owner-1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())
}
