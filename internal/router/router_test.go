package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cat-health-api/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{BcryptCost: 4}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_CatLifecycle(t *testing.T) {
	ts := newTestServer(t)

	token := registerUser(t, ts.URL, "Alice", "alice@example.com", "secret1")

	// 1) Create a cat
	catID := createCat(t, ts.URL, token, map[string]any{
		"name":        "Fluffy",
		"breed":       "Maine Coon",
		"age":         3,
		"weight":      5.2,
		"description": "fluffy indeed",
	})

	// 2) Read it back, fields intact
	{
		st, body := doReq(t, ts.URL, "GET", "/api/cats/"+catID, token, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get cat, got %d body=%s", st, string(body))
		}
		var resp struct {
			Name          string           `json:"name"`
			Breed         string           `json:"breed"`
			Age           *int             `json:"age"`
			Weight        *float64         `json:"weight"`
			HealthRecords []map[string]any `json:"health_records"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal cat: %v", err)
		}
		if resp.Name != "Fluffy" || resp.Breed != "Maine Coon" {
			t.Fatalf("unexpected cat fields: %+v", resp)
		}
		if resp.Age == nil || *resp.Age != 3 {
			t.Fatalf("expected age 3, got %v", resp.Age)
		}
		if resp.Weight == nil || *resp.Weight != 5.2 {
			t.Fatalf("expected weight 5.2, got %v", resp.Weight)
		}
		if len(resp.HealthRecords) != 0 {
			t.Fatalf("expected no records yet, got %d", len(resp.HealthRecords))
		}
	}

	// 3) Full update; omitted optional fields are cleared, not kept
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/cats/"+catID, token, map[string]any{
			"name": "Fluffy II",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update cat, got %d body=%s", st, string(body))
		}
		var resp struct {
			Name string `json:"name"`
			Age  *int   `json:"age"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Name != "Fluffy II" {
			t.Fatalf("expected updated name, got %q", resp.Name)
		}
		if resp.Age != nil {
			t.Fatalf("expected age cleared after full update, got %v", *resp.Age)
		}
	}

	// 4) Add two health records with out-of-order dates
	recNew := createRecord(t, ts.URL, token, catID, map[string]any{
		"type":        "vaccination",
		"date":        "2026-03-10",
		"description": "rabies booster",
	})
	createRecord(t, ts.URL, token, catID, map[string]any{
		"type":        "checkup",
		"date":        "2026-01-05",
		"description": "annual checkup",
		"notes":       "all good",
	})

	// 5) List comes back newest first
	{
		st, body := doReq(t, ts.URL, "GET", "/api/cats/"+catID+"/records", token, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list records, got %d body=%s", st, string(body))
		}
		var resp []struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal records: %v", err)
		}
		if len(resp) != 2 {
			t.Fatalf("expected 2 records, got %d", len(resp))
		}
		if resp[0].ID != recNew || resp[0].Type != "vaccination" {
			t.Fatalf("expected newest record first, got %+v", resp)
		}
	}

	// 6) Cat detail embeds the same records
	{
		st, body := doReq(t, ts.URL, "GET", "/api/cats/"+catID, token, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get cat, got %d", st)
		}
		var resp struct {
			HealthRecords []map[string]any `json:"health_records"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.HealthRecords) != 2 {
			t.Fatalf("expected 2 embedded records, got %d", len(resp.HealthRecords))
		}
	}

	// 7) Update then delete a record
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/records/"+recNew, token, map[string]any{
			"type":        "medication",
			"date":        "2026-03-11",
			"description": "antibiotics",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update record, got %d body=%s", st, string(body))
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/api/records/"+recNew, token, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete record, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/api/records/"+recNew, token, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 deleting twice, got %d", st)
		}
	}

	// 8) Delete the cat
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/api/cats/"+catID, token, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete cat, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/api/cats/"+catID, token, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
	}
}

func TestHTTP_RegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	registerUser(t, ts.URL, "Alice", "alice@example.com", "secret1")

	// Same email again => 400
	{
		st, body := doReq(t, ts.URL, "POST", "/api/register", "", map[string]any{
			"name":     "Alice Again",
			"email":    "alice@example.com",
			"password": "secret2",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 duplicate email, got %d body=%s", st, string(body))
		}
	}

	// Login with the right password
	{
		st, body := doReq(t, ts.URL, "POST", "/api/login", "", map[string]any{
			"email":    "Alice@Example.com", // case-insensitive
			"password": "secret1",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
		}
		var resp struct {
			Token string `json:"token"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Token == "" {
			t.Fatalf("login: missing token body=%s", string(body))
		}
	}

	// Wrong password and unknown email fail the same way
	for _, creds := range []map[string]any{
		{"email": "alice@example.com", "password": "wrong"},
		{"email": "nobody@example.com", "password": "secret1"},
	} {
		st, body := doReq(t, ts.URL, "POST", "/api/login", "", creds)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 login failure, got %d", st)
		}
		if !strings.Contains(string(body), "invalid email or password") {
			t.Fatalf("unexpected login failure body: %s", string(body))
		}
	}
}

func TestHTTP_OwnershipBoundaries(t *testing.T) {
	ts := newTestServer(t)

	aliceTok := registerUser(t, ts.URL, "Alice", "alice@example.com", "secret1")
	bobTok := registerUser(t, ts.URL, "Bob", "bob@example.com", "secret2")

	catID := createCat(t, ts.URL, aliceTok, map[string]any{"name": "Milo"})
	recID := createRecord(t, ts.URL, aliceTok, catID, map[string]any{
		"type":        "checkup",
		"date":        "2026-02-01",
		"description": "dental",
	})

	forbidden := []struct {
		method, path string
		body         map[string]any
	}{
		{"GET", "/api/cats/" + catID, nil},
		{"PUT", "/api/cats/" + catID, map[string]any{"name": "Stolen"}},
		{"DELETE", "/api/cats/" + catID, nil},
		{"GET", "/api/cats/" + catID + "/records", nil},
		{"POST", "/api/cats/" + catID + "/records", map[string]any{
			"type": "other", "date": "2026-02-02", "description": "x",
		}},
		{"PUT", "/api/records/" + recID, map[string]any{
			"type": "other", "date": "2026-02-02", "description": "x",
		}},
		{"DELETE", "/api/records/" + recID, nil},
		{"POST", "/api/cats/" + catID + "/insurance", map[string]any{
			"provider": "Acme", "policy_number": "P-1",
			"start_date": "2026-01-01", "end_date": "2027-01-01",
		}},
	}
	for _, tc := range forbidden {
		st, body := doReq(t, ts.URL, tc.method, tc.path, bobTok, tc.body)
		if st != http.StatusForbidden {
			t.Fatalf("%s %s: expected 403 for non-owner, got %d body=%s", tc.method, tc.path, st, string(body))
		}
	}

	// Unknown ids are 404 for everyone, owner or not
	for _, path := range []string{
		"/api/cats/no-such-id",
		"/api/cats/no-such-id/records",
		"/api/records/no-such-id",
		"/api/insurance/no-such-id",
	} {
		st, _ := doReq(t, ts.URL, "GET", path, bobTok, nil)
		if st != http.StatusNotFound && st != http.StatusMethodNotAllowed {
			// records/insurance by id only support PUT/DELETE
			t.Fatalf("GET %s: expected 404/405, got %d", path, st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/api/cats/no-such-id", aliceTok, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 deleting unknown cat, got %d", st)
		}
	}

	// Nothing above touched Alice's data
	st, body := doReq(t, ts.URL, "GET", "/api/cats/"+catID, aliceTok, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d", st)
	}
	if !strings.Contains(string(body), "Milo") {
		t.Fatalf("cat name changed: %s", string(body))
	}
}

func TestHTTP_ListsAreScopedToOwner(t *testing.T) {
	ts := newTestServer(t)

	aliceTok := registerUser(t, ts.URL, "Alice", "alice@example.com", "secret1")
	bobTok := registerUser(t, ts.URL, "Bob", "bob@example.com", "secret2")

	createCat(t, ts.URL, aliceTok, map[string]any{"name": "Fluffy"})
	createCat(t, ts.URL, aliceTok, map[string]any{"name": "Milo"})
	createCat(t, ts.URL, bobTok, map[string]any{"name": "Tiger"})

	assertListLen(t, ts.URL, aliceTok, "/api/cats", 2)
	assertListLen(t, ts.URL, bobTok, "/api/cats", 1)

	st, _ := doReq(t, ts.URL, "POST", "/api/todos", aliceTok, map[string]any{"title": "vet visit"})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create todo, got %d", st)
	}
	assertListLen(t, ts.URL, aliceTok, "/api/todos", 1)
	assertListLen(t, ts.URL, bobTok, "/api/todos", 0)
}

func TestHTTP_InsuranceFlow(t *testing.T) {
	ts := newTestServer(t)

	token := registerUser(t, ts.URL, "Alice", "alice@example.com", "secret1")
	catID := createCat(t, ts.URL, token, map[string]any{"name": "Fluffy"})

	// end before start => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/cats/"+catID+"/insurance", token, map[string]any{
			"provider":      "Acme Pet",
			"policy_number": "P-100",
			"start_date":    "2026-06-01",
			"end_date":      "2026-01-01",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for inverted dates, got %d", st)
		}
	}

	var entryID string
	{
		st, body := doReq(t, ts.URL, "POST", "/api/cats/"+catID+"/insurance", token, map[string]any{
			"provider":      "Acme Pet",
			"policy_number": "P-100",
			"start_date":    "2026-01-01",
			"end_date":      "2027-01-01",
			"premium":       19.99,
			"coverage":      "accidents and illness",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create entry, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID == "" {
			t.Fatalf("create entry: missing id body=%s", string(body))
		}
		entryID = resp.ID
	}

	assertListLen(t, ts.URL, token, "/api/cats/"+catID+"/insurance", 1)

	{
		st, body := doReq(t, ts.URL, "PUT", "/api/insurance/"+entryID, token, map[string]any{
			"provider":      "Acme Pet",
			"policy_number": "P-100",
			"start_date":    "2026-01-01",
			"end_date":      "2028-01-01",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update entry, got %d body=%s", st, string(body))
		}
	}

	{
		st, _ := doReq(t, ts.URL, "DELETE", "/api/insurance/"+entryID, token, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete entry, got %d", st)
		}
	}
	assertListLen(t, ts.URL, token, "/api/cats/"+catID+"/insurance", 0)
}

func TestHTTP_TodosFlow(t *testing.T) {
	ts := newTestServer(t)

	token := registerUser(t, ts.URL, "Alice", "alice@example.com", "secret1")

	var todoID string
	{
		st, body := doReq(t, ts.URL, "POST", "/api/todos", token, map[string]any{
			"title":    "flea treatment",
			"due_date": "2026-09-15",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create todo, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID   string `json:"id"`
			Done bool   `json:"done"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID == "" || resp.Done {
			t.Fatalf("unexpected todo: %s", string(body))
		}
		todoID = resp.ID
	}

	// Mark done
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/todos/"+todoID, token, map[string]any{
			"title": "flea treatment",
			"done":  true,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update todo, got %d body=%s", st, string(body))
		}
		var resp struct {
			Done    bool `json:"done"`
			DueDate *any `json:"due_date"`
		}
		_ = json.Unmarshal(body, &resp)
		if !resp.Done {
			t.Fatalf("expected done=true, got %s", string(body))
		}
		if resp.DueDate != nil {
			t.Fatalf("expected due_date cleared on full update, got %s", string(body))
		}
	}

	// Empty title => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/todos", token, map[string]any{"title": "  "})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 blank title, got %d", st)
		}
	}

	{
		st, _ := doReq(t, ts.URL, "DELETE", "/api/todos/"+todoID, token, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete todo, got %d", st)
		}
	}
	assertListLen(t, ts.URL, token, "/api/todos", 0)
}

func TestHTTP_AuthGuards(t *testing.T) {
	ts := newTestServer(t)

	// No token => 401
	{
		st, body := doReq(t, ts.URL, "GET", "/api/cats", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without token, got %d body=%s", st, string(body))
		}
	}

	// Garbage token => 403
	{
		st, body := doReq(t, ts.URL, "GET", "/api/cats", "not-a-jwt", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for bad token, got %d body=%s", st, string(body))
		}
	}

	// Unknown route => 404 with the standard body
	{
		st, body := doReq(t, ts.URL, "GET", "/api/unknown", "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unknown route, got %d", st)
		}
		if !strings.Contains(string(body), "Endpoint not found") {
			t.Fatalf("unexpected 404 body: %s", string(body))
		}
	}

	// Health check stays public
	{
		st, _ := doReq(t, ts.URL, "GET", "/health", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 health, got %d", st)
		}
	}
}

func registerUser(t *testing.T, baseURL, name, email, password string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/register", "", map[string]any{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", st, string(body))
	}

	var resp struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Token == "" {
		t.Fatalf("register: missing token body=%s", string(body))
	}
	return resp.Token
}

func createCat(t *testing.T, baseURL, token string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/cats", token, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create cat, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create cat: missing id body=%s", string(body))
	}
	return resp.ID
}

func createRecord(t *testing.T, baseURL, token, catID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/cats/"+catID+"/records", token, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create record, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create record: missing id body=%s", string(body))
	}
	return resp.ID
}

func assertListLen(t *testing.T, baseURL, token, path string, want int) {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", path, token, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list %s, got %d body=%s", path, st, string(body))
	}
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		t.Fatalf("unmarshal list %s: %v body=%s", path, err, string(body))
	}
	if len(items) != want {
		t.Fatalf("list %s: expected %d items, got %d", path, want, len(items))
	}
}

func doReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
