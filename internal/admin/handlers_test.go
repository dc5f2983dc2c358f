package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tendant/oauth2-store/internal/docdb"
	"github.com/tendant/oauth2-store/internal/domain"
	"github.com/tendant/oauth2-store/internal/store/docstore"
)

func newTestServer(t *testing.T) (*Server, *docstore.Store) {
	t.Helper()
	db := docdb.NewMemory()
	storage := docstore.New(db)
	return NewServer("127.0.0.1:0", storage, db), storage
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", rec.Code)
	}

	rec = doRequest(t, s, http.MethodGet, "/readyz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("readyz status = %d, want 200", rec.Code)
	}
}

func TestCreateAndGetClient(t *testing.T) {
	s, storage := newTestServer(t)

	body := `{"client_id":"web-app","client_secret":"s3cret","redirect_uri":"http://localhost/cb","grant_types":["authorization_code"],"scope":"read write"}`
	rec := doRequest(t, s, http.MethodPost, "/clients", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create client status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, s, http.MethodGet, "/clients/web-app", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get client status = %d, want 200", rec.Code)
	}

	var client domain.Client
	if err := json.Unmarshal(rec.Body.Bytes(), &client); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if client.ClientID != "web-app" {
		t.Errorf("ClientID = %q, want %q", client.ClientID, "web-app")
	}
	if client.Scope != "read write" {
		t.Errorf("Scope = %q, want %q", client.Scope, "read write")
	}

	// Secret was hashed and is verifiable through the adapter
	valid, err := storage.CheckClientCredentials(context.Background(), "web-app", "s3cret")
	if err != nil {
		t.Fatalf("CheckClientCredentials failed: %v", err)
	}
	if !valid {
		t.Error("Registered secret should verify")
	}
}

func TestCreateClientValidation(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/clients", `{"client_secret":"x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing client_id status = %d, want 400", rec.Code)
	}

	rec = doRequest(t, s, http.MethodPost, "/clients", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", rec.Code)
	}
}

func TestCreateClientDuplicate(t *testing.T) {
	s, _ := newTestServer(t)

	body := `{"client_id":"dup-app"}`
	if rec := doRequest(t, s, http.MethodPost, "/clients", body); rec.Code != http.StatusCreated {
		t.Fatalf("create client status = %d, want 201", rec.Code)
	}

	rec := doRequest(t, s, http.MethodPost, "/clients", body)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate client status = %d, want 409", rec.Code)
	}
}

func TestGetClientNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/clients/absent", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("absent client status = %d, want 404", rec.Code)
	}
}

func TestCreateUser(t *testing.T) {
	s, storage := newTestServer(t)

	body := `{"username":"alice","password":"password123","scope":"read"}`
	rec := doRequest(t, s, http.MethodPost, "/users", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	valid, err := storage.CheckUserCredentials(context.Background(), "alice", "password123")
	if err != nil {
		t.Fatalf("CheckUserCredentials failed: %v", err)
	}
	if !valid {
		t.Error("Registered password should verify")
	}

	// Missing password rejected
	rec = doRequest(t, s, http.MethodPost, "/users", `{"username":"bob"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing password status = %d, want 400", rec.Code)
	}
}
