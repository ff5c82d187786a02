package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/CatalinMihaiIonescu/ndcd-capstone-project/internal/models"
	"github.com/CatalinMihaiIonescu/ndcd-capstone-project/internal/service"

	"github.com/go-chi/chi/v5"
)

// memStore backs the services with maps; good enough to exercise the
// routing, identity, and status-code mapping.
type memStore struct {
	todos    map[string]map[string]models.Todo
	profiles map[string]models.Profile
}

func newMemStore() *memStore {
	return &memStore{
		todos:    map[string]map[string]models.Todo{},
		profiles: map[string]models.Profile{},
	}
}

func (m *memStore) ListTodos(_ context.Context, userID string) ([]models.Todo, error) {
	out := []models.Todo{}
	for _, t := range m.todos[userID] {
		out = append(out, t)
	}
	return out, nil
}

func (m *memStore) PutTodo(_ context.Context, t models.Todo) error {
	if m.todos[t.UserID] == nil {
		m.todos[t.UserID] = map[string]models.Todo{}
	}
	m.todos[t.UserID][t.TodoID] = t
	return nil
}

func (m *memStore) GetTodo(_ context.Context, userID, todoID string) (*models.Todo, error) {
	t, ok := m.todos[userID][todoID]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (m *memStore) UpdateTodo(_ context.Context, userID, todoID string, upd models.TodoUpdate) error {
	t, ok := m.todos[userID][todoID]
	if !ok {
		return nil
	}
	t.Name, t.DueDate, t.Done = upd.Name, upd.DueDate, upd.Done
	m.todos[userID][todoID] = t
	return nil
}

func (m *memStore) DeleteTodo(_ context.Context, userID, todoID string) error {
	delete(m.todos[userID], todoID)
	return nil
}

func (m *memStore) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memStore) PutProfile(_ context.Context, p models.Profile) error {
	m.profiles[p.UserID] = p
	return nil
}

func (m *memStore) DeleteProfile(_ context.Context, userID string) error {
	delete(m.profiles, userID)
	return nil
}

type memSubs struct{ n int }

func (m *memSubs) Subscribe(_ context.Context, _, _ string) (string, error) {
	m.n++
	return fmt.Sprintf("sub-%d", m.n), nil
}

func (m *memSubs) Unsubscribe(_ context.Context, _ string) error { return nil }

func (m *memSubs) Publish(_ context.Context, _, _ string) error { return nil }

type memSigner struct{}

func (memSigner) UploadURL(_ context.Context, objectID string) (string, error) {
	return "https://uploads.example.com/" + objectID + "?sig=fake", nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st := newMemStore()
	subs := &memSubs{}
	app := &App{
		Todos:    service.NewTodos(st, st, subs, memSigner{}, nil, "https://attachments.example.com"),
		Profiles: service.NewProfiles(st, subs),
		Log:      slog.Default(),
	}

	r := chi.NewRouter()
	RegisterRoutes(r, app)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, user, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if user != "" {
		req.Header.Set("X-User-Id", user)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func TestRequiresIdentity(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/todos/", "", "")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without X-User-Id, got %d", resp.StatusCode)
	}
}

func TestCreateAndListTodos(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/todos/", "u1", `{"name":"buy milk","dueDate":"2024-01-01"}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}

	var created struct {
		Item models.Todo `json:"item"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Item.TodoID == "" || created.Item.Done {
		t.Fatalf("unexpected created item: %+v", created.Item)
	}

	listResp := do(t, http.MethodGet, srv.URL+"/todos/", "u1", "")
	defer listResp.Body.Close()
	var listed struct {
		Items []models.Todo `json:"items"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listed.Items) != 1 || listed.Items[0].TodoID != created.Item.TodoID {
		t.Fatalf("expected the created todo back, got %+v", listed.Items)
	}

	// another user sees nothing
	otherResp := do(t, http.MethodGet, srv.URL+"/todos/", "u2", "")
	defer otherResp.Body.Close()
	var other struct {
		Items []models.Todo `json:"items"`
	}
	if err := json.NewDecoder(otherResp.Body).Decode(&other); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(other.Items) != 0 {
		t.Fatalf("u2 should have no todos, got %+v", other.Items)
	}
}

func TestCreateTodo_RequiresName(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/todos/", "u1", `{"dueDate":"2024-01-01"}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", resp.StatusCode)
	}
}

func TestUploadURL(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/todos/", "u1", `{"name":"buy milk","dueDate":"2024-01-01"}`)
	var created struct {
		Item models.Todo `json:"item"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()

	okResp := do(t, http.MethodPost, srv.URL+"/todos/"+created.Item.TodoID+"/attachment", "u1", "")
	defer okResp.Body.Close()
	if okResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", okResp.StatusCode)
	}
	var out struct {
		UploadURL string `json:"uploadUrl"`
	}
	if err := json.NewDecoder(okResp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(out.UploadURL, created.Item.TodoID) {
		t.Fatalf("upload url %q not scoped to the todo", out.UploadURL)
	}

	// unowned id: 404
	nfResp := do(t, http.MethodPost, srv.URL+"/todos/"+created.Item.TodoID+"/attachment", "u2", "")
	defer nfResp.Body.Close()
	if nfResp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unowned todo, got %d", nfResp.StatusCode)
	}
}

func TestProfileLifecycle(t *testing.T) {
	srv := newTestServer(t)

	missing := do(t, http.MethodGet, srv.URL+"/profile/", "u1", "")
	defer missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for absent profile, got %d", missing.StatusCode)
	}

	put := do(t, http.MethodPut, srv.URL+"/profile/", "u1", `{"email":"a@x.com"}`)
	defer put.Body.Close()
	if put.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", put.StatusCode)
	}

	get := do(t, http.MethodGet, srv.URL+"/profile/", "u1", "")
	defer get.Body.Close()
	var got struct {
		Item models.Profile `json:"item"`
	}
	if err := json.NewDecoder(get.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Item.Email != "a@x.com" || got.Item.SubscriptionID == "" {
		t.Fatalf("unexpected profile: %+v", got.Item)
	}

	del := do(t, http.MethodDelete, srv.URL+"/profile/", "u1", "")
	defer del.Body.Close()
	if del.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", del.StatusCode)
	}

	// deleting again is fine
	again := do(t, http.MethodDelete, srv.URL+"/profile/", "u1", "")
	defer again.Body.Close()
	if again.StatusCode != http.StatusNoContent {
		t.Fatalf("second delete: expected 204, got %d", again.StatusCode)
	}
}
