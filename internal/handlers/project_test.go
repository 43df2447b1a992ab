package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mvaldez/projecttracker/internal/services"
	"github.com/mvaldez/projecttracker/internal/storage"
	"github.com/mvaldez/projecttracker/internal/store"
	"github.com/mvaldez/projecttracker/internal/utils"
)

var handlerTestHash string

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret-for-handler-testing")

	hash, err := utils.HashPassword("password")
	if err != nil {
		panic(err)
	}
	handlerTestHash = hash
}

type projectFixture struct {
	router   *gin.Engine
	projects *store.ProjectStore
	identity *store.IdentityStore
}

func newProjectFixture(t *testing.T, seed []store.Project) *projectFixture {
	t.Helper()

	mem := storage.NewMemory()
	projects := store.NewProjectStore(mem, seed)
	projects.Load()
	identity := store.NewIdentityStore(mem, handlerTestHash)
	activity := services.NewActivityService(nil, 30)

	h := NewProjectHandler(projects, identity, activity)

	router := gin.New()
	router.GET("/projects", h.ListCompat)
	router.POST("/projects", h.CreateCompat)
	router.GET("/api/projects", h.List)
	router.POST("/api/projects", h.Create)
	router.GET("/api/projects/:id", h.GetByID)
	router.PUT("/api/projects/:id", h.Update)
	router.DELETE("/api/projects/:id", h.Delete)
	router.GET("/api/projects/:id/display", h.GetDisplay)

	return &projectFixture{router: router, projects: projects, identity: identity}
}

func (f *projectFixture) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)
	return w
}

func handlerSeed() []store.Project {
	return []store.Project{
		{ID: "1000", Title: "Alpha", Description: "first", DueDate: "2025-01-01", Progress: 95, Status: store.StatusCompleted},
		{ID: "3000", Title: "Gamma", Description: "third", DueDate: "2025-03-01", Progress: 20, Status: store.StatusInProgress},
		{ID: "2000", Title: "Beta", Description: "second", DueDate: "2025-02-01", Progress: 55, Status: store.StatusStuck},
	}
}

func TestListCompat_BareArrayNewestFirst(t *testing.T) {
	f := newProjectFixture(t, handlerSeed())

	w := f.do("GET", "/projects", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var projects []store.Project
	if err := json.Unmarshal(w.Body.Bytes(), &projects); err != nil {
		t.Fatalf("expected a bare array: %v", err)
	}
	if len(projects) != 3 {
		t.Fatalf("expected 3 projects, got %d", len(projects))
	}
	for i, want := range []string{"3000", "2000", "1000"} {
		if projects[i].ID != want {
			t.Errorf("position %d = %q, expected %q (newest first)", i, projects[i].ID, want)
		}
	}
}

func TestList(t *testing.T) {
	f := newProjectFixture(t, handlerSeed())

	w := f.do("GET", "/api/projects", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp struct {
		Code int                 `json:"code"`
		Data ProjectListResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Data.Total != 3 {
		t.Errorf("Total = %d, expected 3", resp.Data.Total)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	f := newProjectFixture(t, handlerSeed())

	w := f.do("GET", "/api/projects/9999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestCreate_StampsCreatorFromIdentity(t *testing.T) {
	f := newProjectFixture(t, handlerSeed())
	f.identity.Login("jane@acme.com", "password", store.LoginOptions{})

	w := f.do("POST", "/api/projects", gin.H{
		"title":       "Delta",
		"description": "fourth",
		"dueDate":     "2025-04-01",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var resp struct {
		Data store.Project `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Data.CreatorName != "Jane" {
		t.Errorf("CreatorName = %q, expected stamped from session", resp.Data.CreatorName)
	}
	if resp.Data.Status != store.StatusInProgress {
		t.Errorf("Status = %q, expected default", resp.Data.Status)
	}
}

func TestCreate_MissingFields(t *testing.T) {
	f := newProjectFixture(t, handlerSeed())

	w := f.do("POST", "/api/projects", gin.H{"title": "no description"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if f.projects.Len() != 3 {
		t.Errorf("rejected create must not grow the collection, got %d", f.projects.Len())
	}
}

func TestUpdate_NonexistentStillOK(t *testing.T) {
	f := newProjectFixture(t, handlerSeed())

	progress := 80
	w := f.do("PUT", "/api/projects/9999", gin.H{"progress": progress})
	if w.Code != http.StatusOK {
		t.Errorf("expected silent no-op status %d, got %d", http.StatusOK, w.Code)
	}
	if f.projects.Len() != 3 {
		t.Errorf("no-op update changed the collection, got %d", f.projects.Len())
	}
}

func TestDelete_ThenGone(t *testing.T) {
	f := newProjectFixture(t, handlerSeed())

	w := f.do("DELETE", "/api/projects/2000", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if _, ok := f.projects.Get("2000"); ok {
		t.Error("expected project 2000 removed")
	}

	// Deleting again is still a 200.
	w = f.do("DELETE", "/api/projects/2000", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected idempotent delete status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestGetDisplay(t *testing.T) {
	f := newProjectFixture(t, handlerSeed())

	w := f.do("GET", "/api/projects/1000/display", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp struct {
		Data ProjectDisplay `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Data.Icon == "" {
		t.Error("expected a derived icon")
	}
	if resp.Data.ProgressColor.Tier != "success" {
		t.Errorf("Tier = %q, expected success for 95%%", resp.Data.ProgressColor.Tier)
	}
	if resp.Data.StatusBadge.BgColor != "bg-green-100" {
		t.Errorf("BgColor = %q, expected completed badge", resp.Data.StatusBadge.BgColor)
	}
}

func TestGetDisplay_ExplicitCreatorWins(t *testing.T) {
	seed := handlerSeed()
	seed[0].CreatorName = "Named Creator"
	seed[0].CreatorAvatar = "https://i.pravatar.cc/150?img=5"
	f := newProjectFixture(t, seed)

	w := f.do("GET", "/api/projects/1000/display", nil)

	var resp struct {
		Data ProjectDisplay `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Data.Creator.Name != "Named Creator" {
		t.Errorf("Creator.Name = %q, explicit creator must win over the derived one", resp.Data.Creator.Name)
	}
}
