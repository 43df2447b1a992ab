package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mvaldez/projecttracker/internal/config"
	"github.com/mvaldez/projecttracker/internal/services"
	"github.com/mvaldez/projecttracker/internal/storage"
	"github.com/mvaldez/projecttracker/internal/store"
	"github.com/mvaldez/projecttracker/internal/utils"
)

type authFixture struct {
	router   *gin.Engine
	identity *store.IdentityStore
	mem      *storage.Memory
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	mem := storage.NewMemory()
	identity := store.NewIdentityStore(mem, handlerTestHash)
	prefs := store.NewPreferenceStore(mem)
	identity.OnLogout(prefs.ResetTheme)
	activity := services.NewActivityService(nil, 30)
	jwtCfg := &config.JWTConfig{Secret: "test-secret-for-handler-testing", ExpireHour: 24}

	h := NewAuthHandler(identity, activity, jwtCfg)

	router := gin.New()
	router.POST("/api/auth/login", h.Login)
	router.GET("/api/auth/options", h.GetOptions)
	router.GET("/api/auth/me", h.GetCurrentUser)
	router.PUT("/api/auth/profile", h.UpdateProfile)
	router.POST("/api/auth/logout", h.Logout)

	return &authFixture{router: router, identity: identity, mem: mem}
}

func (f *authFixture) do(method, path string, body interface{}) *httptest.ResponseRecorder {
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

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture(t)

	w := f.do("POST", "/api/auth/login", gin.H{
		"identifier": "jane@acme.com",
		"password":   "password",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp struct {
		Data LoginResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Data.Token == "" {
		t.Error("expected a session token")
	}
	if resp.Data.User == nil || resp.Data.User.Username != "jane" {
		t.Errorf("User = %+v, expected username jane", resp.Data.User)
	}

	claims, err := utils.ParseToken(resp.Data.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Username != "jane" {
		t.Errorf("token username = %q, expected jane", claims.Username)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture(t)

	w := f.do("POST", "/api/auth/login", gin.H{
		"identifier": "jane@acme.com",
		"password":   "hunter2",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
	if f.identity.IsAuthenticated() {
		t.Error("failed login must not authenticate")
	}
}

func TestLogin_MissingFields(t *testing.T) {
	f := newAuthFixture(t)

	w := f.do("POST", "/api/auth/login", gin.H{"identifier": "jane@acme.com"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestGetCurrentUser_NoSession(t *testing.T) {
	f := newAuthFixture(t)

	w := f.do("GET", "/api/auth/me", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestUpdateProfile_Flow(t *testing.T) {
	f := newAuthFixture(t)
	f.do("POST", "/api/auth/login", gin.H{"identifier": "jane@acme.com", "password": "password"})

	w := f.do("PUT", "/api/auth/profile", gin.H{"name": "Jane Doe", "rank": "Lead"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	user := f.identity.Current()
	if user.Name != "Jane Doe" || user.Rank != "Lead" {
		t.Errorf("profile = %+v, expected merged fields", user)
	}
}

func TestUpdateProfile_NoSessionUnauthorized(t *testing.T) {
	f := newAuthFixture(t)

	w := f.do("PUT", "/api/auth/profile", gin.H{"name": "Nobody"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestLogout_ClearsSessionAndTheme(t *testing.T) {
	f := newAuthFixture(t)
	f.do("POST", "/api/auth/login", gin.H{"identifier": "jane@acme.com", "password": "password"})
	f.mem.Set(storage.KeyTheme, store.ThemeDark)

	w := f.do("POST", "/api/auth/logout", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if f.identity.IsAuthenticated() {
		t.Error("expected session cleared")
	}
	if f.mem.Has(storage.KeyUser) {
		t.Error("expected user key removed")
	}
	if f.mem.Has(storage.KeyTheme) {
		t.Error("expected theme preference removed on logout")
	}
}

func TestGetOptions(t *testing.T) {
	f := newAuthFixture(t)

	w := f.do("GET", "/api/auth/options", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp struct {
		Data struct {
			Avatars []string `json:"avatars"`
			Ranks   []string `json:"ranks"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Data.Avatars) != len(store.Avatars) {
		t.Errorf("avatars = %d entries, expected %d", len(resp.Data.Avatars), len(store.Avatars))
	}
	if len(resp.Data.Ranks) != len(store.Ranks) {
		t.Errorf("ranks = %d entries, expected %d", len(resp.Data.Ranks), len(store.Ranks))
	}
}
