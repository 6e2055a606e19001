package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/simp-lee/adminboard/internal/domain"
	"github.com/simp-lee/adminboard/internal/middleware"
	"github.com/simp-lee/adminboard/internal/pkg"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// tierModule registers one probe route in each access tier.
type tierModule struct{}

func (tierModule) RegisterRoutes(public, authed, admin *gin.RouterGroup) {
	ok := func(c *gin.Context) { pkg.Success(c, gin.H{"ok": true}) }
	public.GET("/probe/public", ok)
	authed.GET("/probe/authed", ok)
	admin.GET("/probe/admin", ok)
}

func setupRouter(t *testing.T, deps *RouteDeps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if err := RegisterRoutes(r, deps); err != nil {
		t.Fatalf("RegisterRoutes: %v", err)
	}
	return r
}

func defaultDeps(t *testing.T) *RouteDeps {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return &RouteDeps{
		Modules: []Module{tierModule{}},
		DB:      db,
		Session: middleware.SessionConfig{CookieName: "auth_token", Secret: testSecret},
	}
}

func sessionCookie(t *testing.T, role string) *http.Cookie {
	t.Helper()
	token, err := pkg.IssueToken(testSecret, 1, role, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return &http.Cookie{Name: "auth_token", Value: token}
}

func get(r *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRoutes_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	if err := RegisterRoutes(nil, defaultDeps(t)); err == nil {
		t.Error("nil router must be rejected")
	}
	if err := RegisterRoutes(gin.New(), nil); err == nil {
		t.Error("nil deps must be rejected")
	}

	deps := defaultDeps(t)
	deps.Modules = nil
	if err := RegisterRoutes(gin.New(), deps); err == nil {
		t.Error("empty module list must be rejected")
	}

	deps = defaultDeps(t)
	deps.Modules = []Module{nil}
	if err := RegisterRoutes(gin.New(), deps); err == nil {
		t.Error("nil module must be rejected")
	}

	deps = defaultDeps(t)
	deps.Session.Secret = nil
	if err := RegisterRoutes(gin.New(), deps); err == nil {
		t.Error("missing session secret must be rejected")
	}
}

func TestRouteTiers(t *testing.T) {
	r := setupRouter(t, defaultDeps(t))

	if w := get(r, "/api/v1/probe/public", nil); w.Code != http.StatusOK {
		t.Errorf("public probe without session = %d; want 200", w.Code)
	}

	if w := get(r, "/api/v1/probe/authed", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("authed probe without session = %d; want 401", w.Code)
	}
	if w := get(r, "/api/v1/probe/authed", sessionCookie(t, domain.RoleUser)); w.Code != http.StatusOK {
		t.Errorf("authed probe with session = %d; want 200", w.Code)
	}

	if w := get(r, "/api/v1/probe/admin", sessionCookie(t, domain.RoleUser)); w.Code != http.StatusForbidden {
		t.Errorf("admin probe as user = %d; want 403", w.Code)
	}
	if w := get(r, "/api/v1/probe/admin", sessionCookie(t, domain.RoleAdmin)); w.Code != http.StatusOK {
		t.Errorf("admin probe as admin = %d; want 200", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	r := setupRouter(t, defaultDeps(t))

	w := get(r, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health = %d; want 200", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode health body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v; want ok", body["status"])
	}
}

func TestHealthEndpoint_DegradedWithoutDB(t *testing.T) {
	deps := defaultDeps(t)
	deps.DB = nil
	r := setupRouter(t, deps)

	w := get(r, "/health", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("health without db = %d; want 503", w.Code)
	}
}

func TestNoRoute_ReturnsJSON404(t *testing.T) {
	r := setupRouter(t, defaultDeps(t))

	w := get(r, "/api/v1/does-not-exist", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", w.Code)
	}
	var resp pkg.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("NoRoute body is not JSON: %v", err)
	}
	if resp.Message != "not found" {
		t.Errorf("message = %q; want %q", resp.Message, "not found")
	}
}

func TestParseSameSite(t *testing.T) {
	tests := []struct {
		in   string
		want http.SameSite
	}{
		{"strict", http.SameSiteStrictMode},
		{"lax", http.SameSiteLaxMode},
		{"none", http.SameSiteNoneMode},
		{"", http.SameSiteStrictMode},
		{"LAX", http.SameSiteLaxMode},
	}
	for _, tt := range tests {
		if got := parseSameSite(tt.in); got != tt.want {
			t.Errorf("parseSameSite(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}
