package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/adminboard/internal/pkg"
)

// setupAPIRouter creates a gin engine with REST API routes for handler
// testing. Auth middleware is exercised separately; handlers are mounted bare.
func setupAPIRouter(h *UserHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("/api/v1/users")
	api.POST("", h.Create)
	api.GET("", h.List)
	api.GET("/:id", h.Get)
	api.PUT("/:id", h.Update)
	api.DELETE("/:id", h.Delete)
	api.POST("/bulk-delete", h.BulkDelete)

	return r
}

func newUserTestRouter() *gin.Engine {
	repo := newMockRepo()
	svc := NewUserService(repo)
	return setupAPIRouter(NewUserHandler(svc))
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const createAliceBody = `{
	"first_name": "Alice",
	"last_name": "Johnson",
	"email": "alice@example.com",
	"password": "s3cret-pass",
	"phone": "+1 555-123-4567",
	"birth_date": "1996-01-15",
	"gender": "female"
}`

func TestUserHandler_Create(t *testing.T) {
	r := newUserTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/v1/users", createAliceBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp pkg.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Code != http.StatusCreated {
		t.Errorf("expected response code 201, got %d", resp.Code)
	}

	data, _ := resp.Data.(map[string]any)
	if data["email"] != "alice@example.com" {
		t.Errorf("expected created user in data, got %v", resp.Data)
	}
	if _, leaked := data["password_hash"]; leaked {
		t.Error("response must not include password_hash")
	}
}

func TestUserHandler_Create_BindingError(t *testing.T) {
	r := newUserTestRouter()

	// Missing required fields fails binding validation with field details.
	w := doJSON(t, r, http.MethodPost, "/api/v1/users", `{"first_name":"Alice"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var resp pkg.ValidationErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if _, ok := resp.Errors["email"]; !ok {
		t.Errorf("expected field error for email, got %v", resp.Errors)
	}
}

func TestUserHandler_Create_ServiceValidation(t *testing.T) {
	r := newUserTestRouter()

	body := strings.Replace(createAliceBody, "1996-01-15", "2999-01-01", 1)
	w := doJSON(t, r, http.MethodPost, "/api/v1/users", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "future") {
		t.Errorf("expected future-birth-date message, got %s", w.Body.String())
	}
}

func TestUserHandler_Get(t *testing.T) {
	r := newUserTestRouter()

	if w := doJSON(t, r, http.MethodPost, "/api/v1/users", createAliceBody); w.Code != http.StatusCreated {
		t.Fatalf("setup create failed: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/users/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp pkg.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	data, _ := resp.Data.(map[string]any)
	if data["first_name"] != "Alice" {
		t.Errorf("expected Alice, got %v", resp.Data)
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	r := newUserTestRouter()

	w := doJSON(t, r, http.MethodGet, "/api/v1/users/999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestUserHandler_Get_InvalidID(t *testing.T) {
	r := newUserTestRouter()

	w := doJSON(t, r, http.MethodGet, "/api/v1/users/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestUserHandler_List(t *testing.T) {
	r := newUserTestRouter()

	if w := doJSON(t, r, http.MethodPost, "/api/v1/users", createAliceBody); w.Code != http.StatusCreated {
		t.Fatalf("setup create failed: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/users?page=1&page_size=10", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp pkg.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	data, _ := resp.Data.(map[string]any)
	if total, _ := data["total"].(float64); int(total) != 1 {
		t.Errorf("expected total=1, got %v", data["total"])
	}
	if _, ok := data["items"]; !ok {
		t.Error("expected items in list payload")
	}
}

func TestUserHandler_Update(t *testing.T) {
	r := newUserTestRouter()

	if w := doJSON(t, r, http.MethodPost, "/api/v1/users", createAliceBody); w.Code != http.StatusCreated {
		t.Fatalf("setup create failed: %d", w.Code)
	}

	body := strings.Replace(createAliceBody, `"Johnson"`, `"Smith"`, 1)
	body = strings.Replace(body, `"s3cret-pass"`, `""`, 1)
	w := doJSON(t, r, http.MethodPut, "/api/v1/users/1", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp pkg.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	data, _ := resp.Data.(map[string]any)
	if data["last_name"] != "Smith" {
		t.Errorf("expected last_name=Smith, got %v", resp.Data)
	}
}

func TestUserHandler_Update_NotFound(t *testing.T) {
	r := newUserTestRouter()

	w := doJSON(t, r, http.MethodPut, "/api/v1/users/999", createAliceBody)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	r := newUserTestRouter()

	if w := doJSON(t, r, http.MethodPost, "/api/v1/users", createAliceBody); w.Code != http.StatusCreated {
		t.Fatalf("setup create failed: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodDelete, "/api/v1/users/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/users/1", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", w.Code)
	}
}

func TestUserHandler_BulkDelete(t *testing.T) {
	r := newUserTestRouter()

	if w := doJSON(t, r, http.MethodPost, "/api/v1/users", createAliceBody); w.Code != http.StatusCreated {
		t.Fatalf("setup create failed: %d", w.Code)
	}
	second := strings.Replace(createAliceBody, "alice@example.com", "bob@example.com", 1)
	if w := doJSON(t, r, http.MethodPost, "/api/v1/users", second); w.Code != http.StatusCreated {
		t.Fatalf("setup create failed: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/api/v1/users/bulk-delete", `{"ids":[1,2,999]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp pkg.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	data, _ := resp.Data.(map[string]any)
	if deleted, _ := data["deleted"].(float64); int(deleted) != 2 {
		t.Errorf("expected deleted=2, got %v", data["deleted"])
	}
}

func TestUserHandler_BulkDelete_EmptyIDs(t *testing.T) {
	r := newUserTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/v1/users/bulk-delete", `{"ids":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}
