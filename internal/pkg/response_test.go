package pkg

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/simp-lee/adminboard/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type signupForm struct {
	Name  string `json:"name" binding:"required,min=3"`
	Email string `json:"email" binding:"required,email"`
}

func recordJSON(t *testing.T, body string, fn func(c *gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if body == "" {
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	} else {
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
	}
	fn(c)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, w.Body.String())
	}
	return resp
}

func decodeFieldErrors(t *testing.T, w *httptest.ResponseRecorder) ValidationErrorResponse {
	t.Helper()
	var resp ValidationErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode validation envelope: %v (body %s)", err, w.Body.String())
	}
	return resp
}

func TestSuccess(t *testing.T) {
	w := recordJSON(t, "", func(c *gin.Context) {
		Success(c, map[string]string{"greeting": "hello"})
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
	resp := decodeEnvelope(t, w)
	if resp.Code != http.StatusOK || resp.Message != "success" {
		t.Errorf("envelope = %d %q; want 200 %q", resp.Code, resp.Message, "success")
	}
	if resp.Data == nil {
		t.Error("data missing from success envelope")
	}
}

func TestSuccess_NilData(t *testing.T) {
	w := recordJSON(t, "", func(c *gin.Context) { Success(c, nil) })

	resp := decodeEnvelope(t, w)
	if resp.Code != http.StatusOK {
		t.Errorf("code = %d; want 200", resp.Code)
	}
	if resp.Data != nil {
		t.Errorf("data = %v; want null", resp.Data)
	}
}

func TestError_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"not found", domain.NewAppError(domain.CodeNotFound, "user not found", nil), http.StatusNotFound, "user not found"},
		{"conflict", domain.NewAppError(domain.CodeAlreadyExists, "email taken", nil), http.StatusConflict, "email taken"},
		{"validation", domain.NewAppError(domain.CodeValidation, "bad input", nil), http.StatusBadRequest, "bad input"},
		{"unauthorized", domain.NewAppError(domain.CodeUnauthorized, "login required", nil), http.StatusUnauthorized, "login required"},
		{"opaque error", errors.New("something broke"), http.StatusInternalServerError, "internal error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := recordJSON(t, "", func(c *gin.Context) { Error(c, tc.err) })

			if w.Code != tc.wantStatus {
				t.Errorf("status = %d; want %d", w.Code, tc.wantStatus)
			}
			resp := decodeEnvelope(t, w)
			if resp.Code != tc.wantStatus {
				t.Errorf("code = %d; want %d", resp.Code, tc.wantStatus)
			}
			if resp.Message != tc.wantMsg {
				t.Errorf("message = %q; want %q", resp.Message, tc.wantMsg)
			}
			if resp.Data != nil {
				t.Errorf("data = %v; want null", resp.Data)
			}
		})
	}
}

func TestList(t *testing.T) {
	result := domain.PageResult[map[string]any]{
		Items:      []map[string]any{{"id": 1}, {"id": 2}},
		Total:      2,
		Page:       1,
		PageSize:   20,
		TotalPages: 1,
	}
	w := recordJSON(t, "", func(c *gin.Context) { List(c, result) })

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
	resp := decodeEnvelope(t, w)
	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("data = %T; want object", resp.Data)
	}
	if total, _ := data["total"].(float64); total != 2 {
		t.Errorf("total = %v; want 2", data["total"])
	}
	if items, _ := data["items"].([]any); len(items) != 2 {
		t.Errorf("items = %v; want 2 entries", data["items"])
	}
}

func TestValidationError_FieldMessages(t *testing.T) {
	// Validate an empty struct directly so ValidationError sees real
	// validator.ValidationErrors without a concrete obj for tag lookup.
	type form struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required,email"`
	}
	err := validator.New().Struct(form{})
	if err == nil {
		t.Fatal("empty form must fail validation")
	}

	w := recordJSON(t, "", func(c *gin.Context) { ValidationError(c, err) })

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	resp := decodeFieldErrors(t, w)
	if resp.Message != "validation error" {
		t.Errorf("message = %q; want %q", resp.Message, "validation error")
	}
	// Field names fall back to lowercased struct fields, and tags are
	// translated into display messages rather than echoed raw.
	for _, field := range []string{"name", "email"} {
		if got := resp.Errors[field]; got != "This field is required" {
			t.Errorf("errors[%q] = %q; want %q", field, got, "This field is required")
		}
	}
}

func TestValidationError_NonValidationError(t *testing.T) {
	w := recordJSON(t, "", func(c *gin.Context) {
		ValidationError(c, errors.New("unexpected EOF"))
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	// Parser internals must not leak into the envelope.
	resp := decodeEnvelope(t, w)
	if resp.Message != "bad request" {
		t.Errorf("message = %q; want %q", resp.Message, "bad request")
	}
}

func TestBindAndValidate_InvalidJSON(t *testing.T) {
	w := recordJSON(t, `{"invalid json`, func(c *gin.Context) {
		var form signupForm
		if BindAndValidate(c, &form) {
			t.Error("truncated JSON must not bind")
		}
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	resp := decodeEnvelope(t, w)
	if resp.Message != "bad request" {
		t.Errorf("message = %q; want %q", resp.Message, "bad request")
	}
}

func TestBindAndValidate_FieldMessages(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		wantField string
		wantMsg   string
	}{
		{"missing name", `{"email":"alice@example.com"}`, "name", "This field is required"},
		{"short name", `{"name":"Al","email":"alice@example.com"}`, "name", "Must be at least 3 characters"},
		{"bad email", `{"name":"Alice","email":"not-an-email"}`, "email", "Must be a valid email address"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := recordJSON(t, tc.body, func(c *gin.Context) {
				var form signupForm
				if BindAndValidate(c, &form) {
					t.Error("invalid body must not bind")
				}
			})

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d; want 400", w.Code)
			}
			resp := decodeFieldErrors(t, w)
			if got := resp.Errors[tc.wantField]; got != tc.wantMsg {
				t.Errorf("errors[%q] = %q; want %q", tc.wantField, got, tc.wantMsg)
			}
			// Only the offending fields appear; names come from json tags.
			for field := range resp.Errors {
				if field != "name" && field != "email" {
					t.Errorf("unexpected field %q in errors", field)
				}
			}
		})
	}
}

func TestBindAndValidate_OnlyOffendingFieldsReported(t *testing.T) {
	w := recordJSON(t, `{"name":"Alice","email":"broken"}`, func(c *gin.Context) {
		var form signupForm
		BindAndValidate(c, &form)
	})

	resp := decodeFieldErrors(t, w)
	if _, ok := resp.Errors["name"]; ok {
		t.Error("valid field reported in errors")
	}
	if _, ok := resp.Errors["email"]; !ok {
		t.Error("invalid field missing from errors")
	}
}

func TestBindAndValidate_ValidInput(t *testing.T) {
	var form signupForm
	w := recordJSON(t, `{"name":"Alice","email":"alice@example.com"}`, func(c *gin.Context) {
		if !BindAndValidate(c, &form) {
			t.Error("valid body must bind")
		}
	})

	if w.Body.Len() != 0 {
		t.Errorf("body = %q; want nothing written on success", w.Body.String())
	}
	if form.Name != "Alice" || form.Email != "alice@example.com" {
		t.Errorf("bound form = %+v", form)
	}
}

func TestParseJSONTagName(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"-":              "",
		"name":           "name",
		"name,omitempty": "name",
		",omitempty":     "",
	}
	for tag, want := range cases {
		if got := parseJSONTagName(tag); got != want {
			t.Errorf("parseJSONTagName(%q) = %q; want %q", tag, got, want)
		}
	}
}
