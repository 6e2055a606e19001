package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUserJSON_PasswordHashHidden(t *testing.T) {
	user := User{
		FirstName:    "Alice",
		LastName:     "Johnson",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$examplehash",
	}

	raw, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}

	body := string(raw)
	if strings.Contains(body, "password_hash") {
		t.Fatalf("json should not contain password_hash, got: %s", body)
	}
	if strings.Contains(body, "$2a$10$examplehash") {
		t.Fatalf("json should not contain PasswordHash value, got: %s", body)
	}
	if !strings.Contains(body, "\"first_name\":\"Alice\"") {
		t.Fatalf("json should include first_name field, got: %s", body)
	}
	if !strings.Contains(body, "\"email\":\"alice@example.com\"") {
		t.Fatalf("json should include email field, got: %s", body)
	}
}

func TestUserJSON_UnmarshalIgnoresPasswordHashField(t *testing.T) {
	input := `{"first_name":"Alice","email":"alice@example.com","password_hash":"attacker-controlled"}`

	var user User
	if err := json.Unmarshal([]byte(input), &user); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if user.PasswordHash != "" {
		t.Errorf("PasswordHash = %q; want empty (json:\"-\" must ignore input)", user.PasswordHash)
	}
	if user.FirstName != "Alice" {
		t.Errorf("FirstName = %q; want Alice", user.FirstName)
	}
}

func TestUserFullName(t *testing.T) {
	u := User{FirstName: "Alice", LastName: "Johnson"}
	if got := u.FullName(); got != "Alice Johnson" {
		t.Errorf("FullName() = %q; want %q", got, "Alice Johnson")
	}
}
