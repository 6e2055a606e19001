package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/simp-lee/adminboard/internal/domain"
)

// Login authenticates and stores the session cookie in the client's jar. A
// 401 here is a credentials failure, not an expired session.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, error) {
	body := map[string]string{"email": email, "password": password}
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &user, callOpts{login: true}); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout clears the server-side session cookie.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil, callOpts{})
}

// FetchUsers retrieves one page of users.
func (c *Client) FetchUsers(ctx context.Context, page, pageSize int) (*domain.PageResult[domain.User], error) {
	return c.SearchUsers(ctx, ListOptions{Page: page, PageSize: pageSize})
}

// SearchUsers retrieves one page of users with search and sort parameters
// forwarded to the backend.
func (c *Client) SearchUsers(ctx context.Context, opts ListOptions) (*domain.PageResult[domain.User], error) {
	var result domain.PageResult[domain.User]
	if err := c.do(ctx, http.MethodGet, "/users", opts.values(), nil, &result, callOpts{}); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchAllUsers walks every page and returns the full user set.
func (c *Client) FetchAllUsers(ctx context.Context) ([]domain.User, error) {
	var all []domain.User
	for page := 1; ; page++ {
		result, err := c.FetchUsers(ctx, page, 50)
		if err != nil {
			return nil, err
		}
		all = append(all, result.Items...)
		if page >= result.TotalPages || len(result.Items) == 0 {
			break
		}
	}
	return all, nil
}

// GetUser retrieves a single user by id.
func (c *Client) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	if id == 0 {
		return nil, ErrMissingIdentifier
	}
	var user domain.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, nil, &user, callOpts{}); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a user on the backend. When the backend cannot be
// reached at the transport level the input is parked in the pending queue
// and ErrQueued is returned; HTTP-level rejections are returned as-is and
// nothing is queued.
func (c *Client) CreateUser(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	var user domain.User
	err := c.do(ctx, http.MethodPost, "/users", nil, createUserBody(in), &user, callOpts{})
	if err == nil {
		return &user, nil
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) || errors.Is(err, ErrSessionExpired) {
		return nil, err
	}

	c.pending.add(in)
	return nil, fmt.Errorf("%w: %w", ErrQueued, err)
}

// UpdateUser updates an existing user. Records without a server id are
// rejected before any network call.
func (c *Client) UpdateUser(ctx context.Context, id uint, in domain.UserInput) (*domain.User, error) {
	if id == 0 {
		return nil, ErrMissingIdentifier
	}
	var user domain.User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), nil, createUserBody(in), &user, callOpts{}); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser deletes a user by id.
func (c *Client) DeleteUser(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrMissingIdentifier
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil, nil, callOpts{})
}

// DeleteUsers bulk-deletes users and returns how many rows the backend
// actually removed.
func (c *Client) DeleteUsers(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrMissingIdentifier
	}
	var result struct {
		Deleted int64 `json:"deleted"`
	}
	body := map[string][]uint{"ids": ids}
	if err := c.do(ctx, http.MethodPost, "/users/bulk-delete", nil, body, &result, callOpts{}); err != nil {
		return 0, err
	}
	return result.Deleted, nil
}

// createUserBody maps a domain input onto the API's request shape.
func createUserBody(in domain.UserInput) map[string]string {
	body := map[string]string{
		"first_name": in.FirstName,
		"last_name":  in.LastName,
		"email":      in.Email,
		"phone":      in.Phone,
		"birth_date": in.BirthDate,
		"gender":     in.Gender,
	}
	if in.Password != "" {
		body["password"] = in.Password
	}
	if in.Role != "" {
		body["role"] = in.Role
	}
	return body
}
