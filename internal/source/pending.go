package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/simp-lee/adminboard/internal/domain"
)

// PendingUser is a user create parked locally because the backend was
// unreachable. LocalID identifies the record until Flush promotes it; ids
// are assigned once from a monotonic counter and never renumbered, so a
// queue entry keeps its id even as earlier entries are flushed away.
type PendingUser struct {
	LocalID int64            `json:"local_id"`
	Input   domain.UserInput `json:"input"`
}

// pendingState is the on-disk shape of the queue.
type pendingState struct {
	NextID int64         `json:"next_id"`
	Items  []PendingUser `json:"items"`
}

// pendingQueue holds queued user creates. With a non-empty path the queue
// is mirrored to a JSON file on every mutation, so records queued by one
// process survive for the next one. The file holds the raw inputs,
// passwords included; it is written with owner-only permissions.
type pendingQueue struct {
	mu     sync.Mutex
	path   string
	nextID int64
	items  []PendingUser
}

// newPendingQueue builds a queue backed by the file at path, loading any
// previously persisted records. An empty path keeps the queue in memory
// only; a missing file is an empty queue, not an error.
func newPendingQueue(path string) (*pendingQueue, error) {
	q := &pendingQueue{path: path, nextID: 1}
	if path == "" {
		return q, nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return q, nil
	}
	if err != nil {
		return nil, fmt.Errorf("source: read pending queue: %w", err)
	}

	var state pendingState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("source: decode pending queue %s: %w", path, err)
	}
	q.items = state.Items
	q.nextID = state.NextID
	// The counter must stay ahead of every stored id, whatever the file says.
	if q.nextID < 1 {
		q.nextID = 1
	}
	for _, item := range q.items {
		if item.LocalID >= q.nextID {
			q.nextID = item.LocalID + 1
		}
	}
	return q, nil
}

// persistLocked mirrors the queue to disk. Best effort: on a write failure
// the in-memory queue stays authoritative for this process. Callers hold mu.
func (q *pendingQueue) persistLocked() {
	if q.path == "" {
		return
	}
	raw, err := json.MarshalIndent(pendingState{NextID: q.nextID, Items: q.items}, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(q.path), 0o700); err != nil {
		return
	}
	_ = os.WriteFile(q.path, raw, 0o600)
}

func (q *pendingQueue) add(in domain.UserInput) PendingUser {
	q.mu.Lock()
	defer q.mu.Unlock()
	item := PendingUser{LocalID: q.nextID, Input: in}
	q.nextID++
	q.items = append(q.items, item)
	q.persistLocked()
	return item
}

func (q *pendingQueue) snapshot() []PendingUser {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]PendingUser, len(q.items))
	copy(out, q.items)
	return out
}

func (q *pendingQueue) remove(localID int64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, item := range q.items {
		if item.LocalID == localID {
			q.items = append(q.items[:i], q.items[i+1:]...)
			q.persistLocked()
			return
		}
	}
}

// PendingLocalRecords returns the queued user creates in enqueue order.
func (c *Client) PendingLocalRecords() []PendingUser {
	return c.pending.snapshot()
}

// Flush replays the pending queue against the backend in enqueue order.
// Each accepted record leaves the queue; a record the backend rejects over
// HTTP (validation, duplicate email) is dropped from the queue and its error
// collected, since retrying it can never succeed. A transport failure stops
// the flush and keeps the remaining records, ids intact, for the next
// attempt.
func (c *Client) Flush(ctx context.Context) ([]domain.User, error) {
	var created []domain.User
	var failures []error

	for _, item := range c.pending.snapshot() {
		var user domain.User
		err := c.do(ctx, http.MethodPost, "/users", nil, createUserBody(item.Input), &user, callOpts{})
		if err == nil {
			created = append(created, user)
			c.pending.remove(item.LocalID)
			continue
		}

		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			c.pending.remove(item.LocalID)
			failures = append(failures, err)
			continue
		}
		if errors.Is(err, ErrSessionExpired) {
			return created, err
		}

		// Still unreachable; keep the rest of the queue for later.
		failures = append(failures, err)
		return created, errors.Join(failures...)
	}

	return created, errors.Join(failures...)
}
