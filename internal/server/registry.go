package server

import (
	"sync"
)

// ConnRegistry maps a user id to their single live connection. It is the
// sole source of truth for presence: a user is online exactly when an
// entry exists for them.
type ConnRegistry interface {
	// Register stores c as the live connection for userId, replacing any
	// prior connection. The replaced connection is returned so the caller
	// can shut it down.
	Register(userId string, c *Client) (prev *Client)
	// Unregister removes the entry for userId only if it still points at
	// c. It reports whether an entry was removed, so the teardown of a
	// replaced connection cannot evict its successor.
	Unregister(userId string, c *Client) bool
	Lookup(userId string) (*Client, bool)
	// ListOnline returns a snapshot of the currently registered user ids
	// in no particular order.
	ListOnline() []string
}

type memRegistry struct {
	mu    sync.RWMutex
	conns map[string]*Client
}

func NewRegistry() ConnRegistry {
	return &memRegistry{conns: make(map[string]*Client)}
}

func (r *memRegistry) Register(userId string, c *Client) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.conns[userId]
	r.conns[userId] = c

	return prev
}

func (r *memRegistry) Unregister(userId string, c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conns[userId] != c {
		return false
	}

	delete(r.conns, userId)
	return true
}

func (r *memRegistry) Lookup(userId string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.conns[userId]
	return c, ok
}

func (r *memRegistry) ListOnline() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userIds := make([]string, 0, len(r.conns))
	for id := range r.conns {
		userIds = append(userIds, id)
	}

	return userIds
}
