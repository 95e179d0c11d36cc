package cart

import "sync"

// Store maps session ids to carts. There is no eviction; sessions are
// short-lived uuids and the process is restarted often enough in practice.
// TODO: drop carts untouched for 24h once a sweep hook exists in main.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// Get returns the cart for a session, creating it on first use.
func (s *Store) Get(sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[sessionID]
	if !ok {
		c = &Cart{}
		s.carts[sessionID] = c
	}
	return c
}
