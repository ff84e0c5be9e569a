// Package store holds the balance pair shown by the vault screen.
package store

import "sync"

// Balances is the displayed balance pair, in the smallest on-chain unit.
type Balances struct {
	Shares        float64
	StableBalance float64
}

// Store is a flat record with one setter per field. Every setter notifies
// subscribers with the new snapshot.
type Store struct {
	mu     sync.RWMutex
	b      Balances
	nextID int
	subs   map[int]func(Balances)
}

// New returns a store with both fields at zero.
func New() *Store {
	return &Store{subs: make(map[int]func(Balances))}
}

// Balances returns a snapshot of both fields.
func (s *Store) Balances() Balances {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b
}

// Shares returns the share balance.
func (s *Store) Shares() float64 { return s.Balances().Shares }

// StableBalance returns the stable-token balance.
func (s *Store) StableBalance() float64 { return s.Balances().StableBalance }

// SetShares replaces the share balance only.
func (s *Store) SetShares(v float64) {
	s.mu.Lock()
	s.b.Shares = v
	snap, subs := s.b, s.subscribers()
	s.mu.Unlock()
	notify(subs, snap)
}

// SetStableBalance replaces the stable-token balance only.
func (s *Store) SetStableBalance(v float64) {
	s.mu.Lock()
	s.b.StableBalance = v
	snap, subs := s.b, s.subscribers()
	s.mu.Unlock()
	notify(subs, snap)
}

// Subscribe registers fn for change notifications. The returned func
// removes it.
func (s *Store) Subscribe(fn func(Balances)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// subscribers copies the callback set; callers hold s.mu.
func (s *Store) subscribers() []func(Balances) {
	out := make([]func(Balances), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(Balances), b Balances) {
	for _, fn := range subs {
		fn(b)
	}
}
