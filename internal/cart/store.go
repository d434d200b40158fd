package cart

import (
	"sync"

	"github.com/shopspring/decimal"
	"github.com/techieonvacation/ex-earning/internal/domain"
)

// Store owns one cart's state and applies actions to it one at a time.
type Store struct {
	mu      sync.Mutex
	state   State
	reducer Reducer
}

func NewStore(reducer Reducer) *Store {
	return &Store{
		state:   InitialState(),
		reducer: reducer,
	}
}

// Dispatch applies a to the current state and returns the resulting snapshot.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.reducer.Reduce(s.state, a)
	return s.state.Clone()
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) AddItem(line domain.CartLine) State {
	return s.Dispatch(AddItem{Line: line})
}

func (s *Store) RemoveItem(id string) State {
	return s.Dispatch(RemoveItem{ID: id})
}

func (s *Store) UpdateQuantity(id string, quantity int) State {
	return s.Dispatch(UpdateQuantity{ID: id, Quantity: quantity})
}

func (s *Store) ClearCart() State {
	return s.Dispatch(ClearCart{})
}

func (s *Store) OpenCart() State {
	return s.Dispatch(SetCartOpen{Open: true})
}

func (s *Store) CloseCart() State {
	return s.Dispatch(SetCartOpen{Open: false})
}

// ToggleCart flips the open flag. The read and the write happen under one lock.
func (s *Store) ToggleCart() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.reducer.Reduce(s.state, SetCartOpen{Open: !s.state.IsOpen})
	return s.state.Clone()
}

// ApplyCoupon records code with an absolute discount. The code is not checked.
func (s *Store) ApplyCoupon(code string, discount decimal.Decimal) State {
	return s.Dispatch(ApplyCoupon{Code: code, Discount: discount})
}

func (s *Store) RemoveCoupon() State {
	return s.Dispatch(RemoveCoupon{})
}

func (s *Store) GetItemQuantity(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.state.find(id); ok {
		return s.state.Items[i].Quantity
	}
	return 0
}

func (s *Store) IsItemInCart(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.state.find(id)
	return ok
}
