package main

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"sync"
	"time"
)

var errNotFound = errors.New("not found")

// User is a shop customer.
type User struct {
	ID      int64     `json:"id" xml:"id" required:"true" doc:"User ID"`
	Name    string    `json:"name" xml:"name" required:"true" doc:"Full name"`
	Email   string    `json:"email" xml:"email" required:"true" doc:"Email address"`
	Created time.Time `json:"created" xml:"created" doc:"Creation time"`
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Name  string `json:"name" required:"true" validate:"required,min=1,max=100"`
	Email string `json:"email" required:"true" validate:"required,email"`
}

// Order is a purchase placed by a user.
type Order struct {
	ID     int64       `json:"id" required:"true"`
	UserID int64       `json:"user_id" required:"true"`
	Items  []OrderItem `json:"items" required:"true"`
	Total  float64     `json:"total" doc:"Order total in dollars"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	SKU      string  `json:"sku" required:"true" validate:"required"`
	Quantity int     `json:"quantity" required:"true" validate:"required,min=1"`
	Price    float64 `json:"price" validate:"gte=0"`
}

// PlaceOrderRequest is the body of POST /orders.
type PlaceOrderRequest struct {
	UserID int64       `json:"user_id" required:"true" validate:"required"`
	Items  []OrderItem `json:"items" required:"true" validate:"required,min=1,dive"`
}

type store struct {
	mu     sync.RWMutex
	users  map[int64]User
	orders map[int64]Order
	nextID int64
}

func newStore() *store {
	s := &store{
		users:  make(map[int64]User),
		orders: make(map[int64]Order),
	}
	s.addUser("Alice", "alice@example.com")
	s.addUser("Bob", "bob@example.com")
	return s
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *store) addUser(name, email string) User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := User{ID: s.id(), Name: name, Email: email, Created: time.Now().UTC()}
	s.users[u.ID] = u
	return u
}

func (s *store) user(id int64) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return User{}, fmt.Errorf("user %d: %w", id, errNotFound)
	}
	return u, nil
}

func (s *store) listUsers() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.SortedFunc(maps.Values(s.users), func(a, b User) int { return cmp.Compare(a.ID, b.ID) })
}

func (s *store) deleteUser(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("user %d: %w", id, errNotFound)
	}
	delete(s.users, id)
	return nil
}

func (s *store) placeOrder(req PlaceOrderRequest) (Order, error) {
	if _, err := s.user(req.UserID); err != nil {
		return Order{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o := Order{ID: s.id(), UserID: req.UserID, Items: req.Items}
	for _, it := range req.Items {
		o.Total += it.Price * float64(it.Quantity)
	}
	s.orders[o.ID] = o
	return o, nil
}

func (s *store) listOrders(userID int64) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Order
	for _, o := range s.orders {
		if userID == 0 || o.UserID == userID {
			out = append(out, o)
		}
	}
	slices.SortFunc(out, func(a, b Order) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
