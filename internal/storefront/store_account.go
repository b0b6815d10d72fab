package storefront

import (
	"context"
	"strings"

	"github.com/google/uuid"

	errx "github.com/vancy-storefront/server/internal/core/error"
	"github.com/vancy-storefront/server/internal/storefront/model"
	logx "github.com/vancy-storefront/server/pkg/logger"
)

// User returns the signed-in user, or nil.
func (s *Store) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.Clone()
}

func (s *Store) Role() model.UserRole {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

func (s *Store) SetRole(ctx context.Context, role model.UserRole) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx, map[model.Entry]any{model.EntryRole: role}, func() {
		s.role = role
	})
}

// Login is a mock sign-in: any non-empty email succeeds and an email
// containing "admin" signs in as the admin.
func (s *Store) Login(ctx context.Context, email, _ string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errx.Domain(errx.ErrInvalidInput, "Email is required.")
	}

	isAdmin := strings.Contains(email, "admin")
	u := &model.User{
		ID:    "u1",
		Name:  strings.SplitN(email, "@", 2)[0],
		Email: email,
		Role:  model.RoleBuyer,
		Addresses: []model.Address{
			{ID: "a1", Label: "Home", Street: "123 Luxury Lane", City: "Mumbai", Zip: "400001", IsDefault: true},
		},
	}
	if isAdmin {
		u.ID = "admin-1"
		u.Role = model.RoleAdmin
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values := map[model.Entry]any{model.EntryUser: u}
	role := s.role
	if isAdmin {
		role = model.RoleAdmin
		values[model.EntryRole] = role
	}
	err := s.persist(ctx, values, func() {
		s.user = u
		s.role = role
		logx.Info().Str("user_id", u.ID).Str("role", string(u.Role)).Msg("user signed in")
	})
	if err != nil {
		return nil, err
	}
	return u.Clone(), nil
}

// Register signs up a new buyer with no saved addresses.
func (s *Store) Register(ctx context.Context, name, email, _ string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errx.Domain(errx.ErrInvalidInput, "Email is required.")
	}
	u := &model.User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     email,
		Role:      model.RoleBuyer,
		Addresses: []model.Address{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.persist(ctx, map[model.Entry]any{model.EntryUser: u}, func() {
		s.user = u
	})
	if err != nil {
		return nil, err
	}
	return u.Clone(), nil
}

// Logout clears the user, cart, wishlist and applied coupon and resets the
// role to buyer. Orders stay.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persist(ctx, map[model.Entry]any{
		model.EntryUser:     nil,
		model.EntryCart:     []model.CartItem{},
		model.EntryWishlist: []string{},
		model.EntryRole:     model.RoleBuyer,
	}, func() {
		s.user = nil
		s.cart = s.cart.Clear()
		s.wishlist = []string{}
		s.role = model.RoleBuyer
		s.applied = nil
	})
}

// AddAddress saves addr to the signed-in user's profile. It is ignored when
// nobody is signed in.
func (s *Store) AddAddress(ctx context.Context, addr model.Address) (model.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		logx.Debug().Msg("add address ignored: no user")
		return model.Address{}, nil
	}
	addr.ID = uuid.NewString()
	next := s.user.Clone()
	if addr.IsDefault {
		for i := range next.Addresses {
			next.Addresses[i].IsDefault = false
		}
	}
	next.Addresses = append(next.Addresses, addr)

	err := s.persist(ctx, map[model.Entry]any{model.EntryUser: next}, func() {
		s.user = next
	})
	if err != nil {
		return model.Address{}, err
	}
	return addr, nil
}

// RemoveAddress deletes address id from the signed-in user's profile.
func (s *Store) RemoveAddress(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	next := s.user.Clone()
	kept := next.Addresses[:0]
	for _, a := range next.Addresses {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(s.user.Addresses) {
		return nil
	}
	next.Addresses = kept
	return s.persist(ctx, map[model.Entry]any{model.EntryUser: next}, func() {
		s.user = next
	})
}

func (s *Store) Wishlist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.wishlist...)
}

func (s *Store) InWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return contains(s.wishlist, productID)
}

// ToggleWishlist adds productID when absent and removes it when present.
// It reports whether the product is in the wishlist afterwards.
func (s *Store) ToggleWishlist(ctx context.Context, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next []string
	present := contains(s.wishlist, productID)
	if present {
		next = make([]string, 0, len(s.wishlist))
		for _, id := range s.wishlist {
			if id != productID {
				next = append(next, id)
			}
		}
	} else {
		next = append(append([]string{}, s.wishlist...), productID)
	}

	err := s.persist(ctx, map[model.Entry]any{model.EntryWishlist: next}, func() {
		s.wishlist = next
	})
	if err != nil {
		return present, err
	}
	return !present, nil
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
