// Package storefront holds the application state of the shop and every
// operation that mutates it. Each mutation is computed on copies, written
// through the state repository, and only then committed in memory.
package storefront

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancy-storefront/server/internal/storefront/cart"
	"github.com/vancy-storefront/server/internal/storefront/catalog"
	"github.com/vancy-storefront/server/internal/storefront/coupons"
	"github.com/vancy-storefront/server/internal/storefront/model"
	logx "github.com/vancy-storefront/server/pkg/logger"
)

// Options configures a Store. Zero values fall back to the defaults.
type Options struct {
	Policy              model.TransitionPolicy
	EnforceCouponExpiry bool
	DefaultSettings     *model.StoreSettings
	Seed                *catalog.Seed
	Clock               func() time.Time
}

// OptionsFromConfig maps the environment config onto Options.
func OptionsFromConfig(cfg model.StoreConfig) Options {
	settings := cfg.Defaults.Settings()
	return Options{
		Policy:              cfg.Policy(),
		EnforceCouponExpiry: cfg.EnforceCouponExpiry,
		DefaultSettings:     &settings,
	}
}

type Store struct {
	mu     sync.Mutex
	repo   model.StateRepository
	policy model.TransitionPolicy
	engine *coupons.Engine
	now    func() time.Time

	user       *model.User
	role       model.UserRole
	cart       cart.Cart
	wishlist   []string
	orders     []model.Order
	allOrders  []model.Order
	categories []string
	products   []model.Product
	settings   model.StoreSettings
	coupons    []model.Coupon

	// applied lives only for the checkout session and is not persisted.
	applied *model.AppliedCoupon
}

// New builds a Store and loads every persisted entry from repo. Missing
// entries fall back to the seed catalog and default settings.
func New(ctx context.Context, repo model.StateRepository, opts Options) (*Store, error) {
	if repo == nil {
		return nil, fmt.Errorf("state repository is nil")
	}

	s := &Store{
		repo:   repo,
		policy: opts.Policy,
		engine: coupons.NewEngine(opts.EnforceCouponExpiry),
		now:    opts.Clock,
		role:   model.RoleBuyer,
	}
	if s.policy == "" {
		s.policy = model.PolicyOpen
	}
	if s.now == nil {
		s.now = time.Now
	}

	seed := opts.Seed
	if seed == nil {
		loaded, err := catalog.LoadSeed()
		if err != nil {
			return nil, err
		}
		seed = &loaded
	}
	settings := model.DefaultSettings()
	if opts.DefaultSettings != nil {
		settings = opts.DefaultSettings.Clone()
	}

	if err := s.load(ctx, *seed, settings); err != nil {
		return nil, err
	}

	logx.Info().
		Str("policy", string(s.policy)).
		Int("products", len(s.products)).
		Int("orders", len(s.allOrders)).
		Int("cart_lines", s.cart.Len()).
		Msg("storefront state loaded")
	return s, nil
}

func (s *Store) load(ctx context.Context, seed catalog.Seed, settings model.StoreSettings) error {
	var (
		user       *model.User
		role       model.UserRole
		items      []model.CartItem
		wishlist   []string
		orders     []model.Order
		allOrders  []model.Order
		categories []string
		products   []model.Product
		stored     model.StoreSettings
		couponList []model.Coupon
	)

	// Entries decode into zero values; seed data fills only missing entries.
	targets := []struct {
		entry model.Entry
		dst   any
		found bool
	}{
		{entry: model.EntryUser, dst: &user},
		{entry: model.EntryRole, dst: &role},
		{entry: model.EntryCart, dst: &items},
		{entry: model.EntryWishlist, dst: &wishlist},
		{entry: model.EntryOrders, dst: &orders},
		{entry: model.EntryAllOrders, dst: &allOrders},
		{entry: model.EntryCategories, dst: &categories},
		{entry: model.EntryProducts, dst: &products},
		{entry: model.EntrySettings, dst: &stored},
		{entry: model.EntryCoupons, dst: &couponList},
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range targets {
		t := &targets[i]
		g.Go(func() error {
			found, err := s.repo.Load(gctx, t.entry, t.dst)
			if err != nil {
				return fmt.Errorf("load %s: %w", t.entry, err)
			}
			t.found = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logx.Error().Err(err).Msg("failed to load storefront state")
		return err
	}

	found := make(map[model.Entry]bool, len(targets))
	for _, t := range targets {
		found[t.entry] = t.found
	}
	if !found[model.EntryRole] || role == "" {
		role = model.RoleBuyer
	}
	if !found[model.EntryCategories] {
		categories = append([]string(nil), seed.Categories...)
	}
	if !found[model.EntryProducts] {
		products = seed.Products
	}
	if found[model.EntrySettings] {
		settings = stored
	}

	s.user = user
	s.role = role
	s.cart = cart.New(items)
	s.wishlist = nonNil(wishlist)
	s.orders = nonNilOrders(orders)
	s.allOrders = nonNilOrders(allOrders)
	s.categories = nonNil(categories)
	s.products = model.CloneProducts(products)
	s.settings = settings
	s.coupons = nonNilCoupons(couponList)
	return nil
}

// persist writes values through the repository and runs commit only when the
// write succeeded.
func (s *Store) persist(ctx context.Context, values map[model.Entry]any, commit func()) error {
	var err error
	if len(values) == 1 {
		for entry, v := range values {
			err = s.repo.Save(ctx, entry, v)
		}
	} else {
		err = s.repo.SaveAll(ctx, values)
	}
	if err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	commit()
	return nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func nonNilOrders(in []model.Order) []model.Order {
	if in == nil {
		return []model.Order{}
	}
	return in
}

func nonNilCoupons(in []model.Coupon) []model.Coupon {
	if in == nil {
		return []model.Coupon{}
	}
	return in
}
