package storefront

import (
	"context"

	"github.com/vancy-storefront/server/internal/storefront/catalog"
	"github.com/vancy-storefront/server/internal/storefront/model"
	logx "github.com/vancy-storefront/server/pkg/logger"
)

// Products returns the catalog, newest first.
func (s *Store) Products() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneProducts(s.products)
}

// Product looks a product up by id.
func (s *Store) Product(id string) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.Get(s.products, id)
}

// SearchProducts runs a keyword search over the catalog.
func (s *Store) SearchProducts(q catalog.SearchQuery) []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.Search(s.products, q)
}

// AddProduct adds p to the front of the catalog and returns it with its id.
func (s *Store) AddProduct(ctx context.Context, p model.Product) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, added := catalog.Add(s.products, p)
	err := s.persist(ctx, map[model.Entry]any{model.EntryProducts: next}, func() {
		s.products = next
		logx.Info().Str("product_id", added.ID).Str("name", added.Name).Msg("product added")
	})
	if err != nil {
		return model.Product{}, err
	}
	return added, nil
}

// UpdateProduct merges u into product id. Orders already placed keep their
// snapshot. Unknown ids are ignored.
func (s *Store) UpdateProduct(ctx context.Context, id string, u model.ProductUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, found := catalog.Update(s.products, id, u)
	if !found {
		logx.Debug().Str("product_id", id).Msg("product update ignored: not found")
		return nil
	}
	return s.persist(ctx, map[model.Entry]any{model.EntryProducts: next}, func() {
		s.products = next
	})
}

// DeleteProduct removes product id. Unknown ids are ignored.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, found := catalog.Delete(s.products, id)
	if !found {
		return nil
	}
	return s.persist(ctx, map[model.Entry]any{model.EntryProducts: next}, func() {
		s.products = next
		logx.Info().Str("product_id", id).Msg("product deleted")
	})
}

func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.categories...)
}

// AddCategory adds name unless it already exists.
func (s *Store) AddCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, added := catalog.AddCategory(s.categories, name)
	if !added {
		return nil
	}
	return s.persist(ctx, map[model.Entry]any{model.EntryCategories: next}, func() {
		s.categories = next
	})
}

// DeleteCategory removes name. Products filed under it keep the string.
func (s *Store) DeleteCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, found := catalog.DeleteCategory(s.categories, name)
	if !found {
		return nil
	}
	return s.persist(ctx, map[model.Entry]any{model.EntryCategories: next}, func() {
		s.categories = next
	})
}
