// Package catalog manages products and categories. Functions take the
// current list and return a new one; they never modify their input.
package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/vancy-storefront/server/internal/storefront/model"
)

const (
	DefaultSearchResults = 10
	MaxSearchResults     = 20
)

// NewProductID returns a fresh catalog id.
func NewProductID() string {
	return "prod-" + uuid.NewString()
}

// Add prepends p, assigning an id when it has none.
func Add(list []model.Product, p model.Product) ([]model.Product, model.Product) {
	p = p.Clone()
	if p.ID == "" {
		p.ID = NewProductID()
	}
	if p.Stock < 0 {
		p.Stock = 0
	}
	out := make([]model.Product, 0, len(list)+1)
	out = append(out, p)
	for _, existing := range list {
		out = append(out, existing.Clone())
	}
	return out, p
}

// Update merges u into the product with id. found is false when it is missing.
func Update(list []model.Product, id string, u model.ProductUpdate) (next []model.Product, found bool) {
	next = clone(list)
	for i := range next {
		if next[i].ID == id {
			next[i] = u.Apply(next[i])
			if next[i].Stock < 0 {
				next[i].Stock = 0
			}
			found = true
		}
	}
	return next, found
}

// Delete removes the product with id.
func Delete(list []model.Product, id string) (next []model.Product, found bool) {
	next = make([]model.Product, 0, len(list))
	for _, p := range list {
		if p.ID == id {
			found = true
			continue
		}
		next = append(next, p.Clone())
	}
	return next, found
}

// Get returns the product with id.
func Get(list []model.Product, id string) (model.Product, bool) {
	for _, p := range list {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return model.Product{}, false
}

// AddCategory appends name unless it is already present.
func AddCategory(categories []string, name string) (next []string, added bool) {
	name = strings.TrimSpace(name)
	next = append([]string(nil), categories...)
	if name == "" {
		return next, false
	}
	for _, c := range categories {
		if c == name {
			return next, false
		}
	}
	return append(next, name), true
}

// DeleteCategory removes name. Products keep whatever category string they had.
func DeleteCategory(categories []string, name string) (next []string, found bool) {
	next = make([]string, 0, len(categories))
	for _, c := range categories {
		if c == name {
			found = true
			continue
		}
		next = append(next, c)
	}
	return next, found
}

// SearchQuery filters the catalog.
type SearchQuery struct {
	Query      string
	Category   string
	MaxResults int
}

// Search matches the query case-insensitively against name, category and
// description, then applies the optional category filter. An empty query
// matches everything.
func Search(list []model.Product, q SearchQuery) []model.Product {
	limit := q.MaxResults
	if limit <= 0 {
		limit = DefaultSearchResults
	}
	if limit > MaxSearchResults {
		limit = MaxSearchResults
	}

	needle := strings.ToLower(strings.TrimSpace(q.Query))
	category := strings.TrimSpace(q.Category)

	matched := []model.Product{}
	for _, p := range list {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Category), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		matched = append(matched, p.Clone())
		if len(matched) == limit {
			break
		}
	}
	return matched
}

func clone(list []model.Product) []model.Product {
	out := make([]model.Product, len(list))
	for i, p := range list {
		out[i] = p.Clone()
	}
	return out
}
