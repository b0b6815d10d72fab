package model

// Review is a buyer review attached to a product.
type Review struct {
	Author  string  `json:"author" yaml:"author"`
	Rating  float64 `json:"rating" yaml:"rating"`
	Comment string  `json:"comment" yaml:"comment"`
	Date    string  `json:"date" yaml:"date"`
}

// Product is a single catalog entry (SKU). Price is expected to be at most
// OriginalPrice but nothing enforces it.
type Product struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Category      string   `json:"category" yaml:"category"`
	Price         float64  `json:"price" yaml:"price"`
	OriginalPrice float64  `json:"originalPrice" yaml:"originalPrice"`
	Description   string   `json:"description" yaml:"description"`
	Images        []string `json:"images" yaml:"images"`
	Sizes         []string `json:"sizes" yaml:"sizes"`
	Colors        []string `json:"colors" yaml:"colors"`
	Rating        float64  `json:"rating" yaml:"rating"`
	ReviewCount   int      `json:"reviewCount" yaml:"reviewCount"`
	IsNew         bool     `json:"isNew,omitempty" yaml:"isNew"`
	Stock         int      `json:"stock" yaml:"stock"`
	Fabric        string   `json:"fabric" yaml:"fabric"`
	Reviews       []Review `json:"reviews,omitempty" yaml:"reviews"`
}

// Clone returns a deep copy so snapshots never share slices with the catalog.
func (p Product) Clone() Product {
	p.Images = cloneStrings(p.Images)
	p.Sizes = cloneStrings(p.Sizes)
	p.Colors = cloneStrings(p.Colors)
	if p.Reviews != nil {
		p.Reviews = append([]Review(nil), p.Reviews...)
	}
	return p
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// ProductUpdate is a partial update; nil fields are left unchanged.
type ProductUpdate struct {
	Name          *string
	Category      *string
	Price         *float64
	OriginalPrice *float64
	Description   *string
	Images        []string
	Sizes         []string
	Colors        []string
	Rating        *float64
	ReviewCount   *int
	IsNew         *bool
	Stock         *int
	Fabric        *string
	Reviews       []Review
}

// Apply merges the non-nil fields of u into p and returns the result.
func (u ProductUpdate) Apply(p Product) Product {
	p = p.Clone()
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.OriginalPrice != nil {
		p.OriginalPrice = *u.OriginalPrice
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Images != nil {
		p.Images = cloneStrings(u.Images)
	}
	if u.Sizes != nil {
		p.Sizes = cloneStrings(u.Sizes)
	}
	if u.Colors != nil {
		p.Colors = cloneStrings(u.Colors)
	}
	if u.Rating != nil {
		p.Rating = *u.Rating
	}
	if u.ReviewCount != nil {
		p.ReviewCount = *u.ReviewCount
	}
	if u.IsNew != nil {
		p.IsNew = *u.IsNew
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	if u.Fabric != nil {
		p.Fabric = *u.Fabric
	}
	if u.Reviews != nil {
		p.Reviews = append([]Review(nil), u.Reviews...)
	}
	return p
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

// CloneProducts deep-copies a product list.
func CloneProducts(list []Product) []Product {
	if list == nil {
		return nil
	}
	out := make([]Product, len(list))
	for i, p := range list {
		out[i] = p.Clone()
	}
	return out
}
