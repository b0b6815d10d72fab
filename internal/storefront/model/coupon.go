package model

// DiscountType selects how a coupon value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// ExpiryLayout is the date format of Coupon.ExpiryDate.
const ExpiryLayout = "2006-01-02"

type Coupon struct {
	ID           string       `json:"id"`
	Code         string       `json:"code"`
	DiscountType DiscountType `json:"discountType"`
	Value        float64      `json:"value"`
	MinSpend     float64      `json:"minSpend"`
	ExpiryDate   string       `json:"expiryDate"`
	IsActive     bool         `json:"isActive"`
}

// AppliedCoupon is the result of a successful coupon application.
type AppliedCoupon struct {
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discountAmount"`
}
