package model

// AdviceFallback is returned when the stylist cannot answer.
const AdviceFallback = "I'm having trouble connecting to my fashion database. Please try again later!"

// Lookbook is a two-piece outfit suggestion for an occasion.
type Lookbook struct {
	Vibe   string   `json:"vibe"`
	Items  []string `json:"items"`
	Reason string   `json:"reason"`
}

// FallbackLookbook is returned when lookbook generation fails.
func FallbackLookbook() Lookbook {
	return Lookbook{
		Vibe:   "Modern Essential",
		Items:  []string{"Polo T-Shirt", "Chino Shorts"},
		Reason: "Classic summer comfort.",
	}
}

// Recommendation suggests a category for a buyer's interests.
type Recommendation struct {
	Category string `json:"category"`
	Reason   string `json:"reason"`
}
