package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancy-storefront/server/internal/stylist/model"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		open    byte
		want    string
		wantErr bool
	}{
		{"bare object", `{"a":1}`, '{', `{"a":1}`, false},
		{"fenced", "```json\n{\"a\":1}\n```", '{', `{"a":1}`, false},
		{"prose around", "Sure! Here it is: {\"a\":1} Enjoy.", '{', `{"a":1}`, false},
		{"array", "```\n[{\"a\":1}]\n```", '[', `[{"a":1}]`, false},
		{"missing", "no json here", '{', "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.in, tt.open)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLookbook(t *testing.T) {
	lb, err := ParseLookbook("```json\n{\"vibe\":\"Smart weekend\",\"items\":[\"Polo T-Shirt\",\"Chino Shorts\"],\"reason\":\"Breathable and sharp.\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, model.Lookbook{
		Vibe:   "Smart weekend",
		Items:  []string{"Polo T-Shirt", "Chino Shorts"},
		Reason: "Breathable and sharp.",
	}, lb)

	_, err = ParseLookbook(`{"reason":"no vibe"}`)
	assert.Error(t, err)
	_, err = ParseLookbook(`{"vibe": oops}`)
	assert.Error(t, err)
}

func TestParseRecommendations(t *testing.T) {
	recs, err := ParseRecommendations(`[{"category":"Hoodies","reason":"Layering"},{"category":"","reason":"x"},{"category":"Joggers","reason":"Comfort"}]`)
	require.NoError(t, err)
	assert.Equal(t, []model.Recommendation{
		{Category: "Hoodies", Reason: "Layering"},
		{Category: "Joggers", Reason: "Comfort"},
	}, recs)

	_, err = ParseRecommendations("I can't help with that")
	assert.Error(t, err)
}
