package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vancy-storefront/server/internal/storefront/model"
)

//go:embed seed.yaml
var seedYAML []byte

// Seed is the initial catalog used when nothing is persisted.
type Seed struct {
	Categories []string        `yaml:"categories"`
	Products   []model.Product `yaml:"products"`
}

// LoadSeed parses the embedded seed catalog.
func LoadSeed() (Seed, error) {
	return ParseSeed(seedYAML)
}

// ParseSeed parses a YAML catalog document.
func ParseSeed(b []byte) (Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Seed{}, fmt.Errorf("parse seed catalog: %w", err)
	}
	for i, p := range s.Products {
		if p.ID == "" {
			return Seed{}, fmt.Errorf("parse seed catalog: product %d has no id", i)
		}
	}
	return s, nil
}
