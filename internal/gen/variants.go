package gen

import (
	_ "embed"
	"fmt"
	"math/rand/v2"

	"gopkg.in/yaml.v3"

	"github.com/grebnov/neoncity/internal/model"
)

//go:embed variants.yaml
var variantsYAML []byte

// loadVariantTable parses the embedded per-type variant counts.
func loadVariantTable() (map[model.TileType]int, error) {
	var raw map[string]int
	if err := yaml.Unmarshal(variantsYAML, &raw); err != nil {
		return nil, fmt.Errorf("parsing variant table: %w", err)
	}

	table := make(map[model.TileType]int, len(raw))
	for name, count := range raw {
		if count < 1 {
			return nil, fmt.Errorf("variant count for %q must be positive, got %d", name, count)
		}
		table[model.TileType(name)] = count
	}
	return table, nil
}

// pickVariant chooses a cosmetic variant id for a tile type from the given
// draw stream. Types missing from the table get the zero variant.
func pickVariant(table map[model.TileType]int, t model.TileType, r *rand.Rand) string {
	count := table[t]
	if count <= 1 {
		return fmt.Sprintf("%s_0", t)
	}
	return fmt.Sprintf("%s_%d", t, r.IntN(count))
}
