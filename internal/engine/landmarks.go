package engine

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/trailcrew/trekrank/internal/domain"
)

// maxLandmarkNameDistance bounds how far a fuzzy match may drift from
// the canonical landmark program name. Catalog imports have shipped
// punctuation and separator variants ("Landmarks - Tooth of Time"), but
// anything further off is treated as a different program.
const maxLandmarkNameDistance = 3

// LandmarkResolver locates landmark programs in the catalog by name.
// Resolution is exact match first, then case-insensitive, then nearest
// name by Levenshtein distance within maxLandmarkNameDistance. A failed
// resolution is not an error; the peak simply contributes nothing.
type LandmarkResolver struct {
	programs []domain.Program
}

// NewLandmarkResolver builds a resolver over the program catalog.
func NewLandmarkResolver(programs []domain.Program) *LandmarkResolver {
	return &LandmarkResolver{programs: programs}
}

// Resolve returns the ID of the program whose name best matches name,
// and whether any acceptable match was found.
func (r *LandmarkResolver) Resolve(name string) (int64, bool) {
	for _, p := range r.programs {
		if p.Name == name {
			return p.ID, true
		}
	}

	for _, p := range r.programs {
		if strings.EqualFold(p.Name, name) {
			return p.ID, true
		}
	}

	bestID := int64(0)
	bestDistance := maxLandmarkNameDistance + 1
	for _, p := range r.programs {
		d := levenshtein.ComputeDistance(strings.ToLower(p.Name), strings.ToLower(name))
		if d < bestDistance {
			bestDistance = d
			bestID = p.ID
		}
	}
	if bestDistance <= maxLandmarkNameDistance {
		return bestID, true
	}
	return 0, false
}
