// Package catalog derives the visible, ordered vehicle list from the full
// inventory and the active filters. Filtering is a pure function recomputed
// per request; at showroom inventory sizes no index is warranted.
package catalog

import (
	"strings"

	"github.com/rlimports/autovitrine/internal/models"
)

// NewThresholdYear splits the category filter: model years at or above it
// count as "new", everything below as "used".
const NewThresholdYear = 2023

// Category selects an inventory segment by model year.
type Category string

// Categories.
const (
	CategoryAll  Category = "all"
	CategoryNew  Category = "new"
	CategoryUsed Category = "used"
)

// Mode controls visibility: the public storefront hides sold vehicles,
// administrators see everything.
type Mode string

// Visibility modes.
const (
	ModePublic Mode = "public"
	ModeAdmin  Mode = "admin"
)

// Query is one catalog request: a free-text term matched against make and
// model, a category, and the visibility mode.
type Query struct {
	Text     string
	Category Category
	Mode     Mode
}

// Filter returns the vehicles matching q, preserving the input order.
// A vehicle must pass visibility, text, and category checks (conjunction).
// An empty result is a valid outcome, not an error.
func Filter(vehicles []models.Vehicle, q Query) []models.Vehicle {
	text := strings.ToLower(q.Text)
	out := make([]models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if q.Mode != ModeAdmin && v.Status != models.VehicleAvailable && v.Status != models.VehicleReserved {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(v.Make), text) &&
			!strings.Contains(strings.ToLower(v.Model), text) {
			continue
		}
		switch q.Category {
		case CategoryNew:
			if v.Year < NewThresholdYear {
				continue
			}
		case CategoryUsed:
			if v.Year >= NewThresholdYear {
				continue
			}
		}
		out = append(out, v)
	}
	return out
}
