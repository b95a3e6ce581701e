package services

import (
	"fmt"

	"zomato-etl/models"
)

// DisplayNames maps aggregated column names to their output labels.
var DisplayNames = map[string]string{
	models.AggLocality:    "Suburb",
	models.AggCategory:    "Restaurant Type",
	models.AggOnlineOrder: "Online Order Facility",
	models.AggBookTable:   "Dine-in Facility",
	models.AggAvgCost:     "Avg Approx Cost (For Two People)",
	models.AggAvgRating:   "Avg Rating",
	models.AggAvgVotes:    "Avg Votes",
	models.AggCount:       "Restaurant Count",
}

// Renamer maps internal column names to display labels. It never touches values.
type Renamer struct {
	mapping map[string]string
}

// NewRenamer validates that mapping is one-to-one and returns a Renamer.
func NewRenamer(mapping map[string]string) (*Renamer, error) {
	seen := make(map[string]string, len(mapping))
	m := make(map[string]string, len(mapping))
	for from, to := range mapping {
		if to == "" {
			return nil, fmt.Errorf("renamer: empty label for column %q", from)
		}
		if prev, dup := seen[to]; dup {
			return nil, fmt.Errorf("renamer: columns %q and %q both map to %q", prev, from, to)
		}
		seen[to] = from
		m[from] = to
	}
	return &Renamer{mapping: m}, nil
}

// DefaultRenamer returns the Renamer for the aggregated table.
func DefaultRenamer() *Renamer {
	r, err := NewRenamer(DisplayNames)
	if err != nil {
		panic(err)
	}
	return r
}

// Rename returns the display label of every column, in order. A column
// without a label is an error.
func (r *Renamer) Rename(columns []string) ([]string, error) {
	out := make([]string, len(columns))
	for i, col := range columns {
		label, ok := r.mapping[col]
		if !ok {
			return nil, fmt.Errorf("renamer: no display name for column %q", col)
		}
		out[i] = label
	}
	return out, nil
}
