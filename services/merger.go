package services

import "zomato-etl/models"

// Merge left-joins suburb coordinates onto the aggregated rows by locality.
// Every input row appears exactly once, in input order; localities with no
// aggregated rows are dropped.
func Merge(rows []*models.AggregateRow, locations []*models.SuburbLocation) []*models.FinalRow {
	byLocality := make(map[string]*models.SuburbLocation, len(locations))
	for _, loc := range locations {
		if _, dup := byLocality[loc.Locality]; !dup {
			byLocality[loc.Locality] = loc
		}
	}

	out := make([]*models.FinalRow, 0, len(rows))
	for _, r := range rows {
		fr := &models.FinalRow{AggregateRow: *r}
		if loc, ok := byLocality[r.Locality]; ok {
			fr.Latitude, fr.Longitude = loc.Latitude, loc.Longitude
		}
		out = append(out, fr)
	}
	return out
}
