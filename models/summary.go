package models

// Internal column names of the aggregated table, in output order.
const (
	AggLocality    = "locality"
	AggCategory    = "category"
	AggOnlineOrder = "online_order"
	AggBookTable   = "book_table"
	AggAvgCost     = "avg_cost"
	AggAvgRating   = "avg_rating"
	AggAvgVotes    = "avg_votes"
	AggCount       = "restaurant_count"
)

// AggregateColumns lists every AggregateRow column in output order.
var AggregateColumns = []string{
	AggLocality, AggCategory, AggOnlineOrder, AggBookTable,
	AggAvgCost, AggAvgRating, AggAvgVotes, AggCount,
}

// GroupKey identifies one aggregation bucket.
type GroupKey struct {
	Locality    string
	Category    string
	OnlineOrder string
	BookTable   string
}

// Less orders keys field by field.
func (k GroupKey) Less(o GroupKey) bool {
	if k.Locality != o.Locality {
		return k.Locality < o.Locality
	}
	if k.Category != o.Category {
		return k.Category < o.Category
	}
	if k.OnlineOrder != o.OnlineOrder {
		return k.OnlineOrder < o.OnlineOrder
	}
	return k.BookTable < o.BookTable
}

// AggregateRow holds the measures computed for one GroupKey.
type AggregateRow struct {
	GroupKey
	AvgCost   *float64
	AvgRating *float64
	AvgVotes  *float64
	Count     int
}

// SuburbLocation is the geocoded position of one locality.
type SuburbLocation struct {
	Locality  string
	Latitude  *float64
	Longitude *float64
}

// FinalRow is an AggregateRow joined with its suburb coordinates.
type FinalRow struct {
	UniqueID string
	AggregateRow
	Latitude  *float64
	Longitude *float64
}

// InsightReport summarises the exported table for the end-of-run printout.
type InsightReport struct {
	TotalRows           int
	TotalRestaurants    int
	TotalSuburbs        int
	SuburbsWithoutGeo   []string
	MostExpensive       *FinalRow
	TopRated            []*FinalRow
	RestaurantsBySuburb map[string]int
}
