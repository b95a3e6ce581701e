package models

import "strconv"

// Source column names shared by every raw extract.
const (
	ColLocality    = "listed_in(city)"
	ColCategory    = "listed_in(type)"
	ColOnlineOrder = "online_order"
	ColBookTable   = "book_table"
	ColCost        = "approx_cost(for two people)"
	ColRating      = "rate"
	ColVotes       = "votes"
)

// SourceColumns is the fixed subset of columns the pipeline keeps.
var SourceColumns = []string{
	ColLocality, ColCategory, ColOnlineOrder, ColBookTable, ColCost, ColRating, ColVotes,
}

// RawRecord holds one unprocessed row from a source extract.
// Every field is the cell text as read; an empty string is a null cell.
type RawRecord struct {
	Locality    string `csv:"listed_in(city)"`
	Category    string `csv:"listed_in(type)"`
	OnlineOrder string `csv:"online_order"`
	BookTable   string `csv:"book_table"`
	Cost        string `csv:"approx_cost(for two people)"`
	Rating      string `csv:"rate"`
	Votes       string `csv:"votes"`
}

// CleanRecord is a RawRecord after type coercion and label normalisation.
// Locality is empty when the source cell was null.
type CleanRecord struct {
	Locality    string
	Category    string
	OnlineOrder string
	BookTable   string
	Cost        *float64 // nil when missing, never negative
	Rating      *float64 // nil when missing, within [0, 5]
	Votes       *int     // nil when missing
}

// Key returns the aggregation key of the record.
func (r *CleanRecord) Key() GroupKey {
	return GroupKey{
		Locality:    r.Locality,
		Category:    r.Category,
		OnlineOrder: r.OnlineOrder,
		BookTable:   r.BookTable,
	}
}

// Raw renders the record back into source form. Cleaning the result
// yields the same CleanRecord.
func (r *CleanRecord) Raw() *RawRecord {
	raw := &RawRecord{
		Locality:    r.Locality,
		Category:    r.Category,
		OnlineOrder: r.OnlineOrder,
		BookTable:   r.BookTable,
	}
	if r.Cost != nil {
		raw.Cost = strconv.FormatFloat(*r.Cost, 'f', -1, 64)
	}
	if r.Rating != nil {
		raw.Rating = strconv.FormatFloat(*r.Rating, 'f', -1, 64)
	}
	if r.Votes != nil {
		raw.Votes = strconv.Itoa(*r.Votes)
	}
	return raw
}
