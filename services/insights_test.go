package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zomato-etl/models"
	"zomato-etl/utils"
)

func sampleRows() []*models.FinalRow {
	row := func(id, loc, cat string, cost, rating *float64, count int, geo bool) *models.FinalRow {
		r := &models.FinalRow{
			UniqueID: id,
			AggregateRow: models.AggregateRow{
				GroupKey:  models.GroupKey{Locality: loc, Category: cat},
				AvgCost:   cost,
				AvgRating: rating,
				Count:     count,
			},
		}
		if geo {
			r.Latitude, r.Longitude = ptr(12.9), ptr(77.6)
		}
		return r
	}
	return []*models.FinalRow{
		row("ZM1000", "", "Delivery", ptr(300.0), ptr(3.0), 2, false),
		row("ZM1001", "BTM", "Delivery", ptr(800.0), ptr(4.0), 10, true),
		row("ZM1002", "BTM", "Dine-out", ptr(1500.0), ptr(4.6), 4, true),
		row("ZM1003", "Indiranagar", "Pubs and bars", ptr(2200.0), nil, 7, false),
		row("ZM1004", "Jayanagar", "Cafes", nil, ptr(4.6), 1, true),
		row("ZM1005", "Jayanagar", "Desserts", ptr(400.0), ptr(4.1), 3, true),
		row("ZM1006", "Jayanagar", "Buffet", ptr(900.0), ptr(3.5), 5, true),
	}
}

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(sampleRows())

	assert.Equal(t, 7, r.TotalRows)
	assert.Equal(t, 32, r.TotalRestaurants)
	assert.Equal(t, 4, r.TotalSuburbs)
	assert.Equal(t, []string{"", "Indiranagar"}, r.SuburbsWithoutGeo)
}

func TestInsightMostExpensive(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(sampleRows())

	require.NotNil(t, r.MostExpensive)
	assert.Equal(t, "ZM1003", r.MostExpensive.UniqueID)
}

func TestInsightTopRated(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(sampleRows())

	require.Len(t, r.TopRated, 5)
	assert.Equal(t, "ZM1002", r.TopRated[0].UniqueID)
	assert.Equal(t, "ZM1004", r.TopRated[1].UniqueID)
	assert.Equal(t, "ZM1005", r.TopRated[2].UniqueID)
	for _, row := range r.TopRated {
		assert.NotNil(t, row.AvgRating)
	}
}

func TestInsightSuburbGrouping(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(sampleRows())

	assert.Equal(t, 14, r.RestaurantsBySuburb["BTM"])
	assert.Equal(t, 9, r.RestaurantsBySuburb["Jayanagar"])
	assert.Equal(t, 2, r.RestaurantsBySuburb[""])
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(nil)

	assert.Zero(t, r.TotalRows)
	assert.Nil(t, r.MostExpensive)
	assert.Empty(t, r.TopRated)
	assert.NotNil(t, r.RestaurantsBySuburb)
}

func TestInsightPrint(t *testing.T) {
	var buf bytes.Buffer
	svc := NewInsightService(utils.NewNopLogger())
	svc.out = &buf

	svc.Print(svc.Generate(sampleRows()))

	out := buf.String()
	assert.Contains(t, out, "ZOMATO BENGALURU SUMMARY")
	assert.Contains(t, out, "Indiranagar")
	assert.Contains(t, out, nullSuburbLabel)

	buf.Reset()
	svc.Print(svc.Generate(nil))
	assert.Contains(t, buf.String(), "No rated groups found")
	assert.Contains(t, buf.String(), "No suburb data")
}

func TestRankSuburbs(t *testing.T) {
	got := rankSuburbs(map[string]int{"BTM": 14, "Jayanagar": 9, "HSR": 9, "": 2}, 3)
	assert.Equal(t, []suburbCount{{"BTM", 14}, {"HSR", 9}, {"Jayanagar", 9}}, got)
	assert.Empty(t, rankSuburbs(nil, 3))
}
