package services

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"zomato-etl/models"
	"zomato-etl/utils"
)

const (
	topRatedLimit = 5
	topSuburbs    = 10
	// nullSuburbLabel stands in for the empty locality in printed output.
	nullSuburbLabel = "(no suburb)"
)

type InsightService struct {
	logger *utils.Logger
	out    io.Writer
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger, out: os.Stdout}
}

func (s *InsightService) Generate(rows []*models.FinalRow) *models.InsightReport {
	report := &models.InsightReport{
		RestaurantsBySuburb: make(map[string]int),
	}

	if len(rows) == 0 {
		return report
	}

	report.TotalRows = len(rows)

	suburbs := utils.NewOrderedSet()
	withoutGeo := utils.NewOrderedSet()
	var rated []*models.FinalRow

	for _, r := range rows {
		report.TotalRestaurants += r.Count
		report.RestaurantsBySuburb[r.Locality] += r.Count
		suburbs.Add(r.Locality)
		if r.Latitude == nil || r.Longitude == nil {
			withoutGeo.Add(r.Locality)
		}
		if r.AvgCost != nil && (report.MostExpensive == nil || *r.AvgCost > *report.MostExpensive.AvgCost) {
			report.MostExpensive = r
		}
		if r.AvgRating != nil {
			rated = append(rated, r)
		}
	}

	report.TotalSuburbs = suburbs.Size()
	report.SuburbsWithoutGeo = withoutGeo.Items()
	sort.Strings(report.SuburbsWithoutGeo)

	// Top rated groups, ties broken by id for a stable printout
	sort.SliceStable(rated, func(i, j int) bool {
		if *rated[i].AvgRating != *rated[j].AvgRating {
			return *rated[i].AvgRating > *rated[j].AvgRating
		}
		return rated[i].UniqueID < rated[j].UniqueID
	})
	if len(rated) > topRatedLimit {
		report.TopRated = rated[:topRatedLimit]
	} else {
		report.TopRated = rated
	}

	return report
}

// Print writes the report as a colored terminal summary.
func (s *InsightService) Print(r *models.InsightReport) {
	w := s.out
	rule := strings.Repeat("═", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\n  📊 ZOMATO BENGALURU SUMMARY\n%s\033[0m\n\n", rule, rule)

	heading(w, "Overview")
	fmt.Fprintf(w, "  %-18s \033[1m%d\033[0m\n", "Summary rows", r.TotalRows)
	fmt.Fprintf(w, "  %-18s \033[1m%d\033[0m\n", "Restaurants", r.TotalRestaurants)
	fmt.Fprintf(w, "  %-18s \033[1m%d\033[0m\n", "Suburbs", r.TotalSuburbs)
	fmt.Fprintf(w, "  %-18s \033[1m%d\033[0m\n\n", "Without location", len(r.SuburbsWithoutGeo))

	if len(r.SuburbsWithoutGeo) > 0 {
		heading(w, "Suburbs Without Coordinates")
		for _, sub := range r.SuburbsWithoutGeo {
			fmt.Fprintf(w, "  • %s\n", suburbLabel(sub))
		}
		fmt.Fprintln(w)
	}

	if g := r.MostExpensive; g != nil {
		heading(w, "Most Expensive Group")
		fmt.Fprintf(w, "  %s, %s (%d restaurants)\n", suburbLabel(g.Locality), g.Category, g.Count)
		fmt.Fprintf(w, "  Avg cost for two: \033[1;31m₹%.0f\033[0m\n\n", *g.AvgCost)
	}

	heading(w, fmt.Sprintf("Top %d Rated Groups", topRatedLimit))
	if len(r.TopRated) == 0 {
		fmt.Fprintf(w, "  No rated groups found\n")
	}
	for i, row := range r.TopRated {
		label := truncate(suburbLabel(row.Locality)+" / "+row.Category, 38)
		fmt.Fprintf(w, "  %2d. %-40s \033[1;32m%.2f\033[0m\n", i+1, label, *row.AvgRating)
	}
	fmt.Fprintln(w)

	heading(w, fmt.Sprintf("Restaurants per Suburb (top %d)", topSuburbs))
	ranked := rankSuburbs(r.RestaurantsBySuburb, topSuburbs)
	if len(ranked) == 0 {
		fmt.Fprintf(w, "  No suburb data\n")
	}
	for _, sc := range ranked {
		bar := strings.Repeat("█", barWidth(sc.count, ranked[0].count))
		fmt.Fprintf(w, "  %-30s %s (%d)\n", truncate(suburbLabel(sc.suburb), 28), bar, sc.count)
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", rule)
}

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\033[1;33m  %s\033[0m\n  %s\n", title, strings.Repeat("─", 54))
}

type suburbCount struct {
	suburb string
	count  int
}

// rankSuburbs orders suburbs by restaurant count, then name, keeping at most limit.
func rankSuburbs(counts map[string]int, limit int) []suburbCount {
	out := make([]suburbCount, 0, len(counts))
	for sub, n := range counts {
		out = append(out, suburbCount{sub, n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].suburb < out[j].suburb
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// barWidth scales count to at most 20 cells.
func barWidth(count, max int) int {
	if max <= 0 {
		return 0
	}
	n := count * 20 / max
	if n == 0 && count > 0 {
		n = 1
	}
	return n
}

func suburbLabel(s string) string {
	if s == "" {
		return nullSuburbLabel
	}
	return s
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
