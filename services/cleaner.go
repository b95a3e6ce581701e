package services

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"zomato-etl/models"
	"zomato-etl/utils"
)

var (
	// ratingSentinels mark a restaurant without a usable rating.
	ratingSentinels = map[string]struct{}{"-": {}, "NEW": {}}

	// ratingSuffixes are stripped in order, " /5" before "/5".
	ratingSuffixes = []string{" /5", "/5"}

	// categoryReplacer reconciles spelling variants of category labels.
	// No replacement may produce text that another entry matches.
	categoryReplacer = strings.NewReplacer(
		"Drinks & nightlife", "Drinks & Night Life",
	)
)

const (
	minRating = 0.0
	maxRating = 5.0
)

// CleanStats counts per-row cleaning failures. Failed values become missing.
type CleanStats struct {
	Records       int
	BadRatings    int
	BadCosts      int
	BadVotes      int
	MissingSuburb int
	// UnparsedRatings holds the distinct rating texts that could not be parsed.
	UnparsedRatings []string
}

// Cleaner transforms RawRecords into typed, normalised CleanRecords.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean processes raw records and returns cleaned ones, one per input row.
func (c *Cleaner) Clean(raw []*models.RawRecord) []*models.CleanRecord {
	out, _ := c.CleanWithStats(raw)
	return out
}

// CleanWithStats is Clean plus failure counters.
func (c *Cleaner) CleanWithStats(raw []*models.RawRecord) ([]*models.CleanRecord, CleanStats) {
	stats := CleanStats{Records: len(raw)}
	unparsed := make(map[string]struct{})
	result := make([]*models.CleanRecord, 0, len(raw))

	for i, r := range raw {
		rec := &models.CleanRecord{
			Locality:    normaliseText(r.Locality),
			Category:    normaliseCategory(r.Category),
			OnlineOrder: normaliseText(r.OnlineOrder),
			BookTable:   normaliseText(r.BookTable),
		}
		if rec.Locality == "" {
			stats.MissingSuburb++
		}

		rating, ok := parseRating(r.Rating)
		if !ok {
			stats.BadRatings++
			unparsed[r.Rating] = struct{}{}
			c.logger.Debug("[cleaner] Row %d: unparseable rating %q", i, r.Rating)
		}
		rec.Rating = rating

		cost, ok := parseCost(r.Cost)
		if !ok {
			stats.BadCosts++
			c.logger.Debug("[cleaner] Row %d: unparseable cost %q", i, r.Cost)
		}
		rec.Cost = cost

		votes, ok := parseVotes(r.Votes)
		if !ok {
			stats.BadVotes++
			c.logger.Debug("[cleaner] Row %d: unparseable votes %q", i, r.Votes)
		}
		rec.Votes = votes

		result = append(result, rec)
	}

	for v := range unparsed {
		stats.UnparsedRatings = append(stats.UnparsedRatings, v)
	}
	sort.Strings(stats.UnparsedRatings)

	if stats.BadRatings+stats.BadCosts+stats.BadVotes > 0 {
		c.logger.Warn("[cleaner] Set to missing: %d ratings %v, %d costs, %d vote counts",
			stats.BadRatings, stats.UnparsedRatings, stats.BadCosts, stats.BadVotes)
	}
	c.logger.Info("[cleaner] Cleaned %d rows (%d without suburb)", len(result), stats.MissingSuburb)
	return result, stats
}

// parseRating maps "4.1/5", "3.9 /5" and "4.1" to a float. Sentinels and
// empty cells are missing without being failures; ok is false only for
// text that should have been a rating but was not.
func parseRating(raw string) (*float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, true
	}
	if _, sentinel := ratingSentinels[s]; sentinel {
		return nil, true
	}
	for _, suffix := range ratingSuffixes {
		s = strings.ReplaceAll(s, suffix, "")
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !finite(val) || val < minRating || val > maxRating {
		return nil, false
	}
	return &val, true
}

// parseCost strips thousands separators: "1,200" → 1200.
func parseCost(raw string) (*float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return nil, true
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(val) || val < 0 {
		return nil, false
	}
	return &val, true
}

func parseVotes(raw string) (*int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || !finite(f) || f != math.Trunc(f) {
			return nil, false
		}
		n = int(f)
	}
	if n < 0 {
		return nil, false
	}
	return &n, true
}

// finite rejects the NaN and Inf spellings strconv accepts.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func normaliseCategory(s string) string {
	return categoryReplacer.Replace(normaliseText(s))
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
