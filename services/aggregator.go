package services

import (
	"sort"

	"zomato-etl/models"
	"zomato-etl/utils"
)

// meanAcc accumulates the non-missing values of one measure.
type meanAcc struct {
	sum float64
	n   int
}

func (m *meanAcc) add(v *float64) {
	if v == nil {
		return
	}
	m.sum += *v
	m.n++
}

// mean returns nil when every value was missing.
func (m meanAcc) mean() *float64 {
	if m.n == 0 {
		return nil
	}
	v := m.sum / float64(m.n)
	return &v
}

type groupMeans struct {
	cost, rating, votes meanAcc
}

// Aggregator groups clean records by GroupKey and computes per-group measures.
type Aggregator struct {
	logger *utils.Logger
}

// NewAggregator creates an Aggregator with the given logger.
func NewAggregator(logger *utils.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Aggregate returns one row per distinct GroupKey. Means skip missing
// values; Count covers every row of the group. Rows are sorted by key.
func (a *Aggregator) Aggregate(rows []*models.CleanRecord) []*models.AggregateRow {
	means := make(map[models.GroupKey]*groupMeans)
	counts := make(map[models.GroupKey]int)

	for _, r := range rows {
		key := r.Key()
		g, ok := means[key]
		if !ok {
			g = &groupMeans{}
			means[key] = g
		}
		g.cost.add(r.Cost)
		g.rating.add(r.Rating)
		if r.Votes != nil {
			v := float64(*r.Votes)
			g.votes.add(&v)
		}
		counts[key]++
	}

	// Inner join of the two keyed tables.
	out := make([]*models.AggregateRow, 0, len(means))
	for key, g := range means {
		n, ok := counts[key]
		if !ok {
			continue
		}
		out = append(out, &models.AggregateRow{
			GroupKey:  key,
			AvgCost:   g.cost.mean(),
			AvgRating: g.rating.mean(),
			AvgVotes:  g.votes.mean(),
			Count:     n,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].GroupKey.Less(out[j].GroupKey)
	})

	a.logger.Info("[aggregator] %d rows → %d groups", len(rows), len(out))
	return out
}
