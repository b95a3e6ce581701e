package services

import (
	"strconv"

	"zomato-etl/models"
	"zomato-etl/utils"
)

// Indexer assigns synthetic identifiers such as "ZM1000", "ZM1001", ...
type Indexer struct {
	Prefix string
	Offset int
	logger *utils.Logger
}

// NewIndexer creates an Indexer numbering from offset.
func NewIndexer(prefix string, offset int, logger *utils.Logger) *Indexer {
	return &Indexer{Prefix: prefix, Offset: offset, logger: logger}
}

// Index returns copies of rows carrying identifiers in row order.
func (ix *Indexer) Index(rows []*models.FinalRow) []*models.FinalRow {
	out := make([]*models.FinalRow, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for i, r := range rows {
		fr := *r
		fr.UniqueID = ix.Prefix + strconv.Itoa(ix.Offset+i)
		seen[fr.UniqueID] = struct{}{}
		out[i] = &fr
	}

	ix.logger.Info("[indexer] Assigned %d ids, unique: %t", len(out), len(seen) == len(out))
	return out
}
