package services

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zomato-etl/models"
	"zomato-etl/utils"
)

func TestIndexAssignsSequentialIDs(t *testing.T) {
	rows := Merge(aggRows("BTM", "Indiranagar", "Jayanagar"), nil)

	out := NewIndexer("ZM", 1000, utils.NewNopLogger()).Index(rows)
	require.Len(t, out, 3)

	assert.Equal(t, "ZM1000", out[0].UniqueID)
	assert.Equal(t, "ZM1001", out[1].UniqueID)
	assert.Equal(t, "ZM1002", out[2].UniqueID)
	assert.Equal(t, "Indiranagar", out[1].Locality)

	// input rows are left untouched
	assert.Empty(t, rows[0].UniqueID)
}

func TestIndexIDsStrictlyIncreaseWithPosition(t *testing.T) {
	rows := make([]*models.FinalRow, 25)
	for i := range rows {
		rows[i] = &models.FinalRow{}
	}
	out := NewIndexer("ZM", 1000, utils.NewNopLogger()).Index(rows)

	seen := make(map[string]bool)
	for i, r := range out {
		assert.Equal(t, "ZM"+strconv.Itoa(1000+i), r.UniqueID)
		assert.False(t, seen[r.UniqueID])
		seen[r.UniqueID] = true
	}
}

func TestIndexEmpty(t *testing.T) {
	assert.Empty(t, NewIndexer("ZM", 1000, utils.NewNopLogger()).Index(nil))
}
