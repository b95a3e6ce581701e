package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"zomato-etl/models"
)

// WriteError reports a failure to produce the output file. When it is
// returned no file exists at Path.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("csv: write %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// CSVWriter writes the final summary table to a CSV file.
type CSVWriter struct {
	path string
}

var _ SummaryWriter = (*CSVWriter)(nil)

// NewCSVWriter creates a writer targeting path. Nothing is touched on disk
// until Write.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Path returns the destination file.
func (c *CSVWriter) Path() string { return c.path }

// Write replaces the destination with header followed by rows. The rows
// go to a temporary file in the destination directory which is renamed
// into place only once fully written.
func (c *CSVWriter) Write(header []string, rows []*models.FinalRow) error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &WriteError{Path: c.path, Err: fmt.Errorf("create output dir: %w", err)}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return &WriteError{Path: c.path, Err: fmt.Errorf("create temp file: %w", err)}
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		return &WriteError{Path: c.path, Err: fmt.Errorf("write header: %w", err)}
	}
	for _, r := range rows {
		if err := w.Write(Record(r)); err != nil {
			return &WriteError{Path: c.path, Err: fmt.Errorf("write row %s: %w", r.UniqueID, err)}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &WriteError{Path: c.path, Err: fmt.Errorf("flush: %w", err)}
	}
	if err := tmp.Chmod(0644); err != nil {
		return &WriteError{Path: c.path, Err: fmt.Errorf("chmod: %w", err)}
	}
	if err := tmp.Sync(); err != nil {
		return &WriteError{Path: c.path, Err: fmt.Errorf("sync: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		return &WriteError{Path: c.path, Err: fmt.Errorf("close: %w", err)}
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		_ = os.Remove(tmpName)
		committed = true
		return &WriteError{Path: c.path, Err: fmt.Errorf("rename: %w", err)}
	}
	committed = true
	return nil
}

// Record renders one row: the id, the aggregate columns in
// models.AggregateColumns order, then the coordinates. Missing values are empty.
func Record(r *models.FinalRow) []string {
	rec := make([]string, 0, len(models.AggregateColumns)+3)
	rec = append(rec, r.UniqueID)
	for _, col := range models.AggregateColumns {
		rec = append(rec, aggregateValue(&r.AggregateRow, col))
	}
	return append(rec, formatFloat(r.Latitude), formatFloat(r.Longitude))
}

func aggregateValue(r *models.AggregateRow, col string) string {
	switch col {
	case models.AggLocality:
		return r.Locality
	case models.AggCategory:
		return r.Category
	case models.AggOnlineOrder:
		return r.OnlineOrder
	case models.AggBookTable:
		return r.BookTable
	case models.AggAvgCost:
		return formatFloat(r.AvgCost)
	case models.AggAvgRating:
		return formatFloat(r.AvgRating)
	case models.AggAvgVotes:
		return formatFloat(r.AvgVotes)
	case models.AggCount:
		return strconv.Itoa(r.Count)
	}
	panic(fmt.Sprintf("csv: no value for aggregate column %q", col))
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
