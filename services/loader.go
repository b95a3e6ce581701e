package services

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/xuri/excelize/v2"

	"zomato-etl/models"
	"zomato-etl/utils"
)

// Loader reads source extracts and concatenates their rows.
type Loader struct {
	logger *utils.Logger
}

// NewLoader creates a Loader with the given logger.
func NewLoader(logger *utils.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads every path in order and returns the rows of all files,
// file 1 first. Rows are not deduplicated.
func (l *Loader) Load(paths []string) ([]*models.RawRecord, error) {
	var (
		all       []*models.RawRecord
		refHeader []string
		refPath   string
	)

	for _, path := range paths {
		header, records, err := l.readFile(path)
		if err != nil {
			return nil, err
		}

		if refHeader == nil {
			refHeader, refPath = header, path
		} else if missing, extra := columnDiff(refHeader, header); len(missing) > 0 || len(extra) > 0 {
			return nil, &SchemaMismatchError{
				Path:          path,
				ReferencePath: refPath,
				Missing:       missing,
				Unexpected:    extra,
			}
		}

		l.logger.Info("[loader] %s: %d rows, %d columns", path, len(records), len(header))
		all = append(all, records...)
	}

	l.logger.Info("[loader] Combined %d files into %d rows", len(paths), len(all))
	return all, nil
}

func (l *Loader) readFile(path string) ([]string, []*models.RawRecord, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, &SourceNotFoundError{Path: path, Err: err}
	}

	var (
		reader csvutil.Reader
		closer io.Closer
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err := readXLSX(path)
		if err != nil {
			return nil, nil, &SourceNotFoundError{Path: path, Err: err}
		}
		reader = &rowsReader{rows: rows}
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, &SourceNotFoundError{Path: path, Err: err}
		}
		r := csv.NewReader(f)
		r.LazyQuotes = true
		reader, closer = r, f
	}
	if closer != nil {
		defer closer.Close()
	}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, &SchemaMismatchError{Path: path, Missing: append([]string(nil), models.SourceColumns...)}
	}
	if err != nil {
		return nil, nil, &SourceNotFoundError{Path: path, Err: err}
	}
	header = normaliseHeader(header)
	if missing := missingColumns(header, models.SourceColumns); len(missing) > 0 {
		return nil, nil, &SchemaMismatchError{Path: path, Missing: missing}
	}

	dec, err := csvutil.NewDecoder(reader, header...)
	if err != nil {
		return nil, nil, &SourceNotFoundError{Path: path, Err: err}
	}

	var records []*models.RawRecord
	for {
		rec := &models.RawRecord{}
		if err := dec.Decode(rec); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, nil, &SourceNotFoundError{Path: path, Err: err}
		}
		records = append(records, rec)
	}
	return header, records, nil
}

// readXLSX returns every row of the first sheet.
func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.GetRows(f.GetSheetName(0))
}

// rowsReader feeds in-memory rows to csvutil, padding rows whose trailing
// empty cells were dropped by the spreadsheet reader and skipping blank rows.
type rowsReader struct {
	rows  [][]string
	pos   int
	width int
}

func (r *rowsReader) Read() ([]string, error) {
	var row []string
	for {
		if r.pos >= len(r.rows) {
			return nil, io.EOF
		}
		row = r.rows[r.pos]
		r.pos++
		if r.width == 0 {
			r.width = len(row)
			break
		}
		// blank sheet rows come back empty; csv.Reader skips blank lines too
		if len(row) > 0 {
			break
		}
	}
	for len(row) < r.width {
		row = append(row, "")
	}
	return row, nil
}

func normaliseHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return out
}

func missingColumns(header, required []string) []string {
	have := make(map[string]struct{}, len(header))
	for _, h := range header {
		have[h] = struct{}{}
	}
	var missing []string
	for _, col := range required {
		if _, ok := have[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// columnDiff compares two headers as sets.
func columnDiff(ref, got []string) (missing, extra []string) {
	missing = missingColumns(got, ref)
	extra = missingColumns(ref, got)
	sort.Strings(missing)
	sort.Strings(extra)
	return missing, extra
}
