package services

import (
	"context"
	"fmt"

	"zomato-etl/geocode"
	"zomato-etl/models"
	"zomato-etl/storage"
	"zomato-etl/utils"
)

// Output columns added around the renamed aggregate columns.
const (
	ColUniqueID  = "UniqueID"
	ColLatitude  = "Latitude"
	ColLongitude = "Longitude"
)

// PipelineOptions carries the explicit per-run settings.
type PipelineOptions struct {
	AddressSuffix string
	Policy        geocode.NotFoundPolicy
	IDPrefix      string
	IDOffset      int
	// NewWriter builds the output backend for a path. Defaults to a CSV file.
	NewWriter func(path string) storage.SummaryWriter
}

// Result describes a completed run.
type Result struct {
	Rows       []*models.FinalRow
	Header     []string
	RawRecords int
	CleanStats CleanStats
	Groups     int
	Suburbs    int
	NotFound   []string
}

// Pipeline runs load → clean → aggregate → rename → geocode → merge →
// index → export, strictly in that order.
type Pipeline struct {
	resolver geocode.Resolver
	logger   *utils.Logger
	opts     PipelineOptions
	renamer  *Renamer
}

// NewPipeline creates a Pipeline. The resolver is only used by Run.
func NewPipeline(resolver geocode.Resolver, logger *utils.Logger, opts PipelineOptions) *Pipeline {
	if opts.IDPrefix == "" {
		opts.IDPrefix = "ZM"
	}
	if opts.NewWriter == nil {
		opts.NewWriter = func(path string) storage.SummaryWriter {
			return storage.NewCSVWriter(path)
		}
	}
	return &Pipeline{
		resolver: resolver,
		logger:   logger,
		opts:     opts,
		renamer:  DefaultRenamer(),
	}
}

// Header returns the exported column labels.
func (p *Pipeline) Header() ([]string, error) {
	renamed, err := p.renamer.Rename(models.AggregateColumns)
	if err != nil {
		return nil, err
	}
	header := make([]string, 0, len(renamed)+3)
	header = append(header, ColUniqueID)
	header = append(header, renamed...)
	return append(header, ColLatitude, ColLongitude), nil
}

// Validate loads and cleans sources without geocoding or writing anything.
func (p *Pipeline) Validate(sources []string) (*Result, error) {
	raw, err := NewLoader(p.logger).Load(sources)
	if err != nil {
		return nil, err
	}
	_, stats := NewCleaner(p.logger).CleanWithStats(raw)
	return &Result{RawRecords: len(raw), CleanStats: stats}, nil
}

// Run executes every step and writes the final table to output. Any
// returned error means no output file was produced.
func (p *Pipeline) Run(ctx context.Context, sources []string, output string) (*Result, error) {
	header, err := p.Header()
	if err != nil {
		return nil, fmt.Errorf("pipeline: header: %w", err)
	}

	p.logger.Info("[pipeline] Step 1/8: loading %d source files", len(sources))
	raw, err := NewLoader(p.logger).Load(sources)
	if err != nil {
		return nil, err
	}

	p.logger.Info("[pipeline] Step 2/8: cleaning %d rows", len(raw))
	clean, stats := NewCleaner(p.logger).CleanWithStats(raw)

	p.logger.Info("[pipeline] Step 3/8: aggregating")
	groups := NewAggregator(p.logger).Aggregate(clean)

	p.logger.Info("[pipeline] Step 4/8: renaming columns")
	p.logger.Debug("[pipeline] Output columns: %v", header)

	p.logger.Info("[pipeline] Step 5/8: geocoding suburbs")
	geocoder := NewSuburbGeocoder(p.resolver, p.logger, GeocoderOptions{
		AddressSuffix: p.opts.AddressSuffix,
		Policy:        p.opts.Policy,
	})
	locations, err := geocoder.Geocode(ctx, groups)
	if err != nil {
		return nil, err
	}

	p.logger.Info("[pipeline] Step 6/8: merging coordinates")
	merged := Merge(groups, locations)

	p.logger.Info("[pipeline] Step 7/8: assigning ids")
	final := NewIndexer(p.opts.IDPrefix, p.opts.IDOffset, p.logger).Index(merged)

	p.logger.Info("[pipeline] Step 8/8: exporting %d rows to %s", len(final), output)
	if err := p.opts.NewWriter(output).Write(header, final); err != nil {
		return nil, err
	}

	return &Result{
		Rows:       final,
		Header:     header,
		RawRecords: len(raw),
		CleanStats: stats,
		Groups:     len(groups),
		Suburbs:    len(locations),
		NotFound:   geocoder.Misses(),
	}, nil
}
