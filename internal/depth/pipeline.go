package depth

import (
	"go.uber.org/zap"

	"github.com/ceilinglight/devaplot/internal/pileup"
	"github.com/ceilinglight/devaplot/internal/vcf"
)

// Pipeline runs the full reconciliation: classify variant records, build
// the master depth table against the pileup, insert gaps, extend, and
// project the reporting views.
type Pipeline struct {
	opts   Options
	logger *zap.Logger
}

// Result holds the pipeline outputs.
type Result struct {
	Table    []Row    // gap-adjusted, extended depth table
	Relative []Report // percentage composition view
	Absolute []Report // raw depth view
}

// NewPipeline creates a pipeline with validated options.
func NewPipeline(opts Options) (*Pipeline, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{opts: opts, logger: zap.NewNop()}, nil
}

// SetLogger sets the logger for progress and summary messages.
func (p *Pipeline) SetLogger(l *zap.Logger) {
	p.logger = l
}

// Run executes all stages in order over fully materialized inputs.
func (p *Pipeline) Run(records []*vcf.Record, sites []pileup.Site) (*Result, error) {
	classified := make([]Classified, len(records))
	variantSites := 0
	for i, r := range records {
		classified[i] = Classify(r, p.opts)
		if classified[i].IsVariant {
			variantSites++
		}
	}
	p.logger.Info("classified variant records",
		zap.Int("records", len(records)),
		zap.Int("variant_sites", variantSites))

	table, err := BuildTable(classified, sites)
	if err != nil {
		return nil, err
	}

	if len(p.opts.Gaps) > 0 {
		before := len(table)
		table = InsertGaps(table, p.opts.Gaps)
		p.logger.Info("inserted coordinate gaps",
			zap.Int("gaps", len(p.opts.Gaps)),
			zap.Int("rows_added", len(table)-before))
	}

	table = ExtendRows(table, p.opts.Extend)

	relative, absolute := Project(table)
	p.logger.Info("projected variant report views",
		zap.Int("rows", len(table)),
		zap.Int("report_rows", len(absolute)))

	return &Result{Table: table, Relative: relative, Absolute: absolute}, nil
}
