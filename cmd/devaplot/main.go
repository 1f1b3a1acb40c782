// Package main provides the devaplot command-line tool.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ceilinglight/devaplot/internal/depth"
	"github.com/ceilinglight/devaplot/internal/duckdb"
	"github.com/ceilinglight/devaplot/internal/output"
	"github.com/ceilinglight/devaplot/internal/pileup"
	"github.com/ceilinglight/devaplot/internal/vcf"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		gapSpec       string
		tableRelative string
		tableAbsolute string
		depthTable    string
		dbPath        string
		force         bool
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:     "devaplot <vcf-file> <depth-file>",
		Short:   "Reconcile variant calls with read depth into plottable tables",
		Version: fmt.Sprintf("%s (%s) built %s", version, commit, date),
		Long: `devaplot merges per-site variant calls (VCF with AD format) and a
per-position depth pileup (samtools depth output) into one
coordinate-aligned table of per-base depth support, with optional
coordinate gaps and variant smearing for low-resolution plots.

Use '-' for either input to read from stdin.`,
		Example: `  devaplot calls.vcf depth.tsv --depth-table table.tsv
  devaplot -M 0.2 -d 30 calls.vcf.gz depth.tsv -t variants.csv
  devaplot -g 1024,600 -e 8 calls.vcf depth.tsv -T '' --db results.duckdb`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := depth.Options{
				Major:    viper.GetFloat64("major"),
				Minor:    viper.GetFloat64("minor"),
				MinDepth: viper.GetInt("min_depth"),
				Extend:   viper.GetInt("extend"),
			}

			gaps, err := parseGaps(gapSpec)
			if err != nil {
				return err
			}
			opts.Gaps = gaps

			outputs := outputSpec{
				relative:   tableRelative,
				hasRel:     cmd.Flags().Changed("table-relative"),
				absolute:   tableAbsolute,
				hasAbs:     cmd.Flags().Changed("table-absolute"),
				depthTable: depthTable,
				hasTable:   cmd.Flags().Changed("depth-table"),
				dbPath:     dbPath,
				force:      force,
			}

			return run(args[0], args[1], opts, outputs, verbose)
		},
	}

	cmd.AddCommand(newConfigCmd())

	flags := cmd.Flags()
	flags.Float64P("major", "M", 0.1, "Threshold to include variant at position")
	flags.Float64P("minor", "m", 0.1, "Threshold to include base variant")
	flags.IntP("min-depth", "d", 20, "Depth of position to report variant")
	flags.IntP("extend", "e", 4, "Extend variant bar INT positions to both sides")
	flags.StringVarP(&gapSpec, "gap", "g", "", "Gap position and size: INT,INT[,INT,INT,...]")
	flags.StringVarP(&tableRelative, "table-relative", "t", "", "Save relative variant table to FILE ('' for stdout)")
	flags.StringVarP(&tableAbsolute, "table-absolute", "T", "", "Save absolute variant table to FILE ('' for stdout)")
	flags.StringVar(&depthTable, "depth-table", "", "Save full depth table to FILE ('' for stdout)")
	flags.StringVar(&dbPath, "db", "", "Export results to a DuckDB database at FILE")
	flags.BoolVarP(&force, "force", "F", false, "Force overwrite of existing output files")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose progress logging")

	viper.BindPFlag("major", flags.Lookup("major"))
	viper.BindPFlag("minor", flags.Lookup("minor"))
	viper.BindPFlag("min_depth", flags.Lookup("min-depth"))
	viper.BindPFlag("extend", flags.Lookup("extend"))

	cobra.OnInitialize(initConfig)

	return cmd
}

// initConfig loads ~/.devaplot.yaml when present.
func initConfig() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	viper.SetConfigFile(filepath.Join(home, ".devaplot.yaml"))
	viper.SetConfigType("yaml")
	// Missing config file is fine; flags and defaults apply.
	_ = viper.ReadInConfig()
}

// outputSpec names the requested output destinations.
type outputSpec struct {
	relative   string
	hasRel     bool
	absolute   string
	hasAbs     bool
	depthTable string
	hasTable   bool
	dbPath     string
	force      bool
}

func run(vcfPath, depthPath string, opts depth.Options, outputs outputSpec, verbose bool) error {
	pipeline, err := depth.NewPipeline(opts)
	if err != nil {
		return err
	}

	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()
	pipeline.SetLogger(logger)

	// Overwrite checks run before any parsing work.
	for _, path := range []string{outputs.relative, outputs.absolute, outputs.depthTable} {
		if err := checkOverwrite(path, outputs.force); err != nil {
			return err
		}
	}

	records, err := readRecords(vcfPath)
	if err != nil {
		return err
	}

	sites, err := readSites(depthPath)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(records, sites)
	if err != nil {
		return err
	}

	if outputs.hasTable {
		if err := writeOutput(outputs.depthTable, func(w io.Writer) error {
			return output.NewTableWriter(w).WriteAll(result.Table)
		}); err != nil {
			return fmt.Errorf("write depth table: %w", err)
		}
	}

	if outputs.hasRel {
		if err := writeOutput(outputs.relative, func(w io.Writer) error {
			return output.NewReportWriter(w).WriteAll(result.Relative)
		}); err != nil {
			return fmt.Errorf("write relative table: %w", err)
		}
	}

	if outputs.hasAbs {
		if err := writeOutput(outputs.absolute, func(w io.Writer) error {
			return output.NewReportWriter(w).WriteAll(result.Absolute)
		}); err != nil {
			return fmt.Errorf("write absolute table: %w", err)
		}
	}

	if outputs.dbPath != "" {
		if err := exportDB(outputs.dbPath, result); err != nil {
			return fmt.Errorf("export to duckdb: %w", err)
		}
		logger.Info("exported results", zap.String("db", outputs.dbPath))
	}

	return nil
}

// readRecords materializes all SNV records from the VCF input.
func readRecords(path string) ([]*vcf.Record, error) {
	parser, err := vcf.NewParser(path)
	if err != nil {
		return nil, err
	}
	defer parser.Close()

	var records []*vcf.Record
	for {
		r, err := parser.Next()
		if err != nil {
			return nil, err
		}
		if r == nil {
			return records, nil
		}
		records = append(records, r)
	}
}

// readSites materializes all depth sites from the pileup input.
func readSites(path string) ([]pileup.Site, error) {
	parser, err := pileup.NewParser(path)
	if err != nil {
		return nil, err
	}
	defer parser.Close()
	return parser.ReadAll()
}

func exportDB(path string, result *depth.Result) error {
	store, err := duckdb.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.WriteDepthRows(result.Table); err != nil {
		return err
	}
	if err := store.WriteReports(duckdb.ViewRelative, result.Relative); err != nil {
		return err
	}
	return store.WriteReports(duckdb.ViewAbsolute, result.Absolute)
}

// writeOutput runs write against the named file, or stdout when path is "".
func writeOutput(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// checkOverwrite rejects existing output files unless --force is given.
func checkOverwrite(path string, force bool) error {
	if path == "" || force {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s exists, use --force to overwrite", path)
	}
	return nil
}

// parseGaps parses the flat INT,INT[,INT,INT,...] gap flag into pairs.
func parseGaps(spec string) ([]depth.Gap, error) {
	if spec == "" {
		return nil, nil
	}

	var values []int64
	for _, field := range strings.Split(spec, ",") {
		v, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
		if err != nil {
			return nil, &depth.ConfigError{Message: fmt.Sprintf("gap value %q must be an integer", field)}
		}
		values = append(values, v)
	}
	if len(values)%2 != 0 {
		return nil, &depth.ConfigError{Message: "gap size missing"}
	}

	gaps := make([]depth.Gap, 0, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		gaps = append(gaps, depth.Gap{Pos: values[i], Length: values[i+1]})
	}
	return gaps, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
