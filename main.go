package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"zomato-etl/config"
	"zomato-etl/geocode"
	"zomato-etl/services"
	"zomato-etl/utils"
)

var (
	cfg    *config.Config
	logger *utils.Logger

	flagSources  []string
	flagOutput   string
	flagNotFound string
	flagProvider string
)

var rootCmd = &cobra.Command{
	Use:           "zomato-etl",
	Short:         "Bengaluru restaurant summary builder",
	Long:          "Combines Zomato restaurant extracts, cleans and aggregates them per suburb and category, geocodes each suburb and writes one summary CSV.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		applyFlags(cmd, cfg)

		l, err := utils.NewLoggerWithOptions(utils.LogOptions{Level: cfg.LogLevel, Format: cfg.LogFormat})
		if err != nil {
			return eris.Wrap(err, "init logger")
		}
		logger = l.With("run_id", uuid.NewString())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline and write the summary CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		policy, err := geocode.ParsePolicy(cfg.NotFoundPolicy)
		if err != nil {
			return err
		}
		resolver, err := geocode.New(cfg.GeocoderProvider, cfg.APIKey(),
			geocode.WithTimeout(cfg.GeocodeTimeout),
			geocode.WithRateLimit(cfg.GeocodeRPS),
		)
		if err != nil {
			return err
		}

		logger.Info("=== Zomato Bengaluru ETL starting ===")
		logger.Info("Config: %d sources | provider: %s | on not found: %s | output: %s",
			len(cfg.SourceFiles), cfg.GeocoderProvider, policy, cfg.OutputPath)

		pipeline := services.NewPipeline(resolver, logger, services.PipelineOptions{
			AddressSuffix: cfg.AddressSuffix,
			Policy:        policy,
			IDPrefix:      cfg.IDPrefix,
			IDOffset:      cfg.IDOffset,
		})
		result, err := pipeline.Run(cmd.Context(), cfg.SourceFiles, cfg.OutputPath)
		if err != nil {
			return err
		}

		insightSvc := services.NewInsightService(logger)
		insightSvc.Print(insightSvc.Generate(result.Rows))

		fmt.Printf("  Done. %d raw rows → %d summary rows → %s\n\n",
			result.RawRecords, len(result.Rows), cfg.OutputPath)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and clean the sources without geocoding or writing output",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(cfg.SourceFiles) == 0 {
			return eris.New("config: no source files configured")
		}
		result, err := services.NewPipeline(nil, logger, services.PipelineOptions{}).Validate(cfg.SourceFiles)
		if err != nil {
			return err
		}
		s := result.CleanStats
		fmt.Printf("  %d files, %d rows | set to missing: %d ratings, %d costs, %d votes | %d rows without suburb\n",
			len(cfg.SourceFiles), result.RawRecords, s.BadRatings, s.BadCosts, s.BadVotes, s.MissingSuburb)
		if len(s.UnparsedRatings) > 0 {
			fmt.Printf("  unparsed rating values: %q\n", s.UnparsedRatings)
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringArrayVar(&flagSources, "source", nil, "source extract (CSV or XLSX), repeatable; overrides SOURCE_FILES")

	runCmd.Flags().StringVar(&flagOutput, "output", "", "output CSV path; overrides OUTPUT_PATH")
	runCmd.Flags().StringVar(&flagNotFound, "on-not-found", "", "continue|abort when a suburb has no match")
	runCmd.Flags().StringVar(&flagProvider, "provider", "", "geocoding provider: bing|google")

	rootCmd.AddCommand(runCmd, validateCmd)
}

// applyFlags lets explicitly set flags override environment settings.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	if cmd.Flags().Changed("source") {
		c.SourceFiles = flagSources
	}
	if cmd.Flags().Changed("output") {
		c.OutputPath = flagOutput
	}
	if cmd.Flags().Changed("on-not-found") {
		c.NotFoundPolicy = strings.ToLower(flagNotFound)
	}
	if cmd.Flags().Changed("provider") {
		c.GeocoderProvider = strings.ToLower(flagProvider)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if logger != nil {
			logger.Error("Run failed: %v", err)
			logger.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}
