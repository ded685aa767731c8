package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rohmanhakim/arnie-quotes/internal/build"
	"github.com/rohmanhakim/arnie-quotes/internal/config"
	"github.com/rohmanhakim/arnie-quotes/internal/fetcher"
	applog "github.com/rohmanhakim/arnie-quotes/internal/log"
	"github.com/rohmanhakim/arnie-quotes/internal/metadata"
	"github.com/rohmanhakim/arnie-quotes/internal/scheduler"
	"github.com/rohmanhakim/arnie-quotes/internal/storage"
	"github.com/rohmanhakim/arnie-quotes/pkg/fileutil"
	"github.com/spf13/cobra"
)

var (
	cfgFile       string
	urls          []string
	inputFile     string
	fixtureFile   string
	outputFile    string
	throttleLimit int
	cacheMaxSize  int
	timeout       time.Duration
	logLevel      string
	printMetrics  bool
	showVersion   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "arnie-quotes",
	Short: "Fetch quotes from a list of URLs, a few at a time.",
	Long: `arnie-quotes fetches a quote from every given URL and prints one result
per URL, in input order, as a JSON array.

URLs are fetched in windows of --throttle-limit requests. A window starts only
after the previous one finished. Successful quotes are kept in a bounded LRU
cache, so a URL repeated in the batch is fetched once. A failing URL yields a
{"FAILURE": "<reason>"} entry and never stops the rest of the batch.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Fprintln(cmd.OutOrStdout(), build.Summary())
			return nil
		}
		if len(urls) == 0 && inputFile == "" {
			cmd.Usage()
			return fmt.Errorf("%w: provide --url or --input-file", ErrNoInput)
		}
		return Run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path, .json or .yaml (e.g., /home/myuser/config.yaml)")
	rootCmd.PersistentFlags().StringArrayVar(&urls, "url", []string{}, "one or more URLs to fetch (can be repeated)")
	rootCmd.PersistentFlags().StringVar(&inputFile, "input-file", "", "JSON file holding an array of URLs")
	rootCmd.PersistentFlags().StringVar(&fixtureFile, "fixture-file", "", "answer from a JSON fixture instead of the network")
	rootCmd.PersistentFlags().StringVar(&outputFile, "output-file", "", "also write the JSON results to this file")
	rootCmd.PersistentFlags().IntVar(&throttleLimit, "throttle-limit", 0, "number of URLs fetched concurrently per window (default 10)")
	rootCmd.PersistentFlags().IntVar(&cacheMaxSize, "cache-max-size", 0, "maximum number of cached quotes (default 100)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "timeout for HTTP requests (default 10s)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error, fatal (default info)")
	rootCmd.PersistentFlags().BoolVar(&printMetrics, "print-metrics", false, "write Prometheus metrics to stderr after the batch")
	rootCmd.PersistentFlags().BoolVar(&showVersion, "version", false, "print version and exit")
}

// Run fetches the batch described by the current flags, writes the results
// to stdout as a JSON array and logs to stderr.
func Run(ctx context.Context, stdout io.Writer, stderr io.Writer) error {
	cfg, err := InitConfigWithError()
	if err != nil {
		return err
	}

	input, err := loadInput()
	if err != nil {
		return err
	}

	logger, err := applog.NewLogger(stderr, cfg.LogLevel())
	if err != nil {
		return fmt.Errorf("%w: %s", config.ErrInvalidConfig, err.Error())
	}

	registry := prometheus.NewRegistry()
	metrics, err := metadata.NewMetrics(registry)
	if err != nil {
		return err
	}
	recorder := metadata.NewRecorder("cli", logger, metrics)

	quoteFetcher, err := newFetcher(cfg, &recorder)
	if err != nil {
		return err
	}

	s, err := scheduler.NewScheduler(cfg, quoteFetcher, &recorder, &recorder)
	if err != nil {
		return err
	}

	results, err := s.FetchAllValues(ctx, input)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return err
	}

	if outputFile != "" {
		sink := storage.NewLocalSink(&recorder)
		if _, writeErr := sink.Write(outputFile, results); writeErr != nil {
			return writeErr
		}
	}

	if printMetrics {
		return writeMetrics(stderr, registry)
	}
	return nil
}

func newFetcher(cfg config.Config, sink metadata.MetadataSink) (fetcher.Fetcher, error) {
	if fixtureFile != "" {
		fixtureFetcher, err := fetcher.LoadFixtureFile(fixtureFile)
		if err != nil {
			return nil, err
		}
		return fixtureFetcher, nil
	}
	httpFetcher := fetcher.NewHTTPFetcher(sink, cfg.Timeout())
	return &httpFetcher, nil
}

// loadInput returns the identifiers to fetch. An input file is decoded
// as-is and validated by the scheduler, so any JSON value is accepted here.
func loadInput() (any, error) {
	if inputFile == "" {
		if len(urls) == 0 {
			return nil, ErrNoInput
		}
		return urls, nil
	}
	if len(urls) > 0 {
		return nil, ErrConflictingInput
	}

	content, readErr := fileutil.ReadFile(inputFile)
	if readErr != nil {
		return nil, fmt.Errorf("%w: %s", ErrReadInputFail, readErr.Error())
	}
	var input any
	if err := json.Unmarshal(content, &input); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParseInputFail, err.Error())
	}
	return input, nil
}

func writeMetrics(w io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return err
		}
	}
	return nil
}

// InitConfigWithError builds the config from the config file, when given,
// and applies every flag set on the command line on top of it.
func InitConfigWithError() (config.Config, error) {
	configBuilder := config.WithDefault()

	if cfgFile != "" {
		fileCfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("error initializing config from file: %w", err)
		}
		configBuilder = &fileCfg
	}

	if throttleLimit != 0 {
		configBuilder = configBuilder.WithThrottleLimit(throttleLimit)
	}

	if cacheMaxSize != 0 {
		configBuilder = configBuilder.WithCacheMaxSize(cacheMaxSize)
	}

	if timeout != 0 {
		configBuilder = configBuilder.WithTimeout(timeout)
	}

	if logLevel != "" {
		configBuilder = configBuilder.WithLogLevel(logLevel)
	}

	cfg, err := configBuilder.Build()
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func ResetFlags() {
	cfgFile = ""
	urls = []string{}
	inputFile = ""
	fixtureFile = ""
	outputFile = ""
	throttleLimit = 0
	cacheMaxSize = 0
	timeout = 0
	logLevel = ""
	printMetrics = false
	showVersion = false
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetURLsForTest(u []string) {
	urls = u
}

func SetInputFileForTest(path string) {
	inputFile = path
}

func SetFixtureFileForTest(path string) {
	fixtureFile = path
}

func SetOutputFileForTest(path string) {
	outputFile = path
}

func SetThrottleLimitForTest(limit int) {
	throttleLimit = limit
}

func SetCacheMaxSizeForTest(size int) {
	cacheMaxSize = size
}

func SetTimeoutForTest(t time.Duration) {
	timeout = t
}

func SetLogLevelForTest(level string) {
	logLevel = level
}

func SetPrintMetricsForTest(enabled bool) {
	printMetrics = enabled
}
