package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/shpitdev/registry-officer-search/internal/app"
	"github.com/shpitdev/registry-officer-search/internal/config"
	"github.com/shpitdev/registry-officer-search/internal/console"
	"github.com/shpitdev/registry-officer-search/internal/enrich"
	"github.com/shpitdev/registry-officer-search/internal/logger"
	"github.com/shpitdev/registry-officer-search/internal/metrics"
	"github.com/shpitdev/registry-officer-search/internal/output"
	"github.com/shpitdev/registry-officer-search/internal/prompt"
	"github.com/shpitdev/registry-officer-search/internal/redact"
	"github.com/shpitdev/registry-officer-search/internal/registry"
	"github.com/shpitdev/registry-officer-search/internal/version"
)

const (
	exitOK     = 0
	exitRun    = 1
	exitConfig = 2
)

type streams struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// cli holds the state of one invocation.
type cli struct {
	streams
	// apiKey is set once the configuration has loaded and is scrubbed from all output.
	apiKey string
}

// configError marks failures that happen before any request is made.
type configError struct{ err error }

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

type flags struct {
	officer     string
	company     string
	number      string
	configPath  string
	outputDir   string
	delay       time.Duration
	baseURL     string
	logLevel    string
	logPretty   bool
	metricsFile string
	mongoURI    string
	mongoDB     string
}

func run(ctx context.Context, args []string, s streams) int {
	c := &cli{streams: s}
	cmd := c.rootCmd()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		_, _ = fmt.Fprintf(s.errOut, "config error: %s\n", redact.Value(err.Error(), c.apiKey))
		return exitConfig
	}
	_, _ = fmt.Fprintf(s.errOut, "run failed: %s\n", redact.Value(err.Error(), c.apiKey))
	return exitRun
}

func (c *cli) rootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "officersearch",
		Short: "Look up company officers and companies in the registry",
		Long: `officersearch queries the companies registry by officer name, company name or
company number, enriches every hit with company details and officer lists, and
writes the results to timestamped CSV and JSON files.

With no lookup flag it prompts for an officer name.

Environment:
  REGISTRY_API_KEY       API key (replaces API_KEY from the config file)
  REGISTRY_BASE_URL      API base URL override
  REGISTRY_DETAIL_DELAY  Delay between company detail requests (e.g. 200ms)
  REGISTRY_TIMEOUT       Per-request timeout
  REGISTRY_OUTPUT_DIR    Directory for output files`,
		Version:       version.Current,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.execute(cmd, f)
		},
	}
	cmd.SetIn(c.in)
	cmd.SetOut(c.out)
	cmd.SetErr(c.errOut)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &configError{err: err}
	})

	fl := cmd.Flags()
	fl.StringVar(&f.officer, "officer", "", "Search by officer name")
	fl.StringVar(&f.company, "company", "", "Search by company name")
	fl.StringVar(&f.number, "number", "", "Look up a single company number")
	fl.StringVarP(&f.configPath, "config", "c", config.DefaultPath, "Configuration file (JSON or YAML)")
	fl.StringVarP(&f.outputDir, "output-dir", "o", "", "Directory for output files (default \".\")")
	fl.DurationVar(&f.delay, "delay", enrich.DefaultDetailDelay, "Delay between company detail requests, 0 disables")
	fl.StringVar(&f.baseURL, "base-url", "", "API base URL override")
	fl.StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fl.BoolVar(&f.logPretty, "log-pretty", false, "Human-readable log output on stderr")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")
	fl.StringVar(&f.mongoURI, "mongo-uri", "", "Also store results in MongoDB at this URI")
	fl.StringVar(&f.mongoDB, "mongo-db", "officersearch", "MongoDB database name")
	return cmd
}

func (c *cli) execute(cmd *cobra.Command, f flags) error {
	ctx := cmd.Context()

	if err := config.LoadDotEnv(); err != nil {
		return &configError{err: err}
	}
	var ov config.Overrides
	if cmd.Flags().Changed("base-url") {
		ov.BaseURL = &f.baseURL
	}
	if cmd.Flags().Changed("delay") {
		ov.DetailDelay = &f.delay
	}
	if cmd.Flags().Changed("output-dir") {
		ov.OutputDir = &f.outputDir
	}
	cfg, err := config.Load(f.configPath, ov)
	if err != nil {
		return &configError{err: err}
	}
	c.apiKey = cfg.APIKey

	log := logger.New(logger.Config{Level: f.logLevel, Pretty: f.logPretty, Output: redact.NewWriter(c.errOut, cfg.APIKey)})
	m := metrics.New()

	client, err := registry.NewClient(registry.Options{
		BaseURL:  cfg.BaseURL,
		APIKey:   cfg.APIKey,
		Timeout:  cfg.Timeout,
		Observer: m,
		Logger:   &log,
	})
	if err != nil {
		return &configError{err: err}
	}

	printer := console.New(c.out)
	appLog := logger.Component(log, "app")
	runner := &app.Runner{
		Flows: enrich.New(client, enrich.Options{
			DetailDelay: cfg.DetailDelay,
			Reporter:    printer,
			Logger:      &log,
			Metrics:     m,
		}),
		Console:   printer,
		OutputDir: cfg.OutputDir,
		Metrics:   m,
		Logger:    &appLog,
		Prompt: func(ctx context.Context) (string, error) {
			return prompt.Ask(ctx, c.in, c.out, app.InteractiveLabel)
		},
	}

	if uri := strings.TrimSpace(f.mongoURI); uri != "" {
		sink, err := output.ConnectMongo(ctx, uri, f.mongoDB)
		if err != nil {
			return &configError{err: err}
		}
		defer closeSink(sink, log)
		runner.Sink = sink
	}

	mode, query := app.SelectMode(f.officer, f.company, f.number)
	runErr := runner.Run(ctx, mode, query)

	if f.metricsFile != "" {
		if err := m.WriteFile(f.metricsFile); err != nil {
			log.Warn().Str("path", f.metricsFile).Err(err).Msg("write metrics file")
		}
	}
	return runErr
}

func closeSink(sink output.Sink, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sink.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("close result sink")
	}
}
