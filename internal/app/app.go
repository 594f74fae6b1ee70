package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shpitdev/registry-officer-search/internal/console"
	"github.com/shpitdev/registry-officer-search/internal/enrich"
	"github.com/shpitdev/registry-officer-search/internal/metrics"
	"github.com/shpitdev/registry-officer-search/internal/output"
	"github.com/shpitdev/registry-officer-search/internal/prompt"
	"github.com/shpitdev/registry-officer-search/internal/redact"
)

// InteractiveLabel is shown when no lookup flag was supplied.
const InteractiveLabel = "Enter the director's full name: "

// Mode is the lookup selected for a run.
type Mode int

const (
	ModeInteractive Mode = iota
	ModeOfficer
	ModeCompanyName
	ModeCompanyNumber
)

func (m Mode) String() string {
	switch m {
	case ModeOfficer:
		return "officer"
	case ModeCompanyName:
		return "company"
	case ModeCompanyNumber:
		return "number"
	default:
		return "interactive"
	}
}

// SelectMode picks the lookup from the three flags. The first non-blank flag wins,
// in the order officer, company, number; with none set the run is interactive.
func SelectMode(officer, company, number string) (Mode, string) {
	if v := strings.TrimSpace(officer); v != "" {
		return ModeOfficer, v
	}
	if v := strings.TrimSpace(company); v != "" {
		return ModeCompanyName, v
	}
	if v := strings.TrimSpace(number); v != "" {
		return ModeCompanyNumber, v
	}
	return ModeInteractive, ""
}

// Flows is implemented by *enrich.Pipeline.
type Flows interface {
	ByOfficer(ctx context.Context, name string) ([]enrich.OfficerResult, error)
	ByCompanyName(ctx context.Context, name string) ([]enrich.CompanyResult, error)
	ByCompanyNumber(ctx context.Context, number string) ([]enrich.CompanyResult, error)
}

// Runner executes exactly one lookup flow and writes its output.
type Runner struct {
	Flows     Flows
	Console   *console.Printer
	OutputDir string

	// Sink, when set, also receives the results after the files are written.
	Sink    output.Sink
	Metrics *metrics.Metrics
	Logger  *zerolog.Logger

	// Prompt asks for the officer name in interactive mode.
	Prompt func(ctx context.Context) (string, error)
	// Now stamps output file names; defaults to time.Now.
	Now func() time.Time
}

// Run executes the flow for mode.
func (r *Runner) Run(ctx context.Context, mode Mode, query string) error {
	log := zerolog.Nop()
	if r.Logger != nil {
		log = *r.Logger
	}
	runStart := r.now()
	log = log.With().Str("run", fmt.Sprintf("run-%d", runStart.UnixNano())).Str("mode", mode.String()).Logger()
	log.Info().Str("query", query).Msg("run start")

	var err error
	switch mode {
	case ModeOfficer:
		err = r.runOfficer(ctx, log, query)
	case ModeCompanyName:
		err = r.runCompanies(ctx, log, func() ([]enrich.CompanyResult, error) {
			return r.Flows.ByCompanyName(ctx, query)
		})
	case ModeCompanyNumber:
		err = r.runCompanies(ctx, log, func() ([]enrich.CompanyResult, error) {
			return r.Flows.ByCompanyNumber(ctx, query)
		})
	default:
		err = r.runInteractive(ctx, log)
	}
	if err != nil {
		log.Error().Str("error", redact.Secrets(err.Error())).Msg("run failed")
		return err
	}
	log.Info().Dur("duration", time.Since(runStart).Round(time.Millisecond)).Msg("run complete")
	return nil
}

func (r *Runner) runInteractive(ctx context.Context, log zerolog.Logger) error {
	if r.Prompt == nil {
		return fmt.Errorf("interactive mode requires a prompt")
	}
	name, err := r.Prompt(ctx)
	if errors.Is(err, prompt.ErrCancelled) {
		log.Info().Msg("prompt cancelled")
		return nil
	}
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		log.Info().Msg("no name entered")
		return nil
	}
	return r.runOfficer(ctx, log, name)
}

func (r *Runner) runOfficer(ctx context.Context, log zerolog.Logger, name string) error {
	results, err := r.Flows.ByOfficer(ctx, name)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		log.Info().Msg("no officer results, skipping output")
		r.Console.NoResults()
		return nil
	}

	now := r.now()
	saved, err := output.SaveOfficers(r.OutputDir, results, now)
	if err != nil {
		return err
	}
	r.Metrics.Written(output.PrefixOfficers, len(results))
	r.Console.Saved(saved.CSVPath, saved.JSONPath)
	log.Info().Int("officers", len(results)).Str("csv", saved.CSVPath).Str("json", saved.JSONPath).Msg("output written")

	if r.Sink != nil {
		if err := r.Sink.StoreOfficers(ctx, now, results); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runCompanies(ctx context.Context, log zerolog.Logger, fetch func() ([]enrich.CompanyResult, error)) error {
	results, err := fetch()
	if err != nil {
		return err
	}

	now := r.now()
	saved, err := output.SaveCompanies(r.OutputDir, results, now)
	if err != nil {
		return err
	}
	r.Metrics.Written(output.PrefixCompanies, len(results))
	r.Console.Saved(saved.CSVPath, saved.JSONPath)
	log.Info().Int("companies", len(results)).Str("csv", saved.CSVPath).Str("json", saved.JSONPath).Msg("output written")

	if r.Sink != nil {
		if err := r.Sink.StoreCompanies(ctx, now, results); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
