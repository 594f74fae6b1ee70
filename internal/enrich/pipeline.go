package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shpitdev/registry-officer-search/internal/metrics"
	"github.com/shpitdev/registry-officer-search/internal/redact"
	"github.com/shpitdev/registry-officer-search/internal/registry"
)

// Options configures a Pipeline.
type Options struct {
	// DetailDelay is the minimum gap between company detail fetches in the officer flow.
	// Zero disables the delay.
	DetailDelay time.Duration

	Reporter Reporter
	Logger   *zerolog.Logger
	Metrics  *metrics.Metrics
}

// Pipeline runs the multi-step lookups and assembles nested results. It is
// sequential and must not be shared between goroutines.
type Pipeline struct {
	src      Source
	throttle *throttle
	reporter Reporter
	log      zerolog.Logger
	metrics  *metrics.Metrics
}

// New constructs a Pipeline over src.
func New(src Source, opts Options) *Pipeline {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "enrich").Logger()
	}
	return &Pipeline{
		src:      src,
		throttle: newThrottle(opts.DetailDelay),
		reporter: reporter,
		log:      log,
		metrics:  opts.Metrics,
	}
}

// ByOfficer searches officers by name and enriches every appointment of every hit.
//
// A failed search aborts the run. A failed appointment fetch drops only that officer.
// Officers whose fetch succeeded are kept even with no appointments.
func (p *Pipeline) ByOfficer(ctx context.Context, name string) ([]OfficerResult, error) {
	name = strings.TrimSpace(name)
	p.reporter.Report(Event{Kind: EventOfficerSearch, Name: name})

	hits, err := p.src.SearchOfficers(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search officers %q: %w", name, err)
	}
	p.reporter.Report(Event{Kind: EventOfficersFound, Count: len(hits)})

	results := make([]OfficerResult, 0, len(hits))
	for _, hit := range hits {
		res, err := p.enrichOfficer(ctx, hit)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			p.log.Warn().
				Str("officer", hit.Title).
				Str("officer_id", hit.OfficerID).
				Str("error", redact.Secrets(err.Error())).
				Msg("skipping officer: appointments unavailable")
			p.metrics.OfficerSkipped()
			p.reporter.Report(Event{Kind: EventOfficerSkipped, Name: hit.Title, ID: hit.OfficerID, Err: err})
			continue
		}
		results = append(results, res)
	}
	return results, nil
}

func (p *Pipeline) enrichOfficer(ctx context.Context, hit registry.OfficerSearchHit) (OfficerResult, error) {
	p.reporter.Report(Event{Kind: EventOfficerStart, Name: hit.Title, ID: hit.OfficerID})
	if hit.OfficerID == "" {
		return OfficerResult{}, fmt.Errorf("officer %q: no officer id in link %q", hit.Title, hit.SelfLink)
	}

	appts, err := p.src.OfficerAppointments(ctx, hit.OfficerID)
	if err != nil {
		return OfficerResult{}, fmt.Errorf("officer appointments %s: %w", hit.OfficerID, err)
	}
	p.reporter.Report(Event{Kind: EventAppointmentsFound, Count: len(appts)})

	enriched := make([]EnrichedAppointment, 0, len(appts))
	for i, a := range appts {
		p.reporter.Report(Event{Kind: EventDetailProgress, Index: i + 1, Count: len(appts)})
		if err := p.throttle.Wait(ctx); err != nil {
			return OfficerResult{}, err
		}
		enriched = append(enriched, mergeAppointment(a, p.detail(ctx, a.CompanyNumber)))
	}
	p.reporter.Report(Event{Kind: EventOfficerDone, Name: hit.Title, ID: hit.OfficerID, Count: len(enriched)})

	return OfficerResult{
		OfficerName:  hit.Title,
		OfficerID:    hit.OfficerID,
		Appointments: enriched,
	}, nil
}

// ByCompanyName searches companies by name and collects detail and officers for every hit.
// Any officer-list failure aborts the run.
func (p *Pipeline) ByCompanyName(ctx context.Context, name string) ([]CompanyResult, error) {
	name = strings.TrimSpace(name)
	p.reporter.Report(Event{Kind: EventCompanySearch, Name: name})

	hits, err := p.src.SearchCompanies(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search companies %q: %w", name, err)
	}
	p.reporter.Report(Event{Kind: EventCompaniesFound, Count: len(hits)})

	results := make([]CompanyResult, 0, len(hits))
	for _, hit := range hits {
		p.reporter.Report(Event{Kind: EventCompanyStart, Name: hit.Title, ID: hit.CompanyNumber})
		res, err := p.company(ctx, hit.CompanyNumber, hit.Title)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// ByCompanyNumber collects detail and officers for a single company number.
func (p *Pipeline) ByCompanyNumber(ctx context.Context, number string) ([]CompanyResult, error) {
	number = strings.TrimSpace(number)
	p.reporter.Report(Event{Kind: EventCompanyNumber, ID: number})

	res, err := p.company(ctx, number, number)
	if err != nil {
		return nil, err
	}
	return []CompanyResult{res}, nil
}

func (p *Pipeline) company(ctx context.Context, number, fallbackName string) (CompanyResult, error) {
	detail := p.detail(ctx, number)

	officers, err := p.src.CompanyOfficers(ctx, number)
	if err != nil {
		return CompanyResult{}, fmt.Errorf("company officers %s: %w", number, err)
	}
	p.reporter.Report(Event{Kind: EventCompanyOfficersFound, ID: number, Count: len(officers)})

	return companyResult(number, fallbackName, detail, officers), nil
}

// detail fetches the company profile, normalizing a miss to the empty placeholder.
func (p *Pipeline) detail(ctx context.Context, number string) registry.CompanyDetail {
	res := p.src.CompanyDetail(ctx, number)
	if err := res.Err(); err != nil {
		// A company without a profile is routine; anything else points at the service.
		ev := p.log.Warn()
		if registry.IsNotFound(err) {
			ev = p.log.Info()
		}
		ev.Str("company_number", number).
			Str("error", redact.Secrets(err.Error())).
			Msg("company detail unavailable, using empty placeholder")
		p.metrics.DetailMissed()
		p.reporter.Report(Event{Kind: EventDetailMissing, ID: number, Err: err})
	}
	return res.Detail()
}
