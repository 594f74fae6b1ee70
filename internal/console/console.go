// Package console prints the human-facing status lines of a run.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/shpitdev/registry-officer-search/internal/enrich"
	"github.com/shpitdev/registry-officer-search/internal/redact"
)

type styles struct {
	info    lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	heading lipgloss.Style
	detail  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		info: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#859900", Dark: "#50fa7b"}).
			Bold(true),
		warn: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#b58900", Dark: "#f1fa8c"}).
			Bold(true),
		err: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#dc322f", Dark: "#ff5555"}),
		heading: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#005577", Dark: "#00aadd"}).
			Bold(true),
		detail: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#626262", Dark: "#a8a8a8"}),
	}
}

// Printer writes status lines to out. Colors are only emitted when out is a terminal.
type Printer struct {
	out io.Writer
	st  styles
}

// New creates a Printer for out.
func New(out io.Writer) *Printer {
	return &Printer{
		out: out,
		st:  newStyles(lipgloss.NewRenderer(out)),
	}
}

// Info prints a "[+]" line.
func (p *Printer) Info(format string, args ...any) {
	p.line(p.st.info.Render("[+]") + " " + fmt.Sprintf(format, args...))
}

// Notice prints a "[-]" line.
func (p *Printer) Notice(format string, args ...any) {
	p.line(p.st.warn.Render("[-]") + " " + fmt.Sprintf(format, args...))
}

// Saved prints the output file locations.
func (p *Printer) Saved(csvPath, jsonPath string) {
	p.Info("Results saved to %s and %s", csvPath, jsonPath)
}

// NoResults prints the notice shown when the officer flow produced nothing to write.
func (p *Printer) NoResults() {
	p.Notice("No appointments found for any officers.")
}

// Report renders pipeline progress events. It satisfies enrich.Reporter.
func (p *Printer) Report(e enrich.Event) {
	switch e.Kind {
	case enrich.EventOfficerSearch:
		p.Info("Searching officers for: %s", e.Name)
	case enrich.EventOfficersFound:
		p.Info("Found %d officer variations.\n", e.Count)
	case enrich.EventOfficerStart:
		p.line(p.st.heading.Render(fmt.Sprintf("--- Retrieving appointments for %s (%s) ---", e.Name, e.ID)))
	case enrich.EventAppointmentsFound:
		p.line(fmt.Sprintf("  Found %d appointments.", e.Count))
	case enrich.EventDetailProgress:
		p.line(p.st.detail.Render(fmt.Sprintf("    Fetching company details %d/%d...", e.Index, e.Count)))
	case enrich.EventDetailMissing:
		p.line(p.st.err.Render(fmt.Sprintf("    Error fetching company details for %s: %s", e.ID, errText(e.Err))))
	case enrich.EventOfficerDone:
		p.line(fmt.Sprintf("  Enhanced %d appointments with company details.\n", e.Count))
	case enrich.EventOfficerSkipped:
		p.line(p.st.err.Render(fmt.Sprintf("  Error retrieving appointments for %s: %s", e.Name, errText(e.Err))) + "\n")
	case enrich.EventCompanySearch:
		p.Info("Searching companies for: %s", e.Name)
	case enrich.EventCompaniesFound:
		p.Info("Found %d company matches.\n", e.Count)
	case enrich.EventCompanyStart:
		p.line(p.st.heading.Render(fmt.Sprintf("--- Retrieving officers (active + resigned) for %s (%s) ---", e.Name, e.ID)))
	case enrich.EventCompanyNumber:
		p.Info("Retrieving officers (active + resigned) for company number: %s", e.ID)
	case enrich.EventCompanyOfficersFound:
		p.line(fmt.Sprintf("  Found %d total officers (active + resigned).\n", e.Count))
	}
}

func (p *Printer) line(s string) {
	_, _ = fmt.Fprintln(p.out, s)
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return redact.Secrets(err.Error())
}
