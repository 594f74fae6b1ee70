package console_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shpitdev/registry-officer-search/internal/console"
	"github.com/shpitdev/registry-officer-search/internal/enrich"
)

func TestPrinter_OfficerFlowLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := console.New(&buf)
	for _, e := range []enrich.Event{
		{Kind: enrich.EventOfficerSearch, Name: "Jane Doe"},
		{Kind: enrich.EventOfficersFound, Count: 2},
		{Kind: enrich.EventOfficerStart, Name: "JANE DOE", ID: "aaa"},
		{Kind: enrich.EventAppointmentsFound, Count: 1},
		{Kind: enrich.EventDetailProgress, Index: 1, Count: 1},
		{Kind: enrich.EventDetailMissing, ID: "00000001", Err: errors.New("status=404")},
		{Kind: enrich.EventOfficerDone, Count: 1},
		{Kind: enrich.EventOfficerSkipped, Name: "JOHN DOE", Err: errors.New("Authorization: Basic c2VjcmV0Og== rejected")},
	} {
		p.Report(e)
	}
	p.NoResults()

	out := buf.String()
	assert.Contains(t, out, "[+] Searching officers for: Jane Doe")
	assert.Contains(t, out, "[+] Found 2 officer variations.")
	assert.Contains(t, out, "--- Retrieving appointments for JANE DOE (aaa) ---")
	assert.Contains(t, out, "  Found 1 appointments.")
	assert.Contains(t, out, "    Fetching company details 1/1...")
	assert.Contains(t, out, "Error fetching company details for 00000001: status=404")
	assert.Contains(t, out, "  Enhanced 1 appointments with company details.")
	assert.Contains(t, out, "Error retrieving appointments for JOHN DOE")
	assert.NotContains(t, out, "c2VjcmV0Og==")
	assert.Contains(t, out, "[-] No appointments found for any officers.")
}

func TestPrinter_CompanyFlowLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := console.New(&buf)
	p.Report(enrich.Event{Kind: enrich.EventCompanyNumber, ID: "00000001"})
	p.Report(enrich.Event{Kind: enrich.EventCompanyOfficersFound, Count: 3})
	p.Saved("companies_x.csv", "companies_x.json")

	out := buf.String()
	assert.Contains(t, out, "[+] Retrieving officers (active + resigned) for company number: 00000001")
	assert.Contains(t, out, "Found 3 total officers (active + resigned).")
	assert.Contains(t, out, "[+] Results saved to companies_x.csv and companies_x.json")
}
