package registry_test

import (
	"testing"

	"github.com/shpitdev/registry-officer-search/internal/registry"
)

func TestFormatAddress(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   *registry.Address
		want string
	}{
		{name: "nil", in: nil, want: ""},
		{name: "empty", in: &registry.Address{}, want: ""},
		{
			name: "all fields in order",
			in: &registry.Address{
				AddressLine1: "1 High Street",
				AddressLine2: "Suite 2",
				Locality:     "London",
				Region:       "Greater London",
				PostalCode:   "EC1A 1AA",
				Country:      "United Kingdom",
			},
			want: "1 High Street, Suite 2, London, Greater London, EC1A 1AA, United Kingdom",
		},
		{
			name: "skips empty and blank",
			in: &registry.Address{
				AddressLine1: "1 High Street",
				AddressLine2: "   ",
				PostalCode:   "EC1A 1AA",
			},
			want: "1 High Street, EC1A 1AA",
		},
		{
			name: "ignores unrecognized fields",
			in: &registry.Address{
				Premises: "Unit 4",
				CareOf:   "Agent Ltd",
				Locality: "Leeds",
			},
			want: "Leeds",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := registry.FormatAddress(tc.in); got != tc.want {
				t.Fatalf("FormatAddress()=%q, want %q", got, tc.want)
			}
		})
	}
}

func TestOfficerIDFromLink(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"/officers/abc123/appointments": "abc123",
		"/officers/abc123":              "abc123",
		"/company/00000001":             "",
		"":                              "",
	}
	for in, want := range cases {
		if got := registry.OfficerIDFromLink(in); got != want {
			t.Errorf("OfficerIDFromLink(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestDetailResult(t *testing.T) {
	t.Parallel()

	found := registry.Found(registry.CompanyDetail{CompanyName: "ACME LTD"})
	if !found.OK() || found.Err() != nil || found.Detail().CompanyName != "ACME LTD" {
		t.Fatalf("unexpected found result: %#v", found)
	}

	missing := registry.Missing(nil)
	if missing.OK() || missing.Err() == nil {
		t.Fatalf("expected missing result to carry an error")
	}
	if missing.Detail() != (registry.CompanyDetail{}) {
		t.Fatalf("expected placeholder detail, got %#v", missing.Detail())
	}
}
