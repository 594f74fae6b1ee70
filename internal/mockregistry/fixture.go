package mockregistry

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fixture is the canned data served by a Server. Shapes mirror the registry wire format.
//
// Example (YAML):
//
//	officer_search:
//	  jane doe:
//	    - title: JANE DOE
//	      links: {self: /officers/abc123/appointments}
//	appointments:
//	  abc123:
//	    - appointed_to: {company_number: "00000001", company_name: ACME LTD}
//	      officer_role: director
//	      appointed_on: "2020-01-01"
//	failures:
//	  /company/00000002: 500
type Fixture struct {
	OfficerSearch   map[string][]OfficerSearchItem `yaml:"officer_search" json:"officer_search"`
	CompanySearch   map[string][]CompanySearchItem `yaml:"company_search" json:"company_search"`
	Appointments    map[string][]AppointmentItem   `yaml:"appointments" json:"appointments"`
	Profiles        map[string]Profile             `yaml:"profiles" json:"profiles"`
	CompanyOfficers map[string][]OfficerItem       `yaml:"company_officers" json:"company_officers"`

	// Failures maps a request path to the status code it should fail with.
	Failures map[string]int `yaml:"failures" json:"failures"`
}

type Links struct {
	Self string `yaml:"self" json:"self"`
}

type OfficerSearchItem struct {
	Title string `yaml:"title" json:"title"`
	Links Links  `yaml:"links" json:"links"`
}

type CompanySearchItem struct {
	CompanyNumber string `yaml:"company_number" json:"company_number"`
	Title         string `yaml:"title" json:"title"`
}

type AppointedTo struct {
	CompanyNumber string `yaml:"company_number" json:"company_number"`
	CompanyName   string `yaml:"company_name" json:"company_name"`
}

type AppointmentItem struct {
	AppointedTo AppointedTo `yaml:"appointed_to" json:"appointed_to"`
	OfficerRole string      `yaml:"officer_role" json:"officer_role,omitempty"`
	AppointedOn string      `yaml:"appointed_on" json:"appointed_on,omitempty"`
	ResignedOn  string      `yaml:"resigned_on" json:"resigned_on,omitempty"`
}

type Address struct {
	AddressLine1 string `yaml:"address_line_1" json:"address_line_1,omitempty"`
	AddressLine2 string `yaml:"address_line_2" json:"address_line_2,omitempty"`
	Locality     string `yaml:"locality" json:"locality,omitempty"`
	Region       string `yaml:"region" json:"region,omitempty"`
	PostalCode   string `yaml:"postal_code" json:"postal_code,omitempty"`
	Country      string `yaml:"country" json:"country,omitempty"`
}

type Profile struct {
	CompanyName             string   `yaml:"company_name" json:"company_name"`
	CompanyStatus           string   `yaml:"company_status" json:"company_status"`
	Type                    string   `yaml:"type" json:"type"`
	DateOfCreation          string   `yaml:"date_of_creation" json:"date_of_creation"`
	RegisteredOfficeAddress *Address `yaml:"registered_office_address" json:"registered_office_address,omitempty"`
}

type OfficerItem struct {
	Name        string `yaml:"name" json:"name"`
	OfficerRole string `yaml:"officer_role" json:"officer_role,omitempty"`
	AppointedOn string `yaml:"appointed_on" json:"appointed_on,omitempty"`
	ResignedOn  string `yaml:"resigned_on" json:"resigned_on,omitempty"`
}

// LoadFixture reads a YAML (or JSON) fixture file.
func LoadFixture(path string) (Fixture, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Fixture{}, fmt.Errorf("fixture path is required")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture file: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture YAML: %w", err)
	}
	return f, nil
}
