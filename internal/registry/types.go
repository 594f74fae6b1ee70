package registry

import "strings"

// OfficerSearchHit is one match returned by the officer search endpoint.
type OfficerSearchHit struct {
	OfficerID string
	Title     string
	SelfLink  string
}

// CompanyHit is one match returned by the company search endpoint.
type CompanyHit struct {
	CompanyNumber string
	Title         string
}

// Appointment links one officer to one company.
type Appointment struct {
	CompanyNumber string
	CompanyName   string
	OfficerRole   string
	AppointedOn   string
	ResignedOn    string
}

// CompanyDetail is the profile metadata used to enrich appointments and company results.
//
// The zero value is the placeholder used when the profile could not be fetched.
type CompanyDetail struct {
	CompanyName       string
	CompanyStatus     string
	CompanyType       string
	IncorporationDate string
	RegisteredAddress string
}

// CompanyOfficer is one entry of a company's officer list (active and resigned).
type CompanyOfficer struct {
	Name        string `json:"name" bson:"name"`
	OfficerRole string `json:"officer_role" bson:"officer_role"`
	AppointedOn string `json:"appointed_on" bson:"appointed_on"`
	ResignedOn  string `json:"resigned_on" bson:"resigned_on"`
}

// Address is the structured registered office address returned by the company profile endpoint.
type Address struct {
	CareOf       string `json:"care_of"`
	POBox        string `json:"po_box"`
	Premises     string `json:"premises"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2"`
	Locality     string `json:"locality"`
	Region       string `json:"region"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

type itemsResponse[T any] struct {
	Items []T `json:"items"`
}

type officerSearchItem struct {
	Title string `json:"title"`
	Links struct {
		Self string `json:"self"`
	} `json:"links"`
}

type companySearchItem struct {
	CompanyNumber string `json:"company_number"`
	Title         string `json:"title"`
}

type appointmentItem struct {
	AppointedTo struct {
		CompanyNumber string `json:"company_number"`
		CompanyName   string `json:"company_name"`
	} `json:"appointed_to"`
	OfficerRole string `json:"officer_role"`
	AppointedOn string `json:"appointed_on"`
	ResignedOn  string `json:"resigned_on"`
}

type companyProfile struct {
	CompanyName             string   `json:"company_name"`
	CompanyStatus           string   `json:"company_status"`
	Type                    string   `json:"type"`
	DateOfCreation          string   `json:"date_of_creation"`
	RegisteredOfficeAddress *Address `json:"registered_office_address"`
}

type officerListItem struct {
	Name        string `json:"name"`
	OfficerRole string `json:"officer_role"`
	AppointedOn string `json:"appointed_on"`
	ResignedOn  string `json:"resigned_on"`
}

// OfficerIDFromLink extracts the officer id from a self link such as
// "/officers/<id>/appointments". It returns "" when the link has no id.
func OfficerIDFromLink(link string) string {
	const marker = "/officers/"
	i := strings.Index(link, marker)
	if i < 0 {
		return ""
	}
	rest := link[i+len(marker):]
	if j := strings.Index(rest, "/"); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}
