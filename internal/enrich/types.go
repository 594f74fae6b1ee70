package enrich

import (
	"context"

	"github.com/shpitdev/registry-officer-search/internal/registry"
)

// Source is the subset of the registry client the pipeline depends on.
type Source interface {
	SearchOfficers(ctx context.Context, name string) ([]registry.OfficerSearchHit, error)
	SearchCompanies(ctx context.Context, name string) ([]registry.CompanyHit, error)
	OfficerAppointments(ctx context.Context, officerID string) ([]registry.Appointment, error)
	CompanyDetail(ctx context.Context, companyNumber string) registry.DetailResult
	CompanyOfficers(ctx context.Context, companyNumber string) ([]registry.CompanyOfficer, error)
}

// EnrichedAppointment is an appointment flattened together with its company detail.
type EnrichedAppointment struct {
	CompanyName       string `json:"company_name" bson:"company_name"`
	CompanyNumber     string `json:"company_number" bson:"company_number"`
	CompanyStatus     string `json:"company_status" bson:"company_status"`
	CompanyType       string `json:"company_type" bson:"company_type"`
	IncorporationDate string `json:"incorporation_date" bson:"incorporation_date"`
	RegisteredAddress string `json:"registered_address" bson:"registered_address"`
	OfficerRole       string `json:"officer_role" bson:"officer_role"`
	AppointedOn       string `json:"appointed_on" bson:"appointed_on"`
	ResignedOn        string `json:"resigned_on" bson:"resigned_on"`
}

// OfficerResult is one officer with their enriched appointments.
type OfficerResult struct {
	OfficerName  string                `json:"officer_name" bson:"officer_name"`
	OfficerID    string                `json:"officer_id" bson:"officer_id"`
	Appointments []EnrichedAppointment `json:"appointments" bson:"appointments"`
}

// CompanyResult is one company with its detail and full officer list.
type CompanyResult struct {
	CompanyName       string                    `json:"company_name" bson:"company_name"`
	CompanyNumber     string                    `json:"company_number" bson:"company_number"`
	CompanyStatus     string                    `json:"company_status" bson:"company_status"`
	CompanyType       string                    `json:"company_type" bson:"company_type"`
	IncorporationDate string                    `json:"incorporation_date" bson:"incorporation_date"`
	RegisteredAddress string                    `json:"registered_address" bson:"registered_address"`
	Officers          []registry.CompanyOfficer `json:"officers" bson:"officers"`
}

func mergeAppointment(a registry.Appointment, d registry.CompanyDetail) EnrichedAppointment {
	return EnrichedAppointment{
		// The appointment payload's name wins; the profile name is not consulted here.
		CompanyName:       a.CompanyName,
		CompanyNumber:     a.CompanyNumber,
		CompanyStatus:     d.CompanyStatus,
		CompanyType:       d.CompanyType,
		IncorporationDate: d.IncorporationDate,
		RegisteredAddress: d.RegisteredAddress,
		OfficerRole:       a.OfficerRole,
		AppointedOn:       a.AppointedOn,
		ResignedOn:        a.ResignedOn,
	}
}

func companyResult(number, fallbackName string, d registry.CompanyDetail, officers []registry.CompanyOfficer) CompanyResult {
	name := d.CompanyName
	if name == "" {
		name = fallbackName
	}
	if officers == nil {
		officers = []registry.CompanyOfficer{}
	}
	return CompanyResult{
		CompanyName:       name,
		CompanyNumber:     number,
		CompanyStatus:     d.CompanyStatus,
		CompanyType:       d.CompanyType,
		IncorporationDate: d.IncorporationDate,
		RegisteredAddress: d.RegisteredAddress,
		Officers:          officers,
	}
}
