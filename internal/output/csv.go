package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shpitdev/registry-officer-search/internal/enrich"
	"github.com/shpitdev/registry-officer-search/internal/registry"
)

const (
	colOfficerName       = "Officer Name"
	colOfficerID         = "Officer ID"
	colCompanyName       = "Company Name"
	colCompanyNumber     = "Company Number"
	colCompanyStatus     = "Company Status"
	colCompanyType       = "Company Type"
	colIncorporationDate = "Incorporation Date"
	colRegisteredAddress = "Registered Office Address"
	colOfficerRole       = "Officer Role"
	colAppointedOn       = "Appointed On"
	colResignedOn        = "Resigned On"
)

// OfficerHeader returns the stable CSV header for officer-centric output.
func OfficerHeader() []string {
	return []string{
		colOfficerName,
		colOfficerID,
		colCompanyName,
		colCompanyNumber,
		colCompanyStatus,
		colCompanyType,
		colIncorporationDate,
		colRegisteredAddress,
		colOfficerRole,
		colAppointedOn,
		colResignedOn,
	}
}

// CompanyHeader returns the stable CSV header for company-centric output.
func CompanyHeader() []string {
	return []string{
		colCompanyName,
		colCompanyNumber,
		colCompanyStatus,
		colCompanyType,
		colIncorporationDate,
		colRegisteredAddress,
		colOfficerName,
		colOfficerRole,
		colAppointedOn,
		colResignedOn,
	}
}

// OfficerRecord is one row of officer-centric CSV output.
type OfficerRecord struct {
	OfficerName string
	OfficerID   string
	Appointment enrich.EnrichedAppointment
}

// CompanyRecord is one row of company-centric CSV output.
type CompanyRecord struct {
	CompanyName       string
	CompanyNumber     string
	CompanyStatus     string
	CompanyType       string
	IncorporationDate string
	RegisteredAddress string
	Officer           registry.CompanyOfficer
}

// OfficerRows flattens results to one row per (officer, appointment) pair.
// Officers without appointments contribute no rows.
func OfficerRows(results []enrich.OfficerResult) [][]string {
	var rows [][]string
	for _, o := range results {
		for _, a := range o.Appointments {
			rows = append(rows, []string{
				o.OfficerName,
				o.OfficerID,
				a.CompanyName,
				a.CompanyNumber,
				a.CompanyStatus,
				a.CompanyType,
				a.IncorporationDate,
				a.RegisteredAddress,
				a.OfficerRole,
				a.AppointedOn,
				a.ResignedOn,
			})
		}
	}
	return rows
}

// CompanyRows flattens results to one row per (company, officer) pair.
// Companies without officers contribute no rows.
func CompanyRows(results []enrich.CompanyResult) [][]string {
	var rows [][]string
	for _, c := range results {
		for _, o := range c.Officers {
			rows = append(rows, []string{
				c.CompanyName,
				c.CompanyNumber,
				c.CompanyStatus,
				c.CompanyType,
				c.IncorporationDate,
				c.RegisteredAddress,
				o.Name,
				o.OfficerRole,
				o.AppointedOn,
				o.ResignedOn,
			})
		}
	}
	return rows
}

// WriteOfficersCSV writes officer results with the OfficerHeader() ordering.
func WriteOfficersCSV(w io.Writer, results []enrich.OfficerResult) error {
	return writeCSV(w, OfficerHeader(), OfficerRows(results))
}

// WriteCompaniesCSV writes company results with the CompanyHeader() ordering.
func WriteCompaniesCSV(w io.Writer, results []enrich.CompanyResult) error {
	return writeCSV(w, CompanyHeader(), CompanyRows(results))
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// ReadOfficersCSV parses officer-centric CSV output. Columns are located by header
// name, so their order does not matter; every OfficerHeader() column must be present.
func ReadOfficersCSV(r io.Reader) ([]OfficerRecord, error) {
	rows, err := readIndexed(r, OfficerHeader())
	if err != nil {
		return nil, err
	}
	out := make([]OfficerRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, OfficerRecord{
			OfficerName: row[colOfficerName],
			OfficerID:   row[colOfficerID],
			Appointment: enrich.EnrichedAppointment{
				CompanyName:       row[colCompanyName],
				CompanyNumber:     row[colCompanyNumber],
				CompanyStatus:     row[colCompanyStatus],
				CompanyType:       row[colCompanyType],
				IncorporationDate: row[colIncorporationDate],
				RegisteredAddress: row[colRegisteredAddress],
				OfficerRole:       row[colOfficerRole],
				AppointedOn:       row[colAppointedOn],
				ResignedOn:        row[colResignedOn],
			},
		})
	}
	return out, nil
}

// ReadCompaniesCSV parses company-centric CSV output by header name.
func ReadCompaniesCSV(r io.Reader) ([]CompanyRecord, error) {
	rows, err := readIndexed(r, CompanyHeader())
	if err != nil {
		return nil, err
	}
	out := make([]CompanyRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, CompanyRecord{
			CompanyName:       row[colCompanyName],
			CompanyNumber:     row[colCompanyNumber],
			CompanyStatus:     row[colCompanyStatus],
			CompanyType:       row[colCompanyType],
			IncorporationDate: row[colIncorporationDate],
			RegisteredAddress: row[colRegisteredAddress],
			Officer: registry.CompanyOfficer{
				Name:        row[colOfficerName],
				OfficerRole: row[colOfficerRole],
				AppointedOn: row[colAppointedOn],
				ResignedOn:  row[colResignedOn],
			},
		})
	}
	return out, nil
}

func readIndexed(r io.Reader, want []string) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv header is missing")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	for _, col := range want {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("csv header missing column %q", col)
		}
	}

	var rows []map[string]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		row := make(map[string]string, len(want))
		for _, col := range want {
			row[col] = rec[index[col]]
		}
		rows = append(rows, row)
	}
}
