package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/shpitdev/registry-officer-search/internal/enrich"
)

const (
	PrefixOfficers  = "officers"
	PrefixCompanies = "companies"
)

// TimestampLayout is the second-resolution stamp embedded in output file names.
const TimestampLayout = "20060102_150405"

// Saved reports where a run's output landed.
type Saved struct {
	CSVPath  string
	JSONPath string
}

// Paths returns the CSV and JSON paths for prefix at now, inside dir.
func Paths(dir, prefix string, now time.Time) Saved {
	if dir == "" {
		dir = "."
	}
	base := fmt.Sprintf("%s_%s", prefix, now.Format(TimestampLayout))
	return Saved{
		CSVPath:  filepath.Join(dir, base+".csv"),
		JSONPath: filepath.Join(dir, base+".json"),
	}
}

// SaveOfficers writes officer results to timestamped JSON and CSV files in dir.
func SaveOfficers(dir string, results []enrich.OfficerResult, now time.Time) (Saved, error) {
	if results == nil {
		results = []enrich.OfficerResult{}
	}
	return save(Paths(dir, PrefixOfficers, now), results, func(w io.Writer) error {
		return WriteOfficersCSV(w, results)
	})
}

// SaveCompanies writes company results to timestamped JSON and CSV files in dir.
func SaveCompanies(dir string, results []enrich.CompanyResult, now time.Time) (Saved, error) {
	if results == nil {
		results = []enrich.CompanyResult{}
	}
	return save(Paths(dir, PrefixCompanies, now), results, func(w io.Writer) error {
		return WriteCompaniesCSV(w, results)
	})
}

func save(paths Saved, results any, writeCSV func(io.Writer) error) (Saved, error) {
	if err := writeFile(paths.JSONPath, func(w io.Writer) error { return WriteJSON(w, results) }); err != nil {
		return Saved{}, fmt.Errorf("write json output: %w", err)
	}
	if err := writeFile(paths.CSVPath, writeCSV); err != nil {
		return Saved{}, fmt.Errorf("write csv output: %w", err)
	}
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	if err := write(f); err != nil {
		return err
	}
	return f.Close()
}
