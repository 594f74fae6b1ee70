package mockregistry_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shpitdev/registry-officer-search/internal/mockregistry"
)

func TestServer_RejectsWrongAPIKey(t *testing.T) {
	t.Parallel()

	srv := mockregistry.New(mockregistry.Fixture{})
	srv.RequireAPIKey("good-key")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/search/officers?q=x", nil)
	require.NoError(t, err)
	req.SetBasicAuth("bad-key", "")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req.SetBasicAuth("good-key", "")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestServer_PaginatesCompanyOfficers(t *testing.T) {
	t.Parallel()

	officers := make([]mockregistry.OfficerItem, 5)
	for i := range officers {
		officers[i] = mockregistry.OfficerItem{Name: string(rune('A' + i))}
	}
	srv := mockregistry.New(mockregistry.Fixture{
		CompanyOfficers: map[string][]mockregistry.OfficerItem{"00000001": officers},
	})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/company/00000001/officers?start_index=3&items_per_page=2")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Items []mockregistry.OfficerItem `json:"items"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Items, 2)
	assert.Equal(t, "D", body.Items[0].Name)
	assert.Equal(t, "E", body.Items[1].Name)
}

func TestLoadFixture(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fixture.yaml")
	in := `
officer_search:
  Jane Doe:
    - title: JANE DOE
      links: {self: /officers/abc123/appointments}
failures:
  /company/00000002: 500
`
	require.NoError(t, os.WriteFile(path, []byte(in), 0o600))

	f, err := mockregistry.LoadFixture(path)
	require.NoError(t, err)
	require.Len(t, f.OfficerSearch["Jane Doe"], 1)
	assert.Equal(t, "/officers/abc123/appointments", f.OfficerSearch["Jane Doe"][0].Links.Self)
	assert.Equal(t, 500, f.Failures["/company/00000002"])
}
