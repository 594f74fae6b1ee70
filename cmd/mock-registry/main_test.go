package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shpitdev/registry-officer-search/internal/mockregistry"
)

func TestBundledFixtureLoads(t *testing.T) {
	t.Parallel()

	f, err := mockregistry.LoadFixture("testdata/fixture.yaml")
	require.NoError(t, err)
	assert.Len(t, f.OfficerSearch["jane doe"], 2)
	assert.Equal(t, "ACME LIMITED", f.Profiles["00000001"].CompanyName)
	assert.Equal(t, 500, f.Failures["/company/00000002"])
	assert.Empty(t, f.Appointments["bbb222"])
}
