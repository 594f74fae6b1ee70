package output

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shpitdev/registry-officer-search/internal/enrich"
	"github.com/shpitdev/registry-officer-search/internal/registry"
)

func TestOfficerDocuments_InlineResult(t *testing.T) {
	t.Parallel()

	runAt := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	docs := officerDocuments(runAt, []enrich.OfficerResult{{
		OfficerName:  "JANE DOE",
		OfficerID:    "aaa",
		Appointments: []enrich.EnrichedAppointment{{CompanyNumber: "00000001"}},
	}})
	require.Len(t, docs, 1)

	b, err := bson.Marshal(docs[0])
	require.NoError(t, err)
	var m bson.M
	require.NoError(t, bson.Unmarshal(b, &m))

	assert.Equal(t, "JANE DOE", m["officer_name"])
	assert.Equal(t, "aaa", m["officer_id"])
	assert.Contains(t, m, "run_at")
	appts, ok := m["appointments"].(bson.A)
	require.True(t, ok, "appointments should be an array, got %T", m["appointments"])
	require.Len(t, appts, 1)
}

func TestCompanyDocuments_InlineResult(t *testing.T) {
	t.Parallel()

	docs := companyDocuments(time.Now(), []enrich.CompanyResult{
		{CompanyNumber: "1", Officers: []registry.CompanyOfficer{{Name: "A"}}},
		{CompanyNumber: "2", Officers: []registry.CompanyOfficer{}},
	})
	require.Len(t, docs, 2)

	b, err := bson.Marshal(docs[1])
	require.NoError(t, err)
	var m bson.M
	require.NoError(t, bson.Unmarshal(b, &m))
	assert.Equal(t, "2", m["company_number"])
	assert.NotContains(t, m, "companyresult")
}

func TestMongoSink_EmptyResultsSkipInsert(t *testing.T) {
	t.Parallel()

	// No client or database: an insert attempt would panic.
	s := &MongoSink{}
	require.NoError(t, s.StoreOfficers(context.Background(), time.Now(), nil))
	require.NoError(t, s.StoreCompanies(context.Background(), time.Now(), []enrich.CompanyResult{}))
}

func TestMongoSink_InsertErrorIsWrapped(t *testing.T) {
	t.Parallel()

	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(100*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	s := &MongoSink{client: client, db: client.Database("officersearch_test")}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.StoreCompanies(ctx, time.Now(), []enrich.CompanyResult{{CompanyNumber: "00000001"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert 1 companies documents")
}
