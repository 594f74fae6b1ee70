package output

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shpitdev/registry-officer-search/internal/enrich"
)

// Sink receives a run's results in addition to the CSV/JSON files.
type Sink interface {
	StoreOfficers(ctx context.Context, runAt time.Time, results []enrich.OfficerResult) error
	StoreCompanies(ctx context.Context, runAt time.Time, results []enrich.CompanyResult) error
	Close(ctx context.Context) error
}

type officerDocument struct {
	RunAt                time.Time `bson:"run_at"`
	enrich.OfficerResult `bson:",inline"`
}

type companyDocument struct {
	RunAt                time.Time `bson:"run_at"`
	enrich.CompanyResult `bson:",inline"`
}

// MongoSink inserts one document per top-level result into <db>.officers or <db>.companies.
// Documents are append-only and never read back.
type MongoSink struct {
	client *mongo.Client
	db     *mongo.Database
}

// ConnectMongo connects and pings the server at uri.
func ConnectMongo(ctx context.Context, uri, dbName string) (*MongoSink, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, fmt.Errorf("mongo uri is required")
	}
	if strings.TrimSpace(dbName) == "" {
		dbName = "officersearch"
	}

	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(cctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &MongoSink{client: client, db: client.Database(dbName)}, nil
}

func (s *MongoSink) StoreOfficers(ctx context.Context, runAt time.Time, results []enrich.OfficerResult) error {
	return s.insert(ctx, PrefixOfficers, officerDocuments(runAt, results))
}

func (s *MongoSink) StoreCompanies(ctx context.Context, runAt time.Time, results []enrich.CompanyResult) error {
	return s.insert(ctx, PrefixCompanies, companyDocuments(runAt, results))
}

func (s *MongoSink) Close(ctx context.Context) error {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.client.Disconnect(cctx)
}

func (s *MongoSink) insert(ctx context.Context, collection string, docs []any) error {
	if len(docs) == 0 {
		return nil
	}
	cctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if _, err := s.db.Collection(collection).InsertMany(cctx, docs); err != nil {
		return fmt.Errorf("insert %d %s documents: %w", len(docs), collection, err)
	}
	return nil
}

func officerDocuments(runAt time.Time, results []enrich.OfficerResult) []any {
	docs := make([]any, 0, len(results))
	for _, r := range results {
		docs = append(docs, officerDocument{RunAt: runAt.UTC(), OfficerResult: r})
	}
	return docs
}

func companyDocuments(runAt time.Time, results []enrich.CompanyResult) []any {
	docs := make([]any, 0, len(results))
	for _, r := range results {
		docs = append(docs, companyDocument{RunAt: runAt.UTC(), CompanyResult: r})
	}
	return docs
}
