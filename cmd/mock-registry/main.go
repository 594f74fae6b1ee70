package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/shpitdev/registry-officer-search/internal/mockregistry"
)

func main() {
	addr := defaultString("MOCK_REGISTRY_ADDR", ":8080")
	fixturePath := defaultString("MOCK_REGISTRY_FIXTURE", "testdata/fixture.yaml")
	apiKey := defaultString("MOCK_REGISTRY_API_KEY", "")

	fs := flag.NewFlagSet("mock-registry", flag.ExitOnError)
	fs.StringVar(&addr, "addr", addr, "Listen address")
	fs.StringVar(&fixturePath, "fixture", fixturePath, "YAML fixture describing search results, appointments, profiles and officers")
	fs.StringVar(&apiKey, "api-key", apiKey, "Require this API key as the basic auth username (also supports env: MOCK_REGISTRY_API_KEY)")
	_ = fs.Parse(os.Args[1:])

	fixture, err := mockregistry.LoadFixture(fixturePath)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "fixture error: %v\n", err)
		os.Exit(2)
	}

	srv := mockregistry.New(fixture)
	srv.RequireAPIKey(apiKey)

	_, _ = fmt.Fprintf(os.Stdout, "mock-registry listening on %s (fixture=%s auth=%t)\n", addr, fixturePath, apiKey != "")
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func defaultString(envVar string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(envVar))
	if v == "" {
		return fallback
	}
	return v
}
