package e2e

import (
	"context"
	"os"
	"testing"

	"github.com/cucumber/godog"
)

// TestFeatures runs the Gherkin scenarios against a running server, e.g.
//
//	go run ./cmd/server --config e2e/config.e2e.yaml &
//	GLIBLIO_E2E_BASE_URL=http://localhost:3000 go test ./...
func TestFeatures(t *testing.T) {
	baseURL := os.Getenv("GLIBLIO_E2E_BASE_URL")
	if baseURL == "" {
		t.Skip("GLIBLIO_E2E_BASE_URL not set")
	}

	tc := NewTestContext(baseURL)
	suite := godog.TestSuite{
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
				tc.Reset()
				return ctx, nil
			})
			RegisterSteps(ctx, tc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("feature scenarios failed")
	}
}
