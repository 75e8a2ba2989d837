package e2e

import (
	"github.com/cucumber/godog"

	"gliblio/e2e/steps/common"
	"gliblio/e2e/steps/profilelink"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (generic requests, assertions)
	common.RegisterSteps(ctx, tc)

	// Register profile link steps
	profilelink.RegisterSteps(ctx, tc)
}
