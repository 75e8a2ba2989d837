package profilelink

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	SetUserAgent(ua string)
}

// userAgents maps the client names used in feature files to real User-Agent strings.
var userAgents = map[string]string{
	"a desktop browser":           "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"the Android app":             "okhttp/4.12.0",
	"the iOS app":                 "Gliblio/1.4 CFNetwork/1490.0.4 Darwin/23.2.0",
	"the App Links verifier":      "Google-Digital-Asset-Links",
	"an Android web view":         "Mozilla/5.0 (Linux; Android 14; Pixel 8; wv) AppleWebKit/537.36 (KHTML, like Gecko) Version/4.0 Chrome/120.0.0.0 Mobile Safari/537.36",
	"a client with no user agent": "",
}

// RegisterSteps registers profile link step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &profileLinkSteps{tc: tc}

	ctx.Step(`^I am (.+)$`, steps.iAm)
}

type profileLinkSteps struct {
	tc TestContext
}

func (s *profileLinkSteps) iAm(ctx context.Context, client string) error {
	ua, ok := userAgents[client]
	if !ok {
		return fmt.Errorf("unknown client %q", client)
	}
	s.tc.SetUserAgent(ua)
	return nil
}
