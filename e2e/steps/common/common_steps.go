package common

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	SetUserAgent(ua string)
	SetHeader(name, value string)
	Do(method, path string) error
	GetLastResponseStatus() int
	GetLastResponseHeader(name string) string
	GetLastResponseBody() []byte
}

// RegisterSteps registers generic request and assertion steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^the client sends the header "([^"]*)" with value "([^"]*)"$`, steps.setHeader)
	ctx.Step(`^I GET "([^"]*)"$`, steps.get)
	ctx.Step(`^I HEAD "([^"]*)"$`, steps.head)

	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response should not redirect$`, steps.shouldNotRedirect)
	ctx.Step(`^the response should redirect to "([^"]*)"$`, steps.shouldRedirectTo)
	ctx.Step(`^the response body should be "([^"]*)"$`, steps.bodyShouldBe)
	ctx.Step(`^the response body should contain "([^"]*)"$`, steps.bodyShouldContain)
	ctx.Step(`^the response header "([^"]*)" should be "([^"]*)"$`, steps.headerShouldBe)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) setHeader(ctx context.Context, name, value string) error {
	s.tc.SetHeader(name, value)
	return nil
}

func (s *commonSteps) get(ctx context.Context, path string) error {
	return s.tc.Do(http.MethodGet, path)
}

func (s *commonSteps) head(ctx context.Context, path string) error {
	return s.tc.Do(http.MethodHead, path)
}

func (s *commonSteps) statusShouldBe(ctx context.Context, status int) error {
	if got := s.tc.GetLastResponseStatus(); got != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, got, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *commonSteps) shouldNotRedirect(ctx context.Context) error {
	if loc := s.tc.GetLastResponseHeader("Location"); loc != "" {
		return fmt.Errorf("expected no Location header, got %q", loc)
	}
	return nil
}

func (s *commonSteps) shouldRedirectTo(ctx context.Context, target string) error {
	status := s.tc.GetLastResponseStatus()
	if status != http.StatusFound && status != http.StatusMovedPermanently {
		return fmt.Errorf("expected a redirect, got status %d", status)
	}
	if loc := s.tc.GetLastResponseHeader("Location"); loc != target {
		return fmt.Errorf("expected Location %q, got %q", target, loc)
	}
	return nil
}

func (s *commonSteps) bodyShouldBe(ctx context.Context, body string) error {
	if got := string(s.tc.GetLastResponseBody()); got != body {
		return fmt.Errorf("expected body %q, got %q", body, got)
	}
	return nil
}

func (s *commonSteps) bodyShouldContain(ctx context.Context, fragment string) error {
	if !strings.Contains(string(s.tc.GetLastResponseBody()), fragment) {
		return fmt.Errorf("expected body to contain %q", fragment)
	}
	return nil
}

func (s *commonSteps) headerShouldBe(ctx context.Context, name, value string) error {
	if got := s.tc.GetLastResponseHeader(name); got != value {
		return fmt.Errorf("expected header %s %q, got %q", name, value, got)
	}
	return nil
}
