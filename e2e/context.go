package e2e

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TestContext holds the HTTP client and the last response of a scenario.
type TestContext struct {
	BaseURL string

	client      *http.Client
	userAgent   string
	headers     map[string]string
	lastStatus  int
	lastHeaders http.Header
	lastBody    []byte
}

// NewTestContext returns a context whose client never follows redirects, so
// scenarios can assert on the Location the service chose.
func NewTestContext(baseURL string) *TestContext {
	return &TestContext{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		headers: map[string]string{},
	}
}

// Reset clears per-scenario state.
func (tc *TestContext) Reset() {
	tc.userAgent = ""
	tc.headers = map[string]string{}
	tc.lastStatus = 0
	tc.lastHeaders = nil
	tc.lastBody = nil
}

func (tc *TestContext) SetUserAgent(ua string) { tc.userAgent = ua }

func (tc *TestContext) SetHeader(name, value string) { tc.headers[name] = value }

// Do sends method path with the scenario's User-Agent and headers.
func (tc *TestContext) Do(method, path string) error {
	req, err := http.NewRequest(method, tc.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	// Go's default User-Agent would classify as a browser; send none unless set.
	req.Header.Set("User-Agent", tc.userAgent)
	for k, v := range tc.headers {
		req.Header.Set(k, v)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	tc.lastStatus = resp.StatusCode
	tc.lastHeaders = resp.Header
	tc.lastBody = body
	return nil
}

func (tc *TestContext) GetLastResponseStatus() int { return tc.lastStatus }

func (tc *TestContext) GetLastResponseHeader(name string) string {
	if tc.lastHeaders == nil {
		return ""
	}
	return tc.lastHeaders.Get(name)
}

func (tc *TestContext) GetLastResponseBody() []byte { return tc.lastBody }
