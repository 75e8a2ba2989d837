package handle

import (
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ValidatorSuite struct {
	suite.Suite
	v *Validator
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorSuite))
}

func (s *ValidatorSuite) SetupTest() {
	s.v = NewValidator(ReservedContains)
}

func (s *ValidatorSuite) TestNormalizes() {
	h, err := s.v.Validate("Alice  ")
	s.Require().NoError(err)
	s.Equal("alice", h.Normalized)
	s.Equal("Alice  ", h.Raw)
}

func (s *ValidatorSuite) TestRejections() {
	cases := []struct {
		name   string
		raw    string
		reason Reason
	}{
		{"empty", "", ReasonTooShort},
		{"single char", "a", ReasonTooShort},
		{"whitespace only around one char", "  b  ", ReasonTooShort},
		{"too long", strings.Repeat("x", 31), ReasonTooLong},
		{"leading dot", ".hidden", ReasonLeadingDot},
		{"dotenv", ".env", ReasonLeadingDot},
		{"slash", "a/b", ReasonPathSeparator},
		{"favicon", "favicon.ico", ReasonReservedName},
		{"favicon uppercase", "FAVICON.ICO", ReasonReservedName},
		{"robots as substring", "myrobots.txt", ReasonReservedName},
		{"favicon wrapped", "xfavicon.icox", ReasonReservedName},
		{"env inside", "my.envelope", ReasonReservedName},
		{"git inside", "user.github", ReasonReservedName},
		{"manifest", "manifest.json", ReasonReservedName},
		{"sitemap", "sitemap.xml", ReasonReservedName},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.v.Validate(tc.raw)
			s.Require().Error(err)
			s.True(errors.Is(err, ErrRejected))
			s.Equal(tc.reason, ReasonOf(err))
		})
	}
}

func (s *ValidatorSuite) TestBoundaryLengthsAccepted() {
	for _, raw := range []string{"ab", strings.Repeat("z", 30), "  Bob "} {
		_, err := s.v.Validate(raw)
		s.NoError(err, raw)
	}
}

func (s *ValidatorSuite) TestLengthCountsUTF16Units() {
	h, err := s.v.Validate("zoë")
	s.Require().NoError(err)
	s.Equal("zoë", h.Normalized)

	_, err = s.v.Validate(strings.Repeat("é", 30))
	s.NoError(err)

	_, err = s.v.Validate(strings.Repeat("😀", 15))
	s.NoError(err)

	_, err = s.v.Validate(strings.Repeat("😀", 16))
	s.Equal(ReasonTooLong, ReasonOf(err))

	_, err = s.v.Validate("😀")
	s.NoError(err)
}

func TestLength(t *testing.T) {
	assert.Equal(t, 0, Length(""))
	assert.Equal(t, 5, Length("alice"))
	assert.Equal(t, 3, Length("zoë"))
	assert.Equal(t, 2, Length("😀"))
	assert.Equal(t, 4, Length("a😀b"))
}

func (s *ValidatorSuite) TestExactModeOnlyRejectsWholeNames() {
	exact := NewValidator(ReservedExact)

	_, err := exact.Validate("myrobots.txt")
	s.NoError(err)

	_, err = exact.Validate("Robots.txt")
	s.Equal(ReasonReservedName, ReasonOf(err))
}

func (s *ValidatorSuite) TestZeroValueUsesContains() {
	var v Validator
	_, err := v.Validate("myrobots.txt")
	s.Equal(ReasonReservedName, ReasonOf(err))
}

func TestReasonOfNonRejection(t *testing.T) {
	assert.Equal(t, Reason(""), ReasonOf(errors.New("boom")))
	assert.Equal(t, Reason(""), ReasonOf(nil))
}

func TestValidatorProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	v := NewValidator(ReservedContains)

	properties.Property("normalize is idempotent", prop.ForAll(
		func(s string) bool {
			return Normalize(Normalize(s)) == Normalize(s)
		},
		gen.AnyString(),
	))

	properties.Property("validate is deterministic", prop.ForAll(
		func(s string) bool {
			h1, err1 := v.Validate(s)
			h2, err2 := v.Validate(s)
			return h1 == h2 && ReasonOf(err1) == ReasonOf(err2) && (err1 == nil) == (err2 == nil)
		},
		gen.AnyString(),
	))

	properties.Property("over-long handles are rejected", prop.ForAll(
		func(n int) bool {
			_, err := v.Validate(strings.Repeat("a", n))
			return errors.Is(err, ErrRejected)
		},
		gen.IntRange(MaxLength+1, 200),
	))

	properties.Property("segments containing a slash are rejected", prop.ForAll(
		func(a, b string) bool {
			_, err := v.Validate(a + "/" + b)
			return errors.Is(err, ErrRejected)
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("segments starting with a dot are rejected", prop.ForAll(
		func(rest string) bool {
			_, err := v.Validate("." + rest)
			return errors.Is(err, ErrRejected)
		},
		gen.AlphaString(),
	))

	reserved := make([]interface{}, 0, len(ReservedNames))
	for _, name := range ReservedNames {
		reserved = append(reserved, name)
	}
	properties.Property("reserved names are rejected as substrings in any case", prop.ForAll(
		func(prefix, name, suffix string, upper bool) bool {
			if upper {
				name = strings.ToUpper(name)
			}
			_, err := v.Validate(prefix + name + suffix)
			return errors.Is(err, ErrRejected)
		},
		gen.AlphaString(),
		gen.OneConstOf(reserved...),
		gen.AlphaString(),
		gen.Bool(),
	))

	properties.Property("accepted handles are already normalized", prop.ForAll(
		func(s string) bool {
			h, err := v.Validate(s)
			if err != nil {
				return true
			}
			return h.Normalized == Normalize(h.Normalized)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestRejectionErrorMessage(t *testing.T) {
	_, err := NewValidator(ReservedContains).Validate("a")
	require.Error(t, err)
	assert.Equal(t, "handle rejected: too_short", err.Error())
}
