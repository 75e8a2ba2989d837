package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepsNameSubtests(t *testing.T) {
	var names []string
	record := func(t *testing.T) { names = append(names, t.Name()) }

	assert.True(t, Given(t, "a store", record))
	assert.True(t, When(t, "a browser asks", record))
	assert.True(t, Then(t, "it redirects", record))
	assert.True(t, And(t, "it is uncacheable", record))

	assert.Equal(t, []string{
		"TestStepsNameSubtests/Given_a_store",
		"TestStepsNameSubtests/When_a_browser_asks",
		"TestStepsNameSubtests/Then_it_redirects",
		"TestStepsNameSubtests/And_it_is_uncacheable",
	}, names)
}
