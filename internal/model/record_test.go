package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScenarioPredicates(t *testing.T) {
	assert.False(t, StatusQuo.HasExpansion())
	assert.False(t, StatusQuo.HasAnchor())

	assert.True(t, ExpansionOnly.HasExpansion())
	assert.False(t, ExpansionOnly.HasAnchor())

	assert.True(t, ExpansionWithAnchor.HasExpansion())
	assert.True(t, ExpansionWithAnchor.HasAnchor())
}

func TestScenarioValid(t *testing.T) {
	for _, sc := range Scenarios() {
		assert.True(t, sc.Valid(), string(sc))
	}
	assert.False(t, Scenario("diesel_forever").Valid())
}

func TestScenarioCatalog_Complete(t *testing.T) {
	for _, sc := range Scenarios() {
		info, ok := ScenarioCatalog[sc]
		assert.True(t, ok, string(sc))
		assert.NotEmpty(t, info.Name)
	}
}

func TestYearRange(t *testing.T) {
	yr := YearRange{Start: 2023, End: 2035}
	assert.True(t, yr.Valid())
	assert.Equal(t, 13, yr.Years())
	assert.True(t, yr.Contains(2023))
	assert.True(t, yr.Contains(2035))
	assert.False(t, yr.Contains(2036))

	single := YearRange{Start: 2023, End: 2023}
	assert.True(t, single.Valid())
	assert.Equal(t, 1, single.Years())

	inverted := YearRange{Start: 2035, End: 2023}
	assert.False(t, inverted.Valid())
	assert.Equal(t, 0, inverted.Years())
}
