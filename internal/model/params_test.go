package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParams_Valid(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate(DefaultYearRange))
}

func TestDefaultParams_MatchesCatalog(t *testing.T) {
	p := DefaultParams()
	for _, fv := range p.fieldValues() {
		info, ok := ParamCatalog[fv.slug]
		require.True(t, ok, "missing catalog entry for %s", fv.slug)
		assert.Equal(t, info.Default, fv.value, fv.slug)
	}
}

func TestCatalog_CoversEveryField(t *testing.T) {
	p := DefaultParams()
	assert.Len(t, p.fieldValues(), len(ParamCatalog))
}

func TestValidate_OutOfRange(t *testing.T) {
	p := DefaultParams()
	p.WholesaleRate = 500
	p.AnchorCapacityFactor = 0.1

	err := p.Validate(DefaultYearRange)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Problems, 2)
	assert.True(t, strings.Contains(verr.Problems[0], "wholesale_rate") ||
		strings.Contains(verr.Problems[1], "wholesale_rate"))
}

func TestValidate_Phase1BeforeBaseYear(t *testing.T) {
	p := DefaultParams()
	p.Phase1EndYear = 2024

	var verr *ValidationError
	require.ErrorAs(t, p.Validate(YearRange{Start: 2026, End: 2035}), &verr)
	assert.Contains(t, verr.Problems[0], "phase1_end_year")
}

func TestValidate_InvertedYearRange(t *testing.T) {
	p := DefaultParams()
	var verr *ValidationError
	require.ErrorAs(t, p.Validate(YearRange{Start: 2030, End: 2025}), &verr)
}

func TestValidate_ErrorMessage(t *testing.T) {
	p := DefaultParams()
	p.CapEx = 1

	err := p.Validate(DefaultYearRange)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid parameters")
	assert.Contains(t, err.Error(), "capex")
}
