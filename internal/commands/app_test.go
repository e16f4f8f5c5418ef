package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/match"
)

func TestCalibration_Defaults(t *testing.T) {
	cfg := config.Default("biz-1", "Test Biz")
	assert.Equal(t, match.DefaultCalibration(), calibration(cfg))
}

func TestCalibration_PossibleFloorIndependentOfMinConfidence(t *testing.T) {
	cfg := config.Default("biz-1", "Test Biz")
	cfg.Matching.MinConfidence = 0.30
	cfg.Matching.PossibleThreshold = 0.55

	cal := calibration(cfg)
	assert.InDelta(t, 0.30, cal.MinConfidence, 0.001)
	assert.InDelta(t, 0.55, cal.Tiers.Possible, 0.001)
}

func TestCalibration_ZeroValuesKeepDefaults(t *testing.T) {
	cfg := config.Default("biz-1", "Test Biz")
	cfg.Matching = config.MatchingConfig{WindowDays: 14}

	cal := calibration(cfg)
	def := match.DefaultCalibration()
	assert.Equal(t, 14, cal.WindowDays)
	assert.InDelta(t, def.AmountWeight, cal.AmountWeight, 0.001)
	assert.InDelta(t, def.MinConfidence, cal.MinConfidence, 0.001)
	assert.Equal(t, def.Tiers, cal.Tiers)
}
