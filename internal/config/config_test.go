package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prosegate/prosegate/internal/safety"
)

func float(v float64) *float64 { return &v }
func boolean(v bool) *bool     { return &v }

func TestResolveNilFileYieldsDefaults(t *testing.T) {
	cfg, errs := Resolve(nil)

	assert.Empty(t, errs)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, safety.DefaultAutoFixThreshold, cfg.AutoFixThreshold)
	assert.Equal(t, safety.DefaultReviewThreshold, cfg.ReviewThreshold)
}

func TestResolveValidOverrides(t *testing.T) {
	var f File
	f.Safety.Enabled = boolean(false)
	f.Safety.AutoFixThreshold = float(0.9)
	f.Safety.ReviewThreshold = float(0.5)
	f.Safety.AlwaysReview = []string{"rust"}
	f.Safety.NeverFlag = []string{"localhost"}

	cfg, errs := Resolve(&f)

	assert.Empty(t, errs)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 0.9, cfg.AutoFixThreshold)
	assert.Equal(t, 0.5, cfg.ReviewThreshold)
	assert.Equal(t, []string{"rust"}, cfg.AlwaysReview)
	assert.Equal(t, []string{"localhost"}, cfg.NeverFlag)
}

func TestResolveOutOfRangeThresholdFallsBack(t *testing.T) {
	var f File
	f.Safety.AutoFixThreshold = float(1.5)

	cfg, errs := Resolve(&f)

	require.Len(t, errs, 1)
	assert.Equal(t, "safety.auto_fix_threshold", errs[0].Field)
	assert.Equal(t, safety.DefaultAutoFixThreshold, cfg.AutoFixThreshold)
}

func TestResolveNaNThresholdFallsBack(t *testing.T) {
	var f File
	f.Safety.AutoFixThreshold = float(math.NaN())
	f.Safety.ReviewThreshold = float(math.NaN())

	cfg, errs := Resolve(&f)

	require.Len(t, errs, 2)
	assert.Equal(t, "safety.auto_fix_threshold", errs[0].Field)
	assert.Equal(t, "safety.review_threshold", errs[1].Field)
	assert.Equal(t, safety.DefaultAutoFixThreshold, cfg.AutoFixThreshold)
	assert.Equal(t, safety.DefaultReviewThreshold, cfg.ReviewThreshold)
}

func TestResolveInvertedThresholdsReset(t *testing.T) {
	var f File
	f.Safety.AutoFixThreshold = float(0.4)
	f.Safety.ReviewThreshold = float(0.6)

	cfg, errs := Resolve(&f)

	require.NotEmpty(t, errs)
	assert.Equal(t, safety.DefaultAutoFixThreshold, cfg.AutoFixThreshold)
	assert.Equal(t, safety.DefaultReviewThreshold, cfg.ReviewThreshold)
}

func TestResolveDropsEmptyTerms(t *testing.T) {
	var f File
	f.Safety.NeverFlag = []string{"localhost", "  ", ""}

	cfg, errs := Resolve(&f)

	assert.Len(t, errs, 2)
	assert.Equal(t, []string{"localhost"}, cfg.NeverFlag)
}

func TestResolveOverlapKeepsNeverFlag(t *testing.T) {
	var f File
	f.Safety.AlwaysReview = []string{"Rust", "python"}
	f.Safety.NeverFlag = []string{"rust"}

	cfg, errs := Resolve(&f)

	require.Len(t, errs, 1)
	assert.Equal(t, "safety.always_review", errs[0].Field)
	assert.Equal(t, []string{"python"}, cfg.AlwaysReview)
	assert.Equal(t, []string{"rust"}, cfg.NeverFlag)
}

func TestLoadReadsProjectFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
safety:
  enabled: true
  auto_fix_threshold: 0.8
  never_flag:
    - localhost
review:
  model: test-model
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), content, 0644))

	f, err := Load(dir)
	require.NoError(t, err)

	cfg, errs := Resolve(f)
	assert.Empty(t, errs)
	assert.Equal(t, 0.8, cfg.AutoFixThreshold)
	assert.Equal(t, []string{"localhost"}, cfg.NeverFlag)
	assert.Equal(t, "test-model", f.Review.Model)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	f, err := Load(t.TempDir())

	require.NoError(t, err)
	require.NotNil(t, f)

	cfg, errs := Resolve(f)
	assert.Empty(t, errs)
	assert.True(t, cfg.Enabled)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("safety: ["), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}
