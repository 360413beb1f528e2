package linterflags_test

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdxtodax/unmdx/config"
	"github.com/mdxtodax/unmdx/config/linterflags"
)

func TestFlags_DisabledRulesCSVSplitsAndTrims(t *testing.T) {
	cfg := config.LinterConfig{}
	f := linterflags.New(&cfg)
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.SetFlags(fs)

	require.NoError(t, fs.Parse([]string{"-linter.disabled_rules", " flatten_sets , dedupe_measures ,,"}))
	f.Resolve()

	assert.Equal(t, []string{"flatten_sets", "dedupe_measures"}, cfg.DisabledRules)
}

func TestFlags_NoLinterForcesOptimizationLevelNone(t *testing.T) {
	cfg := config.LinterConfig{OptimizationLevel: "aggressive"}
	f := linterflags.New(&cfg)
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.SetFlags(fs)

	require.NoError(t, fs.Parse([]string{"-no-linter"}))
	f.Resolve()

	assert.Equal(t, "none", cfg.OptimizationLevel)
}

func TestFlags_DefaultLeavesOptimizationLevelUntouched(t *testing.T) {
	cfg := config.LinterConfig{OptimizationLevel: "moderate"}
	f := linterflags.New(&cfg)
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.SetFlags(fs)

	require.NoError(t, fs.Parse(nil))
	f.Resolve()

	assert.Equal(t, "moderate", cfg.OptimizationLevel)
}
