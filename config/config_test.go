package config_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdxtodax/unmdx/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 50, cfg.Parser.MaxParseErrors)
	assert.Equal(t, "moderate", cfg.Linter.OptimizationLevel)
	assert.True(t, cfg.Dax.FormatOutput)
	assert.Equal(t, 4, cfg.Dax.IndentSize)
	assert.NotNil(t, cfg.Global.Logger)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	yaml := `
parser:
  strict_mode: true
  max_parse_errors: 5
dax:
  indent_size: 2
`
	cfg, err := config.Load(strings.NewReader(yaml), "")
	require.NoError(t, err)
	assert.True(t, cfg.Parser.StrictMode)
	assert.Equal(t, 5, cfg.Parser.MaxParseErrors)
	assert.Equal(t, 2, cfg.Dax.IndentSize)
	// Untouched fields keep their default value.
	assert.True(t, cfg.Dax.FormatOutput)
}

func TestLoad_JSONAutoSniffed(t *testing.T) {
	body := `{"parser": {"max_parse_errors": 9}}`
	cfg, err := config.Load(strings.NewReader(body), "")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Parser.MaxParseErrors)
}

func TestLoad_EmptyInputReturnsDefault(t *testing.T) {
	cfg, err := config.Load(strings.NewReader("   \n"), "")
	require.NoError(t, err)
	assert.Equal(t, config.Default().Parser, cfg.Parser)
}

func TestApplyEnvOverrides(t *testing.T) {
	os.Setenv("UNMDX_PARSER_STRICT_MODE", "true")
	os.Setenv("UNMDX_DAX_INDENT_SIZE", "8")
	os.Setenv("UNMDX_EXPLANATION_RENDER_HTML", "true")
	defer os.Unsetenv("UNMDX_PARSER_STRICT_MODE")
	defer os.Unsetenv("UNMDX_DAX_INDENT_SIZE")
	defer os.Unsetenv("UNMDX_EXPLANATION_RENDER_HTML")

	cfg := config.Default()
	config.ApplyEnvOverrides(&cfg)
	assert.True(t, cfg.Parser.StrictMode)
	assert.Equal(t, 8, cfg.Dax.IndentSize)
	assert.True(t, cfg.Explanation.RenderHTML)
}

func TestToDaxConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Dax.IndentSize = 2
	daxCfg := cfg.ToDaxConfig()
	assert.Equal(t, 2, daxCfg.IndentSize)
	assert.True(t, daxCfg.UseSummarizeColumns)
}
