package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
sources:
  linkedin:
    enabled: true
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"08:00", "20:00"}, cfg.App.ScheduleTimes)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "postings", cfg.Store.Table)
	assert.Equal(t, 3, cfg.Search.TermsPerRun)
	assert.Equal(t, 20, cfg.Search.MaxCardsPerPage)
	assert.Contains(t, cfg.Search.Terms, "telemedicine")
	assert.Contains(t, cfg.Filters.ExcludeTerms, "head of")
	assert.Equal(t, "Germany", cfg.Sources.LinkedIn.Location)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_KEY", "sheet-abc")
	t.Setenv("SCHEDULE_TIME_1", "06:30")
	t.Setenv("SCHEDULE_TIME_2", "18:30")
	t.Setenv("RUN_ON_START", "TRUE")

	cfg, err := Load(writeConfig(t, `
store:
  backend: sheets
app:
  schedule_times: ["09:00"]
`))
	require.NoError(t, err)

	assert.Equal(t, "sheet-abc", cfg.Store.SheetKey)
	assert.Equal(t, []string{"06:30", "18:30"}, cfg.App.ScheduleTimes)
	assert.True(t, cfg.App.RunOnStart)
}

func TestNormalizeAndValidate(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
sources:
  xing:
    enabled: true
search:
  terms: ["  FHIR ", "fhir", "", "HL7"]
`))
	require.NoError(t, err)

	out, res := NormalizeAndValidate(cfg)
	assert.True(t, res.OK(), "errors: %v", res.Errors)
	assert.Equal(t, []string{"FHIR", "HL7"}, out.Search.Terms)
}

func TestValidateCatchesBrokenConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
app:
  schedule_times: ["8 o'clock"]
store:
  backend: carrier-pigeon
`))
	require.NoError(t, err)

	_, res := NormalizeAndValidate(cfg)
	require.False(t, res.OK())
	assert.Len(t, res.Errors, 3) // bad time, bad backend, no sources enabled
}

func TestValidateSheetsBackendNeedsKey(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
store:
  backend: sheets
sources:
  glassdoor:
    enabled: true
`))
	require.NoError(t, err)

	_, res := NormalizeAndValidate(cfg)
	require.False(t, res.OK())
	assert.Contains(t, res.Errors[0], "sheet_key")
}
