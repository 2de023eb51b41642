package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "benchmark.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunPrintsSummary(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	path := writeConfig(t, "log_level: error\nbenchmark:\n  tick_size: \"0.5\"\n  price_base: \"50000\"\n  price_drift: \"2500\"\nreport:\n  log: false\n")

	var out bytes.Buffer
	code := run([]string{"-config-file", path, "-orders", "2000"}, &out)
	require.Equal(t, 0, code, out.String())

	assert.Contains(t, out.String(), "Go: processed 2000 orders")
	assert.Contains(t, out.String(), "trades=")
	assert.Regexp(t, `best_bid=[0-9.\-]+ best_ask=[0-9.\-]+`, out.String())
}

func TestRunFailuresReturnExitCode(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	var out bytes.Buffer

	assert.Equal(t, 2, run([]string{"-no-such-flag"}, &out))
	assert.Equal(t, 1, run([]string{"-config-file", filepath.Join(t.TempDir(), "missing.yaml")}, &out))
	assert.Equal(t, 1, run([]string{"-market-pct", "150"}, &out))

	badRedis := writeConfig(t, "log_level: error\nreport:\n  redis:\n    connection_url: \"::bad::\"\n")
	assert.Equal(t, 1, run([]string{"-config-file", badRedis, "-orders", "10"}, &out))
	assert.Empty(t, out.String(), "no summary when the run never started")
}

func TestFormatPrice(t *testing.T) {
	tick := decimal.RequireFromString("0.05")
	p := int64(2001)
	assert.Equal(t, "100.05", formatPrice(&p, tick))
	assert.Equal(t, "-", formatPrice(nil, tick))
}
