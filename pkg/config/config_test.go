package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yurifrl/residentledger/pkg/ledger"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestBuildDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Build("", nil)
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Store.Driver)
	assert.Equal(t, 10, cfg.Import.HeaderScanRows)
	assert.True(t, cfg.Import.UpdateExisting)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())
	assert.Equal(t, ledger.Periods{Basis: ledger.BasisImport, StartMonth: time.June}, cfg.Periods())
}

func TestBuildFileAndFlags(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
store:
  driver: postgres
  dsn: postgres://localhost/ledger
ledger:
  period_start_month: 4
`)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("period-basis", "import", "")
	require.NoError(t, flags.Parse([]string{"--period-basis", "receipt"}))

	cfg, err := Build(path, flags)
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	assert.Equal(t, "postgres://localhost/ledger", cfg.Store.DSN)
	assert.Equal(t, time.April, cfg.Periods().StartMonth)
	assert.Equal(t, ledger.BasisReceipt, cfg.Periods().Basis)
}

func TestBuildRejectsInvalid(t *testing.T) {
	path := writeConfig(t, `
store:
  driver: postgres
`)
	_, err := Build(path, nil)
	assert.ErrorContains(t, err, "invalid config")

	path = writeConfig(t, `
ledger:
  period_start_month: 13
`)
	_, err = Build(path, nil)
	assert.Error(t, err)
}

func TestBuildMissingExplicitFile(t *testing.T) {
	_, err := Build(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}
