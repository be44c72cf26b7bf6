package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/startdash/internal/cli"
	"github.com/bnema/startdash/internal/domain/build"
	"github.com/bnema/startdash/internal/domain/entity"
)

// isolate points every XDG directory into a temp dir and returns the config file path.
func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	return filepath.Join(root, "config", "startdash", "config.toml")
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		layoutYes, schemaOutput, configFile, app = false, "", "", nil
		aboutShort = false
		genDocsOutputDir, genDocsFormat = "", "man"
	})
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func seed(t *testing.T, cfgFile string, positions map[entity.WindowID]entity.Position) {
	t.Helper()
	a, err := cli.NewApp(cfgFile)
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Close()) }()

	store := a.Layout()
	for id, pos := range positions {
		require.NoError(t, store.SavePosition(a.Ctx(), id, pos))
	}
}

func positions(t *testing.T, cfgFile string) map[entity.WindowID]entity.Position {
	t.Helper()
	a, err := cli.NewApp(cfgFile)
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Close()) }()
	return a.Layout().Positions(a.Ctx())
}

func TestLayoutReset_OneWindow(t *testing.T) {
	cfgFile := isolate(t)
	seed(t, cfgFile, map[entity.WindowID]entity.Position{
		"clock-component": {X: 4, Y: 2},
		"links-component": {X: 30, Y: 1},
	})

	require.NoError(t, execute(t, "--config", cfgFile, "layout", "reset", "clock-component"))

	got := positions(t, cfgFile)
	assert.NotContains(t, got, "clock-component")
	assert.Equal(t, entity.Position{X: 30, Y: 1}, got["links-component"])
}

func TestLayoutReset_AllWithYes(t *testing.T) {
	cfgFile := isolate(t)
	seed(t, cfgFile, map[entity.WindowID]entity.Position{
		"clock-component": {X: 4, Y: 2},
		"links-component": {X: 30, Y: 1},
	})

	require.NoError(t, execute(t, "--config", cfgFile, "layout", "reset", "--yes"))

	assert.Empty(t, positions(t, cfgFile))
}

func TestLayoutShow_EmptyDatabase(t *testing.T) {
	cfgFile := isolate(t)

	require.NoError(t, execute(t, "--config", cfgFile, "layout", "show"))
	assert.FileExists(t, cfgFile, "first run writes the default config")
}

func TestConfigSchema_WritesFile(t *testing.T) {
	isolate(t)
	out := filepath.Join(t.TempDir(), "schema.json")

	require.NoError(t, execute(t, "config", "schema", "-o", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "startdash configuration")
	assert.Contains(t, string(data), "min_visible_width")
}

func TestRun_RejectsArguments(t *testing.T) {
	cfgFile := isolate(t)

	err := execute(t, "--config", cfgFile, "run", "extra")
	require.Error(t, err)
}

func TestGenDocs_Markdown(t *testing.T) {
	isolate(t)
	out := t.TempDir()

	require.NoError(t, execute(t, "gen-docs", "--format", "markdown", "--output", out))

	assert.FileExists(t, filepath.Join(out, "startdash.md"))
	assert.FileExists(t, filepath.Join(out, "startdash_layout_reset.md"))
	files, err := generatedFiles(out, ".md")
	require.NoError(t, err)
	assert.Contains(t, files, "startdash_run.md")
}

func TestGenDocs_UnsupportedFormat(t *testing.T) {
	isolate(t)

	err := execute(t, "gen-docs", "--format", "pdf", "--output", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestAbout_Short(t *testing.T) {
	cfgFile := isolate(t)
	prev := buildInfo
	SetBuildInfo(build.Info{Version: "v1.2.0", Commit: "1a2b3c4d5e6f", GoVersion: "go1.25.3"})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() {
		buildInfo = prev
		rootCmd.SetOut(nil)
	})

	require.NoError(t, execute(t, "--config", cfgFile, "about", "--short"))

	assert.Equal(t, "startdash v1.2.0 (1a2b3c4, go1.25.3)\n", out.String())
}
