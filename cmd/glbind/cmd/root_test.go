package cmd

import (
	"bytes"
	"encoding/json"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/glbind/bindgen"
	"github.com/teranos/glbind/config"
	"github.com/teranos/glbind/errors"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

// testRegistry returns the absolute path of the bindgen test registry.
func testRegistry(t *testing.T) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("..", "..", "..", "bindgen", "testdata", "testgl.yaml"))
	require.NoError(t, err)
	return path
}

func testFixture(t *testing.T) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("..", "..", "..", "bindgen", "internal", "testgl", "gl.go"))
	require.NoError(t, err)
	return path
}

// inTempDir moves the test into an empty directory so no project
// glbind.toml is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerateToStdoutMatchesFixture(t *testing.T) {
	reg := testRegistry(t)
	fixture := testFixture(t)
	inTempDir(t)

	stdout, stderr, err := run(t,
		"--registry", reg, "--api", "gl", "--package", "testgl", "--bitmask-ops", "--format=false")
	require.NoError(t, err)
	assert.Empty(t, stderr, "nothing but source goes to the terminal when writing stdout")

	res, err := bindgen.Check(fixture, []byte(stdout))
	require.NoError(t, err)
	assert.True(t, res.UpToDate, res.Diff)
}

func TestGenerateFormattedFile(t *testing.T) {
	reg := testRegistry(t)
	dir := inTempDir(t)
	out := filepath.Join(dir, "gen", "gl", "gl.go")

	stdout, stderr, err := run(t, "--registry", reg, "--output", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Generated "+out)

	src, err := os.ReadFile(out)
	require.NoError(t, err)
	f, err := parser.ParseFile(token.NewFileSet(), out, src, parser.ParseComments)
	require.NoError(t, err)
	assert.Equal(t, "gl", f.Name.Name, "package derived from the api")
	assert.NotContains(t, string(src), "func (v Flags) Contains", "bitmask ops are opt-in")
}

func TestGenerateVerboseReportsStats(t *testing.T) {
	reg := testRegistry(t)
	dir := inTempDir(t)

	_, stderr, err := run(t, "--registry", reg, "--output", filepath.Join(dir, "gl.go"), "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "gl core: 7 enums, 5 commands, 3 groups")
}

func TestGenerateNeedsRegistry(t *testing.T) {
	inTempDir(t)

	_, _, err := run(t)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
	assert.NotEmpty(t, errors.FlattenHints(err))
}

func TestGenerateMissingRegistry(t *testing.T) {
	dir := inTempDir(t)

	_, _, err := run(t, "--registry", filepath.Join(dir, "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestInvalidFlagValue(t *testing.T) {
	reg := testRegistry(t)
	inTempDir(t)

	_, _, err := run(t, "--registry", reg, "--profile", "es")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestConfigFileDrivesGeneration(t *testing.T) {
	reg := testRegistry(t)
	dir := inTempDir(t)

	content, err := os.ReadFile(reg)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "reg"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reg", "testgl.yaml"), content, 0644))

	toml := `[registry]
path = "reg/testgl.yaml"
api = "gl"

[output]
path = "out/gl.go"
package = "fromconfig"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(toml), 0644))

	// Run from a subdirectory: the config is found upwards and its paths stay
	// relative to the config file.
	sub := filepath.Join(dir, "nested", "deeper")
	require.NoError(t, os.MkdirAll(sub, 0755))
	t.Chdir(sub)

	_, _, err = run(t)
	require.NoError(t, err)
	src, err := os.ReadFile(filepath.Join(dir, "out", "gl.go"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "package fromconfig")

	t.Run("flags override the file", func(t *testing.T) {
		_, _, err := run(t, "--package", "fromflag")
		require.NoError(t, err)
		src, err := os.ReadFile(filepath.Join(dir, "out", "gl.go"))
		require.NoError(t, err)
		assert.Contains(t, string(src), "package fromflag")
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		t.Setenv("GLBIND_OUTPUT_PACKAGE", "fromenv")
		_, _, err := run(t)
		require.NoError(t, err)
		src, err := os.ReadFile(filepath.Join(dir, "out", "gl.go"))
		require.NoError(t, err)
		assert.Contains(t, string(src), "package fromenv")
	})
}

func TestCheck(t *testing.T) {
	reg := testRegistry(t)
	dir := inTempDir(t)
	out := filepath.Join(dir, "gl.go")
	args := []string{"--registry", reg, "--output", out, "--bitmask-ops"}

	t.Run("missing file is out of date", func(t *testing.T) {
		_, _, err := run(t, append([]string{"check"}, args...)...)
		require.Error(t, err)
		assert.True(t, errors.IsOutOfDateError(err))
	})

	_, _, err := run(t, args...)
	require.NoError(t, err)

	t.Run("fresh file is up to date", func(t *testing.T) {
		_, stderr, err := run(t, append([]string{"check"}, args...)...)
		require.NoError(t, err)
		assert.Contains(t, stderr, "is up to date")
	})

	t.Run("different options make it stale", func(t *testing.T) {
		_, stderr, err := run(t, "check", "--registry", reg, "--output", out)
		require.Error(t, err)
		assert.True(t, errors.IsOutOfDateError(err))
		assert.Contains(t, stderr, "-func (v Flags) Contains")
		assert.NotEmpty(t, errors.FlattenHints(err))
	})

	t.Run("stdout output is rejected", func(t *testing.T) {
		_, _, err := run(t, "check", "--registry", reg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
	})
}

func TestWatchNeedsOutputFile(t *testing.T) {
	reg := testRegistry(t)
	inTempDir(t)

	_, _, err := run(t, "watch", "--registry", reg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestInit(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, config.FileName)

	_, stderr, err := run(t, "init", "--api", "egl", "--version", "1.5", "--ext", "EGL_KHR_image")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Wrote")

	cfg, _, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "egl", cfg.Registry.API)
	assert.Equal(t, "1.5", cfg.Registry.Version)
	assert.Equal(t, []string{"EGL_KHR_image"}, cfg.Registry.Extensions)

	_, _, err = run(t, "init")
	require.Error(t, err, "an existing file is not replaced silently")
	assert.NotEmpty(t, errors.FlattenHints(err))

	_, _, err = run(t, "init", "--force", "--api", "gles2")
	require.NoError(t, err)
	cfg, _, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gles2", cfg.Registry.API)
	assert.FileExists(t, path+".back1")

	t.Run("explicit path that does not exist yet", func(t *testing.T) {
		custom := filepath.Join(dir, "custom.toml")
		_, _, err := run(t, "init", "--config", custom)
		require.NoError(t, err)
		assert.FileExists(t, custom)
	})
}

func TestVersion(t *testing.T) {
	inTempDir(t)

	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "glbind")

	stdout, _, err = run(t, "version", "--json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "go_version")
}

func TestSameFile(t *testing.T) {
	assert.True(t, sameFile("a/b", "a/../a/b"))
	assert.False(t, sameFile("", "a"))
}

func TestGenerateTraceReportsSkippedGroupMembers(t *testing.T) {
	reg := testRegistry(t)
	dir := inTempDir(t)

	_, stderr, err := run(t, "--registry", reg, "--output", filepath.Join(dir, "gl.go"), "-vvv")
	require.NoError(t, err)
	assert.Contains(t, stderr, "group Choice: 2 of 5 members skipped")
	assert.Contains(t, stderr, "Generating gl core bindings from "+reg)
}
