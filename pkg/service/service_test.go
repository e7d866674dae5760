package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlScheme = `
name: Lab
schema_version_major: 1
schema_version_minor: 2
children:
  - name: Data
    children:
      - name: Raw
  - name: Papers
`

func newTestService(t *testing.T, cfg *Config) *Service {
	t.Helper()
	svc, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestNewWithDefaultScheme(t *testing.T) {
	dataDir := t.TempDir()
	svc := newTestService(t, &Config{DataDir: dataDir})

	assert.Equal(t, "Workspace", svc.Scheme.Name)
	assert.Equal(t, logrus.WarnLevel, svc.Logger.GetLevel())
	assert.FileExists(t, filepath.Join(dataDir, "settings.db"))
	assert.True(t, svc.Machine.State().IsUninitialized())
}

func TestNewWithSchemeFile(t *testing.T) {
	dir := t.TempDir()
	schemeFile := filepath.Join(dir, "lab.yaml")
	require.NoError(t, os.WriteFile(schemeFile, []byte(yamlScheme), 0644))

	svc := newTestService(t, &Config{DataDir: filepath.Join(dir, "data"), SchemeFile: schemeFile, Verbose: true})
	assert.Equal(t, "Lab", svc.Scheme.Name)
	assert.Equal(t, logrus.DebugLevel, svc.Logger.GetLevel())

	root := t.TempDir()
	resp := svc.Dispatch([]string{"init", root})
	require.True(t, resp.Success, resp.Error)
	assert.DirExists(t, filepath.Join(root, "Data", "Raw"))
	assert.DirExists(t, filepath.Join(root, "Papers"))
}

func TestNewFailsWithoutScheme(t *testing.T) {
	dir := t.TempDir()

	_, err := New(&Config{DataDir: dir, SchemeFile: filepath.Join(dir, "missing.json")})
	assert.Error(t, err)

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("name = \"x\"\nschema_version_major = 2\n"), 0644))
	_, err = New(&Config{DataDir: dir, SchemeFile: broken})
	assert.ErrorContains(t, err, "unsupported schema version")
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&Config{DataDir: t.TempDir(), LogLevel: "chatty"})
	assert.ErrorContains(t, err, "invalid log level")
}

func TestStateSurvivesRestart(t *testing.T) {
	dataDir := t.TempDir()
	root := t.TempDir()

	first, err := New(&Config{DataDir: dataDir})
	require.NoError(t, err)
	require.True(t, first.Dispatch([]string{"init", root}).Success)
	require.NoError(t, first.Close())

	second := newTestService(t, &Config{DataDir: dataDir})
	assert.True(t, second.Machine.State().IsReady())
	assert.Equal(t, root, second.Machine.State().Root)

	resp := second.Dispatch([]string{"init", t.TempDir()})
	assert.False(t, resp.Success)
}
