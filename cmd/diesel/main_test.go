package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestConfigCommandPrintsEffectiveConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(file, []byte("width: 200\nobstacle:\n  radius: 8\n"), 0o644))

	out, err := execute(t, "config", "--config", file, "--mode", "vortices", "--log-level", "error")
	require.NoError(t, err)

	tree, err := toml.Load(out)
	require.NoError(t, err)
	assert.Equal(t, int64(200), tree.Get("width"))
	assert.Equal(t, int64(100), tree.Get("height"))
	assert.Equal(t, 8.0, tree.Get("obstacle.radius"))
	assert.Equal(t, "vortices", tree.Get("mode"))
	assert.False(t, tree.Has("obstacle.center_x"))
}

func TestRunRejectsMode(t *testing.T) {
	_, err := execute(t, "run", "--mode", "pressure", "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid mode")
}

func TestRunWritesHeatmap(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "run",
		"--width", "40", "--height", "20", "--radius", "4",
		"--timesteps", "10", "--output-dir", dir, "--log-level", "error")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "LatticeBoltzmann__40x20_10_0.6_true_speed.png"))
	assert.NoError(t, err)
}

func TestJacobiThenPlot(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "flow.dat")
	img := filepath.Join(dir, "flow.png")

	_, err := execute(t, "jacobi", "--length", "16", "--inlet", "2", "--port-width", "4",
		"--outlet", "4", "--iterations", "200", "--out", data, "--log-level", "error")
	require.NoError(t, err)
	_, err = execute(t, "plot", "--in", data, "--out", img, "--log-level", "error")
	require.NoError(t, err)

	st, err := os.Stat(img)
	require.NoError(t, err)
	assert.Greater(t, st.Size(), int64(0))
}

func TestJacobiRejectsBadBox(t *testing.T) {
	_, err := execute(t, "jacobi", "--length", "4", "--port-width", "8", "--log-level", "error")
	assert.Error(t, err)
}
