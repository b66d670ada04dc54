package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grapher/internal/config"
	"grapher/plot/axis"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "grapher "), out)
}

func TestEval_JSON(t *testing.T) {
	out, err := execute(t, "eval", "y = x")
	require.NoError(t, err)

	var got evalOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, evalViewport{XMin: -10, XMax: 10, YMin: -10, YMax: 10}, got.Viewport)
	require.Len(t, got.Curves, 1)

	c := got.Curves[0]
	assert.Equal(t, "y = x", c.Expression)
	assert.Equal(t, "#e74c3c", c.Color)
	assert.Equal(t, 1, c.Segments)
	assert.Equal(t, []evalPoint{{-10, -10}, {0, 0}, {10, 10}}, c.Points)
	assert.Empty(t, c.Samples)
}

func TestEval_ViewportFlags(t *testing.T) {
	out, err := execute(t, "eval", "--x-min=-5", "--x-max=5", "--y-min=-5", "--y-max=5", "x")
	require.NoError(t, err)

	var got evalOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []evalPoint{{-5, -5}, {0, 0}, {5, 5}}, got.Curves[0].Points)
}

func TestEval_HugeViewport(t *testing.T) {
	out, err := execute(t, "eval", "--x-min=-1.7e308", "--x-max=1.7e308", "--y-min=-1.7e308", "--y-max=1.7e308", "x")
	require.NoError(t, err)

	var got evalOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	pts := got.Curves[0].Points
	require.NotEmpty(t, pts)
	assert.Equal(t, evalPoint{-1.7e308, -1.7e308}, pts[0])
	assert.Equal(t, evalPoint{1.7e308, 1.7e308}, pts[len(pts)-1])
}

func TestEval_YAMLSamples(t *testing.T) {
	out, err := execute(t, "eval", "--samples", "-o", "yaml", "1/x")
	require.NoError(t, err)
	assert.Contains(t, out, "expression: 1/x")
	assert.Contains(t, out, "samples:")
	assert.Contains(t, out, "y: null")
}

func TestEval_Errors(t *testing.T) {
	_, err := execute(t, "eval", "2 *")
	require.Error(t, err)

	_, err = execute(t, "eval", "--x-min=5", "--x-max=-5", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalid))
	assert.True(t, errors.Is(err, axis.ErrDomain))

	_, err = execute(t, "eval", "-o", "xml", "x")
	require.Error(t, err)

	_, err = execute(t, "eval")
	require.Error(t, err)
}

func TestSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.png")
	_, err := execute(t, "snapshot", "-o", path, "--width=320", "--height=240", "--margin=20", "-f", "x^2")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())
}
