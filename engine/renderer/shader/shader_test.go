package shader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultShader(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "fractal", s.Key())
	assert.Equal(t, "vs_main", s.VertexEntryPoint())
	assert.Equal(t, "fs_main", s.FragmentEntryPoint())
	assert.Contains(t, s.Source(), "struct FractalUniform")
	assert.NotContains(t, s.Source(), annotationPrefix)
	require.NotNil(t, s.Module())
	assert.Equal(t, s.Source(), s.Module().WGSLDescriptor.Code)
}

func TestProcessRejectsUnknownInclude(t *testing.T) {
	_, err := NewPreProcessor().Process("fn a() {}\n//@oxy:include camera\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = NewPreProcessor().Process("//@oxy:include\n")
	assert.Error(t, err)
}

func TestProcessLeavesOtherLinesAlone(t *testing.T) {
	src := "// plain comment\nfn main() {}"
	out, err := NewPreProcessor().Process(src)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestNewShaderRequiresEntryPoints(t *testing.T) {
	_, err := NewShader("vs-only", "@vertex fn v() -> @builtin(position) vec4<f32> { return vec4<f32>(); }")
	assert.ErrorContains(t, err, "@fragment")

	_, err = NewShader("empty", "")
	assert.ErrorContains(t, err, "@vertex")
}

func TestFromFile(t *testing.T) {
	s, err := FromFile("")
	require.NoError(t, err)
	assert.Equal(t, "fractal", s.Key())

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.wgsl")
	src := strings.Join([]string{
		"//@oxy:include fractal_uniform",
		"@vertex fn v_entry() {}",
		"@fragment fn f_entry() {}",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	s, err = FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom.wgsl", s.Key())
	assert.Equal(t, "v_entry", s.VertexEntryPoint())
	assert.Equal(t, "f_entry", s.FragmentEntryPoint())

	_, err = FromFile(filepath.Join(dir, "missing.wgsl"))
	assert.Error(t, err)
}
