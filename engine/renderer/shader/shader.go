package shader

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/cogentcore/webgpu/wgpu"
)

// defaultSource is the built-in fractal ray marcher.
//
//go:embed assets/fractal.wgsl
var defaultSource string

var (
	vertexEntryRe   = regexp.MustCompile(`@vertex\s+fn\s+(\w+)`)
	fragmentEntryRe = regexp.MustCompile(`@fragment\s+fn\s+(\w+)`)
)

// shader is the implementation of the Shader interface.
type shader struct {
	key           string
	source        string
	vertexEntry   string
	fragmentEntry string
	module        *wgpu.ShaderModuleDescriptor
}

// Shader is a pre-processed WGSL module holding both the vertex and fragment stage
// of the full-screen fractal pass.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used as the module label.
	Key() string

	// Source retrieves the pre-processed WGSL source.
	Source() string

	// VertexEntryPoint returns the name of the @vertex function.
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the @fragment function.
	FragmentEntryPoint() string

	// Module returns the wgpu.ShaderModuleDescriptor built from the source.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader pre-processes source and locates its entry points.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - source: raw WGSL source, possibly containing include directives
//
// Returns:
//   - Shader: the processed shader
//   - error: an error if pre-processing fails or an entry point is missing
func NewShader(key, source string) (Shader, error) {
	processed, err := NewPreProcessor().Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}

	s := &shader{
		key:    key,
		source: processed,
	}
	if m := vertexEntryRe.FindStringSubmatch(processed); m != nil {
		s.vertexEntry = m[1]
	} else {
		return nil, fmt.Errorf("shader %s: no @vertex entry point", key)
	}
	if m := fragmentEntryRe.FindStringSubmatch(processed); m != nil {
		s.fragmentEntry = m[1]
	} else {
		return nil, fmt.Errorf("shader %s: no @fragment entry point", key)
	}

	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	return s, nil
}

// Default returns the built-in fractal shader.
//
// Returns:
//   - Shader: the embedded shader
//   - error: an error if the embedded source fails to process
func Default() (Shader, error) {
	return NewShader("fractal", defaultSource)
}

// FromFile loads a shader from a WGSL file. An empty path yields the built-in shader.
//
// Parameters:
//   - path: the WGSL file path, or ""
//
// Returns:
//   - Shader: the loaded shader
//   - error: an error if the file cannot be read or processed
func FromFile(path string) (Shader, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shader source %q: %w", path, err)
	}
	return NewShader(filepath.Base(path), string(data))
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntry
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntry
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
