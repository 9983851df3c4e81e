// pre_processor.go implements the WGSL include pre-processor. A line of the form
//
//	//@oxy:include <struct_type>
//
// is replaced with the WGSL source of a registered struct so the Go-side layout and
// the shader-side layout come from one definition.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-bulb/engine/uniform"
)

// annotationPrefix marks an include directive inside a WGSL line comment.
const annotationPrefix = "//@oxy:include"

// IncludeFractalUniform is the include key for the FractalUniform struct.
const IncludeFractalUniform = "fractal_uniform"

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// registry maps include keys to embedded WGSL struct sources.
	registry map[string]string
}

// PreProcessor expands include directives in WGSL source.
type PreProcessor interface {
	// Process replaces every include directive with its registered struct source.
	//
	// Parameters:
	//   - source: raw WGSL source
	//
	// Returns:
	//   - string: the expanded source
	//   - error: an error naming the line of a malformed or unknown include
	Process(source string) (string, error)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the engine's GPU struct sources registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		registry: map[string]string{
			IncludeFractalUniform: uniform.GPUFractalUniformSource,
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), annotationPrefix)
		if !ok {
			out = append(out, line)
			continue
		}

		args := strings.Fields(rest)
		if len(args) != 1 {
			return "", fmt.Errorf("line %d: include takes exactly one argument, got %d", i+1, len(args))
		}
		src, ok := p.registry[args[0]]
		if !ok {
			return "", fmt.Errorf("line %d: unknown include %q", i+1, args[0])
		}
		out = append(out, src)
	}
	return strings.Join(out, "\n"), nil
}
