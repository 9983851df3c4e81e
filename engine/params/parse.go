package params

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrUnknownField is returned when a field name does not name a tunable parameter.
	ErrUnknownField = errors.New("unknown parameter field")

	// ErrInvalidValue is returned when raw text cannot be parsed for a field.
	ErrInvalidValue = errors.New("invalid parameter value")
)

// Field names a tunable parameter for text-driven updates.
type Field int

const (
	FieldPower Field = iota
	FieldColor
	FieldParamX
	FieldParamY
	FieldParamZ
	FieldMaxSteps
	FieldAAQuality
	FieldSoftness
	FieldLightAngle
	FieldColorAnim
	FieldXRay
)

var fieldNames = map[Field]string{
	FieldPower:      "power",
	FieldColor:      "color",
	FieldParamX:     "param_x",
	FieldParamY:     "param_y",
	FieldParamZ:     "param_z",
	FieldMaxSteps:   "max_steps",
	FieldAAQuality:  "aa_quality",
	FieldSoftness:   "softness",
	FieldLightAngle: "light_angle",
	FieldColorAnim:  "color_anim",
	FieldXRay:       "xray",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return "field(" + strconv.Itoa(int(f)) + ")"
}

// ParseField resolves a field by name. Matching is case-insensitive and accepts
// '-' in place of '_'.
//
// Parameters:
//   - name: the field name, e.g. "power" or "param-x"
//
// Returns:
//   - Field: the resolved field
//   - error: ErrUnknownField if name matches nothing
func ParseField(name string) (Field, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for f, n := range fieldNames {
		if n == norm {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// SetText parses raw for the given field and applies it through the field's setter.
// On error p is left unchanged, so a bad value never reaches the shader.
//
// Parameters:
//   - f: the field to set
//   - raw: the user-provided text
//
// Returns:
//   - error: ErrInvalidValue or ErrUnknownField wrapped with detail
func (p *Params) SetText(f Field, raw string) error {
	raw = strings.TrimSpace(raw)
	switch f {
	case FieldPower, FieldParamX, FieldParamY, FieldParamZ, FieldSoftness, FieldLightAngle:
		v, err := parseFloat(f, raw)
		if err != nil {
			return err
		}
		switch f {
		case FieldPower:
			p.SetPower(v)
		case FieldParamX:
			p.SetFreeParam(AxisX, v)
		case FieldParamY:
			p.SetFreeParam(AxisY, v)
		case FieldParamZ:
			p.SetFreeParam(AxisZ, v)
		case FieldSoftness:
			if v <= 0 {
				return fmt.Errorf("%w: %s must be positive, got %q", ErrInvalidValue, f, raw)
			}
			p.SetSoftness(v)
		case FieldLightAngle:
			p.SetLightAngle(v)
		}
	case FieldMaxSteps, FieldAAQuality:
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > math.MaxInt32 {
			return fmt.Errorf("%w: %s expects a positive integer, got %q", ErrInvalidValue, f, raw)
		}
		if f == FieldMaxSteps {
			p.SetMaxSteps(int32(n))
		} else {
			p.SetAAQuality(int32(n))
		}
	case FieldColorAnim, FieldXRay:
		on, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: %s expects a boolean, got %q", ErrInvalidValue, f, raw)
		}
		if f == FieldColorAnim {
			p.SetColorAnim(on)
		} else {
			p.SetXRay(on)
		}
	case FieldColor:
		c, err := colorful.Hex(raw)
		if err != nil {
			return fmt.Errorf("%w: color expects #rrggbb, got %q", ErrInvalidValue, raw)
		}
		p.SetColor(float32(c.R), float32(c.G), float32(c.B))
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	return nil
}

// Parse resolves name and applies raw to it. It is ParseField followed by SetText.
//
// Parameters:
//   - name: the field name
//   - raw: the user-provided text
//
// Returns:
//   - error: ErrUnknownField or ErrInvalidValue wrapped with detail
func (p *Params) Parse(name, raw string) error {
	f, err := ParseField(name)
	if err != nil {
		return err
	}
	return p.SetText(f, raw)
}

func parseFloat(f Field, raw string) (float32, error) {
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s expects a number, got %q", ErrInvalidValue, f, raw)
	}
	return float32(v), nil
}
