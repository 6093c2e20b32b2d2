package shading

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed assets/flat.wgsl
var flatSource string

//go:embed assets/point_light_diffuse.wgsl
var pointLightDiffuseSource string

// Mode selects the stock shader a draw is rendered with.
type Mode int

const (
	// Flat paints every fragment with the uniform colour.
	Flat Mode = iota
	// PointLightDiffuse scales the colour by the Lambert term of an eye-space point light.
	PointLightDiffuse
)

func (m Mode) String() string {
	switch m {
	case Flat:
		return "flat"
	case PointLightDiffuse:
		return "point_light_diffuse"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode resolves a shading mode from its name.
//
// Parameters:
//   - name: "flat" or "point_light_diffuse", case-insensitive
//
// Returns:
//   - Mode: the matching mode
//   - error: non-nil for an unknown name
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "flat":
		return Flat, nil
	case "point_light_diffuse", "diffuse":
		return PointLightDiffuse, nil
	}
	return Flat, fmt.Errorf("unknown shading mode %q", name)
}

// Source returns the complete WGSL module for a mode: the uniform block followed by the
// mode's vertex and fragment entry points (vs_main, fs_main).
//
// Returns:
//   - string: WGSL source
//   - error: non-nil for an unknown mode
func (m Mode) Source() (string, error) {
	var body string
	switch m {
	case Flat:
		body = flatSource
	case PointLightDiffuse:
		body = pointLightDiffuseSource
	default:
		return "", fmt.Errorf("no shader for %s", m)
	}
	return TransformUniformSource + "\n" + body, nil
}

// DrawCommand is one draw handed from the scene to a renderer: the vertex batch to draw,
// the shader to draw it with and the uniform block sampled from the transform pipeline.
type DrawCommand struct {
	Batch   string
	Mode    Mode
	Uniform TransformUniform
}
