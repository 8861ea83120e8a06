package shader

import (
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/richinsley/gomandelbulb/uniforms"
)

//go:embed shaders/shader.vert
var defaultVertexBody string

//go:embed shaders/mandelbulb.frag
var defaultFragmentBody string

// ErrDerivativesDisabled is returned when a fragment body calls dFdx, dFdy or
// fwidth but the material did not enable derivatives.
var ErrDerivativesDisabled = errors.New("shader uses derivatives but the extension is not enabled")

var derivativeCall = regexp.MustCompile(`\b(dFdx|dFdy|fwidth)\s*\(`)

// DefaultVertex returns the embedded pass-through vertex body.
func DefaultVertex() string {
	return defaultVertexBody
}

// DefaultFragment returns the embedded mandelbulb fragment body.
func DefaultFragment() string {
	return defaultFragmentBody
}

// UsesDerivatives reports whether body calls a screen-space derivative.
func UsesDerivatives(body string) bool {
	return derivativeCall.MatchString(stripComments(body))
}

func stripComments(src string) string {
	var b strings.Builder
	for _, line := range strings.Split(src, "\n") {
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// GeneratePreamble declares the version, precision and every uniform of the
// bundle. iChannel0 is declared as channelType, the bound texture's sampler
// type; empty keeps sampler2D. Bodies written against WebGL1 names keep
// working through the compatibility defines added by the stage generators.
func GeneratePreamble(channelType string) string {
	var b strings.Builder
	b.WriteString(`#version 300 es
precision highp float;
precision highp int;

`)
	for _, d := range uniforms.Declarations() {
		if d.Name == uniforms.IChannel0 && channelType != "" {
			d.Type = channelType
		}
		fmt.Fprintf(&b, "uniform %s %s;\n", d.Type, d.Name)
	}
	b.WriteString("\n#define texture2D texture\n")
	return b.String()
}

// GenerateVertexShader wraps a vertex body. Position is bound to attribute
// location 0 and uv to location 1.
func GenerateVertexShader(body, channelType string) string {
	return GeneratePreamble(channelType) + `#define attribute in
#define varying out

layout(location = 0) in vec3 position;
layout(location = 1) in vec2 uv;

` + body
}

// GetFragmentShader wraps a fragment body. Derivatives are core in ESSL 3.00,
// so the flag only gates whether the body may use them.
func GetFragmentShader(body, channelType string, derivatives bool) (string, error) {
	if !derivatives && UsesDerivatives(body) {
		return "", ErrDerivativesDisabled
	}
	return GeneratePreamble(channelType) + `#define varying in

layout(location = 0) out highp vec4 pc_fragColor;
#define gl_FragColor pc_fragColor

` + body, nil
}
