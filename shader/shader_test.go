package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreambleDeclaresBundle(t *testing.T) {
	p := GeneratePreamble("")
	assert.True(t, strings.HasPrefix(p, "#version 300 es\n"))
	for _, decl := range []string{
		"uniform vec2 resolution;",
		"uniform mat4 cameraWorldMatrix;",
		"uniform mat4 cameraProjectionMatrixInverse;",
		"uniform float iTime;",
		"uniform vec3 iResolution;",
		"uniform sampler2D iChannel0;",
		"uniform vec4 iMouse;",
	} {
		assert.Contains(t, p, decl)
	}
}

func TestPreambleUsesChannelSamplerType(t *testing.T) {
	p := GeneratePreamble("samplerCube")
	assert.Contains(t, p, "uniform samplerCube iChannel0;")
	assert.NotContains(t, p, "uniform sampler2D iChannel0;")

	src, err := GetFragmentShader("void main() { gl_FragColor = vec4(1.0); }", "sampler3D", false)
	require.NoError(t, err)
	assert.Contains(t, src, "uniform sampler3D iChannel0;")
}

func TestVertexShaderAttributes(t *testing.T) {
	src := GenerateVertexShader("void main() { gl_Position = vec4(position, 1.0); }", "sampler2D")
	assert.Contains(t, src, "layout(location = 0) in vec3 position;")
	assert.Contains(t, src, "layout(location = 1) in vec2 uv;")
	assert.True(t, strings.HasSuffix(src, "void main() { gl_Position = vec4(position, 1.0); }"))
}

func TestFragmentDerivativeGate(t *testing.T) {
	body := "void main() { gl_FragColor = vec4(fwidth(vUv.x)); }"

	_, err := GetFragmentShader(body, "", false)
	assert.ErrorIs(t, err, ErrDerivativesDisabled)

	src, err := GetFragmentShader(body, "", true)
	require.NoError(t, err)
	assert.Contains(t, src, "#define gl_FragColor pc_fragColor")

	src, err = GetFragmentShader("void main() { gl_FragColor = vec4(1.0); }", "", false)
	require.NoError(t, err)
	assert.Contains(t, src, "out highp vec4 pc_fragColor;")
}

func TestUsesDerivatives(t *testing.T) {
	assert.True(t, UsesDerivatives("float a = dFdx(p.x);"))
	assert.True(t, UsesDerivatives("float a = dFdy (p.x);"))
	assert.False(t, UsesDerivatives("// fwidth(x) only in a comment"))
	assert.False(t, UsesDerivatives("float myfwidth = 1.0;"))
}

func TestDefaultShaders(t *testing.T) {
	assert.Contains(t, DefaultVertex(), "gl_Position")
	frag := DefaultFragment()
	assert.Contains(t, frag, "cameraProjectionMatrixInverse")
	assert.Contains(t, frag, "iChannel0")
	assert.True(t, UsesDerivatives(frag))
}
