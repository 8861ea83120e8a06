package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/gomandelbulb/scene"
	"github.com/richinsley/gomandelbulb/shader"
	"github.com/richinsley/gomandelbulb/translator"
	"github.com/richinsley/gomandelbulb/uniforms"
)

// program is a linked material with the locations of its uniforms. A
// location of -1 means the translator pruned the uniform.
type program struct {
	id        uint32
	locations map[string]int32
}

func (b *Backend) buildProgram(m *scene.ShaderMaterial) (*program, error) {
	channelType := ""
	if m.Uniforms != nil && m.Uniforms.IChannel0() != nil {
		channelType = m.Uniforms.IChannel0().GetSamplerType()
	}
	frag, err := shader.GetFragmentShader(m.FragmentShader, channelType, m.Extensions.Derivatives)
	if err != nil {
		return nil, err
	}
	vert := shader.GenerateVertexShader(m.VertexShader, channelType)

	vs, err := translator.Translate(vert, "vertex", b.gles)
	if err != nil {
		return nil, err
	}
	fs, err := translator.Translate(frag, "fragment", b.gles)
	if err != nil {
		logger.Debugf("fragment source:\n%s", frag)
		return nil, err
	}

	id, err := newProgram(vs.Code, fs.Code)
	if err != nil {
		return nil, err
	}

	p := &program{id: id, locations: make(map[string]int32)}
	for _, name := range uniforms.Names() {
		mapped := fs.MappedName(name)
		if _, ok := fs.Uniforms[name]; !ok {
			mapped = vs.MappedName(name)
		}
		p.locations[name] = gl.GetUniformLocation(id, gl.Str(mapped+"\x00"))
		if p.locations[name] < 0 {
			logger.Debugf("uniform %s (%s) is inactive", name, mapped)
		}
	}
	return p, nil
}

func (p *program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	return -1
}

// upload writes the bundle into the currently bound program. The sampler is
// always texture unit 0.
func (p *program) upload(u *uniforms.Bundle) {
	if loc := p.location(uniforms.Resolution); loc >= 0 {
		gl.Uniform2f(loc, u.Resolution[0], u.Resolution[1])
	}
	if loc := p.location(uniforms.CameraWorldMatrix); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &u.CameraWorldMatrix[0])
	}
	if loc := p.location(uniforms.CameraProjectionMatrixInverse); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &u.CameraProjectionMatrixInverse[0])
	}
	if loc := p.location(uniforms.ITime); loc >= 0 {
		gl.Uniform1f(loc, u.ITime)
	}
	if loc := p.location(uniforms.IResolution); loc >= 0 {
		gl.Uniform3f(loc, u.IResolution[0], u.IResolution[1], u.IResolution[2])
	}
	if loc := p.location(uniforms.IMouse); loc >= 0 {
		gl.Uniform4f(loc, u.IMouse[0], u.IMouse[1], u.IMouse[2], u.IMouse[3])
	}
	if ch := u.IChannel0(); ch != nil {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(textureTarget(ch.GetSamplerType()), ch.GetTextureID())
		if loc := p.location(uniforms.IChannel0); loc >= 0 {
			gl.Uniform1i(loc, 0)
		}
	}
}

// textureTarget maps a GLSL sampler type onto the texture bind target.
func textureTarget(samplerType string) uint32 {
	switch samplerType {
	case "sampler3D":
		return gl.TEXTURE_3D
	case "samplerCube":
		return gl.TEXTURE_CUBE_MAP
	default:
		return gl.TEXTURE_2D
	}
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
