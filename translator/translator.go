package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator     *gst.ShaderTranslator
	translatorErr  error
	translatorOnce sync.Once
)

// GetTranslator returns the process-wide translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		translator, translatorErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, translatorErr
}

// Shader is a translated stage together with the names the translator gave
// to its uniforms.
type Shader struct {
	Code     string
	Uniforms map[string]string
}

// MappedName returns the translated identifier for a uniform, falling back to
// the source name when the translator did not rename it.
func (s *Shader) MappedName(name string) string {
	if mapped, ok := s.Uniforms[name]; ok && mapped != "" {
		return mapped
	}
	return name
}

// Translate converts an ESSL 3.00 stage ("vertex" or "fragment") into
// desktop GLSL 4.10, or back into ESSL when gles is set.
func Translate(source, stage string, gles bool) (*Shader, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", err)
	}
	outputFormat := gst.OutputFormatGLSL410
	if gles {
		outputFormat = gst.OutputFormatESSL
	}
	out, err := t.TranslateShader(source, stage, gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}
	s := &Shader{
		Code:     out.Code,
		Uniforms: make(map[string]string, len(out.Variables)),
	}
	for name, v := range out.Variables {
		s.Uniforms[name] = v.MappedName
	}
	return s, nil
}
