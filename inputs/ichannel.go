package inputs

// IChannel is a texture bound to one of the shader's iChannelN samplers.
// The handle is created once and never re-uploaded.
type IChannel interface {
	// GetTextureID returns the backend texture name that should be bound.
	GetTextureID() uint32

	// ChannelRes returns the resolution of the input channel as a vec3.
	ChannelRes() [3]float32

	// Destroy releases any resources held by the channel.
	Destroy()

	// GetSamplerType returns the GLSL sampler type (e.g., "sampler2D") the
	// shader preamble declares iChannel0 with.
	GetSamplerType() string
}
