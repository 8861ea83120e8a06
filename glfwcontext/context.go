package glfwcontext

import (
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/gomandelbulb/graphics"
	"github.com/richinsley/gomandelbulb/log"
)

var logger = log.New("glfw")

// Context is a GLFW window with an OpenGL 4.1 core context. It satisfies
// graphics.Context.
type Context struct {
	window *glfw.Window
	vsync  bool

	pointerHandler func(clientX, clientY float64)
	resizeHandler  func(width, height int)
	// A map to store functions to be called on key presses.
	keyCallbacks map[glfw.Key]func()
}

// New creates a window of the given client size. A hidden window still owns a
// default framebuffer, which is what recording draws into.
func New(width, height int, title string, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
		glfw.WindowHint(glfw.Visible, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		vsync:        visible,
		keyCallbacks: make(map[glfw.Key]func()),
	}

	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetCursorPosCallback(c.glfwCursorPosCallback)
	win.SetSizeCallback(c.glfwSizeCallback)

	return c, nil
}

// RegisterKeyCallback allows the main application to register a function to be
// called when a specific key is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

// RegisterPointerHandler receives cursor moves in screen coordinates, that is
// the window's content origin plus the cursor offset.
func (c *Context) RegisterPointerHandler(f func(clientX, clientY float64)) {
	c.pointerHandler = f
}

// RegisterResizeHandler receives window content size changes in screen units.
func (c *Context) RegisterResizeHandler(f func(width, height int)) {
	c.resizeHandler = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press && w != nil {
		w.SetShouldClose(true)
	}

	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

func (c *Context) glfwCursorPosCallback(w *glfw.Window, x, y float64) {
	if c.pointerHandler == nil {
		return
	}
	left, top := w.GetPos()
	c.pointerHandler(float64(left)+x, float64(top)+y)
}

func (c *Context) glfwSizeCallback(w *glfw.Window, width, height int) {
	logger.Debugf("window resized to %dx%d", width, height)
	if c.resizeHandler != nil {
		c.resizeHandler(width, height)
	}
}

// BoundingRect is the window's content area in screen coordinates.
func (c *Context) BoundingRect() graphics.Rect {
	left, top := c.window.GetPos()
	width, height := c.window.GetSize()
	return graphics.Rect{
		Left:   float64(left),
		Top:    float64(top),
		Width:  float64(width),
		Height: float64(height),
	}
}

// ClientSize is the window's content size in screen units.
func (c *Context) ClientSize() graphics.Size {
	width, height := c.window.GetSize()
	return graphics.Size{Width: width, Height: height}
}

// MakeCurrent makes the context current. Visible windows swap on vsync;
// hidden ones render as fast as possible.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
	if c.vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

// EndFrame presents the frame and dispatches pending window events. With
// vsync on this is where the loop waits for the next display refresh.
func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

// Time is seconds since GLFW was initialised.
func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	logger.Debugf("GLFW initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	logger.Debugf("GLFW terminated")
}
