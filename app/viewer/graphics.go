package viewer

//OpenGL live view: the frame scalar field is colourised on the CPU, streamed
//through a pixel unpack buffer into a texture and drawn on a full-window quad.
import (
	"fmt"
	"strings"

	"diesel.com/lattice/app"
	"diesel.com/lattice/render"
	"diesel.com/lattice/utils"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.2/glfw"
	"github.com/sirupsen/logrus"
)

type AppWindow struct {
	Width  int
	Height int
	Name   string
}

//WindowFor sizes a window to show an nx by ny lattice at an integer scale no
//wider than maxWidth.
func WindowFor(nx, ny, maxWidth int, name string) AppWindow {
	scale := maxWidth / nx
	if scale < 1 {
		scale = 1
	}
	return AppWindow{Width: nx * scale, Height: ny * scale, Name: name}
}

const vertexShader = `
#version 410 core
layout(location = 0) in vec2 position;
layout(location = 1) in vec2 texcoord;
out vec2 uv;
void main() {
	uv = texcoord;
	gl_Position = vec4(position, 0.0, 1.0);
}
` + "\x00"

const fragmentShader = `
#version 410 core
in vec2 uv;
out vec4 color;
uniform sampler2D field;
void main() {
	color = texture(field, uv);
}
` + "\x00"

//Full screen quad as a triangle strip: x, y, u, v
var quadVertices = []float32{
	-1, -1, 0, 0,
	1, -1, 1, 0,
	-1, 1, 0, 1,
	1, 1, 1, 1,
}

//Viewer is an Observer drawing each frame into a GLFW window. It must be
//created and used on the main, OS-locked thread.
type Viewer struct {
	Window  *glfw.Window
	Palette render.Palette
	Log     logrus.FieldLogger

	prog     uint32
	vao, vbo uint32
	tex, pbo uint32
	texW     int
	texH     int
	pix      []uint8
	paused   bool
}

//InitGLFW initializes glfw and returns a window with a current 4.1 core context
func InitGLFW(a *AppWindow) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, err
	}
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(a.Width, a.Height, a.Name, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	window.MakeContextCurrent()
	return window, nil
}

//NewViewer opens the window and compiles the texture program
func NewViewer(a AppWindow, pal render.Palette, log logrus.FieldLogger) (*Viewer, error) {
	window, err := InitGLFW(&a)
	if err != nil {
		return nil, fmt.Errorf("opening window: %w", err)
	}
	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, err
	}
	log.WithField("version", gl.GoStr(gl.GetString(gl.VERSION))).Debug("OpenGL context")

	v := &Viewer{Window: window, Palette: pal, Log: log}
	if err := v.initProgram(); err != nil {
		v.Close()
		return nil, err
	}
	v.initQuad()
	window.SetKeyCallback(v.processInput)
	return v, nil
}

func (v *Viewer) initProgram() error {
	vtx, err := compileShader(vertexShader, gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	frg, err := compileShader(fragmentShader, gl.FRAGMENT_SHADER)
	if err != nil {
		return err
	}
	v.prog = gl.CreateProgram()
	gl.AttachShader(v.prog, vtx)
	gl.AttachShader(v.prog, frg)
	gl.LinkProgram(v.prog)

	var status int32
	gl.GetProgramiv(v.prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(v.prog, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(v.prog, logLength, nil, gl.Str(msg))
		return fmt.Errorf("GLSL program failed to link: %v", msg)
	}
	gl.DeleteShader(vtx)
	gl.DeleteShader(frg)
	gl.UseProgram(v.prog)
	gl.Uniform1i(gl.GetUniformLocation(v.prog, gl.Str("field\x00")), 0)
	return nil
}

func (v *Viewer) initQuad() {
	gl.GenVertexArrays(1, &v.vao)
	gl.BindVertexArray(v.vao)
	gl.GenBuffers(1, &v.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, v.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(quadVertices), gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))

	gl.GenTextures(1, &v.tex)
	gl.GenBuffers(1, &v.pbo)
}

//allocate (re)creates texture storage for a w x h frame
func (v *Viewer) allocate(w, h int) {
	v.texW, v.texH = w, h
	v.pix = make([]uint8, 4*w*h)
	gl.BindTexture(gl.TEXTURE_2D, v.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
}

//upload streams v.pix through the unpack buffer into the texture
func (v *Viewer) upload() error {
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, v.pbo)
	gl.BufferData(gl.PIXEL_UNPACK_BUFFER, len(v.pix), nil, gl.STREAM_DRAW)
	ptr := gl.MapBuffer(gl.PIXEL_UNPACK_BUFFER, gl.WRITE_ONLY)
	err := utils.TransferPixelData(ptr, v.pix, len(v.pix))
	gl.UnmapBuffer(gl.PIXEL_UNPACK_BUFFER)
	if err == nil {
		gl.BindTexture(gl.TEXTURE_2D, v.tex)
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(v.texW), int32(v.texH), gl.RGBA, gl.UNSIGNED_BYTE, gl.PtrOffset(0))
	}
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
	return err
}

func (v *Viewer) draw() {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(v.prog)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, v.tex)
	gl.BindVertexArray(v.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	v.Window.SwapBuffers()
}

//Observe renders fr. Returns app.ErrViewerClosed once the window is closed.
func (v *Viewer) Observe(fr *app.Frame) error {
	glfw.PollEvents()
	for v.paused && !v.Window.ShouldClose() {
		glfw.WaitEvents()
	}
	if v.Window.ShouldClose() {
		return app.ErrViewerClosed
	}
	w, h := fr.Scalar.Dims()
	if w != v.texW || h != v.texH {
		v.allocate(w, h)
	}
	lo, hi := app.FrameRange(fr)
	if err := utils.Colorize(v.pix, fr.Scalar.Values, lo, hi, v.Palette); err != nil {
		return err
	}
	utils.FlipRows(v.pix, w, h)
	if err := v.upload(); err != nil {
		return err
	}
	v.draw()
	v.Window.SetTitle(fmt.Sprintf("diesel lattice - %s", fr.Label()))
	return nil
}

//Finish keeps the last frame on screen until the window is closed
func (v *Viewer) Finish() error {
	for !v.Window.ShouldClose() {
		glfw.WaitEvents()
		if v.texW > 0 {
			v.draw()
		}
	}
	return nil
}

//Close releases GL objects and terminates glfw
func (v *Viewer) Close() {
	if v.tex != 0 {
		gl.DeleteTextures(1, &v.tex)
	}
	if v.pbo != 0 {
		gl.DeleteBuffers(1, &v.pbo)
	}
	if v.vbo != 0 {
		gl.DeleteBuffers(1, &v.vbo)
	}
	if v.vao != 0 {
		gl.DeleteVertexArrays(1, &v.vao)
	}
	if v.prog != 0 {
		gl.DeleteProgram(v.prog)
	}
	glfw.Terminate()
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("GLSL shader failed to compile: %v", log)
	}
	return shader, nil
}

//processInput: Escape or Q closes, Space pauses, Tab logs the texture size
func (v *Viewer) processInput(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	switch key {
	case glfw.KeyEscape, glfw.KeyQ:
		w.SetShouldClose(true)
	case glfw.KeySpace:
		v.paused = !v.paused
		v.Log.WithField("paused", v.paused).Info("viewer")
	case glfw.KeyTab:
		v.Log.WithFields(logrus.Fields{"width": v.texW, "height": v.texH}).Info("viewer texture")
	}
}
