//go:build !test
// +build !test

package sim

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const sceneVertexShader = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec3 worldPos;
out vec3 normal;

void main() {
    vec4 wp = model * vec4(aPos, 1.0);
    worldPos = wp.xyz;
    normal = mat3(transpose(inverse(model))) * aNormal;
    gl_Position = projection * view * wp;
}
` + "\x00"

const sceneFragmentShader = `
#version 410 core
in vec3 worldPos;
in vec3 normal;
out vec4 FragColor;

uniform vec4 uTint;
uniform vec3 uLightColor;
uniform int uTextured;   // 1 = checker stand-in for a texture
uniform float uTileSize;
uniform vec3 uCameraPos;
uniform vec3 uFogColor;
uniform float uFogDensity;

void main() {
    vec3 base = uTint.rgb;
    if (uTextured == 1) {
        float tx = floor(worldPos.x / uTileSize);
        float tz = floor(worldPos.z / uTileSize);
        base *= mix(0.9, 1.05, mod(tx + tz, 2.0));
    }
    vec3 lightDir = normalize(vec3(0.4, 1.0, 0.3));
    float diffuse = max(dot(normalize(normal), lightDir), 0.0);
    vec3 lit = base * uLightColor * (0.45 + 0.75 * diffuse);

    float dist = distance(worldPos, uCameraPos);
    float fogFactor = clamp(1.0 - exp(-uFogDensity * dist), 0.0, 1.0);
    FragColor = vec4(mix(lit, uFogColor, fogFactor), uTint.a);
}
` + "\x00"

const screenVertexShader = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoords;
out vec2 texCoords;
void main() {
    texCoords = aTexCoords;
    gl_Position = vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const screenFragmentShader = `
#version 410 core
in vec2 texCoords;
out vec4 FragColor;
uniform sampler2D screenTexture;
void main() {
    vec3 c = texture(screenTexture, texCoords).rgb;
    // Mild vignette so the offscreen pass is visible.
    vec2 d = texCoords - vec2(0.5);
    float v = 1.0 - dot(d, d) * 0.6;
    FragColor = vec4(c * v, 1.0);
}
` + "\x00"

// Renderer draws a Scene and the plane as proxy boxes, optionally through an
// offscreen framebuffer composited by a screen quad.
type Renderer struct {
	program uint32
	boxVAO  uint32

	modelLoc, viewLoc, projectionLoc int32
	tintLoc, lightLoc, texturedLoc   int32
	tileLoc, cameraLoc               int32
	fogColorLoc, fogDensityLoc       int32

	screenProgram uint32
	quadVAO       uint32
	fbo           uint32
	colorTex      uint32
	rbo           uint32
	fbW, fbH      int32

	postProcess bool
}

func NewRenderer(postProcess bool) (*Renderer, error) {
	r := &Renderer{postProcess: postProcess}
	var err error
	if r.program, err = linkProgram(sceneVertexShader, sceneFragmentShader); err != nil {
		return nil, fmt.Errorf("scene program: %w", err)
	}
	if r.screenProgram, err = linkProgram(screenVertexShader, screenFragmentShader); err != nil {
		return nil, fmt.Errorf("screen program: %w", err)
	}

	loc := func(name string) int32 { return gl.GetUniformLocation(r.program, gl.Str(name+"\x00")) }
	r.modelLoc = loc("model")
	r.viewLoc = loc("view")
	r.projectionLoc = loc("projection")
	r.tintLoc = loc("uTint")
	r.lightLoc = loc("uLightColor")
	r.texturedLoc = loc("uTextured")
	r.tileLoc = loc("uTileSize")
	r.cameraLoc = loc("uCameraPos")
	r.fogColorLoc = loc("uFogColor")
	r.fogDensityLoc = loc("uFogDensity")

	r.initBox()
	r.initQuad()

	gl.UseProgram(r.screenProgram)
	gl.Uniform1i(gl.GetUniformLocation(r.screenProgram, gl.Str("screenTexture\x00")), 0)
	return r, nil
}

func (r *Renderer) SetPostProcess(on bool) { r.postProcess = on }
func (r *Renderer) PostProcess() bool      { return r.postProcess }

func (r *Renderer) initBox() {
	vertices := boxVertices()
	var vbo uint32
	gl.GenVertexArrays(1, &r.boxVAO)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(r.boxVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)
}

func (r *Renderer) initQuad() {
	quad := []float32{
		-1, 1, 0, 1,
		-1, -1, 0, 0,
		1, -1, 1, 0,
		-1, 1, 0, 1,
		1, -1, 1, 0,
		1, 1, 1, 1,
	}
	var vbo uint32
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)
}

// ensureFramebuffer (re)creates the offscreen target when the window size changes.
func (r *Renderer) ensureFramebuffer(width, height int32) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("framebuffer size %dx%d", width, height)
	}
	if r.fbo != 0 && r.fbW == width && r.fbH == height {
		return nil
	}
	if r.fbo != 0 {
		gl.DeleteFramebuffers(1, &r.fbo)
		gl.DeleteTextures(1, &r.colorTex)
		gl.DeleteRenderbuffers(1, &r.rbo)
	}
	gl.GenFramebuffers(1, &r.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)

	gl.GenTextures(1, &r.colorTex)
	gl.BindTexture(gl.TEXTURE_2D, r.colorTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB, width, height, 0, gl.RGB, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, r.colorTex, 0)

	gl.GenRenderbuffers(1, &r.rbo)
	gl.BindRenderbuffer(gl.RENDERBUFFER, r.rbo)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, width, height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, r.rbo)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	r.fbW, r.fbH = width, height
	return nil
}

// Render draws one frame. A frame with no area, as when the window is
// minimized, is skipped without touching the offscreen target.
func (r *Renderer) Render(f Frame) error {
	if !f.Visible() {
		return nil
	}
	w, h := int32(f.Width), int32(f.Height)
	if r.postProcess {
		if err := r.ensureFramebuffer(w, h); err != nil {
			return err
		}
		gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)
	}

	sky := f.Daylight.ClearColor()
	gl.Viewport(0, 0, w, h)
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(sky[0], sky[1], sky[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view := f.Camera.ViewMatrix()
	projection := f.Camera.ProjectionMatrix(f.Width, f.Height)
	light := f.Daylight.LightColor()

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.viewLoc, 1, false, &view[0])
	gl.UniformMatrix4fv(r.projectionLoc, 1, false, &projection[0])
	gl.Uniform3f(r.lightLoc, light[0], light[1], light[2])
	cam := f.Camera.Position.Mgl()
	gl.Uniform3f(r.cameraLoc, cam[0], cam[1], cam[2])
	gl.Uniform3f(r.fogColorLoc, sky[0], sky[1], sky[2])
	gl.Uniform1f(r.fogDensityLoc, 0.0004)
	gl.Uniform1f(r.tileLoc, 20)

	gl.BindVertexArray(r.boxVAO)
	for _, o := range f.Scene.Terrain() {
		r.drawBox(o.Model(), o.Tint, true)
	}
	for _, o := range f.Scene.Models() {
		r.drawBox(o.Model(), o.Tint, false)
	}
	for i, part := range planeParts {
		r.drawBox(PlaneModel(f.Plane).Mul4(part), f.Scene.PlaneTint[i], false)
	}
	gl.BindVertexArray(0)

	if r.postProcess {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Disable(gl.DEPTH_TEST)
		gl.ClearColor(0, 0, 0, 0)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		gl.UseProgram(r.screenProgram)
		gl.BindVertexArray(r.quadVAO)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.colorTex)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
		gl.BindVertexArray(0)
		gl.Enable(gl.DEPTH_TEST)
	}
	return nil
}

func (r *Renderer) drawBox(model mgl32.Mat4, tint Color, textured bool) {
	gl.UniformMatrix4fv(r.modelLoc, 1, false, &model[0])
	gl.Uniform4f(r.tintLoc, tint.R, tint.G, tint.B, tint.A)
	flag := int32(0)
	if textured {
		flag = 1
	}
	gl.Uniform1i(r.texturedLoc, flag)
	gl.DrawArrays(gl.TRIANGLES, 0, 36)
}

func (r *Renderer) Delete() {
	gl.DeleteProgram(r.program)
	gl.DeleteProgram(r.screenProgram)
	gl.DeleteVertexArrays(1, &r.boxVAO)
	gl.DeleteVertexArrays(1, &r.quadVAO)
	if r.fbo != 0 {
		gl.DeleteFramebuffers(1, &r.fbo)
		gl.DeleteTextures(1, &r.colorTex)
		gl.DeleteRenderbuffers(1, &r.rbo)
	}
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertexSource, fragmentSource string) (uint32, error) {
	vs, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, errors.New("link program: " + strings.TrimRight(log, "\x00"))
	}
	return program, nil
}
