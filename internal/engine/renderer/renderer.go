// Package renderer draws the starfield and the compass with OpenGL.
package renderer

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/starfield/internal/engine/shader"
	"github.com/Faultbox/starfield/internal/hud"
	"github.com/Faultbox/starfield/internal/logger"
)

const (
	// StarDiameter is the on-screen diameter in pixels of a star of scale 1.
	StarDiameter = 100

	// Compass placement and needle size in pixels.
	compassX      = 100
	compassY      = 75
	compassLength = 50
	compassWidth  = 5

	compassFloats = 3 * 6 * 5 // needles * vertices * (x, y, r, g, b)
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config     Config
	projection mgl32.Mat4

	stars    *shader.Program
	starVAO  uint32
	starVBO  uint32
	starCap  int
	compass  *shader.Program
	lineVAO  uint32
	lineVBO  uint32
	lineData []float32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		lineData: make([]float32, 0, compassFloats),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0, 0, 0, 1)

	var err error
	if r.stars, err = shader.New(starVertexSrc, starFragmentSrc); err != nil {
		return nil, fmt.Errorf("star shader: %w", err)
	}
	if r.compass, err = shader.New(lineVertexSrc, lineFragmentSrc); err != nil {
		r.stars.Delete()
		return nil, fmt.Errorf("compass shader: %w", err)
	}

	r.createStarBuffers()
	r.createCompassBuffers()
	r.Resize(cfg.Width, cfg.Height, cfg.Width, cfg.Height)
	return r, nil
}

func (r *Renderer) createStarBuffers() {
	gl.GenVertexArrays(1, &r.starVAO)
	gl.BindVertexArray(r.starVAO)
	gl.GenBuffers(1, &r.starVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.starVBO)

	// Each star is (scale, x, y).
	gl.VertexAttribPointerWithOffset(0, 1, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 3*4, 1*4)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

func (r *Renderer) createCompassBuffers() {
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.BufferData(gl.ARRAY_BUFFER, compassFloats*4, nil, gl.DYNAMIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 5*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 5*4, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, vao := range []*uint32{&r.starVAO, &r.lineVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
		}
	}
	for _, vbo := range []*uint32{&r.starVBO, &r.lineVBO} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
		}
	}
	r.stars.Delete()
	r.compass.Delete()
}

// Resize sets the logical screen size used for star coordinates and the
// framebuffer size in pixels.
func (r *Renderer) Resize(width, height, fbWidth, fbHeight int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	// Screen space with the origin at the top left.
	r.projection = mgl32.Ortho2D(0, float32(width), float32(height), 0)
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("fb_width", fbWidth),
		zap.Int("fb_height", fbHeight),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// DrawStars draws the first n (scale, x, y) triples of stars.
func (r *Renderer) DrawStars(stars []float32, n int) {
	if n <= 0 {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, r.starVBO)
	size := 3 * n * 4
	if n > r.starCap {
		// Grow with headroom so small changes in star count reuse the buffer.
		r.starCap = n + n/4
		gl.BufferData(gl.ARRAY_BUFFER, 3*r.starCap*4, nil, gl.STREAM_DRAW)
		logger.Debug("star buffer grown", zap.Int("capacity", r.starCap))
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(stars))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.stars.Use()
	r.stars.SetMat4("uProjection", r.projection)
	gl.Uniform1f(r.stars.Uniform("uDiameter"), StarDiameter)
	gl.BindVertexArray(r.starVAO)
	gl.DrawArrays(gl.POINTS, 0, int32(n))
}

// DrawCompass draws the world axes as seen from the camera. vecs is the
// inverse camera orientation from Universe.CameraVectors.
func (r *Renderer) DrawCompass(vecs [9]float32) {
	r.lineData = r.lineData[:0]
	for _, n := range hud.Compass(vecs, compassLength) {
		r.lineData = appendNeedle(r.lineData, n)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.lineData)*4, gl.Ptr(r.lineData))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.compass.Use()
	r.compass.SetMat4("uProjection", r.projection)
	r.compass.SetVec2("uOrigin", mgl32.Vec2{compassX, compassY})
	gl.BindVertexArray(r.lineVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.lineData)/5))
}

// appendNeedle appends two triangles covering a needle of compassWidth.
// A needle pointing at the viewer degenerates to an empty quad.
func appendNeedle(dst []float32, n hud.Needle) []float32 {
	cr, cg, cb := n.Axis.RGB()
	x, y := n.X, n.Y

	var px, py float32
	if l := math32.Hypot(x, y); l > 0 {
		px, py = -y/l*compassWidth/2, x/l*compassWidth/2
	}

	corners := [4][2]float32{
		{px, py},
		{-px, -py},
		{x - px, y - py},
		{x + px, y + py},
	}
	for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
		dst = append(dst, corners[i][0], corners[i][1], cr, cg, cb)
	}
	return dst
}

// ReadPixels reads the back buffer as bottom-up RGBA. Call it after drawing
// and before swapping buffers.
func (r *Renderer) ReadPixels(fbWidth, fbHeight int) []byte {
	pixels := make([]byte, fbWidth*fbHeight*4)
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(fbWidth), int32(fbHeight), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
