// Package game runs the desktop starfield: window, input, simulation and
// rendering in one loop.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/starfield/internal/config"
	"github.com/Faultbox/starfield/internal/controls"
	"github.com/Faultbox/starfield/internal/engine/input"
	"github.com/Faultbox/starfield/internal/engine/renderer"
	"github.com/Faultbox/starfield/internal/engine/screenshot"
	"github.com/Faultbox/starfield/internal/engine/window"
	"github.com/Faultbox/starfield/internal/hud"
	"github.com/Faultbox/starfield/internal/logger"
	"github.com/Faultbox/starfield/internal/universe"
)

// maxTickDelta caps the simulation step after a stall, in ticks.
const maxTickDelta = 6

// Game is the desktop starfield instance.
type Game struct {
	cfg      *config.Config
	title    string
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	universe *universe.Universe

	stars    []float32
	vecs     [universe.CameraVectorsLen]float32
	fps      *hud.FPSMeter
	caption  string
	shots    *screenshot.Capture
	wantShot bool
}

// New creates the window, renderer and universe.
func New(title string, cfg *config.Config) (*Game, error) {
	gfx := cfg.Graphics
	logger.Info("initializing starfield",
		zap.String("title", title),
		zap.Int("width", gfx.Width),
		zap.Int("height", gfx.Height),
		zap.Float32("fov_degrees", cfg.Starfield.FOVDegrees),
		zap.Float32("render_distance", cfg.Starfield.RenderDistance),
	)

	g := &Game{
		cfg:   cfg,
		title: title,
		shots: screenshot.New(cfg.Graphics.ScreenshotDir, "starfield"),
	}

	var err error
	g.window, err = window.New(window.Config{
		Title:      title,
		Width:      gfx.Width,
		Height:     gfx.Height,
		Fullscreen: gfx.Fullscreen,
		VSync:      gfx.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Fullscreen and high-DPI windows may not match the requested size.
	width, height := g.window.GetSize()
	fbWidth, fbHeight := g.window.GetDrawableSize()

	// Create renderer (AFTER window, since OpenGL context must exist)
	g.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	g.renderer.Resize(width, height, fbWidth, fbHeight)

	g.universe, err = universe.FromConfig(cfg.Starfield, width, height)
	if err != nil {
		g.Close()
		return nil, err
	}

	g.input = input.New(controls.DesktopKeys)
	logger.Info("starfield initialized",
		zap.Int("chunks", g.universe.Chunks().Len()),
		zap.Int("stars", g.universe.CountStars()),
	)
	return g, nil
}

// Run starts the main loop and returns when the window is closed or
// Escape is pressed.
func (g *Game) Run() error {
	g.running = true
	lastTime := time.Now()
	g.fps = hud.NewFPSMeter(lastTime)

	logger.Info("starting main loop")

	for g.running {
		now := time.Now()
		dt := min(g.cfg.Starfield.Delta(now.Sub(lastTime)), maxTickDelta)
		lastTime = now

		if g.input.Update() {
			g.running = false
			break
		}
		for _, event := range g.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				if err := g.resize(); err != nil {
					return err
				}
			case input.EventKeyDown:
				switch event.Key {
				case sdl.SCANCODE_ESCAPE:
					g.running = false
				case sdl.SCANCODE_F12:
					g.wantShot = true
				}
			}
		}

		if err := g.update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}
		if err := g.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if g.wantShot {
			g.wantShot = false
			g.screenshot()
		}
		g.window.SwapBuffers()

		g.fps.Frame(time.Now())
		g.updateCaption()
	}

	return nil
}

func (g *Game) resize() error {
	width, height := g.window.GetSize()
	fbWidth, fbHeight := g.window.GetDrawableSize()
	if err := g.universe.SetSize(width, height); err != nil {
		// Minimized windows report a zero size; keep the previous one.
		if errors.Is(err, universe.ErrInvalidSize) {
			return nil
		}
		return fmt.Errorf("resizing universe: %w", err)
	}
	g.renderer.Resize(width, height, fbWidth, fbHeight)
	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	logger.Info("closing starfield")

	if g.input != nil {
		g.input.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

func (g *Game) update(dt float32) error {
	g.cfg.Controls.Apply(g.input.Controls(), g.universe)
	return g.universe.Tick(dt)
}

func (g *Game) render() error {
	g.stars = universe.StarBuffer(g.stars, g.universe.CountStars())
	n, err := g.universe.ProjectStars(g.stars)
	if err != nil {
		return err
	}
	if err := g.universe.CameraVectors(g.vecs[:]); err != nil {
		return err
	}

	g.renderer.Begin()
	g.renderer.DrawStars(g.stars, n)
	if g.cfg.Graphics.ShowCompass {
		g.renderer.DrawCompass(g.vecs)
	}
	g.renderer.End()
	return nil
}

func (g *Game) screenshot() {
	w, h := g.window.GetDrawableSize()
	name, err := g.shots.SavePixels(g.renderer.ReadPixels(w, h), w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", name))
}

func (g *Game) updateCaption() {
	caption := g.title
	if g.cfg.Graphics.ShowFPS {
		caption = fmt.Sprintf("%s - %.0f FPS - %s", g.title, g.fps.FPS(), hud.Heading(g.vecs))
	}
	if caption != g.caption {
		g.caption = caption
		g.window.SetTitle(caption)
	}
}
