// Package viewer implements the interactive avatar viewer loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/playforge/avatarview/internal/assets"
	"github.com/playforge/avatarview/internal/config"
	"github.com/playforge/avatarview/internal/engine/avatar"
	"github.com/playforge/avatarview/internal/engine/camera"
	"github.com/playforge/avatarview/internal/engine/renderer"
	"github.com/playforge/avatarview/internal/engine/window"
	"github.com/playforge/avatarview/internal/logger"
	"github.com/playforge/avatarview/pkg/math"
)

const fieldOfView = 45.0 * 3.14159265 / 180.0

// Viewer owns the window, renderer, camera and the avatar being displayed.
type Viewer struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	camera   *camera.OrbitCamera
	assets   *assets.Manager
	avatar   *avatar.Avatar

	dragging bool
}

// New creates a viewer, loads the configured avatar and installs the
// startup animation.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		config: cfg,
		camera: camera.New(),
		assets: assets.NewManager(cfg.Assets.Dir),
	}

	// Window first; the renderer needs a live OpenGL context.
	var err error
	v.window, err = window.New(window.Config{
		Title:  "AvatarView",
		Width:  cfg.Viewer.Width,
		Height: cfg.Viewer.Height,
		VSync:  cfg.Viewer.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	v.renderer, err = renderer.New(renderer.Config{
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Background: cfg.Viewer.Background,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.avatar = avatar.New(v.assets, avatar.Callbacks{
		OnFetchStart: func(path string) {
			logger.Debug("fetching asset", zap.String("path", path))
		},
		OnModelBuilt: func() {
			// The previous scene's meshes are gone; drop their GPU buffers.
			v.renderer.InvalidateScene()
			logger.Info("avatar model built")
		},
		OnAnimationLoaded: func(path string) {
			logger.Info("animation loaded", zap.String("path", path))
		},
		OnError: func(err error) {
			logger.Error("avatar error", zap.Error(err))
		},
	}, logger.Log)

	desc, err := v.assets.Avatar(cfg.Assets.Avatar)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to load avatar descriptor: %w", err)
	}
	if err := v.avatar.Load(desc); err != nil {
		v.Close()
		return nil, err
	}

	if cfg.Viewer.Animation != "" {
		if err := v.avatar.SetAnimation(cfg.Viewer.Animation); err != nil {
			// Missing animation leaves the avatar in rest pose.
			logger.Warn("startup animation unavailable",
				zap.String("path", cfg.Viewer.Animation),
				zap.Error(err),
			)
		}
	}

	return v, nil
}

// Run drives the frame loop until quit.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		deltaMs := float32(now.Sub(lastTime).Seconds() * 1000)
		lastTime = now

		v.processEvents()

		v.avatar.Tick(deltaMs)

		v.renderer.Begin()
		proj := math.Perspective(fieldOfView, v.renderer.Aspect(), 0.1, 100.0)
		v.renderer.DrawScene(v.avatar.Scene(), v.camera.ViewMatrix(), proj)

		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// processEvents drains the SDL event queue.
func (v *Viewer) processEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			v.running = false

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				switch e.Keysym.Scancode {
				case sdl.SCANCODE_ESCAPE:
					v.running = false
				case sdl.SCANCODE_R:
					v.reload()
				}
			}

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				v.renderer.Resize(int(e.Data1), int(e.Data2))
			}

		case *sdl.MouseButtonEvent:
			if e.Button == sdl.BUTTON_LEFT {
				v.dragging = e.Type == sdl.MOUSEBUTTONDOWN
			}

		case *sdl.MouseMotionEvent:
			if v.dragging {
				v.camera.HandleDrag(float32(e.XRel), float32(e.YRel))
			}

		case *sdl.MouseWheelEvent:
			v.camera.HandleZoom(float32(e.Y))
		}
	}
}

// reload re-reads the avatar descriptor from disk and rebuilds the scene,
// so edited asset documents show up without restarting.
func (v *Viewer) reload() {
	v.assets.Clear()

	desc, err := v.assets.Avatar(v.config.Assets.Avatar)
	if err != nil {
		logger.Error("reload failed", zap.Error(err))
		return
	}
	if err := v.avatar.Load(desc); err != nil {
		return
	}
	if v.config.Viewer.Animation != "" {
		if err := v.avatar.SetAnimation(v.config.Viewer.Animation); err != nil {
			logger.Warn("animation unavailable after reload",
				zap.String("path", v.config.Viewer.Animation),
				zap.Error(err),
			)
		}
	}
}

// Close releases viewer resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
