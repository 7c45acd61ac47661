// Package app implements the interactive viewer's frame loop.
package app

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/orbitshade/internal/assets"
	"github.com/Faultbox/orbitshade/internal/config"
	"github.com/Faultbox/orbitshade/internal/engine/camera"
	"github.com/Faultbox/orbitshade/internal/engine/debug"
	"github.com/Faultbox/orbitshade/internal/engine/framebuffer"
	"github.com/Faultbox/orbitshade/internal/engine/input"
	"github.com/Faultbox/orbitshade/internal/engine/picking"
	"github.com/Faultbox/orbitshade/internal/engine/renderer"
	"github.com/Faultbox/orbitshade/internal/engine/window"
	"github.com/Faultbox/orbitshade/internal/logger"
	"github.com/Faultbox/orbitshade/internal/scene"
	m "github.com/Faultbox/orbitshade/pkg/math"
)

// Title is the window title.
const Title = "orbitshade"

// App is the viewer instance.
type App struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	scene    *scene.Scene
	assets   *assets.Manager
	watcher  *config.Watcher
	shots    *debug.ScreenshotCapture
	clock    *Clock

	captureRequested bool
	// follow is the name of the object the camera tracks, if any.
	follow string

	log *zap.Logger
}

// New creates the window, renderer and scene described by cfg.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config: cfg,
		log:    logger.Named("app"),
	}
	a.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("bodies", len(cfg.Bodies)),
	)

	var err error
	a.scene, err = scene.Build(cfg)
	if err != nil {
		return nil, err
	}

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:          width,
		Height:         height,
		SphereSegments: cfg.Graphics.SphereSegments,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.assets = assets.NewManager(cfg.Assets.Dirs...)
	images := scene.NewImageSource(a.assets, cfg.Assets)
	a.renderer.LoadTextures(images, a.scene.Textures())
	// Decoded images are on the GPU now.
	a.assets.Close()

	a.input = input.New()
	a.camera = NewCamera(cfg.Camera)
	a.shots = debug.NewScreenshotCapture(cfg.Graphics.ScreenshotDir, Title)
	a.clock = NewClock(cfg.Simulation.TickRate)

	if path := config.Path(); path != "" {
		if a.watcher, err = config.Watch(path); err != nil {
			// Live tuning is optional.
			a.log.Warn("config watch disabled", zap.String("path", path), zap.Error(err))
			a.watcher = nil
		}
	}

	a.log.Info("viewer initialized")
	return a, nil
}

// NewCamera builds the orbit camera from its configuration.
func NewCamera(cfg config.CameraConfig) *camera.OrbitCamera {
	cam := camera.NewOrbitCamera()
	cam.FOV = float32(float64(cfg.FOV) * gomath.Pi / 180)
	cam.Near = cfg.Near
	cam.Far = cfg.Far
	cam.Damping = cfg.Damping
	cam.MinDistance = cfg.MinDistance
	cam.MaxDistance = cfg.MaxDistance
	cam.LookFrom(vec3(cfg.Position), vec3(cfg.Target))
	return cam
}

func vec3(a [3]float32) m.Vec3 {
	return m.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

// Run starts the main loop and returns when the window closes.
func (a *App) Run() error {
	a.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var frameBudget time.Duration
	if a.config.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(a.config.Graphics.FPSLimit)
	}

	a.log.Info("starting frame loop")

	for a.running {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime)
		lastTime = frameStart

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		a.handleInput()

		// 2. Apply live tuning published by the watcher
		a.applyTuning()

		// 3. Advance the simulation in fixed ticks
		for n := a.clock.Advance(dt); n > 0; n-- {
			a.scene.Tick()
			a.track()
			a.camera.Update()
		}

		// 4. Render
		a.render()
		if a.captureRequested {
			a.captureRequested = false
			if err := a.capture(); err != nil {
				a.log.Error("screenshot failed", zap.Error(err))
			}
		}

		// 5. Present (swap buffers)
		a.window.SwapBuffers()

		if frameBudget > 0 {
			if spent := time.Since(frameStart); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}

		// FPS counter
		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			fps := float64(frameCount) / elapsed.Seconds()
			a.log.Debug("fps",
				zap.Float64("fps", fps),
				zap.Uint64("tick", a.scene.Ticks()),
				zap.Duration("dt", dt))
			if a.config.Graphics.ShowFPS {
				a.window.SetTitle(fmt.Sprintf("%s - %.0f fps", Title, fps))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleInput() {
	for _, event := range a.input.Events() {
		if event.Type != input.EventKeyDown {
			continue
		}
		switch event.Key {
		case sdl.SCANCODE_ESCAPE:
			a.running = false
		case sdl.SCANCODE_SPACE:
			a.scene.TogglePause()
		case sdl.SCANCODE_F12:
			a.captureRequested = true
		}
	}

	if _, _, ok := a.input.Resized(); ok {
		a.renderer.Resize(a.window.DrawableSize())
	}

	if dx, dy := a.input.Drag(); dx != 0 || dy != 0 {
		a.camera.HandleDrag(dx, dy)
	}
	if wheel := a.input.Wheel(); wheel != 0 {
		a.camera.HandleZoom(wheel)
	}
	if x, y, ok := a.input.Clicked(); ok {
		a.pick(x, y)
	}
}

// pick selects the object under the cursor for the camera to follow.
// Clicking empty space releases it and leaves the camera where it is.
func (a *App) pick(x, y int) {
	width, height := a.window.GetSize()
	cam := picking.NewCamera(a.camera.Position(), a.camera.Target, a.camera.FOV,
		float32(width)/float32(max(height, 1)))
	ray := cam.ScreenToRay(float32(x), float32(y), float32(width), float32(height))

	spheres := a.scene.Spheres()
	i, _, hit := ray.Pick(spheres)
	if !hit {
		if a.follow != "" {
			a.log.Info("camera released", zap.String("target", a.follow))
		}
		a.follow = ""
		return
	}
	a.follow = spheres[i].Name
	a.log.Info("camera following", zap.String("target", a.follow))
	a.track()
}

// track moves the camera target onto the followed object.
func (a *App) track() {
	if a.follow == "" {
		return
	}
	if p, ok := a.scene.Position(a.follow); ok {
		a.camera.Target = p
	}
}

func (a *App) applyTuning() {
	if a.watcher == nil {
		return
	}
	select {
	case cfg := <-a.watcher.Updates():
		if err := a.scene.ApplyTuning(cfg); err != nil {
			a.log.Warn("ignoring config update", zap.Error(err))
		}
	default:
	}
}

func (a *App) render() {
	width, height := a.renderer.Size()
	a.draw(float32(width) / float32(max(height, 1)))
}

func (a *App) draw(aspect float32) {
	frame := a.scene.Frame()
	a.renderer.Begin(frame.Background)
	a.renderer.Draw(&frame, renderer.View{
		View:       a.camera.ViewMatrix(),
		Projection: a.camera.ProjectionMatrix(aspect),
		Camera:     a.camera.Position(),
	})
}

// capture renders the current frame offscreen at the window's pixel size
// and saves it as a PNG.
func (a *App) capture() error {
	width, height := a.renderer.Size()
	fb, err := framebuffer.New(width, height)
	if err != nil {
		return err
	}
	defer fb.Destroy()

	restore := fb.BindWithViewport()
	a.draw(fb.Aspect())
	img := fb.ReadImage()
	restore()

	_, err = a.shots.CaptureFromImage(img)
	return err
}

// Close cleans up viewer resources.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.log.Warn("closing config watcher", zap.Error(err))
		}
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
