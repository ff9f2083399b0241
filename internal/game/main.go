package game

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/sync/errgroup"

	"racer/internal/config"
	"racer/internal/log"
	"racer/internal/physics"
	"racer/internal/track"
)

var (
	ErrPanic          = errors.New("frame loop panic")
	ErrSurfaceTooWide = errors.New("track surface exceeds texture limits")
)

// Run opens the window and drives the game until it is closed or Escape
// is pressed. It must be called from the main goroutine.
func Run(cfg *config.Config, logger log.Log) (err error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	// Track rasterisation and sound synthesis are independent.
	var (
		m    *track.Map
		bank *SoundBank
	)
	var g errgroup.Group
	g.Go(func() error {
		var fsys fs.FS = track.Builtin()
		if cfg.Track.Dir != "" {
			fsys = os.DirFS(cfg.Track.Dir)
		}
		var err error
		m, err = track.Load(fsys, cfg.Track.Name)
		return err
	})
	if cfg.Audio.Enabled {
		g.Go(func() error {
			var err error
			bank, err = SynthesizeBank(cfg.Audio.SampleRate)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("prepare assets: %w", err)
	}
	logger.Info("track loaded",
		log.String("track", m.Name),
		log.Int("width", m.Width),
		log.Int("height", m.Height),
		log.Int("objects", len(m.Objects)),
	)

	window, err := initWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic in frame loop", log.Any("panic", r))
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	logger.Debug("gl context", log.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	var maxTex int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxTex)
	if maxTex < SurfaceChunkSize {
		return fmt.Errorf("%w: GL_MAX_TEXTURE_SIZE %d", ErrSurfaceTooWide, maxTex)
	}

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()
	rend.UploadSurface(m.Surface)
	rend.InitCarTexture()

	audio, err := NewAudio(cfg.Audio, bank, logger)
	if err != nil {
		logger.Warn("audio init failed, continuing without sound", log.Error(err))
		audio = nil
	}
	defer audio.Close()

	scene, vehicle, err := BuildScene(m, cfg.Vehicle.Params(), physics.WithMaxParticles(cfg.Render.MaxParticles))
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}
	defer scene.Shutdown()
	index := StaticIndex(scene, m.Bounds())

	session := NewGameSession(m.Name, cfg.Render.ShowBounds, cfg.Render.Debug)
	baseLevel := logger.GetLevel()
	logger.SetLevel(debugLogLevel(session.Debug, baseLevel))
	cam := NewCamera(cfg.Window.Width, cfg.Window.Height, m.Bounds())
	cam.Update(vehicle.Bounds())

	bus := NewEventBus()
	scene.OnContact(RouteContacts(scene, bus, session))
	bus.Subscribe(EventContact, func(e Event) {
		logger.Debug("contact", log.String("a", e.A.String()), log.String("b", e.B.String()), log.Uint64("frame", e.Frame))
	})
	bus.Subscribe(EventImpact, func(e Event) {
		logger.Info("impact", log.Float64("speed", e.Strength), log.Int("count", session.Impacts))
		audio.Play(SoundImpact, clampF(e.Strength/vehicle.Params().EnginePower, 0.2, 1))
		cam.AddShake(min(e.Strength*ShakePerSpeed, ShakeMax), ShakeDuration)
	})
	pauseHandler := func(e Event) {
		logger.Info("pause", log.String("state", session.State.String()))
		audio.Mute(e.Type == EventPaused)
		audio.Play(SoundPause, 0.6)
	}
	bus.Subscribe(EventPaused, pauseHandler)
	bus.Subscribe(EventResumed, pauseHandler)

	input := NewInput()
	var (
		visible   []*physics.Entity
		lines     LineBatch
		title     string
		titleWait float64
	)
	frameBudget := time.Second / time.Duration(max(cfg.Window.FPS, 1))
	audio.Play(SoundStart, 0.8)

	last := glfw.GetTime()
	for !window.ShouldClose() {
		frameStart := time.Now()
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > MaxFrameDt {
			dt = MaxFrameDt
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}
		if input.JustPressed(window, glfw.KeyP) {
			ev := EventResumed
			if session.TogglePause() == StatePaused {
				ev = EventPaused
			}
			bus.Emit(Event{Type: ev, Frame: scene.FrameCount()})
		}
		if input.JustPressed(window, glfw.KeyF1) {
			session.Debug = !session.Debug
			logger.SetLevel(debugLogLevel(session.Debug, baseLevel))
		}
		if input.JustPressed(window, glfw.KeyB) {
			session.Bounds = !session.Bounds
		}

		if session.Running() {
			if err := scene.Frame(dt, input.Controls(window)); err != nil {
				return fmt.Errorf("frame %d: %w", scene.FrameCount(), err)
			}
		}
		session.Update(dt)
		winW, winH := window.GetSize()
		if winW > 0 && winH > 0 {
			cam.Resize(winW, winH)
		}
		cam.Update(vehicle.Bounds())
		cam.UpdateShake(dt, scene.FrameCount())
		if session.Running() {
			audio.SetEngine(vehicle.Speed())
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW > 0 && fbH > 0 && winW > 0 {
			view := cam.View()
			rend.BeginFrame(cam, fbW, fbH)
			rend.DrawSurface(view)
			rend.DrawParticles(scene.Particles(), view, cfg.Render.ParticleOpacity, float32(fbW)/float32(winW))
			rend.DrawVehicle(vehicle)
			visible = Visible(scene, index, view, visible)
			SceneOverlay(&lines, visible, session.Bounds, session.Debug)
			rend.DrawLines(&lines)
			window.SwapBuffers()
		}
		scene.ClearOverlap()

		titleWait -= dt
		if titleWait <= 0 {
			titleWait = TitleInterval
			if t := session.Title(cfg.Window.Title, vehicle.Bounds().Center()); t != title {
				title = t
				window.SetTitle(title)
			}
		}

		if !cfg.Window.VSync {
			if rest := frameBudget - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	logger.Info("session ended",
		log.Duration("elapsed", time.Duration(session.Elapsed*float64(time.Second))),
		log.Int("impacts", session.Impacts),
		log.Uint64("frames", scene.FrameCount()),
	)
	return nil
}
