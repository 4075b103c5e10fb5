package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/aykamko/minecrust/internal/block"
	"github.com/aykamko/minecrust/internal/config"
	"github.com/aykamko/minecrust/internal/input"
	"github.com/aykamko/minecrust/internal/player"
	"github.com/aykamko/minecrust/internal/render"
	"github.com/aykamko/minecrust/internal/stream"
	"github.com/aykamko/minecrust/internal/terrain"
	"github.com/aykamko/minecrust/internal/world"
)

func init() {
	// GLFW event handling and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := run(cfg); err != nil {
		log.Fatalf("minecrust: %v", err)
	}
}

func run(cfg *config.Config) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return fmt.Errorf("init gl: %w", err)
	}

	renderer, err := render.NewGL("assets/atlas.png")
	if err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}
	overlay, err := render.NewOverlay("assets/font.ttf")
	if err != nil {
		log.Printf("overlay disabled: %v", err)
		overlay = nil
	}

	w := world.New()
	gen := terrain.New(cfg.World.Seed)
	manager := stream.NewManager(w, gen, renderer, stream.Options{
		LoadRadius:    cfg.Stream.LoadRadius,
		EvictRadius:   cfg.Stream.EvictRadius,
		ColumnMinY:    cfg.Stream.ColumnMinY,
		ColumnMaxY:    cfg.Stream.ColumnMaxY,
		GenBudget:     cfg.Stream.GenBudget,
		MeshBudget:    cfg.Stream.MeshBudget,
		Workers:       cfg.Stream.Workers,
		MaxPending:    cfg.Stream.MaxPending,
		JobsPerUpdate: cfg.Stream.JobsPerUpdate,
	})
	defer manager.Close()

	spawn := mgl32.Vec3{0.5, float32(gen.HeightAt(0, 0)) + 2, 0.5}
	ctrl := player.NewController(w, manager, player.Params{
		MoveAccel:       cfg.Player.MoveAccel,
		SprintMul:       cfg.Player.SprintMul,
		Gravity:         cfg.Physics.Gravity,
		JumpImpulse:     cfg.Player.JumpImpulse,
		GroundDamping:   cfg.Physics.GroundDamping,
		AirDamping:      cfg.Physics.AirDamping,
		Reach:           cfg.Player.Reach,
		LookSensitivity: cfg.Player.LookSensitivity,
		Width:           cfg.Player.Width,
		Height:          cfg.Player.Height,
		EyeHeight:       cfg.Player.EyeHeight,
	}, spawn)

	activeName := ""
	ctrl.OnActiveBlockChanged(func(t block.Type) {
		activeName = t.String()
	})

	handler := input.NewHandler(window, ctrl)

	tickDur := time.Second / time.Duration(cfg.Physics.TickRate)
	aspect := float32(cfg.Window.Width) / float32(cfg.Window.Height)
	projection := mgl32.Perspective(mgl32.DegToRad(cfg.Window.FOV), aspect, 0.1, 500)

	gl.ClearColor(0.47, 0.65, 1.0, 1.0)
	gl.Enable(gl.DEPTH_TEST)

	prevEye := ctrl.Eye()
	var accumulator time.Duration
	last := time.Now()
	frames := 0
	fps := 0
	fpsStart := time.Now()

	for !window.ShouldClose() {
		now := time.Now()
		frame := now.Sub(last)
		last = now
		if frame > 250*time.Millisecond {
			frame = 250 * time.Millisecond
		}
		accumulator += frame

		glfw.PollEvents()

		for accumulator >= tickDur {
			prevEye = ctrl.Eye()
			ctrl.Tick(handler.Intent())
			accumulator -= tickDur
		}

		alpha := float32(accumulator) / float32(tickDur)
		eye := prevEye.Add(ctrl.Eye().Sub(prevEye).Mul(alpha))
		view := mgl32.LookAtV(eye, eye.Add(ctrl.Front()), mgl32.Vec3{0, 1, 0})

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		renderer.Draw(view, projection)

		frames++
		if time.Since(fpsStart) >= time.Second {
			fps = frames
			frames = 0
			fpsStart = time.Now()
		}
		if overlay != nil {
			p := ctrl.Body.Position
			overlay.SetLines(
				fmt.Sprintf("pos %.1f %.1f %.1f", p.X(), p.Y(), p.Z()),
				fmt.Sprintf("chunks %d meshes %d pending %d", w.ChunkCount(), renderer.MeshCount(), manager.PendingCount()),
				fmt.Sprintf("block %s fps %d", activeName, fps),
			)
			overlay.Draw()
		}

		window.SwapBuffers()
	}
	return nil
}
