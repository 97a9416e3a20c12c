package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-instancing/common"
	"github.com/Carmen-Shannon/oxy-instancing/config"
	"github.com/Carmen-Shannon/oxy-instancing/engine"
	"github.com/Carmen-Shannon/oxy-instancing/engine/camera"
	"github.com/Carmen-Shannon/oxy-instancing/engine/instance"
	"github.com/Carmen-Shannon/oxy-instancing/engine/loader"
	"github.com/Carmen-Shannon/oxy-instancing/engine/model"
	"github.com/Carmen-Shannon/oxy-instancing/engine/renderer"
	"github.com/Carmen-Shannon/oxy-instancing/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-instancing/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-instancing/engine/scene"
	"github.com/Carmen-Shannon/oxy-instancing/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const configEnv = "OXY_INSTANCING_CONFIG"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a .toml or .yaml config file (env "+configEnv+")")
	flag.Parse()

	cfg, err := config.Load(common.Coalesce(*configPath, os.Getenv(configEnv)))
	if err != nil {
		return err
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("run", uuid.NewString()))

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithLogger(logger.Named("window")),
	)
	if err != nil {
		return err
	}
	defer func() { _ = win.Close() }()

	r, err := newRenderer(cfg, win, logger.Named("renderer"))
	if err != nil {
		return err
	}
	defer r.Release()

	mesh, err := loadMesh(cfg.Mesh, logger.Named("loader"))
	if err != nil {
		return err
	}
	if err := r.InitMesh(scene.DefaultMeshKey, mesh); err != nil {
		return err
	}

	strategy, err := instance.ParseGridStrategy(cfg.Instances.Strategy)
	if err != nil {
		return err
	}
	store := instance.NewStore(instance.Initialize(instance.Config{
		Count:     cfg.Instances.Count,
		GridSize:  cfg.Instances.GridSize,
		Spacing:   cfg.Instances.Spacing,
		Direction: mgl32.Vec3(cfg.Instances.Direction),
		Strategy:  strategy,
	}), instance.WithSpeed(cfg.Instances.Speed))

	buf, err := r.NewInstanceBuffer(store.Len())
	if err != nil {
		return err
	}

	fc, err := scene.NewFrameContext(store, buf, newCamera(cfg.Camera, win), r,
		scene.WithLogger(logger.Named("scene")),
	)
	if err != nil {
		return err
	}

	eng := engine.NewEngine(
		engine.WithEventSource(win),
		engine.WithRenderFrameLimit(cfg.Renderer.FrameLimit),
		engine.WithProfiling(cfg.Profiling),
		engine.WithLogger(logger.Named("engine")),
	)

	logger.Info("starting",
		zap.Int("instances", store.Len()),
		zap.String("mesh", mesh.Name()),
		zap.String("shader", cfg.Renderer.Shader),
		zap.String("camera", cfg.Camera.Variant),
	)
	if err := eng.Run(fc.Frame); err != nil {
		return err
	}
	logger.Info("stopped", zap.Uint64("frames", fc.Frames()), zap.Uint64("ticks", eng.Ticks()))
	return nil
}

func newRenderer(cfg *config.Config, win window.Window, logger *zap.Logger) (renderer.Renderer, error) {
	presentMode, err := renderer.ParsePresentMode(cfg.Renderer.PresentMode)
	if err != nil {
		return nil, err
	}
	msaa, err := renderer.ParseMSAA(cfg.Renderer.MSAA)
	if err != nil {
		return nil, err
	}
	prog, err := shader.NewProgram(strings.ToLower(cfg.Renderer.Shader))
	if err != nil {
		return nil, err
	}

	c := cfg.Renderer.ClearColor
	return renderer.NewRenderer(win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(msaa),
		renderer.WithClearColor(c[0], c[1], c[2], c[3]),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
		renderer.WithPipeline(pipeline.NewPipeline(scene.DefaultPipelineKey, pipeline.WithProgram(prog))),
		renderer.WithLogger(logger),
	)
}

func loadMesh(cfg config.MeshConfig, logger *zap.Logger) (*model.Mesh, error) {
	meshOptions := []model.MeshBuilderOption{model.WithScale(cfg.Scale)}
	if cfg.Recenter {
		meshOptions = append(meshOptions, model.WithRecenter())
	}
	l := loader.NewLoader(loader.BackendTypeWavefront,
		loader.WithMeshOptions(meshOptions...),
		loader.WithLogger(logger),
	)

	if cfg.Path == "" {
		return l.LoadBytes("cube.obj", loader.CubeOBJ)
	}
	return l.Load(cfg.Path)
}

func newCamera(cfg config.CameraConfig, win window.Window) camera.Camera {
	options := []camera.CameraBuilderOption{
		camera.WithFov(mgl32.DegToRad(cfg.FovDegrees)),
		camera.WithAspect(float32(win.Width()) / float32(win.Height())),
		camera.WithNear(cfg.Near),
		camera.WithFar(cfg.Far),
		camera.WithPosition(mgl32.Vec3(cfg.Position)),
		camera.WithDirection(mgl32.Vec3(cfg.Direction)),
		camera.WithMoveSpeed(cfg.MoveSpeed),
		camera.WithSensitivity(cfg.Sensitivity),
	}
	if strings.EqualFold(cfg.Variant, "fixed") {
		return camera.NewFixedCamera(options...)
	}
	return camera.NewFlyingCamera(options...)
}
