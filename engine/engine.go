package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spaghettifunk/anima-obj/engine/assets"
	"github.com/spaghettifunk/anima-obj/engine/core"
	"github.com/spaghettifunk/anima-obj/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released every subsystem
	EngineStageShutdown
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageInitializing:
		return "initializing"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting down"
	default:
		return "shut down"
	}
}

// Engine owns the subsystems of the asset pipeline: the job system and the asset manager.
type Engine struct {
	config       *core.Config
	currentStage Stage
	jobSystem    *systems.JobSystem
	assetManager *assets.AssetManager
	clock        *core.Clock

	mu   sync.Mutex
	quit chan struct{}
}

func New(cfg *core.Config, options ...assets.AssetManagerOption) (*Engine, error) {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ApplyLogLevel()

	js, err := systems.NewJobSystem(cfg.Loader.Workers, 64)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	am, err := assets.NewAssetManager(cfg, append([]assets.AssetManagerOption{assets.WithJobSystem(js)}, options...)...)
	if err != nil {
		core.LogError(err.Error())
		_ = js.Shutdown()
		return nil, err
	}

	return &Engine{
		config:       cfg,
		currentStage: EngineStageUninitialized,
		jobSystem:    js,
		assetManager: am,
		clock:        core.NewClock(),
		quit:         make(chan struct{}),
	}, nil
}

func (e *Engine) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("engine cannot be initialized while %s", e.currentStage)
	}
	e.currentStage = EngineStageInitializing

	if err := core.MetricsInitialize(); err != nil {
		return err
	}
	if err := e.assetManager.Initialize(); err != nil {
		core.LogError("failed to initialize the asset manager: %s", err.Error())
		return err
	}

	e.currentStage = EngineStageInitialized
	core.LogInfo("engine initialized (assets: '%s', watch: %t, workers: %d)",
		e.config.Assets.BasePath, e.config.Assets.Watch, e.config.Loader.Workers)
	return nil
}

func (e *Engine) AssetManager() *assets.AssetManager {
	return e.assetManager
}

func (e *Engine) Stage() Stage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentStage
}

// Run blocks until ctx is done or Shutdown is called.
func (e *Engine) Run(ctx context.Context) error {
	e.mu.Lock()
	if e.currentStage != EngineStageInitialized {
		stage := e.currentStage
		e.mu.Unlock()
		return fmt.Errorf("engine cannot run while %s", stage)
	}
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.mu.Unlock()

	select {
	case <-ctx.Done():
	case <-e.quit:
	}

	e.clock.Update()
	core.LogInfo("engine ran for %s", e.clock.Elapsed().Round(time.Millisecond))
	return e.Shutdown()
}

func (e *Engine) Shutdown() error {
	e.mu.Lock()
	if e.currentStage == EngineStageShuttingDown || e.currentStage == EngineStageShutdown {
		e.mu.Unlock()
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	close(e.quit)
	e.mu.Unlock()

	if err := e.assetManager.Shutdown(); err != nil {
		core.LogError("failed to shut down the asset manager: %s", err.Error())
	}
	err := e.jobSystem.Shutdown()

	e.mu.Lock()
	e.currentStage = EngineStageShutdown
	e.mu.Unlock()
	return err
}
