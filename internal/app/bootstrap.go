package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"

	"rollcall/internal/api"
	"rollcall/internal/container"
	"rollcall/internal/manifest"
	"rollcall/internal/resolver"
	"rollcall/pkg/logging"
)

const subsystem = "bootstrap"

// Application wires the resolver, the container and the factory registry
// into one runnable unit.
//
// The Application follows a two-phase initialization pattern:
//  1. Bootstrap phase: initialize logging, load the manifest, wire components
//  2. Execution phase: validate, order and materialize the services
//
// Example usage:
//
//	cfg := app.NewConfig(false, false, "services.yaml")
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	return application.Run(ctx)
type Application struct {
	config    *Config
	resolver  *resolver.Resolver
	container *container.Container
	factories *FactoryRegistry

	mu        sync.RWMutex
	instances map[string]any
}

// NewApplication creates and initializes a new application instance with the
// provided configuration. This function performs the complete bootstrap
// sequence:
//
//  1. Configures logging based on debug and silent settings
//  2. Loads the service manifest (file, directory, or injected in-memory)
//  3. Wires the resolver, container, factory registry and optional metrics
//
// Manifest Loading Behavior:
//   - If cfg.Manifest is set: no loading happens, the manifest is used as-is
//   - If cfg.ManifestPath is set: loads from that file or directory; a
//     missing path is an error
//   - Otherwise: starts from the empty default manifest
//
// No service is constructed here; construction is deferred to Run so that a
// failed bootstrap never leaves half-built instances behind.
func NewApplication(cfg *Config) (*Application, error) {
	// Configure logging based on debug flag
	appLogLevel := logging.LevelInfo
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.Silent {
		// If silent mode is enabled, suppress all output
		logOutput = io.Discard
	}
	logging.InitForCLI(appLogLevel, logOutput)

	if cfg.Manifest == nil {
		man, err := loadManifest(cfg.ManifestPath)
		if err != nil {
			logging.Error(subsystem, err, "Failed to load service manifest")
			return nil, fmt.Errorf("failed to load service manifest: %w", err)
		}
		cfg.Manifest = man
		logging.Info(subsystem, "Loaded %d service definitions", len(man.Services))
	}

	a := &Application{
		config:    cfg,
		resolver:  resolver.New(),
		container: container.New(),
		factories: NewFactoryRegistry(),
	}
	a.container.SetMetrics(cfg.Metrics)
	return a, nil
}

// loadManifest resolves the manifest for the configured path. An empty path
// yields the empty default manifest; definitions then come from the
// embedding program.
func loadManifest(path string) (*manifest.Manifest, error) {
	if path == "" {
		return manifest.Default(), nil
	}
	return manifest.LoadPath(path)
}

// Factories returns the registry the embedding program binds constructors
// into before calling Run.
func (a *Application) Factories() *FactoryRegistry {
	return a.factories
}

// Container returns the service container. It is empty until Run has
// registered the manifest's definitions.
func (a *Application) Container() *container.Container {
	return a.container
}

// Run executes one resolution pass end to end: validate the definitions,
// compute the dependency order, register everything with its bound factory,
// then materialize the services stage by stage.
//
// Run is one-shot. A second call fails at registration because the
// container already holds the definitions; build a fresh Application to
// re-run.
func (a *Application) Run(ctx context.Context) error {
	runID := uuid.New().String()
	defs := a.config.Manifest.Services

	logging.Info(subsystem, "Run %s: resolving %d service definitions", runID, len(defs))

	result := a.resolver.ResolveOrder(defs)
	a.config.Metrics.RecordValidation(result.Success)
	if !result.Success {
		logging.Error(subsystem, nil, "Run %s: validation failed with %d error(s)", runID, len(result.Errors))
		return fmt.Errorf("validation failed: %w", errors.Join(result.Errors...))
	}

	// Missing bindings must surface before any construction starts, not
	// halfway through a materialization.
	if err := a.checkBindings(defs); err != nil {
		logging.Error(subsystem, err, "Run %s: factory bindings incomplete", runID)
		return err
	}

	if err := a.register(defs); err != nil {
		return err
	}

	stages := Stages(result.OrderedServices, defs)
	logging.Debug(subsystem, "Run %s: materializing %d services in %d stages", runID, len(result.OrderedServices), len(stages))

	instances, err := a.MaterializeStages(ctx, stages)
	if err != nil {
		logging.Error(subsystem, err, "Run %s: materialization failed", runID)
		return err
	}

	a.mu.Lock()
	a.instances = instances
	a.mu.Unlock()

	logging.Info(subsystem, "Run %s: materialized %d services (max dependency depth %d)",
		runID, len(instances), result.Statistics.MaxDependencyDepth)
	return nil
}

// checkBindings verifies every definition has a factory.
func (a *Application) checkBindings(defs []*api.ServiceDefinition) error {
	var missing []string
	for _, def := range defs {
		if _, ok := a.factories.Get(def.Name); !ok {
			missing = append(missing, def.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("no factory bound for: %s", strings.Join(missing, ", "))
	}
	return nil
}

// register fills the container with the definitions, each carrying the
// factory bound for its name. The definitions are copied so the loaded
// manifest stays factory-free.
func (a *Application) register(defs []*api.ServiceDefinition) error {
	for _, def := range defs {
		factory, _ := a.factories.Get(def.Name)
		bound := *def
		bound.Factory = factory
		if err := a.container.Register(&bound); err != nil {
			return fmt.Errorf("register %s: %w", def.Name, err)
		}
	}
	return nil
}

// Instance returns a service materialized by the last Run.
func (a *Application) Instance(name string) (any, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	instance, ok := a.instances[name]
	return instance, ok
}
