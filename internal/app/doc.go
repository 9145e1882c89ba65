// Package app provides application bootstrap, lifecycle management, and configuration for rollcall.
//
// This package wires the manifest loader, the order resolver, the service container
// and the factory registry into a single runnable unit. It handles initialization,
// manifest loading, factory binding, and the staged construction of services.
//
// # Architecture Overview
//
// The app package serves as the application's bootstrap layer, with four core components:
//
// 1. **Bootstrap (`bootstrap.go`)**: Application initialization and the Run lifecycle
// 2. **Configuration (`config.go`)**: Application runtime configuration structure
// 3. **Factories (`factories.go`)**: Binding of service names to their constructors
// 4. **Materialization (`materialize.go`)**: Stage partitioning and concurrent construction
//
// # Core Components
//
// ## Bootstrap (bootstrap.go)
//
// The bootstrap component handles the complete application initialization sequence:
//
//   - **Logging Configuration**: Log level selection from the debug flag, full
//     suppression in silent mode
//   - **Manifest Loading**: Single file, merged directory, or an injected
//     in-memory manifest
//   - **Component Wiring**: Resolver, container, factory registry and optional
//     metrics are created and connected
//
// ### Manifest Loading Strategies
//
// **Explicit Path**:
//   - Loads from the configured file or directory
//   - A missing path is an error, never silently ignored
//
// **Injected Manifest**:
//   - A pre-populated Config.Manifest skips loading entirely
//   - Used by embedding programs and tests that build definitions in memory
//
// ## Run Lifecycle
//
// Run executes one resolution pass over the loaded manifest:
//
//  1. Validate the definition set and compute the dependency order
//  2. Check that every definition has a bound factory
//  3. Register the definitions, each carrying its factory
//  4. Materialize the services stage by stage
//
// A stage contains services whose dependencies all live in earlier stages, so
// its members are constructed concurrently; singleton deduplication in the
// container makes that safe. Every log line of a pass carries a generated run
// id, which correlates concurrent passes in shared logs.
//
// ## Factory Binding (factories.go)
//
// Manifests carry no code. The embedding program binds a constructor per
// service name into the FactoryRegistry before calling Run; a fallback
// factory can stand in for every unbound name. Missing bindings fail the run
// before any construction starts.
//
// # Usage
//
//	cfg := app.NewConfig(false, false, "services.yaml")
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//		return err
//	}
//	if err := application.Factories().Bind("database", newDatabase); err != nil {
//		return err
//	}
//	if err := application.Run(ctx); err != nil {
//		return err
//	}
//	db, _ := application.Instance("database")
package app
