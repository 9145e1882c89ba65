package app

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"rollcall/internal/api"
	"rollcall/pkg/logging"
)

// Stages partitions a topological order into dependency stages. A service
// lands one stage after the deepest of its dependencies, so members of a
// stage never depend on each other and every dependency lives in an earlier
// stage.
func Stages(order []string, definitions []*api.ServiceDefinition) [][]string {
	byName := make(map[string]*api.ServiceDefinition, len(definitions))
	for _, def := range definitions {
		if def != nil {
			byName[def.Name] = def
		}
	}

	// order is topological, so by the time a name is leveled all of its
	// dependencies already are.
	levels := make(map[string]int, len(order))
	var stages [][]string
	for _, name := range order {
		lvl := 0
		if def, ok := byName[name]; ok {
			for _, dep := range def.Dependencies {
				if depLvl, ok := levels[dep]; ok && depLvl+1 > lvl {
					lvl = depLvl + 1
				}
			}
		}
		levels[name] = lvl
		if lvl == len(stages) {
			stages = append(stages, nil)
		}
		stages[lvl] = append(stages[lvl], name)
	}
	return stages
}

// MaterializeStages resolves every service stage by stage. Within a stage
// the members are resolved concurrently; a stage must complete before the
// next one starts. On failure the remaining stages are skipped and the
// error names the service that failed.
func (a *Application) MaterializeStages(ctx context.Context, stages [][]string) (map[string]any, error) {
	instances := make(map[string]any)
	var mu sync.Mutex

	for i, stage := range stages {
		logging.Debug(subsystem, "Materializing stage %d (%d services)", i, len(stage))

		g, stageCtx := errgroup.WithContext(ctx)
		for _, name := range stage {
			name := name // per-iteration copy; required under go <= 1.21 loop semantics
			g.Go(func() error {
				instance, err := a.container.Resolve(stageCtx, name)
				if err != nil {
					return fmt.Errorf("materialize %s: %w", name, err)
				}
				mu.Lock()
				instances[name] = instance
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}
	return instances, nil
}
