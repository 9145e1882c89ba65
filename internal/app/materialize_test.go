package app

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"rollcall/internal/api"
)

func TestStages(t *testing.T) {
	tests := []struct {
		name  string
		defs  []*api.ServiceDefinition
		order []string
		want  [][]string
	}{
		{
			name:  "no dependencies",
			defs:  []*api.ServiceDefinition{{Name: "a"}, {Name: "b"}},
			order: []string{"a", "b"},
			want:  [][]string{{"a", "b"}},
		},
		{
			name: "chain",
			defs: []*api.ServiceDefinition{
				{Name: "a"},
				{Name: "b", Dependencies: []string{"a"}},
				{Name: "c", Dependencies: []string{"b"}},
			},
			order: []string{"a", "b", "c"},
			want:  [][]string{{"a"}, {"b"}, {"c"}},
		},
		{
			name: "diamond",
			defs: []*api.ServiceDefinition{
				{Name: "base"},
				{Name: "left", Dependencies: []string{"base"}},
				{Name: "right", Dependencies: []string{"base"}},
				{Name: "top", Dependencies: []string{"left", "right"}},
			},
			order: []string{"base", "left", "right", "top"},
			want:  [][]string{{"base"}, {"left", "right"}, {"top"}},
		},
		{
			name: "uneven depths",
			defs: []*api.ServiceDefinition{
				{Name: "config"},
				{Name: "db", Dependencies: []string{"config"}},
				{Name: "standalone"},
				{Name: "web", Dependencies: []string{"db", "standalone"}},
			},
			order: []string{"config", "db", "standalone", "web"},
			want:  [][]string{{"config", "standalone"}, {"db"}, {"web"}},
		},
		{
			name: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Stages(tt.order, tt.defs)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Stages() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStagesEveryDependencyInEarlierStage(t *testing.T) {
	defs := []*api.ServiceDefinition{
		{Name: "a"},
		{Name: "b", Dependencies: []string{"a"}},
		{Name: "c", Dependencies: []string{"a"}},
		{Name: "d", Dependencies: []string{"b", "c"}},
		{Name: "e", Dependencies: []string{"d", "a"}},
	}
	order := []string{"a", "b", "c", "d", "e"}

	stages := Stages(order, defs)

	stageOf := map[string]int{}
	for i, stage := range stages {
		for _, name := range stage {
			stageOf[name] = i
		}
	}
	if len(stageOf) != len(order) {
		t.Fatalf("stages dropped services: %v", stages)
	}
	for _, def := range defs {
		for _, dep := range def.Dependencies {
			if stageOf[dep] >= stageOf[def.Name] {
				t.Errorf("dependency %s of %s is not in an earlier stage", dep, def.Name)
			}
		}
	}
}

func TestMaterializeStagesStopsAfterFailedStage(t *testing.T) {
	boom := errors.New("connect refused")
	a := newTestApplication(t,
		&api.ServiceDefinition{Name: "database"},
		&api.ServiceDefinition{Name: "web", Dependencies: []string{"database"}},
	)

	err := a.Factories().Bind("database", func(ctx context.Context, deps map[string]any, cfg map[string]any) (any, error) {
		return nil, boom
	})
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	webCalls := &atomic.Int32{}
	if err := a.Factories().Bind("web", countingFactory("web", webCalls)); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	err = a.Run(context.Background())
	if err == nil {
		t.Fatal("expected Run to fail")
	}
	if !strings.Contains(err.Error(), "materialize database") {
		t.Errorf("error should name the failing service, got: %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("error should wrap the factory cause, got: %v", err)
	}
	if webCalls.Load() != 0 {
		t.Error("later stages must not run after a failure")
	}
	if _, ok := a.Instance("database"); ok {
		t.Error("a failed run must not record instances")
	}
}

func TestMaterializeStagesConstructsStageMembersConcurrently(t *testing.T) {
	a := newTestApplication(t,
		&api.ServiceDefinition{Name: "left"},
		&api.ServiceDefinition{Name: "right"},
	)

	// Both factories rendezvous before returning, which only works if the
	// stage really runs them concurrently.
	var barrier sync.WaitGroup
	barrier.Add(2)
	meet := func(ctx context.Context, deps map[string]any, cfg map[string]any) (any, error) {
		barrier.Done()
		done := make(chan struct{})
		go func() {
			barrier.Wait()
			close(done)
		}()
		select {
		case <-done:
			return "ok", nil
		case <-time.After(5 * time.Second):
			return nil, errors.New("stage members did not run concurrently")
		}
	}

	if err := a.Factories().Bind("left", meet); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if err := a.Factories().Bind("right", meet); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}
