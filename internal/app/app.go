// Package app implements the application layer for rockpile.
package app

import (
	"context"

	"github.com/ronmichel/rockpile/internal/adapters/cmake"
	"github.com/ronmichel/rockpile/internal/adapters/fs"
	"github.com/ronmichel/rockpile/internal/core/domain"
	"github.com/ronmichel/rockpile/internal/core/ports"
	"github.com/ronmichel/rockpile/internal/engine/planner"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	log          ports.Logger
	tracer       ports.Tracer
	emitter      *cmake.Emitter
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, log ports.Logger, tracer ports.Tracer, emitter *cmake.Emitter) *App {
	return &App{
		configLoader: loader,
		log:          log,
		tracer:       tracer,
		emitter:      emitter,
	}
}

// StageReport describes one build stage's artifact flow.
type StageReport struct {
	Name       string
	Inbound    []string
	Produced   []string
	Submodules []string
}

// Load reads and parses the topology document without validating it.
func (a *App) Load(path string) (*domain.Topology, error) {
	topo, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load topology document")
	}
	return topo, nil
}

// Validate loads the topology document and returns every validation issue
// found. An empty slice means the document is valid.
func (a *App) Validate(path string) ([]string, error) {
	topo, err := a.Load(path)
	if err != nil {
		return nil, err
	}
	return topo.Validate(), nil
}

// loadValid loads the topology and requires it to pass validation.
func (a *App) loadValid(path string) (*domain.Topology, error) {
	topo, err := a.Load(path)
	if err != nil {
		return nil, err
	}
	if issues := topo.Validate(); len(issues) > 0 {
		for _, issue := range issues {
			a.log.Warn(issue)
		}
		return nil, zerr.With(domain.ErrInvalidTopology, "issues", len(issues))
	}
	return topo, nil
}

// BuildOrder returns the stages of a valid topology in dependency order.
func (a *App) BuildOrder(path string) ([]string, error) {
	topo, err := a.loadValid(path)
	if err != nil {
		return nil, err
	}
	return topo.BuildOrder(), nil
}

// Waves returns the stages of a valid topology grouped into parallel waves.
func (a *App) Waves(path string) ([]planner.Wave, error) {
	topo, err := a.loadValid(path)
	if err != nil {
		return nil, err
	}
	return planner.Plan(topo), nil
}

// Graph returns the full dependency graph of a valid topology for export.
func (a *App) Graph(path string) (*domain.DependencyGraph, error) {
	topo, err := a.loadValid(path)
	if err != nil {
		return nil, err
	}
	return topo.DependencyGraph(), nil
}

// Stage reports one stage's inbound artifacts, produced artifacts, and
// checked-out submodules.
func (a *App) Stage(path, name string) (*StageReport, error) {
	topo, err := a.loadValid(path)
	if err != nil {
		return nil, err
	}

	inbound, err := topo.InboundArtifacts(name)
	if err != nil {
		return nil, err
	}
	produced, err := topo.ProducedArtifacts(name)
	if err != nil {
		return nil, err
	}
	submodules, err := topo.SubmodulesForStage(name)
	if err != nil {
		return nil, err
	}

	subNames := make([]string, len(submodules))
	for i, sub := range submodules {
		subNames[i] = sub.Name.String()
	}

	return &StageReport{
		Name:       name,
		Inbound:    inbound.Names(),
		Produced:   produced.Names(),
		Submodules: subNames,
	}, nil
}

// Generate validates the topology and writes the generated build-system
// include to outPath. When stageDepsDir is non-empty, it additionally writes
// one dependency manifest per stage, emitted concurrently.
func (a *App) Generate(ctx context.Context, path, outPath, stageDepsDir string) error {
	topo, err := a.loadValid(path)
	if err != nil {
		return err
	}

	digest, err := fs.FileDigest(path)
	if err != nil {
		return err
	}

	if err := a.emitter.GenerateFile(outPath, topo, digest); err != nil {
		return err
	}

	if stageDepsDir == "" {
		return nil
	}
	return a.emitStageManifests(ctx, topo, stageDepsDir)
}

func (a *App) emitStageManifests(ctx context.Context, topo *domain.Topology, dir string) error {
	order := topo.BuildOrder()
	a.tracer.EmitPlan(ctx, order)

	eg, ctx := errgroup.WithContext(ctx)
	for _, stage := range order {
		eg.Go(func() error {
			_, span := a.tracer.Start(ctx, "manifest "+stage)
			inbound, err := topo.InboundArtifacts(stage)
			if err != nil {
				span.RecordError(err)
				return err
			}
			if err := a.emitter.WriteStageManifest(dir, stage, inbound); err != nil {
				span.RecordError(err)
				return err
			}
			span.End()
			return nil
		})
	}
	return eg.Wait()
}
