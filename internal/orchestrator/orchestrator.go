// Package orchestrator runs the full generation pipeline: analyze a prompt,
// build a plan, render every planned file, refine the content, and write the
// project to disk.
package orchestrator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bowerbird-suite/bowerbird/internal/generators"
	"github.com/bowerbird-suite/bowerbird/internal/generators/backend"
	"github.com/bowerbird-suite/bowerbird/internal/generators/database"
	"github.com/bowerbird-suite/bowerbird/internal/generators/frontend"
	"github.com/bowerbird-suite/bowerbird/internal/generators/integration"
	"github.com/bowerbird-suite/bowerbird/internal/planner"
	"github.com/bowerbird-suite/bowerbird/internal/project"
	"github.com/bowerbird-suite/bowerbird/internal/refiner"
	"github.com/bowerbird-suite/bowerbird/internal/task"
)

// Options configures an orchestrator.
type Options struct {
	Store  *project.Store
	Tasks  *task.Store
	Logger *zap.Logger
	Force  bool
}

// Orchestrator coordinates one generation run end to end. Safe for
// concurrent use: all mutable state lives in the stores.
type Orchestrator struct {
	analyzer *planner.Analyzer
	builder  *planner.Builder
	registry map[string]generators.Generator
	refiner  *refiner.Refiner
	store    *project.Store
	tasks    *task.Store
	log      *zap.Logger
	force    bool
}

// New creates an orchestrator with the full generator registry.
func New(opts Options) *Orchestrator {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Orchestrator{
		analyzer: planner.NewAnalyzer(),
		builder:  planner.NewBuilder(),
		registry: map[string]generators.Generator{
			planner.GenFrontend:    frontend.NewGenerator(),
			planner.GenBackend:     backend.NewGenerator(),
			planner.GenDatabase:    database.NewGenerator(),
			planner.GenIntegration: integration.NewGenerator(),
			planner.GenRefiner:     refiner.NewGenerator(),
		},
		refiner: refiner.NewRefiner(),
		store:   opts.Store,
		tasks:   opts.Tasks,
		log:     log,
		force:   opts.Force,
	}
}

// Request describes one generation run. ProjectName overrides the name the
// analyzer extracts; Zip archives the project after writing.
type Request struct {
	Prompt      string
	ProjectName string
	Zip         bool
}

// Result summarizes a completed generation run.
type Result struct {
	Plan        *planner.Plan
	ProjectName string
	ProjectPath string
	ArchivePath string
	Files       int
	Warnings    []string
}

// Plan analyzes a prompt and builds its generation plan without touching
// disk.
func (o *Orchestrator) Plan(prompt string) (*planner.Plan, planner.Analysis) {
	analysis := o.analyzer.Analyze(prompt)
	return o.builder.Build(analysis), analysis
}

// Generate runs the whole pipeline for a request and writes the project
// under the store root. Per-file generation failures become warnings; only
// the disk batch can fail the run.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Result, error) {
	plan, analysis := o.Plan(req.Prompt)
	if req.ProjectName != "" {
		plan.ProjectName = req.ProjectName
	}
	genCtx := generators.NewContext(plan, analysis)

	o.log.Info("plan built",
		zap.String("project", plan.ProjectName),
		zap.Int("files", len(plan.Files)),
		zap.Int("complexity", plan.EstimatedComplexity))

	var (
		files    []project.File
		warnings []string
	)
	for _, spec := range plan.SortedFiles() {
		gen, ok := o.registry[spec.Agent]
		if !ok {
			o.log.Warn("no generator for agent, skipping file",
				zap.String("agent", spec.Agent),
				zap.String("path", spec.Path))
			warnings = append(warnings, fmt.Sprintf("%s: unknown agent %q", spec.Path, spec.Agent))
			continue
		}

		content, err := gen.Generate(spec, genCtx)
		if err != nil {
			o.log.Warn("file generation failed",
				zap.String("path", spec.Path),
				zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("%s: %v", spec.Path, err))
			continue
		}

		files = append(files, project.File{
			Path:    spec.Path,
			Content: o.refiner.Refine(spec.Path, content),
		})
	}

	dir, writeWarnings, err := o.store.Write(ctx, plan.ProjectName, files, o.force)
	if err != nil {
		return nil, fmt.Errorf("writing project %s: %w", plan.ProjectName, err)
	}
	warnings = append(warnings, writeWarnings...)

	result := &Result{
		Plan:        plan,
		ProjectName: plan.ProjectName,
		ProjectPath: dir,
		Files:       len(files) - len(writeWarnings),
		Warnings:    warnings,
	}

	if req.Zip {
		zipPath, err := o.store.CreateArchive(plan.ProjectName)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("archive: %v", err))
		} else {
			result.ArchivePath = zipPath
		}
	}

	return result, nil
}

// Run executes Generate for a tracked task, reporting progress milestones
// and recording the terminal state. Meant to be launched on its own
// goroutine by the HTTP layer.
func (o *Orchestrator) Run(ctx context.Context, taskID string, req Request) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("generation panicked", zap.String("task", taskID), zap.Any("panic", r))
			_ = o.tasks.Fail(taskID, fmt.Errorf("internal error: %v", r))
		}
	}()

	if err := o.tasks.SetProgress(taskID, 0.1, "analyzing prompt"); err != nil {
		o.log.Warn("task update failed", zap.String("task", taskID), zap.Error(err))
		return
	}

	result, err := o.Generate(ctx, req)
	if err != nil {
		_ = o.tasks.Fail(taskID, err)
		return
	}

	_ = o.tasks.SetProgress(taskID, 0.8, "writing project files")
	_ = o.tasks.Complete(taskID, result.ProjectName, result.ProjectPath, result.Warnings)

	o.log.Info("generation complete",
		zap.String("task", taskID),
		zap.String("project", result.ProjectName),
		zap.Int("files", result.Files),
		zap.Int("warnings", len(result.Warnings)))
}
