// Package app implements the application layer for sci.
package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/sci/internal/core/ports"
	"go.trai.ch/sci/internal/engine/auditor"
	"go.trai.ch/sci/internal/engine/lineage"
	"go.trai.ch/zerr"
)

// RunOptions carries the per-invocation settings given on the command line.
// Zero values defer to the workspace configuration.
type RunOptions struct {
	// Root is the workspace directory. Empty means the working directory.
	Root string

	// ConfigPath overrides the location of sci.yaml.
	ConfigPath string

	// MergeUpstream embeds upstream records. It can only switch merging on.
	MergeUpstream bool

	Shell string

	Stdout io.Writer
	Stderr io.Writer
}

// ReportOptions selects the side outputs of a report.
type ReportOptions struct {
	Root string

	// WriteDOT writes the graph description next to the output as <output>.au.dot.
	WriteDOT bool

	// HTML writes a standalone document next to the output as <output>.au.html.
	HTML bool

	// Table receives the task table when set.
	Table io.Writer
}

// App represents the main application logic.
type App struct {
	configLoader  ports.ConfigLoader
	auditor       *auditor.Auditor
	reconstructor *lineage.Reconstructor
	reporter      ports.AuditReporter
	renderer      ports.ImageRenderer
	logger        ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	aud *auditor.Auditor,
	reconstructor *lineage.Reconstructor,
	reporter ports.AuditReporter,
	renderer ports.ImageRenderer,
	logger ports.Logger,
) *App {
	return &App{
		configLoader:  loader,
		auditor:       aud,
		reconstructor: reconstructor,
		reporter:      reporter,
		renderer:      renderer,
		logger:        logger,
	}
}

// SetLogJSON switches the logger to JSON output when it supports it.
func (a *App) SetLogJSON(enable bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enable)
	}
}

// Run executes command under provenance tracking.
func (a *App) Run(ctx context.Context, command string, opts RunOptions) (*domain.RunResult, error) {
	runOpts, err := a.resolve(opts)
	if err != nil {
		return nil, err
	}

	res, err := a.auditor.Run(ctx, command, runOpts)
	if err != nil {
		return res, err
	}

	switch {
	case res.Status == domain.RunStatusSkipped:
		a.logger.Info("skipped: " + res.Skip.Path + " " + res.Skip.Reason)
	case len(res.Outputs) == 0:
		a.logger.Warn("command produced no outputs, nothing was recorded")
	default:
		for _, path := range res.AuditPaths {
			a.logger.Info("recorded " + relative(runOpts.Root, path))
		}
	}
	return res, nil
}

// RunUntracked executes command in the workspace without writing records.
func (a *App) RunUntracked(ctx context.Context, command string, opts RunOptions) (*domain.RunResult, error) {
	runOpts, err := a.resolve(opts)
	if err != nil {
		return nil, err
	}
	return a.auditor.RunUntracked(ctx, command, runOpts)
}

// Report reconstructs the lineage of auditPath and renders it.
func (a *App) Report(ctx context.Context, auditPath string, opts ReportOptions) (*domain.Report, error) {
	root, err := workspaceRoot(opts.Root)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(auditPath) {
		auditPath = filepath.Join(root, auditPath)
	}
	if !domain.IsAuditPath(auditPath) {
		auditPath = domain.AuditPathFor(auditPath)
	}

	records, err := a.reconstructor.Reconstruct(ctx, root, auditPath)
	if err != nil {
		return nil, err
	}

	graph := domain.ProjectGraph(records)
	report := &domain.Report{
		Root:    auditPath,
		Records: records,
		Graph:   graph,
		DOT:     a.reporter.DOT(graph),
		Tasks:   domain.TaskTable(records),
	}

	if opts.Table != nil {
		if err := a.reporter.Table(opts.Table, report.Tasks); err != nil {
			return report, zerr.Wrap(err, "failed to write task table")
		}
	}

	base := domain.OutputPathFor(auditPath)
	if opts.WriteDOT {
		path := base + domain.DotSuffix
		if err := os.WriteFile(path, []byte(report.DOT), domain.FilePerm); err != nil {
			return report, zerr.With(zerr.Wrap(err, "failed to write graph description"), "path", path)
		}
		a.logger.Info("wrote " + relative(root, path))
	}

	if opts.HTML {
		a.renderImage(ctx, report)

		var buf bytes.Buffer
		if err := a.reporter.HTML(&buf, report); err != nil {
			return report, zerr.Wrap(err, "failed to render html report")
		}
		path := base + domain.HTMLSuffix
		if err := os.WriteFile(path, buf.Bytes(), domain.FilePerm); err != nil {
			return report, zerr.With(zerr.Wrap(err, "failed to write html report"), "path", path)
		}
		a.logger.Info("wrote " + relative(root, path))
	}

	return report, nil
}

// renderImage embeds an SVG of the graph when a layout program is installed.
func (a *App) renderImage(ctx context.Context, report *domain.Report) {
	if a.renderer == nil {
		return
	}
	svg, err := a.renderer.Render(ctx, report.DOT)
	switch {
	case err == nil:
		report.SVG = svg
	case errors.Is(err, domain.ErrRendererUnavailable):
		a.logger.Warn("graphviz not found, html report will contain the graph description only")
	default:
		a.logger.Warn("failed to render graph: " + err.Error())
	}
}

// resolve merges the workspace configuration with command line overrides.
func (a *App) resolve(opts RunOptions) (auditor.RunOptions, error) {
	root, err := workspaceRoot(opts.Root)
	if err != nil {
		return auditor.RunOptions{}, err
	}

	cfg, err := a.configLoader.Load(root, opts.ConfigPath)
	if err != nil {
		return auditor.RunOptions{}, zerr.Wrap(err, "failed to load configuration")
	}

	shell := cfg.Shell
	if opts.Shell != "" {
		shell = opts.Shell
	}

	return auditor.RunOptions{
		Root:          root,
		MergeUpstream: cfg.MergeUpstream || opts.MergeUpstream,
		LockTimeout:   cfg.LockTimeout,
		Shell:         shell,
		StagingPrefix: cfg.StagingPrefix,
		Stdout:        opts.Stdout,
		Stderr:        opts.Stderr,
	}, nil
}

func workspaceRoot(root string) (string, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", zerr.Wrap(err, "failed to get working directory")
		}
		return wd, nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve workspace root"), "root", root)
	}
	return abs, nil
}

func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
