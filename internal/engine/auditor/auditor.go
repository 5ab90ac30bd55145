// Package auditor runs commands and records the provenance of what they produce.
package auditor

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/sci/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// RunOptions configures one invocation.
type RunOptions struct {
	// Root is the absolute workspace directory urls are relative to.
	Root string

	// MergeUpstream embeds the records of every recorded input into the new records.
	MergeUpstream bool

	// LockTimeout is how long to wait for a held output lock. Zero fails fast.
	LockTimeout time.Duration

	Shell         string
	StagingPrefix string

	// Stdout and Stderr receive the command's live output.
	Stdout io.Writer
	Stderr io.Writer
}

// Auditor executes commands in explicit or implicit mode and writes their audit records.
type Auditor struct {
	classifier ports.PathClassifier
	staging    ports.StagingArea
	executor   ports.Executor
	store      ports.AuditStore
	locker     ports.Locker
	tracer     ports.Tracer
	telemetry  ports.Telemetry
	logger     ports.Logger
}

// New creates an Auditor.
func New(
	classifier ports.PathClassifier,
	staging ports.StagingArea,
	executor ports.Executor,
	store ports.AuditStore,
	locker ports.Locker,
	tracer ports.Tracer,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Auditor {
	return &Auditor{
		classifier: classifier,
		staging:    staging,
		executor:   executor,
		store:      store,
		locker:     locker,
		tracer:     tracer,
		telemetry:  telemetry,
		logger:     logger,
	}
}

// Run classifies command and executes it unless its outputs are already recorded.
//
// A skip is reported through the result, not as an error. A failing command
// returns an error wrapping domain.ErrCommandFailed and leaves no record behind.
func (a *Auditor) Run(ctx context.Context, command string, opts RunOptions) (res *domain.RunResult, err error) {
	if strings.TrimSpace(command) == "" {
		return nil, domain.ErrNoCommand
	}

	ctx, vertex := a.telemetry.Record(ctx, command)
	defer func() { vertex.Complete(err) }()

	invocationID := uuid.NewString()

	// Identical commands share a staging directory, so they are serialised on its name.
	stageLock := a.staging.DirFor(opts.Root, opts.StagingPrefix, command)
	unlock, err := a.locker.Acquire(ctx, []string{stageLock}, opts.LockTimeout)
	if err != nil {
		return nil, err
	}
	defer a.release(unlock)

	classifyCtx, span := a.tracer.Start(ctx, domain.SpanClassify,
		ports.WithAttribute("invocation_id", invocationID),
		ports.WithAttribute("command", command),
	)
	cls, err := a.classifier.Classify(classifyCtx, opts.Root, command)
	if err != nil {
		span.RecordError(err)
		span.End()
		return nil, err
	}
	span.SetAttribute("mode", string(cls.Mode))
	span.SetAttribute("inputs", cls.InputURLs())
	span.End()

	switch cls.Mode {
	case domain.ModeExplicit:
		res, err = a.runExplicit(ctx, cls, opts)
	default:
		res, err = a.runImplicit(ctx, cls, opts)
	}

	if res != nil && res.Status == domain.RunStatusSkipped {
		vertex.Cached()
	}
	return res, err
}

// RunUntracked executes command in the workspace without classification or records.
func (a *Auditor) RunUntracked(ctx context.Context, command string, opts RunOptions) (res *domain.RunResult, err error) {
	if strings.TrimSpace(command) == "" {
		return nil, domain.ErrNoCommand
	}

	ctx, vertex := a.telemetry.Record(ctx, command, ports.Internal())
	defer func() { vertex.Complete(err) }()

	inv := domain.NewCommandInvocation(command, "")
	exec, err := a.execute(ctx, inv, opts.Root, opts)
	return &domain.RunResult{
		Status:     domain.RunStatusUntracked,
		Invocation: inv,
		Exec:       exec,
	}, err
}

func (a *Auditor) runExplicit(ctx context.Context, cls *domain.Classification, opts RunOptions) (*domain.RunResult, error) {
	res := &domain.RunResult{Mode: cls.Mode, Invocation: cls.Invocation}

	outputs := cls.OutputURLs()
	if len(outputs) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoOutputs, "no o: marker in command"), "command", cls.Invocation.Original())
	}

	paths := make([]string, len(outputs))
	for i, out := range outputs {
		paths[i] = domain.ResolveURL(opts.Root, out)
	}

	unlock, err := a.locker.Acquire(ctx, paths, opts.LockTimeout)
	if err != nil {
		return nil, err
	}
	defer a.release(unlock)

	for i, path := range paths {
		if _, err := os.Lstat(path); err == nil {
			res.Status = domain.RunStatusSkipped
			res.Skip = &domain.SkipReason{
				Path:      outputs[i],
				AuditPath: domain.AuditPathFor(path),
				Reason:    "output already exists",
			}
			return res, nil
		}
	}

	for _, in := range cls.Inputs {
		if _, err := os.Stat(domain.ResolveURL(opts.Root, in.URL)); err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrInputNotFound, "declared input is missing"), "url", in.URL)
		}
	}

	upstream, err := a.upstream(ctx, cls.Inputs, opts)
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", filepath.Dir(path))
		}
	}

	res.Exec, err = a.execute(ctx, cls.Invocation, opts.Root, opts)
	if err != nil {
		removeCreated(paths)
		return res, err
	}

	for i, path := range paths {
		if _, err := os.Stat(path); err != nil {
			removeCreated(paths)
			return res, zerr.With(zerr.Wrap(domain.ErrDeclaredOutputMissing, "command did not create output"), "url", outputs[i])
		}
	}

	// An output without its record would be skipped forever, so both go or neither.
	record, err := buildRecord(cls.Invocation, cls.Inputs, cls.Outputs, res.Exec, upstream)
	if err != nil {
		removeCreated(paths)
		return res, err
	}

	auditPaths, err := a.persist(ctx, opts.Root, record, outputs)
	if err != nil {
		removeCreated(paths)
		return res, err
	}

	res.Status = domain.RunStatusExecuted
	res.Outputs = outputs
	res.AuditPaths = auditPaths
	res.Record = &record
	return res, nil
}

func (a *Auditor) runImplicit(ctx context.Context, cls *domain.Classification, opts RunOptions) (res *domain.RunResult, err error) {
	res = &domain.RunResult{Mode: cls.Mode, Invocation: cls.Invocation}

	if cls.Skip != nil {
		res.Status = domain.RunStatusSkipped
		res.Skip = cls.Skip
		return res, nil
	}

	upstream, err := a.upstream(ctx, cls.Inputs, opts)
	if err != nil {
		return nil, err
	}

	stageCtx, span := a.tracer.Start(ctx, domain.SpanStage, ports.WithAttribute("inputs", len(cls.Inputs)))
	stage, err := a.staging.Stage(stageCtx, domain.StageSpec{
		Root:       opts.Root,
		Prefix:     opts.StagingPrefix,
		Invocation: cls.Invocation,
		Inputs:     cls.Inputs,
	})
	if err != nil {
		span.RecordError(err)
		span.End()
		return nil, err
	}
	span.SetAttribute("dir", stage.Dir())
	span.SetAttribute("input_digest", stage.InputDigest())
	span.End()

	finalized := false
	defer func() {
		if finalized {
			return
		}
		if derr := stage.Discard(); derr != nil {
			a.logger.Warn("failed to discard staging directory " + stage.Dir() + ": " + derr.Error())
		}
	}()

	res.Exec, err = a.execute(ctx, cls.Invocation, stage.Dir(), opts)
	if err != nil {
		return res, err
	}

	outputs, err := stage.CollectNewOutputs(ctx)
	if err != nil {
		return res, err
	}
	res.Status = domain.RunStatusExecuted
	if len(outputs) == 0 {
		return res, nil
	}

	paths := make([]string, len(outputs))
	for i, out := range outputs {
		paths[i] = domain.ResolveURL(opts.Root, out)
	}
	unlock, err := a.locker.Acquire(ctx, paths, opts.LockTimeout)
	if err != nil {
		return res, err
	}
	defer a.release(unlock)

	outRefs := make([]domain.FileReference, len(outputs))
	for i, out := range outputs {
		outRefs[i] = domain.NewFileReference(out)
	}

	record, err := buildRecord(cls.Invocation, cls.Inputs, outRefs, res.Exec, upstream)
	if err != nil {
		return res, err
	}

	if _, err := a.persist(ctx, stage.Dir(), record, outputs); err != nil {
		return res, err
	}

	finCtx, finSpan := a.tracer.Start(ctx, domain.SpanFinalize, ports.WithAttribute("outputs", outputs))
	err = stage.Finalize(finCtx, outputs)
	if err != nil {
		finSpan.RecordError(err)
		finSpan.End()
		return res, err
	}
	finSpan.End()
	finalized = true

	res.Outputs = outputs
	res.AuditPaths = make([]string, len(paths))
	for i, path := range paths {
		res.AuditPaths[i] = domain.AuditPathFor(path)
	}
	res.Record = &record
	return res, nil
}

// execute runs inv in dir, mirroring its output to the execute span.
func (a *Auditor) execute(ctx context.Context, inv domain.CommandInvocation, dir string, opts RunOptions) (*domain.ExecResult, error) {
	ctx, span := a.tracer.Start(ctx, domain.SpanExecute,
		ports.WithAttribute("command", inv.Resolved()),
		ports.WithAttribute("dir", dir),
	)
	defer span.End()

	result, err := a.executor.Run(ctx, domain.ExecSpec{
		Command: inv.Resolved(),
		Dir:     dir,
		Shell:   opts.Shell,
		Stdout:  tee(span, opts.Stdout),
		Stderr:  tee(span, opts.Stderr),
	})
	if result != nil {
		span.SetAttribute("exit_code", result.ExitCode)
	}
	if err != nil {
		span.RecordError(err)
	}
	return result, err
}

// upstream reads the records to embed before anything runs, so a malformed
// upstream record fails the invocation while the working tree is untouched.
func (a *Auditor) upstream(ctx context.Context, inputs []domain.FileReference, opts RunOptions) (map[string]domain.AuditRecord, error) {
	if !opts.MergeUpstream || len(inputs) == 0 {
		return nil, nil
	}
	return a.collectUpstream(ctx, opts.Root, inputs)
}

// buildRecord assembles the record of a finished invocation.
func buildRecord(
	inv domain.CommandInvocation,
	inputs, outputs []domain.FileReference,
	exec *domain.ExecResult,
	upstream map[string]domain.AuditRecord,
) (domain.AuditRecord, error) {
	record := domain.NewAuditRecord(inv, inputs, outputs, exec.Tags())
	for url, rec := range upstream {
		record.Upstream[url] = rec
	}

	if err := record.Validate(); err != nil {
		return domain.AuditRecord{}, err
	}
	return record, nil
}

// collectUpstream reads the sibling records of inputs concurrently.
func (a *Auditor) collectUpstream(ctx context.Context, root string, inputs []domain.FileReference) (map[string]domain.AuditRecord, error) {
	found := make([]*domain.AuditRecord, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		g.Go(func() error {
			rec, err := a.store.Lookup(gctx, root, in.URL)
			if err != nil {
				return err
			}
			found[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	upstream := make(map[string]domain.AuditRecord)
	for i, rec := range found {
		if rec != nil {
			upstream[inputs[i].URL] = *rec
		}
	}
	return upstream, nil
}

func (a *Auditor) persist(ctx context.Context, root string, record domain.AuditRecord, outputs []string) ([]string, error) {
	ctx, span := a.tracer.Start(ctx, domain.SpanPersist, ports.WithAttribute("outputs", outputs))
	defer span.End()

	paths, err := a.store.Write(ctx, root, record, outputs)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return paths, nil
}

func (a *Auditor) release(unlock ports.Unlock) {
	if err := unlock(); err != nil {
		a.logger.Warn(err.Error())
	}
}

// removeCreated deletes outputs of a failed in-place run. Every path was
// checked to be absent before the command started.
func removeCreated(paths []string) {
	for _, path := range paths {
		_ = os.Remove(path)
	}
}

func tee(span io.Writer, w io.Writer) io.Writer {
	if w == nil {
		return span
	}
	return io.MultiWriter(span, w)
}
