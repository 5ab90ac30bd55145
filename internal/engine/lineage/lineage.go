// Package lineage reconstructs the upstream history of an audited file.
package lineage

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/sci/internal/core/ports"
	"go.trai.ch/zerr"
)

// Reconstructor follows input records from a root record back to untracked sources.
type Reconstructor struct {
	store  ports.AuditStore
	tracer ports.Tracer
}

// NewReconstructor creates a Reconstructor.
func NewReconstructor(store ports.AuditStore, tracer ports.Tracer) *Reconstructor {
	return &Reconstructor{store: store, tracer: tracer}
}

// Reconstruct loads the record at auditPath and every record reachable
// through its inputs, resolved against the workspace root.
//
// An input without a sibling record falls back to the record embedded in
// its consumer's upstream map; without either, that branch ends. A file
// reached again on its own ancestry fails with domain.ErrCyclicProvenance.
// The result is ordered by start time and holds one record per distinct
// command, keeping the earliest.
func (r *Reconstructor) Reconstruct(ctx context.Context, root, auditPath string) ([]domain.AuditRecord, error) {
	ctx, span := r.tracer.Start(ctx, domain.SpanReconstruct, ports.WithAttribute("audit_path", auditPath))
	defer span.End()

	records, err := r.collect(ctx, root, auditPath)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	records = Chronological(records)
	span.SetAttribute("records", len(records))
	return records, nil
}

type walk struct {
	ctx     context.Context
	store   ports.AuditStore
	root    string
	onPath  map[string]bool
	path    []string
	done    map[string]bool
	records []domain.AuditRecord
}

func (r *Reconstructor) collect(ctx context.Context, root, auditPath string) ([]domain.AuditRecord, error) {
	rec, err := r.store.Read(ctx, auditPath)
	if err != nil {
		return nil, err
	}

	w := &walk{
		ctx:    ctx,
		store:  r.store,
		root:   root,
		onPath: make(map[string]bool),
		done:   make(map[string]bool),
	}

	key := w.key(domain.OutputPathFor(auditPath))
	if err := w.visit(key, rec); err != nil {
		return nil, err
	}
	return w.records, nil
}

func (w *walk) visit(key string, rec *domain.AuditRecord) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}

	w.onPath[key] = true
	w.path = append(w.path, key)
	defer func() {
		delete(w.onPath, key)
		w.path = w.path[:len(w.path)-1]
		w.done[key] = true
	}()

	w.records = append(w.records, *rec)

	for _, in := range rec.Inputs {
		inKey := w.key(in.URL)
		if w.onPath[inKey] {
			cycle := append(slices.Clone(w.path), inKey)
			return zerr.With(
				zerr.Wrap(domain.ErrCyclicProvenance, "file is its own ancestor"),
				"cycle", strings.Join(cycle, " <- "),
			)
		}
		if w.done[inKey] {
			continue
		}

		upstream, err := w.store.Lookup(w.ctx, w.root, in.URL)
		if err != nil {
			return err
		}
		if upstream == nil {
			embedded, ok := rec.Upstream[in.URL]
			if !ok {
				w.done[inKey] = true
				continue
			}
			upstream = &embedded
		}

		if err := w.visit(inKey, upstream); err != nil {
			return err
		}
	}
	return nil
}

// key identifies a file on disk independently of how its url was spelled.
func (w *walk) key(url string) string {
	return filepath.Clean(domain.ResolveURL(w.root, url))
}

// Chronological sorts records by start time and drops every record whose
// command token sequence was already seen.
func Chronological(records []domain.AuditRecord) []domain.AuditRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b domain.AuditRecord) int {
		return a.Tags.StartTime.Compare(b.Tags.StartTime.Time)
	})

	unique := make([]domain.AuditRecord, 0, len(sorted))
	for i := range sorted {
		if slices.ContainsFunc(unique, func(u domain.AuditRecord) bool { return u.SameCommand(&sorted[i]) }) {
			continue
		}
		unique = append(unique, sorted[i])
	}
	return unique
}
