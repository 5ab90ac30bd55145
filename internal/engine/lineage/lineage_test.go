package lineage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sci/internal/adapters/auditstore"
	"go.trai.ch/sci/internal/adapters/telemetry"
	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/sci/internal/engine/lineage"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type workspace struct {
	t     *testing.T
	root  string
	store *auditstore.Store
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	return &workspace{t: t, root: t.TempDir(), store: auditstore.NewStore()}
}

func refs(urls ...string) []domain.FileReference {
	out := make([]domain.FileReference, 0, len(urls))
	for _, u := range urls {
		out = append(out, domain.NewFileReference(u))
	}
	return out
}

// record writes a record for command beside every output and returns it.
func (w *workspace) record(command string, at time.Duration, inputs, outputs []string) domain.AuditRecord {
	w.t.Helper()
	rec := domain.NewAuditRecord(
		domain.NewCommandInvocation(command, ""),
		refs(inputs...),
		refs(outputs...),
		domain.NewTags(t0.Add(at), t0.Add(at+time.Second)),
	)
	for _, out := range outputs {
		path := filepath.Join(w.root, filepath.FromSlash(out))
		require.NoError(w.t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(w.t, os.WriteFile(path, []byte(command), domain.FilePerm))
	}
	_, err := w.store.Write(context.Background(), w.root, rec, outputs)
	require.NoError(w.t, err)
	return rec
}

func (w *workspace) reconstruct(output string) ([]domain.AuditRecord, error) {
	r := lineage.NewReconstructor(w.store, telemetry.NewNoOpTracer())
	return r.Reconstruct(context.Background(), w.root, domain.AuditPathFor(filepath.Join(w.root, output)))
}

func commands(records []domain.AuditRecord) []string {
	out := make([]string, 0, len(records))
	for i := range records {
		out = append(out, records[i].CommandString())
	}
	return out
}

func TestReconstruct_Chain(t *testing.T) {
	w := newWorkspace(t)
	w.record("make a", 0, nil, []string{"a"})
	w.record("make b from a", time.Minute, []string{"a"}, []string{"b"})
	w.record("make c from b", 2*time.Minute, []string{"b"}, []string{"c"})

	records, err := w.reconstruct("c")
	require.NoError(t, err)
	assert.Equal(t, []string{"make a", "make b from a", "make c from b"}, commands(records))
}

func TestReconstruct_DiamondIsDeduplicated(t *testing.T) {
	w := newWorkspace(t)
	w.record("split src", 0, []string{"src"}, []string{"left", "right"})
	w.record("join", time.Minute, []string{"left", "right"}, []string{"joined"})

	records, err := w.reconstruct("joined")
	require.NoError(t, err)
	assert.Equal(t, []string{"split src", "join"}, commands(records))
}

func TestReconstruct_SameCommandTwiceKeepsEarliest(t *testing.T) {
	w := newWorkspace(t)
	w.record("gen", 0, nil, []string{"x"})
	w.record("gen", 30*time.Second, nil, []string{"y"})
	w.record("combine", time.Minute, []string{"y", "x"}, []string{"z"})

	records, err := w.reconstruct("z")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "gen", records[0].CommandString())
	assert.Equal(t, t0, records[0].Tags.StartTime.Time)
}

func TestReconstruct_MissingUpstreamEndsBranchOnly(t *testing.T) {
	w := newWorkspace(t)
	w.record("make b", 0, nil, []string{"b"})
	w.record("use raw and b", time.Minute, []string{"raw.csv", "b"}, []string{"c"})

	records, err := w.reconstruct("c")
	require.NoError(t, err)
	assert.Equal(t, []string{"make b", "use raw and b"}, commands(records))
}

func TestReconstruct_UsesEmbeddedUpstream(t *testing.T) {
	w := newWorkspace(t)
	upstream := domain.NewAuditRecord(domain.NewCommandInvocation("fetch", ""), nil, refs("data"), domain.NewTags(t0, t0))

	rec := domain.NewAuditRecord(domain.NewCommandInvocation("summarise data", ""), refs("data"), refs("summary"), domain.NewTags(t0.Add(time.Hour), t0.Add(time.Hour)))
	rec.Upstream["data"] = upstream
	_, err := w.store.Write(context.Background(), w.root, rec, []string{"summary"})
	require.NoError(t, err)

	records, err := w.reconstruct("summary")
	require.NoError(t, err)
	assert.Equal(t, []string{"fetch", "summarise data"}, commands(records))
}

func TestReconstruct_Cycle(t *testing.T) {
	w := newWorkspace(t)
	w.record("a from b", 0, []string{"b"}, []string{"a"})
	w.record("b from a", time.Minute, []string{"a"}, []string{"b"})

	_, err := w.reconstruct("a")
	require.ErrorIs(t, err, domain.ErrCyclicProvenance)
}

func TestReconstruct_MalformedUpstream(t *testing.T) {
	w := newWorkspace(t)
	w.record("use a", 0, []string{"a"}, []string{"b"})
	require.NoError(t, os.WriteFile(filepath.Join(w.root, "a.au.json"), []byte("{"), domain.FilePerm))

	_, err := w.reconstruct("b")
	require.ErrorIs(t, err, domain.ErrMalformedAuditFile)
}

func TestReconstruct_MissingRoot(t *testing.T) {
	w := newWorkspace(t)
	_, err := w.reconstruct("nothing")
	require.ErrorIs(t, err, domain.ErrAuditNotFound)
}

func TestChronological(t *testing.T) {
	later := domain.NewAuditRecord(domain.NewCommandInvocation("b", ""), nil, refs("y"), domain.NewTags(t0.Add(time.Minute), t0.Add(time.Minute)))
	earlier := domain.NewAuditRecord(domain.NewCommandInvocation("a", ""), nil, refs("x"), domain.NewTags(t0, t0))
	dup := domain.NewAuditRecord(domain.NewCommandInvocation("a", ""), nil, refs("z"), domain.NewTags(t0.Add(time.Hour), t0.Add(time.Hour)))

	got := lineage.Chronological([]domain.AuditRecord{later, dup, earlier})
	assert.Equal(t, []domain.AuditRecord{earlier, later}, got)
}
