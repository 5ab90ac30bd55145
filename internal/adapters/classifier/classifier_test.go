package classifier_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sci/internal/adapters/classifier"
	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/sci/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func refs(urls ...string) []domain.FileReference {
	out := make([]domain.FileReference, 0, len(urls))
	for _, u := range urls {
		out = append(out, domain.NewFileReference(u))
	}
	return out
}

func TestFindPlaceholders(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    []domain.Placeholder
	}{
		{
			name:    "unbraced output",
			command: "echo hej > o:out/hej.txt",
			want:    []domain.Placeholder{{Text: "o:out/hej.txt", Path: "out/hej.txt", Role: domain.RoleOutput}},
		},
		{
			name:    "unbraced input stops at parenthesis",
			command: "echo $(cat i:out/hej.txt) da > o:out/hej.da.txt",
			want: []domain.Placeholder{
				{Text: "i:out/hej.txt", Path: "out/hej.txt", Role: domain.RoleInput},
				{Text: "o:out/hej.da.txt", Path: "out/hej.da.txt", Role: domain.RoleOutput},
			},
		},
		{
			name:    "braced path keeps spaces",
			command: "cp {i:my data.csv} {o:copy of data.csv}",
			want: []domain.Placeholder{
				{Text: "{i:my data.csv}", Path: "my data.csv", Role: domain.RoleInput},
				{Text: "{o:copy of data.csv}", Path: "copy of data.csv", Role: domain.RoleOutput},
			},
		},
		{
			name:    "word prefix is not a marker",
			command: "curl radio:x -o file",
			want:    []domain.Placeholder{},
		},
		{
			name:    "marker at start",
			command: "i:script.sh",
			want:    []domain.Placeholder{{Text: "i:script.sh", Path: "script.sh", Role: domain.RoleInput}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.FindPlaceholders(tt.command))
		})
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "echo hej > out/hej.txt", classifier.Resolve("echo hej > o:out/hej.txt"))
	assert.Equal(t,
		"echo $(cat out/hej.txt) da > out/hej.da.txt",
		classifier.Resolve("echo $(cat i:out/hej.txt) da > o:out/hej.da.txt"))
	assert.Equal(t, "cp a b", classifier.Resolve("cp {i:a} {o:b}"))
	assert.Equal(t, "xi:a cat a", classifier.Resolve("xi:a cat i:a"))
}

func TestClassify_Explicit(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := classifier.New(mocks.NewMockAuditStore(ctrl))

	got, err := c.Classify(context.Background(), t.TempDir(), "echo $(cat i:out/hej.txt i:./out/hej.txt) da > o:out/hej.da.txt")
	require.NoError(t, err)

	assert.Equal(t, domain.ModeExplicit, got.Mode)
	assert.Equal(t, refs("out/hej.txt"), got.Inputs)
	assert.Equal(t, refs("out/hej.da.txt"), got.Outputs)
	assert.Equal(t, "echo $(cat out/hej.txt ./out/hej.txt) da > out/hej.da.txt", got.Invocation.Resolved())
	assert.Nil(t, got.Skip)
}

func TestClassify_ExplicitOverlap(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := classifier.New(mocks.NewMockAuditStore(ctrl))

	_, err := c.Classify(context.Background(), t.TempDir(), "sort i:data.txt > o:data.txt")
	require.ErrorIs(t, err, domain.ErrInputOutputOverlap)
}

func TestClassify_EmptyCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := classifier.New(mocks.NewMockAuditStore(ctrl))

	_, err := c.Classify(context.Background(), t.TempDir(), "   ")
	require.ErrorIs(t, err, domain.ErrNoCommand)
}

func TestClassify_Implicit(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "data.csv"), []byte("1,2\n"), domain.FilePerm))
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir"), domain.DirPerm))

	ctrl := gomock.NewController(t)
	store := mocks.NewMockAuditStore(ctrl)
	store.EXPECT().Lookup(gomock.Any(), root, "data.csv").Return(nil, nil)

	c := classifier.New(store)
	got, err := c.Classify(context.Background(), root, `wc -l "$(cat data.csv)" data.csv dir missing.txt > counts.txt`)
	require.NoError(t, err)

	assert.Equal(t, domain.ModeImplicit, got.Mode)
	assert.Equal(t, refs("data.csv"), got.Inputs)
	assert.Empty(t, got.Outputs)
	assert.Nil(t, got.Skip)
	assert.Equal(t, got.Invocation.Original(), got.Invocation.Resolved())
}

func TestClassify_ImplicitSkipsRecordedCommand(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "counts.txt"), []byte("2\n"), domain.FilePerm))

	command := "wc -l data.csv > counts.txt"
	recorded := domain.NewAuditRecord(domain.NewCommandInvocation(command, ""), nil, refs("counts.txt"), domain.Tags{})

	ctrl := gomock.NewController(t)
	store := mocks.NewMockAuditStore(ctrl)
	store.EXPECT().Lookup(gomock.Any(), root, "counts.txt").Return(&recorded, nil)

	got, err := classifier.New(store).Classify(context.Background(), root, command)
	require.NoError(t, err)
	require.NotNil(t, got.Skip)
	assert.Equal(t, "counts.txt", got.Skip.Path)
	assert.Equal(t, filepath.Join(root, "counts.txt.au.json"), got.Skip.AuditPath)
}

func TestClassify_ImplicitDifferentCommandIsInput(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "counts.txt"), []byte("2\n"), domain.FilePerm))

	other := domain.NewAuditRecord(domain.NewCommandInvocation("wc -l other.csv > counts.txt", ""), nil, refs("counts.txt"), domain.Tags{})

	ctrl := gomock.NewController(t)
	store := mocks.NewMockAuditStore(ctrl)
	store.EXPECT().Lookup(gomock.Any(), root, "counts.txt").Return(&other, nil)

	got, err := classifier.New(store).Classify(context.Background(), root, "sort counts.txt > sorted.txt")
	require.NoError(t, err)
	assert.Nil(t, got.Skip)
	assert.Equal(t, refs("counts.txt"), got.Inputs)
}

func TestClassify_ImplicitMalformedRecord(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "counts.txt"), []byte("2\n"), domain.FilePerm))

	ctrl := gomock.NewController(t)
	store := mocks.NewMockAuditStore(ctrl)
	store.EXPECT().Lookup(gomock.Any(), root, "counts.txt").Return(nil, domain.ErrMalformedAuditFile)

	_, err := classifier.New(store).Classify(context.Background(), root, "cat counts.txt")
	require.ErrorIs(t, err, domain.ErrMalformedAuditFile)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t,
		[]string{"echo", "cat", "a.txt", "b", ">", "c.txt"},
		classifier.Tokenize(`echo $(cat a.txt) [b] "a.txt" > 'c.txt'`))
}
