package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sci/internal/adapters/config"
	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/sci/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func TestLoader_Load_MissingDefaultFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	cfg, err := loader.Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoader_Load_MissingExplicitFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	_, err := loader.Load(t.TempDir(), "custom.yaml")
	require.ErrorIs(t, err, domain.ErrConfigReadFailed)
}

func TestLoader_Load_Values(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	root := t.TempDir()
	writeConfig(t, root, domain.ConfigFileName, `
version: "1"
shell: sh
merge_upstream: true
lock_timeout: 2s
staging_prefix: .stage-
`)

	cfg, err := loader.Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, domain.Config{
		Shell:         "sh",
		MergeUpstream: true,
		LockTimeout:   2 * time.Second,
		StagingPrefix: ".stage-",
	}, cfg)
}

func TestLoader_Load_ExplicitPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	root := t.TempDir()
	other := t.TempDir()
	path := writeConfig(t, other, "alt.yaml", "merge_upstream: true\n")

	cfg, err := loader.Load(root, path)
	require.NoError(t, err)
	assert.True(t, cfg.MergeUpstream)
	assert.Equal(t, domain.DefaultShell, cfg.Shell)
}

func TestLoader_Load_EmptyFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	root := t.TempDir()
	writeConfig(t, root, domain.ConfigFileName, "")

	cfg, err := loader.Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"unknown key", "shel: sh\n", domain.ErrConfigParseFailed},
		{"bad yaml", "shell: [\n", domain.ErrConfigParseFailed},
		{"bad duration", "lock_timeout: soon\n", domain.ErrInvalidConfig},
		{"negative duration", "lock_timeout: -1s\n", domain.ErrInvalidConfig},
		{"prefix with separator", "staging_prefix: a/b\n", domain.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			loader := config.NewLoader(mocks.NewMockLogger(ctrl))

			root := t.TempDir()
			writeConfig(t, root, domain.ConfigFileName, tt.content)

			_, err := loader.Load(root, "")
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoader_Load_WarnsOnVisibleStagingPrefix(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	loader := config.NewLoader(mockLogger)
	root := t.TempDir()
	writeConfig(t, root, domain.ConfigFileName, "staging_prefix: stage-\n")

	cfg, err := loader.Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, "stage-", cfg.StagingPrefix)
}
