// Package config provides the configuration loader for sci.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/sci/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the config file for the workspace at root. An empty path selects
// <root>/sci.yaml, whose absence yields domain.DefaultConfig. Relative paths are
// resolved against root.
func (l *Loader) Load(root, path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path, explicit := configPath(root, path)

	//nolint:gosec // config path is chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	var file Scifile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return cfg, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", path)
	}

	return l.apply(cfg, &file, path)
}

func configPath(root, path string) (string, bool) {
	if path == "" {
		return filepath.Join(root, domain.ConfigFileName), false
	}
	if filepath.IsAbs(path) {
		return path, true
	}
	return filepath.Join(root, path), true
}

func (l *Loader) apply(cfg domain.Config, file *Scifile, path string) (domain.Config, error) {
	if file.Shell != "" {
		cfg.Shell = file.Shell
	}
	if file.MergeUpstream != nil {
		cfg.MergeUpstream = *file.MergeUpstream
	}

	if file.LockTimeout != "" {
		d, err := time.ParseDuration(file.LockTimeout)
		if err != nil {
			return cfg, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, err.Error()), "lock_timeout", file.LockTimeout)
		}
		if d < 0 {
			return cfg, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "lock_timeout must not be negative"), "lock_timeout", file.LockTimeout)
		}
		cfg.LockTimeout = d
	}

	if file.StagingPrefix != "" {
		if strings.ContainsRune(file.StagingPrefix, '/') || strings.ContainsRune(file.StagingPrefix, filepath.Separator) {
			return cfg, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "staging_prefix must be a plain name"), "staging_prefix", file.StagingPrefix)
		}
		if !strings.HasPrefix(file.StagingPrefix, ".") && l.Logger != nil {
			l.Logger.Warn(fmt.Sprintf("staging_prefix %q in %s is not hidden; staging directories will show up in listings", file.StagingPrefix, path))
		}
		cfg.StagingPrefix = file.StagingPrefix
	}

	return cfg, nil
}
