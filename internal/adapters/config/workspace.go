// Package config loads the workspace configuration and recipe documents.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.trai.ch/hekit/internal/core/domain"
	"go.trai.ch/hekit/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	keyRepoLocation = "repo_location"
	envPrefix       = "HEKIT"
)

// WorkspaceLoader implements ports.ConfigLoader using viper over a TOML file.
type WorkspaceLoader struct {
	homeDir func() (string, error)
}

var _ ports.ConfigLoader = (*WorkspaceLoader)(nil)

// NewWorkspaceLoader creates a WorkspaceLoader rooted at the user's home directory.
func NewWorkspaceLoader() *WorkspaceLoader {
	return &WorkspaceLoader{homeDir: os.UserHomeDir}
}

// Load reads the workspace configuration from path. An empty path selects
// ~/.hekit/default.config, which falls back to defaults when absent. The
// HEKIT_REPO_LOCATION environment variable overrides repo_location.
func (l *WorkspaceLoader) Load(path string) (*domain.Workspace, error) {
	home, err := l.homeDir()
	if err != nil {
		return nil, zerr.Wrap(err, "cannot determine home directory")
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.SetDefault(keyRepoLocation, domain.DefaultRepoLocation(home))
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	configPath := path
	if configPath == "" {
		configPath = domain.DefaultConfigPath(home)
		if _, statErr := os.Stat(configPath); errors.Is(statErr, fs.ErrNotExist) {
			configPath = ""
		}
	}

	if configPath != "" {
		configPath = expandHome(configPath, home)
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
		}
	}

	repo := strings.TrimSpace(v.GetString(keyRepoLocation))
	if repo == "" {
		repo = domain.DefaultRepoLocation(home)
	}
	repo, err = filepath.Abs(expandHome(repo, home))
	if err != nil {
		return nil, zerr.Wrap(err, "cannot resolve repo_location")
	}

	return &domain.Workspace{
		RepoLocation: repo,
		ConfigPath:   configPath,
	}, nil
}

func expandHome(p, home string) string {
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(home, p[2:])
	}
	return p
}
