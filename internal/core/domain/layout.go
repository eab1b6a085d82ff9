package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

const (
	// SpecFileName is the name of the persisted, fully expanded instance spec.
	SpecFileName = "hekit.spec"

	// StatusFileName is the name of the persisted stage status file.
	StatusFileName = "hekit.info"

	// HekitDirName is the name of the per-user hekit directory.
	HekitDirName = ".hekit"

	// DefaultConfigFileName is the name of the default workspace config file.
	DefaultConfigFileName = "default.config"

	// DefaultRepoDirName is the directory under HekitDirName used when no
	// repo_location is configured.
	DefaultRepoDirName = "components"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// InstanceRef identifies one instance of a component under a repo root.
type InstanceRef struct {
	Root      string
	Component string
	Name      string
}

// Dir returns the instance directory <root>/<component>/<name>.
func (r InstanceRef) Dir() string {
	return filepath.Join(r.Root, r.Component, r.Name)
}

// SpecPath returns the path of the persisted spec file.
func (r InstanceRef) SpecPath() string {
	return filepath.Join(r.Dir(), SpecFileName)
}

// Validate checks that the component and the name each select exactly one
// directory below Root.
func (r InstanceRef) Validate() error {
	if !IsPathElement(r.Component) {
		return zerr.With(zerr.Wrap(ErrInvalidInstanceRef, "component must be a single path element"), "component", r.Component)
	}
	if !IsPathElement(r.Name) {
		return zerr.With(zerr.Wrap(ErrInvalidInstanceRef, "instance must be a single path element"), "instance", r.Name)
	}
	rel, err := filepath.Rel(filepath.Clean(r.Root), filepath.Clean(r.Dir()))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return zerr.With(zerr.Wrap(ErrInvalidInstanceRef, "instance directory is outside the repo"), "path", r.Dir())
	}
	return nil
}

// IsPathElement reports whether s names one entry of a directory.
func IsPathElement(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, "/\\\x00")
}

// StatusPath returns the path of the persisted status file.
func (r InstanceRef) StatusPath() string {
	return filepath.Join(r.Dir(), StatusFileName)
}

// StageDir returns the fixed subdirectory created for a stage at setup.
func (r InstanceRef) StageDir(s Stage) string {
	return filepath.Join(r.Dir(), s.String())
}

// String returns component/name.
func (r InstanceRef) String() string {
	return r.Component + "/" + r.Name
}

// DefaultConfigPath returns ~/.hekit/default.config relative to home.
func DefaultConfigPath(home string) string {
	return filepath.Join(home, HekitDirName, DefaultConfigFileName)
}

// DefaultRepoLocation returns ~/.hekit/components relative to home.
func DefaultRepoLocation(home string) string {
	return filepath.Join(home, HekitDirName, DefaultRepoDirName)
}
