// Package state persists instance specs and stage status inside the repo tree.
package state

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/hekit/internal/core/domain"
	"go.trai.ch/hekit/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.InstanceStore with one spec file and one status file
// per instance directory.
type Store struct{}

var _ ports.InstanceStore = (*Store)(nil)

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

type statusFile struct {
	Status statusTable `toml:"status"`
}

type statusTable struct {
	Fetch   string `toml:"fetch"`
	Build   string `toml:"build"`
	Install string `toml:"install"`
}

// ReadSpec returns the persisted spec of ref, or nil if none was written.
func (s *Store) ReadSpec(ref domain.InstanceRef) (*domain.InstanceSpec, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	data, err := readFile(ref.SpecPath())
	if err != nil || data == nil {
		return nil, err
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStateReadFailed.Error()), "path", ref.SpecPath())
	}

	record, ok := firstRecord(doc[ref.Component])
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrStateReadFailed, "spec file holds no record for component"), "path", ref.SpecPath())
	}

	attrs, skip, err := domain.ValidateRecord(ref.Component, record)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStateReadFailed.Error()), "path", ref.SpecPath())
	}
	return domain.NewInstanceSpec(ref.Root, ref.Component, skip, attrs), nil
}

// WriteSpec persists spec in the same shape as a one-instance recipe.
func (s *Store) WriteSpec(spec *domain.InstanceSpec) error {
	doc := map[string]any{
		spec.Component(): []map[string]any{spec.Record()},
	}
	data, err := toml.Marshal(doc)
	if err != nil {
		return zerr.Wrap(err, domain.ErrStateWriteFailed.Error())
	}
	return writeFile(spec.Ref().SpecPath(), data)
}

// ReadStatus returns the recorded status of ref. A missing file means no
// stage has run.
func (s *Store) ReadStatus(ref domain.InstanceRef) (domain.BuildStatus, error) {
	status := domain.NewBuildStatus()

	data, err := readFile(ref.StatusPath())
	if err != nil || data == nil {
		return status, err
	}

	var f statusFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStateReadFailed.Error()), "path", ref.StatusPath())
	}

	status.Set(domain.StageFetch, domain.Outcome(f.Status.Fetch))
	status.Set(domain.StageBuild, domain.Outcome(f.Status.Build))
	status.Set(domain.StageInstall, domain.Outcome(f.Status.Install))
	return status, nil
}

// WriteStatus persists the status of ref.
func (s *Store) WriteStatus(ref domain.InstanceRef, status domain.BuildStatus) error {
	f := statusFile{Status: statusTable{
		Fetch:   string(status.Get(domain.StageFetch)),
		Build:   string(status.Get(domain.StageBuild)),
		Install: string(status.Get(domain.StageInstall)),
	}}
	data, err := toml.Marshal(f)
	if err != nil {
		return zerr.Wrap(err, domain.ErrStateWriteFailed.Error())
	}
	return writeFile(ref.StatusPath(), data)
}

// Prepare creates the instance directory, its stage subdirectories and any
// extra directories.
func (s *Store) Prepare(ref domain.InstanceRef, dirs ...string) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	for _, st := range domain.Stages {
		dirs = append(dirs, ref.StageDir(st))
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrStateWriteFailed.Error()), "path", dir)
		}
	}
	return nil
}

// List returns every instance under root that has a persisted status file.
func (s *Store) List(root string) ([]domain.InstanceRecord, error) {
	components, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStateReadFailed.Error()), "path", root)
	}

	var records []domain.InstanceRecord
	for _, c := range components {
		if !c.IsDir() {
			continue
		}
		instances, err := os.ReadDir(filepath.Join(root, c.Name()))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrStateReadFailed.Error()), "path", filepath.Join(root, c.Name()))
		}
		for _, inst := range instances {
			if !inst.IsDir() {
				continue
			}
			ref := domain.InstanceRef{Root: root, Component: c.Name(), Name: inst.Name()}
			if _, err := os.Stat(ref.StatusPath()); err != nil {
				continue
			}
			status, err := s.ReadStatus(ref)
			if err != nil {
				return nil, err
			}
			records = append(records, domain.InstanceRecord{Ref: ref, Status: status})
		}
	}

	slices.SortFunc(records, func(a, b domain.InstanceRecord) int {
		if c := strings.Compare(a.Ref.Component, b.Ref.Component); c != 0 {
			return c
		}
		return strings.Compare(a.Ref.Name, b.Ref.Name)
	})
	return records, nil
}

// Remove deletes the instance tree of ref.
func (s *Store) Remove(ref domain.InstanceRef) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	if _, err := os.Stat(ref.Dir()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(domain.ErrInstanceNotFound, "cannot remove instance"), "instance", ref.String())
		}
		return zerr.With(zerr.Wrap(err, domain.ErrStateReadFailed.Error()), "path", ref.Dir())
	}
	if err := os.RemoveAll(ref.Dir()); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStateWriteFailed.Error()), "path", ref.Dir())
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	//nolint:gosec // Path is constructed from the repo root and instance names
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStateReadFailed.Error()), "path", path)
	}
	return data, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStateWriteFailed.Error()), "path", path)
	}
	//nolint:gosec // Path is constructed from the repo root and instance names
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStateWriteFailed.Error()), "path", path)
	}
	return nil
}

func firstRecord(v any) (domain.RawInstance, bool) {
	switch x := v.(type) {
	case []any:
		if len(x) == 0 {
			return nil, false
		}
		m, ok := x[0].(map[string]any)
		return m, ok
	case []map[string]any:
		if len(x) == 0 {
			return nil, false
		}
		return x[0], true
	default:
		return nil, false
	}
}
