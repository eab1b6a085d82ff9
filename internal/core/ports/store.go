package ports

import "go.trai.ch/hekit/internal/core/domain"

// SpecReader reads persisted instance specs.
type SpecReader interface {
	// ReadSpec returns the persisted spec of ref.
	// Returns nil, nil if not found.
	ReadSpec(ref domain.InstanceRef) (*domain.InstanceSpec, error)
}

// InstanceStore defines the interface for the durable per-instance state:
// the expanded spec, the stage status and the directory tree.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type InstanceStore interface {
	SpecReader

	// WriteSpec persists the expanded spec.
	WriteSpec(spec *domain.InstanceSpec) error

	// ReadStatus returns the recorded stage status of ref.
	// A missing status file yields every stage NotRun.
	ReadStatus(ref domain.InstanceRef) (domain.BuildStatus, error)

	// WriteStatus persists the stage status of ref.
	WriteStatus(ref domain.InstanceRef, status domain.BuildStatus) error

	// Prepare creates the instance directory, its fetch, build and install
	// subdirectories and every directory in dirs.
	Prepare(ref domain.InstanceRef, dirs ...string) error

	// List returns every persisted instance under root, sorted by component and name.
	List(root string) ([]domain.InstanceRecord, error)

	// Remove deletes the instance tree of ref.
	Remove(ref domain.InstanceRef) error
}
