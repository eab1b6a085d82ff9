package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidSpec is returned when a recipe instance record is malformed.
	ErrInvalidSpec = zerr.New("invalid spec")

	// ErrSpecConflict is returned when an instance that was already executed is
	// declared again with different options. It wraps ErrInvalidSpec.
	ErrSpecConflict = zerr.Wrap(ErrInvalidSpec, "already present, executed with different options")

	// ErrCycleDetected is returned when a cycle is detected in the component dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrDependencyNotFound is returned when a cross-component reference points at an
	// instance that has no persisted spec.
	ErrDependencyNotFound = zerr.New("dependency spec not found")

	// ErrDependencyKeyNotFound is returned when a persisted dependency spec lacks the referenced key.
	ErrDependencyKeyNotFound = zerr.New("dependency spec has no such key")

	// ErrSubstitutionCycle is returned when self-references of an instance refer to each other.
	ErrSubstitutionCycle = zerr.New("self-reference cycle")

	// ErrUnknownAttribute is returned when a self-reference names an attribute that is not defined.
	ErrUnknownAttribute = zerr.New("unknown attribute")

	// ErrMissingRecipeArg is returned when a user-input placeholder has no value and
	// no interactive terminal is available to ask for one.
	ErrMissingRecipeArg = zerr.New("missing recipe argument")

	// ErrListEmbedding is returned when a list attribute is referenced inside a string.
	ErrListEmbedding = zerr.New("list attribute cannot be embedded in a string")

	// ErrBuildFailed is returned when a stage function exits unsuccessfully.
	ErrBuildFailed = zerr.New("build failed")

	// ErrInvalidRecipeArg is returned when a recipe argument is not in key=value form.
	ErrInvalidRecipeArg = zerr.New("invalid recipe argument, expected key=value")

	// ErrRecipeIsSymlink is returned when the recipe file is a symbolic link.
	ErrRecipeIsSymlink = zerr.New("recipe file must not be a symbolic link")

	// ErrRecipeReadFailed is returned when the recipe file cannot be read.
	ErrRecipeReadFailed = zerr.New("failed to read recipe file")

	// ErrRecipeParseFailed is returned when the recipe file is not valid TOML.
	ErrRecipeParseFailed = zerr.New("failed to parse recipe file")

	// ErrConfigReadFailed is returned when the workspace config cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read workspace config")

	// ErrStateReadFailed is returned when a persisted spec or status file cannot be read.
	ErrStateReadFailed = zerr.New("failed to read instance state")

	// ErrStateWriteFailed is returned when a persisted spec or status file cannot be written.
	ErrStateWriteFailed = zerr.New("failed to write instance state")

	// ErrInvalidInstanceRef is returned when a component or instance name does not
	// select a single directory inside the repo.
	ErrInvalidInstanceRef = zerr.New("invalid component or instance name")

	// ErrInstanceNotFound is returned when removing an instance that does not exist.
	ErrInstanceNotFound = zerr.New("instance not found")

	// ErrCommandParseFailed is returned when a shell command string cannot be tokenized.
	ErrCommandParseFailed = zerr.New("failed to parse command")

	// ErrCommandStartFailed is returned when a command process cannot be started.
	ErrCommandStartFailed = zerr.New("failed to start command")
)
