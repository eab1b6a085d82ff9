package config

// NewWorkspaceLoaderWithHome creates a loader that resolves ~ to home.
func NewWorkspaceLoaderWithHome(home string) *WorkspaceLoader {
	return &WorkspaceLoader{homeDir: func() (string, error) { return home, nil }}
}
