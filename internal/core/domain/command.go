package domain

import "strings"

// Command is one external process invocation.
type Command struct {
	// Line is a shell-syntax command string, tokenized when Args is empty.
	Line string
	// Args is a pre-tokenized argument list.
	Args []string
	// Dir is the working directory of the process.
	Dir string
	// Env holds extra environment variables layered over the inherited environment.
	Env map[string]string
}

// Empty reports whether there is nothing to run.
func (c Command) Empty() bool {
	return len(c.Args) == 0 && strings.TrimSpace(c.Line) == ""
}

// Workspace is the loaded workspace configuration.
type Workspace struct {
	// RepoLocation is the root under which <component>/<instance> trees live.
	RepoLocation string
	// ConfigPath is the file the configuration was read from, empty for defaults.
	ConfigPath string
}
