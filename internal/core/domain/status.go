package domain

// Stage is an ordered phase of bringing an instance to a usable state.
type Stage uint8

const (
	// StageFetch obtains the sources.
	StageFetch Stage = iota
	// StageBuild compiles the fetched sources.
	StageBuild
	// StageInstall installs the build results.
	StageInstall
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageFetch, StageBuild, StageInstall}

var stageNames = [...]string{"fetch", "build", "install"}

// String returns the recipe spelling of the stage.
func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

// Outcome is the recorded result of a stage.
type Outcome string

const (
	// NotRun means the stage has not been attempted, or was reset.
	NotRun Outcome = ""
	// Success means the stage and its hooks completed.
	Success Outcome = "success"
	// Failure means the stage or one of its hooks exited unsuccessfully.
	Failure Outcome = "failure"
)

// BuildStatus records the outcome of every stage of one instance.
type BuildStatus map[Stage]Outcome

// NewBuildStatus returns a status with every stage NotRun.
func NewBuildStatus() BuildStatus {
	s := make(BuildStatus, len(Stages))
	for _, st := range Stages {
		s[st] = NotRun
	}
	return s
}

// Get returns the outcome of a stage.
func (b BuildStatus) Get(s Stage) Outcome {
	return b[s]
}

// Set records the outcome of a stage.
func (b BuildStatus) Set(s Stage, o Outcome) {
	b[s] = o
}

// Reset marks a stage NotRun.
func (b BuildStatus) Reset(s Stage) {
	b[s] = NotRun
}

// Clone returns an independent copy.
func (b BuildStatus) Clone() BuildStatus {
	c := NewBuildStatus()
	for k, v := range b {
		c[k] = v
	}
	return c
}

// InstanceRecord is a persisted instance and its recorded status.
type InstanceRecord struct {
	Ref    InstanceRef
	Status BuildStatus
}

// Result is the outcome of one command or stage function.
type Result struct {
	Success bool
	Code    int
}

// OK is the result of a step that had nothing to do or completed.
var OK = Result{Success: true, Code: 0}
