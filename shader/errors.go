package shader

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned (wrapped in *BuildError) by Build.
var (
	// ErrCompile is returned when a shader stage fails to compile.
	ErrCompile = errors.New("shader: compile failed")

	// ErrLink is returned when the program fails to link.
	ErrLink = errors.New("shader: link failed")

	// ErrResourceCreation is returned when the context cannot allocate a
	// shader or program object.
	ErrResourceCreation = errors.New("shader: resource creation failed")

	// ErrNilContext is returned when Build is called without a context.
	ErrNilContext = errors.New("shader: nil Context")

	// ErrStageMismatch is returned by BuildSources when a Source is passed
	// for the wrong stage.
	ErrStageMismatch = errors.New("shader: source stage mismatch")
)

// BuildError describes a failed Build.
//
// Stage is the stage whose compilation failed, or StageNone for failures of
// the program as a whole. Log carries the compiler or linker diagnostics
// exactly as reported by the context. Err is one of ErrCompile, ErrLink or
// ErrResourceCreation, possibly wrapping the context's own error.
type BuildError struct {
	Stage Stage
	Log   string
	Err   error
}

func (e *BuildError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Err.Error())
	if e.Stage != StageNone {
		fmt.Fprintf(&sb, " (%s stage)", e.Stage)
	}
	if log := strings.TrimSpace(e.Log); log != "" {
		sb.WriteString(": ")
		sb.WriteString(log)
	}
	return sb.String()
}

// Unwrap returns the underlying error.
func (e *BuildError) Unwrap() error {
	return e.Err
}

// IsCompileError reports whether err is a compile failure and, if so, of
// which stage.
func IsCompileError(err error) (Stage, bool) {
	var be *BuildError
	if errors.As(err, &be) && errors.Is(be.Err, ErrCompile) {
		return be.Stage, true
	}
	return StageNone, false
}
