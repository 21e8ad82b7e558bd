package cheer

import (
	"fmt"
	"strings"
)

// Stage names the pipeline stage that rejected a program.
type Stage string

const (
	StageScan  Stage = "scan"
	StageParse Stage = "parse"
	StageType  Stage = "type"
)

type CompileError interface {
	error
	fmt.Stringer
}

type ScanError struct {
	Loc *Location
	Msg string
}

func newScanError(loc *Location, format string, args ...interface{}) *ScanError {
	return &ScanError{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}

func (e *ScanError) String() string {
	return fmt.Sprintf("%s %s", e.Loc, e.Msg)
}

func (e *ScanError) Error() string {
	return e.String()
}

func (e *ScanError) Stage() Stage {
	return StageScan
}

type ParseError struct {
	Loc *Location
	Msg string
}

func (e *ParseError) String() string {
	return fmt.Sprintf("%s %s", e.Loc, e.Msg)
}

func (e *ParseError) Error() string {
	return e.String()
}

func (e *ParseError) Stage() Stage {
	return StageParse
}

// TypeErrors holds every diagnostic of a failed type check, in the order the
// checker found them.
type TypeErrors struct {
	Errors []CompileError
}

func (e *TypeErrors) String() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.String()
	}

	return strings.Join(msgs, "\n")
}

func (e *TypeErrors) Error() string {
	return e.String()
}

func (e *TypeErrors) Stage() Stage {
	return StageType
}
