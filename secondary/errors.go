package secondary

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero reports a zero primary or secondary energy.
var ErrDivisionByZero = errors.New("secondary: division by zero")

// Stage names the step of an evaluation that failed.
type Stage string

const (
	StageTable    Stage = "table"
	StageCache    Stage = "cache"
	StageEvaluate Stage = "evaluate"
)

// StageError wraps a failure with the stage and kind it occurred in.
type StageError struct {
	Stage Stage
	Kind  Kind
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("secondary: %s %s: %v", e.Kind, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
