package core

import "errors"

var (
	ErrNotStarted      = errors.New("machine not started")
	ErrHalted          = errors.New("machine halted")
	ErrStepLimit       = errors.New("step limit reached")
	ErrProgramMismatch = errors.New("snapshot program does not match machine")
)
