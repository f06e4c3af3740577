package internal

import (
	"errors"
	"fmt"
)

// Errors reported by the VM. Everything except ErrRomTooLarge halts the
// current run; Step keeps returning the halting error until the VM is
// reloaded or reset.
var (
	ErrRomTooLarge       = errors.New("rom too large")
	ErrUnknownOpcode     = errors.New("unknown opcode")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrStackOverflow     = errors.New("stack overflow")
	ErrMemoryOutOfBounds = errors.New("memory out of bounds")
)

// HaltError is returned by Step when an instruction cannot be executed.
// It wraps one of the sentinel errors above, so callers match it with
// errors.Is.
type HaltError struct {
	Err    error
	Opcode uint16
	Addr   uint16
}

func (e *HaltError) Error() string {
	return fmt.Sprintf("%v executing %.4X at %.4x", e.Err, e.Opcode, e.Addr)
}

func (e *HaltError) Unwrap() error { return e.Err }
