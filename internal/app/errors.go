package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/burstworld/internal/typereg"
)

var (
	// ErrCyclicRegistration is wrapped by every *CycleError.
	ErrCyclicRegistration = errors.New("cyclic plugin registration")
	// ErrBuilderConsumed is raised when a builder is used after Build.
	ErrBuilderConsumed = errors.New("app builder already consumed")
	// ErrNilPlugin is recorded when AddPlugin receives a nil plugin.
	ErrNilPlugin = errors.New("nil plugin")
	// ErrInvalidSystem is recorded for systems that cannot be scheduled.
	ErrInvalidSystem = errors.New("invalid system")
)

// CycleError reports a plugin that re-entered its own registration. Chain
// starts and ends with the same plugin.
type CycleError struct {
	Chain []typereg.TypeKey
	Names []string
}

func newCycleError(types *typereg.Registry, chain []typereg.TypeKey) *CycleError {
	return &CycleError{
		Chain: chain,
		Names: types.Names(chain...),
	}
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCyclicRegistration, strings.Join(e.Names, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCyclicRegistration }
