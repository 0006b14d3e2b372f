package glref

import "errors"

// Sentinel errors for the construction paths. GL-level errors never surface
// as Go errors; see Context.GetError.
var (
	// ErrInvalidConfig is returned when a Config cannot describe a context.
	ErrInvalidConfig = errors.New("glref: invalid config")

	// ErrInvalidProgram is returned by CreateProgram when the declaration
	// does not describe a usable program.
	ErrInvalidProgram = errors.New("glref: invalid program")

	// ErrShaderCompile is returned by CreateProgram when a WGSL source in
	// the declaration fails to compile.
	ErrShaderCompile = errors.New("glref: shader compilation failed")

	// ErrBackendNotAvailable is returned when no context backend matches.
	ErrBackendNotAvailable = errors.New("glref: backend not available")
)
