// Package config resolves the environment knobs for cmd/litmuseval, the
// only configuration surface in this repository (spec §6, "Configuration:
// None at this layer"; SPEC_FULL §11). The core packages (litmus,
// bitvector, pagetable, vaddr, primitive, eval, collab) take no
// configuration at all and must not import this package.
package config

import "github.com/xyproto/env/v2"

// Config holds the resolved demonstration-binary settings.
type Config struct {
	// ObjdumpPath is the path to an objdump-style text blob file the demo
	// disassembler collaborator reads. Empty means use the built-in
	// sample program text.
	ObjdumpPath string
	// SolverPath is reserved for a future real SMT collaborator; unused
	// by the stub solver but resolved and surfaced so --help documents
	// the variable a production deployment would set.
	SolverPath string
	// Verbose toggles stderr tracing in cmd/litmuseval.
	Verbose bool
}

// Load reads LITMUS_OBJDUMP_PATH, LITMUS_SOLVER_PATH, and LITMUS_VERBOSE
// from the environment via github.com/xyproto/env/v2, the same
// environment-discovery module the teacher's go.mod already carries.
func Load() Config {
	return Config{
		ObjdumpPath: env.Str("LITMUS_OBJDUMP_PATH", ""),
		SolverPath:  env.Str("LITMUS_SOLVER_PATH", ""),
		Verbose:     env.Bool("LITMUS_VERBOSE"),
	}
}
